package answer

import (
	"regexp"
	"strings"
)

// techTerms is the fixed domain vocabulary checked by substring match.
// Plain configuration table, not a type hierarchy.
var techTerms = []string{
	"python", "pandas", "numpy", "matplotlib", "seaborn", "sklearn",
	"jupyter", "notebook", "dataframe", "csv", "api", "sql", "database",
	"visualization", "plot", "chart", "regression", "classification",
	"machine learning", "ml", "data science", "statistics", "analysis",
}

// maxGenericKeywords caps the generic long-word heuristic before dedup.
const maxGenericKeywords = 10

var longWordRegex = regexp.MustCompile(`\b\w{4,}\b`)

// ExtractKeywords pulls salient terms from a raw question: every domain
// vocabulary term present as a substring, plus the first ten words of
// four or more characters. The result is deduplicated; order carries no
// meaning.
func ExtractKeywords(question string) []string {
	lower := strings.ToLower(question)

	seen := make(map[string]struct{})
	var keywords []string
	add := func(term string) {
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		keywords = append(keywords, term)
	}

	for _, term := range techTerms {
		if strings.Contains(lower, term) {
			add(term)
		}
	}

	words := longWordRegex.FindAllString(lower, -1)
	if len(words) > maxGenericKeywords {
		words = words[:maxGenericKeywords]
	}
	for _, w := range words {
		add(w)
	}

	return keywords
}
