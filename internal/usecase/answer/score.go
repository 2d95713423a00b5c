package answer

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/edustack/askta/internal/domain"
)

// Scoring weights. The keyword bonus is additive on top of the 0-100
// fuzzy scale, so a fused score can exceed 100. Thresholds are defined
// against this fused scale; see DESIGN.md on the scale conflation.
const (
	contentWeightFactor = 0.8

	postKeywordWeight = 10
	postKeywordCap    = 30

	contentKeywordWeight = 15
	contentKeywordCap    = 40
)

// ScoredPost is a post with its fused relevance score for one question.
type ScoredPost struct {
	Post           domain.Post
	Score          float64
	TitleScore     int
	ContentScore   int
	KeywordMatches int
}

// ScoredContent is a content item with its fused relevance score.
type ScoredContent struct {
	Item           domain.ContentItem
	Score          float64
	KeywordMatches int
}

// partialRatio is the shared fuzzy primitive: best alignment of the
// shorter string within the longer, 0-100. Empty input scores zero
// instead of erroring.
func partialRatio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	return fuzzy.PartialRatio(a, b)
}

// scorePost fuses fuzzy title/body similarity with the keyword bonus.
// normQuestion must already be normalized; keywords come from the raw
// question.
func scorePost(normQuestion string, keywords []string, post domain.Post) ScoredPost {
	body := Normalize(post.Title + " " + post.Content)

	titleScore := partialRatio(normQuestion, Normalize(post.Title))
	contentScore := partialRatio(normQuestion, body)

	combined := float64(titleScore)
	if weighted := float64(contentScore) * contentWeightFactor; weighted > combined {
		combined = weighted
	}

	matches := countKeywordMatches(keywords, body)
	bonus := float64(matches * postKeywordWeight)
	if bonus > postKeywordCap {
		bonus = postKeywordCap
	}

	return ScoredPost{
		Post:           post,
		Score:          combined + bonus,
		TitleScore:     titleScore,
		ContentScore:   contentScore,
		KeywordMatches: matches,
	}
}

// scoreContent fuses fuzzy similarity over title+description with the
// keyword bonus. Content descriptions are short, so keyword hits carry
// a higher weight and cap than for posts.
func scoreContent(normQuestion string, keywords []string, item domain.ContentItem) ScoredContent {
	body := Normalize(item.Title + " " + item.Description)

	score := float64(partialRatio(normQuestion, body))

	matches := countKeywordMatches(keywords, body)
	bonus := float64(matches * contentKeywordWeight)
	if bonus > contentKeywordCap {
		bonus = contentKeywordCap
	}

	return ScoredContent{
		Item:           item,
		Score:          score + bonus,
		KeywordMatches: matches,
	}
}

// countKeywordMatches counts keywords occurring as substrings of the
// normalized item text.
func countKeywordMatches(keywords []string, normText string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(normText, kw) {
			n++
		}
	}
	return n
}
