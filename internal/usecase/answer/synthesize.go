package answer

import "strings"

// Fixed answer templates. Rendering is deterministic: no randomness, no
// external calls.
const (
	promptForQuestion = "Please provide a valid question."

	fallbackAnswer = "I couldn't find specific information related to your question in the current knowledge base. " +
		"Please try rephrasing your question or contact the course instructor for assistance."

	answerLeadIn = "Based on the available course materials and forum discussions, here's what I found:"

	answerClosing = "\nFor more detailed information, please check the supporting links provided below."

	linkPrefixContent = "Course Material: "
	linkPrefixPost    = "Forum Discussion: "

	untitledContent = "Untitled"
	untitledPost    = "Untitled Post"
)

// Prose renders at most this many items per corpus type even when more
// back the link list; the answer text stays short while links surface
// the rest.
const maxProseItems = 2

// descriptionPreviewLen caps the rendered content description.
const descriptionPreviewLen = 200

// postPreviewLen bounds the window the first sentence is taken from.
const postPreviewLen = 300

// synthesize renders the answer text from the ranked results.
func synthesize(posts []ScoredPost, content []ScoredContent) string {
	if len(posts) == 0 && len(content) == 0 {
		return fallbackAnswer
	}

	parts := []string{answerLeadIn}

	if len(content) > 0 {
		parts = append(parts, "\n**Course Content:**")
		for _, sc := range content[:minInt(maxProseItems, len(content))] {
			title := orDefault(sc.Item.Title, untitledContent)
			desc := truncateRunes(sc.Item.Description, descriptionPreviewLen)
			if desc != "" {
				parts = append(parts, "• **"+title+"**: "+desc+"...")
			} else {
				parts = append(parts, "• **"+title+"**")
			}
		}
	}

	if len(posts) > 0 {
		parts = append(parts, "\n**Related Forum Discussions:**")
		for _, sp := range posts[:minInt(maxProseItems, len(posts))] {
			title := orDefault(sp.Post.Title, untitledPost)
			if sp.Post.Content != "" {
				parts = append(parts, "• **"+title+"**: "+firstSentence(sp.Post.Content))
			} else {
				parts = append(parts, "• **"+title+"**")
			}
		}
	}

	parts = append(parts, answerClosing)

	return strings.Join(parts, "\n")
}

// firstSentence extracts the text up to the first period within the
// first 300 characters, period included.
func firstSentence(content string) string {
	preview := truncateRunes(content, postPreviewLen)
	if i := strings.Index(preview, "."); i >= 0 {
		preview = preview[:i]
	}
	return preview + "."
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
