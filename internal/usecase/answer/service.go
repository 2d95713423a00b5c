// Package answer implements the question-answering engine: text
// normalization, fused fuzzy/keyword scoring, threshold-based retrieval
// and deterministic answer synthesis over read-only corpora.
package answer

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/edustack/askta/internal/domain"
	"github.com/edustack/askta/internal/metrics"
)

// Default retrieval thresholds, defined against the fused score scale.
const (
	DefaultPostThreshold    = 60
	DefaultContentThreshold = 50
)

// Top-k bounds per corpus and the overall link cap.
const (
	maxPosts   = 5
	maxContent = 3
	maxLinks   = 5
)

// Service answers free-text questions against the corpus snapshot.
// Scoring is a sequential scan per request; the service holds no
// mutable state and is safe for concurrent use.
type Service struct {
	corpus           CorpusProvider
	logger           *zap.Logger
	postThreshold    float64
	contentThreshold float64
}

// New creates an answer service with default thresholds.
func New(corpus CorpusProvider, logger *zap.Logger) *Service {
	return &Service{
		corpus:           corpus,
		logger:           logger,
		postThreshold:    DefaultPostThreshold,
		contentThreshold: DefaultContentThreshold,
	}
}

// WithThresholds overrides the retrieval thresholds. Zero keeps the default.
func (s *Service) WithThresholds(post, content float64) *Service {
	if post > 0 {
		s.postThreshold = post
	}
	if content > 0 {
		s.contentThreshold = content
	}
	return s
}

// GetAnswer retrieves and ranks matches from both corpora and renders
// the answer payload. It never fails: degraded inputs produce weaker
// results, a blank question produces a fixed prompt.
func (s *Service) GetAnswer(question string) domain.Answer {
	if strings.TrimSpace(question) == "" {
		metrics.QuestionsTotal.WithLabelValues("empty").Inc()
		return domain.Answer{Answer: promptForQuestion, Links: []domain.Link{}}
	}

	c := s.corpus.Corpus()

	// Normalize once; every score uses the same normalized question.
	normQuestion := Normalize(question)
	keywords := ExtractKeywords(question)

	posts := s.findSimilarPosts(normQuestion, keywords, c.Posts)
	content := s.findRelevantContent(normQuestion, keywords, c.Content)

	s.logger.Debug("question answered",
		zap.Int("post_matches", len(posts)),
		zap.Int("content_matches", len(content)),
	)

	outcome := "answered"
	if len(posts) == 0 && len(content) == 0 {
		outcome = "fallback"
	}
	metrics.QuestionsTotal.WithLabelValues(outcome).Inc()

	return domain.Answer{
		Answer: synthesize(posts, content),
		Links:  buildLinks(content, posts),
	}
}

// Stats reports the knowledge base sizes and snapshot age.
func (s *Service) Stats() domain.Stats {
	c := s.corpus.Corpus()
	return domain.Stats{
		PostCount:    len(c.Posts),
		ContentCount: len(c.Content),
		TotalCount:   len(c.Posts) + len(c.Content),
		LastUpdated:  c.LoadedAt,
	}
}

// findSimilarPosts scores every post, keeps those at or above the post
// threshold, sorts by descending score (stable, so corpus order breaks
// ties) and truncates to the top five.
func (s *Service) findSimilarPosts(normQuestion string, keywords []string, posts []domain.Post) []ScoredPost {
	var matches []ScoredPost
	for _, p := range posts {
		sp := scorePost(normQuestion, keywords, p)
		if sp.Score >= s.postThreshold {
			matches = append(matches, sp)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxPosts {
		matches = matches[:maxPosts]
	}
	return matches
}

// findRelevantContent is the content-corpus counterpart: threshold 50,
// top three.
func (s *Service) findRelevantContent(
	normQuestion string, keywords []string, items []domain.ContentItem,
) []ScoredContent {
	var matches []ScoredContent
	for _, item := range items {
		sc := scoreContent(normQuestion, keywords, item)
		if sc.Score >= s.contentThreshold {
			matches = append(matches, sc)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxContent {
		matches = matches[:maxContent]
	}
	return matches
}

// buildLinks emits content links first, then post links, in ranked
// order. Items without a URL are skipped silently; the combined list is
// capped at five. URLs repeating across corpora stay as separate entries.
func buildLinks(content []ScoredContent, posts []ScoredPost) []domain.Link {
	links := make([]domain.Link, 0, maxLinks)

	for _, sc := range content {
		if sc.Item.URL == "" {
			continue
		}
		links = append(links, domain.Link{
			URL:  sc.Item.URL,
			Text: linkPrefixContent + orDefault(sc.Item.Title, untitledContent),
		})
	}

	for _, sp := range posts {
		if sp.Post.URL == "" {
			continue
		}
		links = append(links, domain.Link{
			URL:  sp.Post.URL,
			Text: linkPrefixPost + orDefault(sp.Post.Title, untitledPost),
		})
	}

	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links
}
