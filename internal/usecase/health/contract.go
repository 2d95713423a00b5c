package health

import "github.com/edustack/askta/internal/domain"

// CorpusReader reads the current corpus snapshot for health checks.
type CorpusReader interface {
	Corpus() domain.Corpus
}
