package answer

import "github.com/edustack/askta/internal/domain"

// CorpusProvider supplies the current read-only corpus snapshot.
// Implementations must publish replacement snapshots atomically; the
// engine takes no locks and never mutates what it is handed.
type CorpusProvider interface {
	Corpus() domain.Corpus
}
