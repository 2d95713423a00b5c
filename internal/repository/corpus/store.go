// Package corpus loads the forum-post and course-content corpora from
// JSON files and publishes them as immutable snapshots.
package corpus

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/edustack/askta/internal/domain"
)

// Store publishes corpus snapshots for concurrent readers. Snapshots are
// immutable; Reload swaps the pointer atomically so in-flight requests
// never observe a partially-updated corpus.
type Store struct {
	postsPath   string
	contentPath string
	logger      *zap.Logger
	snap        atomic.Pointer[domain.Corpus]
}

// NewStore creates a corpus store reading from the given file paths.
func NewStore(postsPath, contentPath string, logger *zap.Logger) *Store {
	s := &Store{
		postsPath:   postsPath,
		contentPath: contentPath,
		logger:      logger,
	}
	s.snap.Store(&domain.Corpus{})
	return s
}

// Load reads both corpus files and publishes a new snapshot. A missing,
// unreadable, or malformed file degrades to an empty corpus with a
// warning; load never fails.
func (s *Store) Load() {
	snap := &domain.Corpus{
		Posts:    loadPosts(s.postsPath, s.logger),
		Content:  loadContent(s.contentPath, s.logger),
		LoadedAt: time.Now(),
	}
	s.snap.Store(snap)

	s.logger.Info("corpus loaded",
		zap.Int("posts", len(snap.Posts)),
		zap.Int("content_items", len(snap.Content)),
	)
}

// Reload re-reads the corpus files and atomically replaces the snapshot.
func (s *Store) Reload() {
	s.Load()
}

// Corpus returns the current snapshot.
func (s *Store) Corpus() domain.Corpus {
	return *s.snap.Load()
}
