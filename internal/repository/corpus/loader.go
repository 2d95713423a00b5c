package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/edustack/askta/internal/domain"
)

func loadPosts(path string, logger *zap.Logger) []domain.Post {
	data, ok := readCorpusFile(path, logger)
	if !ok {
		return nil
	}

	var posts []domain.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		logger.Warn("malformed posts corpus, using empty corpus",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	return posts
}

func loadContent(path string, logger *zap.Logger) []domain.ContentItem {
	data, ok := readCorpusFile(path, logger)
	if !ok {
		return nil
	}

	var items []domain.ContentItem
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("malformed content corpus, using empty corpus",
			zap.String("path", path), zap.Error(err))
		return nil
	}
	return items
}

func readCorpusFile(path string, logger *zap.Logger) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		logger.Warn("corpus file unreadable, using empty corpus",
			zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return data, true
}
