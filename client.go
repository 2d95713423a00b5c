// Package askta exposes the question-answering engine as an embeddable
// library: construct a Client over corpus files or in-memory corpora and
// ask questions directly, without running the HTTP server.
package askta

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/edustack/askta/internal/domain"
	corpusrepo "github.com/edustack/askta/internal/repository/corpus"
	answeruc "github.com/edustack/askta/internal/usecase/answer"
)

// Re-exported engine types.
type (
	// Post is a forum corpus record.
	Post = domain.Post
	// ContentItem is a course-content corpus record.
	ContentItem = domain.ContentItem
	// Link is a supporting resource reference.
	Link = domain.Link
	// Answer is the payload returned for a question.
	Answer = domain.Answer
	// Stats describes the loaded knowledge base.
	Stats = domain.Stats
)

// Client is the askta SDK entry point.
type Client struct {
	answers *answeruc.Service
	store   *corpusrepo.Store // nil for in-memory corpora
}

type clientConfig struct {
	postsPath        string
	contentPath      string
	posts            []Post
	content          []ContentItem
	inMemory         bool
	postThreshold    float64
	contentThreshold float64
	logger           *zap.Logger
}

// Option configures a Client.
type Option func(*clientConfig)

// WithCorpusFiles reads the corpora from JSON files. Missing or
// malformed files degrade to empty corpora.
func WithCorpusFiles(postsPath, contentPath string) Option {
	return func(c *clientConfig) {
		c.postsPath = postsPath
		c.contentPath = contentPath
	}
}

// WithCorpus supplies in-memory corpora, mainly for tests and embedding.
func WithCorpus(posts []Post, content []ContentItem) Option {
	return func(c *clientConfig) {
		c.posts = posts
		c.content = content
		c.inMemory = true
	}
}

// WithThresholds overrides the retrieval thresholds. Zero keeps the default.
func WithThresholds(post, content float64) Option {
	return func(c *clientConfig) {
		c.postThreshold = post
		c.contentThreshold = content
	}
}

// WithLogger sets the logger (default: no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// staticProvider serves a fixed in-memory corpus snapshot.
type staticProvider struct {
	c domain.Corpus
}

func (p *staticProvider) Corpus() domain.Corpus { return p.c }

// New creates an askta Client and loads the corpora.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o(cfg)
	}

	var provider answeruc.CorpusProvider
	var store *corpusrepo.Store

	switch {
	case cfg.inMemory:
		provider = &staticProvider{c: domain.Corpus{
			Posts:    cfg.posts,
			Content:  cfg.content,
			LoadedAt: time.Now(),
		}}
	case cfg.postsPath != "" || cfg.contentPath != "":
		store = corpusrepo.NewStore(cfg.postsPath, cfg.contentPath, cfg.logger)
		store.Load()
		provider = store
	default:
		return nil, errors.New("askta: corpus source required (use WithCorpusFiles or WithCorpus)")
	}

	answers := answeruc.New(provider, cfg.logger).
		WithThresholds(cfg.postThreshold, cfg.contentThreshold)

	return &Client{answers: answers, store: store}, nil
}

// GetAnswer answers a student question against the loaded corpora.
func (c *Client) GetAnswer(question string) Answer {
	return c.answers.GetAnswer(question)
}

// Stats reports knowledge base sizes.
func (c *Client) Stats() Stats {
	return c.answers.Stats()
}

// Reload re-reads file-backed corpora and swaps the snapshot atomically.
// It is a no-op for in-memory corpora.
func (c *Client) Reload() {
	if c.store != nil {
		c.store.Reload()
	}
}
