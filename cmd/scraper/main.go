// Command scraper builds the forum-post corpus file from a Discourse
// forum. Run it offline; the API server only ever reads the output.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/edustack/askta/internal/config"
	"github.com/edustack/askta/internal/crawler"
	logpkg "github.com/edustack/askta/internal/logger"
)

func main() {
	var (
		baseURL    = flag.String("base-url", "", "forum base URL (overrides config)")
		categories = flag.String("categories", "", "comma-separated category slugs (overrides config)")
		days       = flag.Int("days", 0, "crawl window in days back from now (overrides config)")
		out        = flag.String("out", "", "output file (default: config corpus.posts_path)")
	)
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	url := cfg.Crawler.BaseURL
	if *baseURL != "" {
		url = *baseURL
	}
	if url == "" {
		logger.Fatal("no forum base URL configured (set crawler.base_url or -base-url)")
	}

	slugs := cfg.Crawler.Categories
	if *categories != "" {
		slugs = strings.Split(*categories, ",")
	}
	if len(slugs) == 0 {
		logger.Fatal("no categories configured (set crawler.categories or -categories)")
	}

	window := cfg.Crawler.WindowDays
	if *days > 0 {
		window = *days
	}

	outPath := cfg.Corpus.PostsPath
	if *out != "" {
		outPath = *out
	}

	to := time.Now()
	from := to.AddDate(0, 0, -window)

	logger.Info("Starting crawl",
		zap.String("base_url", url),
		zap.Strings("categories", slugs),
		zap.Time("from", from),
		zap.Time("to", to),
		zap.String("out", outPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := crawler.New(url, cfg.Crawler.RatePerSec, logger)
	posts, err := client.Crawl(ctx, slugs, from, to)
	if err != nil {
		logger.Fatal("crawl failed", zap.Error(err))
	}

	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		logger.Fatal("encode corpus", zap.Error(err))
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		logger.Fatal("write corpus file", zap.Error(err))
	}

	logger.Info("Crawl finished", zap.Int("posts", len(posts)), zap.String("out", outPath))
}
