// Package crawler builds the forum-post corpus from a Discourse forum's
// JSON API. It feeds the corpus file the engine loads; field names must
// stay aligned with what the scorer reads (title, content, url).
package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/edustack/askta/internal/domain"
)

const requestTimeout = 30 * time.Second

// Topic is a forum topic reference from a category listing.
type Topic struct {
	ID         int
	Title      string
	Slug       string
	CategoryID int
	CreatedAt  time.Time
	PostsCount int
	URL        string
}

// Client crawls a Discourse forum.
type Client struct {
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a crawler for the given forum base URL, throttled to
// ratePerSec requests per second.
func New(baseURL string, ratePerSec float64, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:  logger,
	}
}

// Discourse JSON API shapes (only the fields we read).

type topicListResponse struct {
	TopicList struct {
		Topics []topicJSON `json:"topics"`
	} `json:"topic_list"`
}

type topicJSON struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	CategoryID int    `json:"category_id"`
	CreatedAt  string `json:"created_at"`
	PostsCount int    `json:"posts_count"`
}

type topicResponse struct {
	PostStream struct {
		Posts []postJSON `json:"posts"`
	} `json:"post_stream"`
}

type postJSON struct {
	Cooked    string `json:"cooked"`
	Raw       string `json:"raw"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// CategoryTopics pages through a category listing and returns topics
// created within [from, to]. Pagination stops at the first empty page.
func (c *Client) CategoryTopics(ctx context.Context, slug string, from, to time.Time) ([]Topic, error) {
	var topics []Topic

	for page := 0; ; page++ {
		url := fmt.Sprintf("%s/c/%s.json?page=%d", c.baseURL, slug, page)

		var resp topicListResponse
		if err := c.getJSON(ctx, url, &resp); err != nil {
			return topics, fmt.Errorf("fetch category %s page %d: %w", slug, page, err)
		}
		if len(resp.TopicList.Topics) == 0 {
			break
		}

		for _, t := range resp.TopicList.Topics {
			createdAt, err := time.Parse(time.RFC3339, t.CreatedAt)
			if err != nil {
				c.logger.Warn("skipping topic with unparseable date",
					zap.Int("topic_id", t.ID), zap.String("created_at", t.CreatedAt))
				continue
			}
			if createdAt.Before(from) || createdAt.After(to) {
				continue
			}
			topics = append(topics, Topic{
				ID:         t.ID,
				Title:      t.Title,
				Slug:       t.Slug,
				CategoryID: t.CategoryID,
				CreatedAt:  createdAt,
				PostsCount: t.PostsCount,
				URL:        fmt.Sprintf("%s/t/%s/%d", c.baseURL, t.Slug, t.ID),
			})
		}
	}

	return topics, nil
}

// FetchTopic downloads a topic's post stream and converts it into a
// corpus record: the first post becomes the content, the rest become
// replies. Cooked HTML is reduced to plain text.
func (c *Client) FetchTopic(ctx context.Context, topic Topic) (domain.Post, error) {
	url := fmt.Sprintf("%s/t/%s/%d.json", c.baseURL, topic.Slug, topic.ID)

	var resp topicResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return domain.Post{}, fmt.Errorf("fetch topic %d: %w", topic.ID, err)
	}
	posts := resp.PostStream.Posts
	if len(posts) == 0 {
		return domain.Post{}, fmt.Errorf("topic %d has no posts", topic.ID)
	}

	main := posts[0]
	content := postText(main)

	var replies []string
	for _, p := range posts[1:] {
		if text := postText(p); text != "" {
			replies = append(replies, text)
		}
	}

	return domain.Post{
		ID:        topic.ID,
		Title:     topic.Title,
		Content:   content,
		URL:       topic.URL,
		CreatedAt: topic.CreatedAt.Format(time.RFC3339),
		Username:  main.Username,
		Replies:   replies,
	}, nil
}

// Crawl collects the posts corpus for all categories. Topics that fail
// to download are skipped with a warning; the crawl keeps going.
func (c *Client) Crawl(ctx context.Context, categories []string, from, to time.Time) ([]domain.Post, error) {
	var corpus []domain.Post

	for _, slug := range categories {
		topics, err := c.CategoryTopics(ctx, slug, from, to)
		if err != nil {
			c.logger.Warn("category listing failed", zap.String("category", slug), zap.Error(err))
		}
		c.logger.Info("category listed",
			zap.String("category", slug), zap.Int("topics", len(topics)))

		for _, topic := range topics {
			if ctx.Err() != nil {
				return corpus, ctx.Err()
			}
			post, err := c.FetchTopic(ctx, topic)
			if err != nil {
				c.logger.Warn("topic fetch failed", zap.Int("topic_id", topic.ID), zap.Error(err))
				continue
			}
			corpus = append(corpus, post)
		}
	}

	return corpus, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func postText(p postJSON) string {
	if p.Cooked != "" {
		if text := Text(p.Cooked); text != "" {
			return text
		}
	}
	return strings.TrimSpace(p.Raw)
}
