package answer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/edustack/askta/internal/domain"
)

// --- Mocks ---

type mockCorpus struct {
	c domain.Corpus
}

func (m *mockCorpus) Corpus() domain.Corpus { return m.c }

func newService(c domain.Corpus) *Service {
	return New(&mockCorpus{c: c}, zap.NewNop())
}

// --- Tests ---

func TestGetAnswer_BlankQuestion(t *testing.T) {
	svc := newService(domain.Corpus{
		Posts: []domain.Post{{Title: "anything", URL: "http://forum/t/1"}},
	})

	for _, q := range []string{"", "   ", "\n\t"} {
		ans := svc.GetAnswer(q)
		if ans.Answer != promptForQuestion {
			t.Errorf("GetAnswer(%q): unexpected answer %q", q, ans.Answer)
		}
		if len(ans.Links) != 0 {
			t.Errorf("GetAnswer(%q): expected no links, got %d", q, len(ans.Links))
		}
	}
}

func TestGetAnswer_NoMatchFallback(t *testing.T) {
	svc := newService(domain.Corpus{
		Content: []domain.ContentItem{
			{Title: "Pandas Basics", Description: "Introduction to dataframes", URL: "http://x/1"},
		},
	})

	ans := svc.GetAnswer("zzz qqq")

	if ans.Answer != fallbackAnswer {
		t.Errorf("expected fallback answer, got %q", ans.Answer)
	}
	if len(ans.Links) != 0 {
		t.Errorf("expected no links, got %v", ans.Links)
	}
}

func TestGetAnswer_EndToEnd(t *testing.T) {
	svc := newService(domain.Corpus{
		Content: []domain.ContentItem{
			{Title: "Using pandas", Description: "How to load a CSV into a dataframe", URL: "http://x/1"},
		},
	})

	ans := svc.GetAnswer("How do I load a csv with pandas?")

	if !strings.Contains(ans.Answer, "Using pandas") {
		t.Errorf("expected answer to mention the content title, got %q", ans.Answer)
	}
	if len(ans.Links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(ans.Links))
	}
	want := domain.Link{URL: "http://x/1", Text: "Course Material: Using pandas"}
	if ans.Links[0] != want {
		t.Errorf("unexpected link %+v, want %+v", ans.Links[0], want)
	}
}

func TestFindSimilarPosts_ThresholdAndTopK(t *testing.T) {
	question := "how to submit the graded assignment"
	normQ := Normalize(question)
	keywords := ExtractKeywords(question)

	var posts []domain.Post
	for i := 0; i < 8; i++ {
		posts = append(posts, domain.Post{
			ID:    i,
			Title: "How to submit the graded assignment",
			URL:   fmt.Sprintf("http://forum/t/%d", i),
		})
	}
	posts = append(posts, domain.Post{
		ID:    99,
		Title: "Office hours schedule",
		URL:   "http://forum/t/99",
	})

	svc := newService(domain.Corpus{Posts: posts})
	matches := svc.findSimilarPosts(normQ, keywords, posts)

	if len(matches) > maxPosts {
		t.Fatalf("top-k bound violated: got %d matches", len(matches))
	}
	for _, m := range matches {
		if m.Score < svc.postThreshold {
			t.Errorf("match below threshold: %+v", m)
		}
	}
	// Stable sort: equal scores keep corpus order.
	for i, m := range matches {
		if m.Post.ID != i {
			t.Errorf("tie-break order broken at %d: got post %d", i, m.Post.ID)
		}
	}
}

func TestFindRelevantContent_TopK(t *testing.T) {
	var items []domain.ContentItem
	for i := 0; i < 6; i++ {
		items = append(items, domain.ContentItem{
			Title: "Loading CSV files with pandas",
			URL:   fmt.Sprintf("http://course/%d", i),
		})
	}

	svc := newService(domain.Corpus{Content: items})
	q := "loading csv files with pandas"
	matches := svc.findRelevantContent(Normalize(q), ExtractKeywords(q), items)

	if len(matches) != maxContent {
		t.Fatalf("expected %d matches, got %d", maxContent, len(matches))
	}
}

func TestGetAnswer_LinkCapAndOrder(t *testing.T) {
	question := "loading csv files with pandas"

	corpus := domain.Corpus{}
	for i := 0; i < 3; i++ {
		corpus.Content = append(corpus.Content, domain.ContentItem{
			Title: "Loading CSV files with pandas",
			URL:   fmt.Sprintf("http://course/%d", i),
		})
	}
	for i := 0; i < 6; i++ {
		corpus.Posts = append(corpus.Posts, domain.Post{
			Title: "Loading CSV files with pandas",
			URL:   fmt.Sprintf("http://forum/t/%d", i),
		})
	}

	ans := newService(corpus).GetAnswer(question)

	if len(ans.Links) != maxLinks {
		t.Fatalf("expected %d links, got %d", maxLinks, len(ans.Links))
	}
	// Content links come first, then posts, both in ranked order.
	for i := 0; i < 3; i++ {
		if want := fmt.Sprintf("http://course/%d", i); ans.Links[i].URL != want {
			t.Errorf("link %d: got %q, want %q", i, ans.Links[i].URL, want)
		}
	}
	for i := 3; i < maxLinks; i++ {
		if !strings.HasPrefix(ans.Links[i].Text, linkPrefixPost) {
			t.Errorf("link %d: expected a forum link, got %+v", i, ans.Links[i])
		}
	}
}

func TestBuildLinks_SkipsEmptyURLs(t *testing.T) {
	links := buildLinks(
		[]ScoredContent{
			{Item: domain.ContentItem{Title: "No URL"}},
			{Item: domain.ContentItem{Title: "Has URL", URL: "http://course/1"}},
		},
		[]ScoredPost{
			{Post: domain.Post{Title: "No URL either"}},
		},
	)

	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
	if links[0].URL != "http://course/1" {
		t.Errorf("unexpected link %+v", links[0])
	}
}

func TestSynthesize_ProseLimits(t *testing.T) {
	var content []ScoredContent
	for i := 0; i < 3; i++ {
		content = append(content, ScoredContent{
			Item: domain.ContentItem{
				Title:       fmt.Sprintf("Item %d", i),
				Description: "Some description",
			},
		})
	}

	text := synthesize(nil, content)

	if !strings.Contains(text, "Item 0") || !strings.Contains(text, "Item 1") {
		t.Errorf("expected first two items in prose, got %q", text)
	}
	if strings.Contains(text, "Item 2") {
		t.Errorf("expected at most two content bullets, got %q", text)
	}
}

func TestSynthesize_PostPreviewFirstSentence(t *testing.T) {
	posts := []ScoredPost{{
		Post: domain.Post{
			Title:   "Deadline question",
			Content: "The deadline is Friday. But there is a grace period until Sunday.",
		},
	}}

	text := synthesize(posts, nil)

	if !strings.Contains(text, "The deadline is Friday.") {
		t.Errorf("expected first sentence in prose, got %q", text)
	}
	if strings.Contains(text, "grace period") {
		t.Errorf("expected prose cut at the first sentence, got %q", text)
	}
}

func TestStats(t *testing.T) {
	loaded := time.Now()
	svc := newService(domain.Corpus{
		Posts:    make([]domain.Post, 3),
		Content:  make([]domain.ContentItem, 2),
		LoadedAt: loaded,
	})

	stats := svc.Stats()

	if stats.PostCount != 3 || stats.ContentCount != 2 || stats.TotalCount != 5 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if !stats.LastUpdated.Equal(loaded) {
		t.Errorf("unexpected LastUpdated %v", stats.LastUpdated)
	}
}
