package chi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/edustack/askta/internal/domain"
	answeruc "github.com/edustack/askta/internal/usecase/answer"
	healthuc "github.com/edustack/askta/internal/usecase/health"
)

// --- Mocks ---

type mockCorpus struct {
	c domain.Corpus
}

func (m *mockCorpus) Corpus() domain.Corpus { return m.c }

type mockExtractor struct {
	text   string
	err    error
	called bool
}

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	m.called = true
	return m.text, m.err
}

func testRouter(t *testing.T, srv *Server) *chirouter.Mux {
	t.Helper()
	r := chirouter.NewRouter()
	srv.Routes(r)
	return r
}

func testServer(c domain.Corpus) *Server {
	corpus := &mockCorpus{c: c}
	return NewServer(
		answeruc.New(corpus, zap.NewNop()),
		healthuc.New(corpus),
		zap.NewNop(),
	)
}

func pandasCorpus() domain.Corpus {
	return domain.Corpus{
		Content: []domain.ContentItem{
			{Title: "Using pandas", Description: "How to load a CSV into a dataframe", URL: "http://x/1"},
		},
		LoadedAt: time.Now(),
	}
}

func postQuestion(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --- Tests ---

func TestHandleQuestion_OK(t *testing.T) {
	r := testRouter(t, testServer(pandasCorpus()))

	w := postQuestion(t, r, `{"question":"How do I load a csv with pandas?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var ans domain.Answer
	if err := json.Unmarshal(w.Body.Bytes(), &ans); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(ans.Answer, "Using pandas") {
		t.Errorf("unexpected answer %q", ans.Answer)
	}
	if len(ans.Links) != 1 || ans.Links[0].URL != "http://x/1" {
		t.Errorf("unexpected links %+v", ans.Links)
	}
}

func TestHandleQuestion_BlankQuestion(t *testing.T) {
	r := testRouter(t, testServer(pandasCorpus()))

	w := postQuestion(t, r, `{"question":"   "}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var ans domain.Answer
	if err := json.Unmarshal(w.Body.Bytes(), &ans); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ans.Answer != "Please provide a valid question." {
		t.Errorf("unexpected answer %q", ans.Answer)
	}
	if len(ans.Links) != 0 {
		t.Errorf("expected no links, got %+v", ans.Links)
	}
}

func TestHandleQuestion_InvalidBody(t *testing.T) {
	r := testRouter(t, testServer(pandasCorpus()))

	w := postQuestion(t, r, `{"question":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != codeBadRequest {
		t.Errorf("unexpected error code %q", resp.Code)
	}
}

func TestHandleQuestion_OCRAugmentsQuestion(t *testing.T) {
	extractor := &mockExtractor{text: "How do I load a csv with pandas?"}
	srv := testServer(pandasCorpus()).WithOCR(extractor)
	r := testRouter(t, srv)

	image := base64.StdEncoding.EncodeToString([]byte("fake png"))
	w := postQuestion(t, r, `{"question":"see screenshot","image":"`+image+`"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !extractor.called {
		t.Fatal("expected extractor to be called")
	}

	var ans domain.Answer
	if err := json.Unmarshal(w.Body.Bytes(), &ans); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(ans.Answer, "Using pandas") {
		t.Errorf("expected OCR text to drive retrieval, got %q", ans.Answer)
	}
}

func TestHandleQuestion_OCRFailureFallsBack(t *testing.T) {
	extractor := &mockExtractor{err: errors.New("tesseract exploded")}
	srv := testServer(pandasCorpus()).WithOCR(extractor)
	r := testRouter(t, srv)

	image := base64.StdEncoding.EncodeToString([]byte("fake png"))
	w := postQuestion(t, r, `{"question":"","image":"`+image+`"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var ans domain.Answer
	if err := json.Unmarshal(w.Body.Bytes(), &ans); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// OCR failed, the bare question is blank: the prompt branch applies.
	if ans.Answer != "Please provide a valid question." {
		t.Errorf("unexpected answer %q", ans.Answer)
	}
}

func TestHandleStats(t *testing.T) {
	c := domain.Corpus{
		Posts:    make([]domain.Post, 3),
		Content:  make([]domain.ContentItem, 2),
		LoadedAt: time.Now(),
	}
	r := testRouter(t, testServer(c))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var stats domain.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.PostCount != 3 || stats.ContentCount != 2 || stats.TotalCount != 5 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestHandleHealth_Degraded(t *testing.T) {
	r := testRouter(t, testServer(domain.Corpus{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "degraded") {
		t.Errorf("expected degraded status, got %s", w.Body.String())
	}
}

func TestHandleRoot(t *testing.T) {
	r := testRouter(t, testServer(domain.Corpus{}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "askta API is running") {
		t.Errorf("unexpected banner %s", w.Body.String())
	}
}
