// Package chi wires the HTTP API: question answering, stats, health
// and metrics endpoints on a chi router.
package chi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/edustack/askta/internal/domain"
	"github.com/edustack/askta/internal/logger"
	"github.com/edustack/askta/internal/ocr"
	answeruc "github.com/edustack/askta/internal/usecase/answer"
	healthuc "github.com/edustack/askta/internal/usecase/health"
	"github.com/edustack/askta/internal/version"
)

const defaultRequestTimeout = 30 * time.Second

// Error codes returned to clients.
const (
	codeBadRequest     = "bad_request"
	codeUnauthorized   = "unauthorized"
	codeRequestTimeout = "request_timeout"
	codeInternal       = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type questionRequest struct {
	Question string  `json:"question"`
	Image    *string `json:"image,omitempty"`
}

// Server handles the HTTP API.
type Server struct {
	answers *answeruc.Service
	health  *healthuc.Service
	ocr     ocr.Extractor
	timeout time.Duration
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(answers *answeruc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{
		answers: answers,
		health:  health,
		timeout: defaultRequestTimeout,
		logger:  logger,
	}
}

// WithOCR enables image text extraction on question requests.
func (s *Server) WithOCR(extractor ocr.Extractor) *Server {
	s.ocr = extractor
	return s
}

// WithRequestTimeout overrides the per-question processing deadline.
func (s *Server) WithRequestTimeout(d time.Duration) *Server {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/", s.handleQuestion)
	r.Get("/api/stats", s.handleStats)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "askta API is running",
		"version": version.Version,
		"endpoints": map[string]string{
			"api":    "/api/",
			"stats":  "/api/stats",
			"health": "/health",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.health.Check())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.answers.Stats())
}

// handleQuestion answers a student question. The engine itself never
// errors; the only failure modes here are a malformed body and the
// processing deadline.
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	question := s.augmentQuestion(ctx, req)

	// The engine is pure computation with no cancellation hooks; on
	// deadline the goroutine is abandoned and finishes into a buffered
	// channel.
	done := make(chan domain.Answer, 1)
	go func() {
		done <- s.answers.GetAnswer(question)
	}()

	select {
	case ans := <-done:
		writeJSON(w, http.StatusOK, ans)
	case <-ctx.Done():
		writeError(w, http.StatusRequestTimeout, codeRequestTimeout,
			fmt.Sprintf("could not process question within %s", s.timeout))
	}
}

// augmentQuestion appends OCR-extracted image text to the question.
// Every failure falls back to the bare question text.
func (s *Server) augmentQuestion(ctx context.Context, req questionRequest) string {
	if req.Image == nil || *req.Image == "" || s.ocr == nil {
		return req.Question
	}

	log := logger.FromContext(ctx)

	image, err := base64.StdEncoding.DecodeString(*req.Image)
	if err != nil {
		log.Warn("invalid base64 image, ignoring", zap.Error(err))
		return req.Question
	}

	text, err := s.ocr.Extract(ctx, image)
	if err != nil {
		log.Warn("image text extraction failed, ignoring", zap.Error(err))
		return req.Question
	}
	if text == "" {
		return req.Question
	}

	return req.Question + "\n\nExtracted from image: " + text
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
