package health

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	corpus CorpusReader
}

// New creates a Service.
func New(corpus CorpusReader) *Service {
	return &Service{corpus: corpus}
}

// Check reports whether the corpora are populated. An empty corpus is
// how a failed load surfaces, so it marks the service degraded rather
// than down.
func (s *Service) Check() Report {
	c := s.corpus.Corpus()

	checks := make(map[string]CheckResult)
	checks["posts_corpus"] = checkNonEmpty(len(c.Posts))
	checks["content_corpus"] = checkNonEmpty(len(c.Content))

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func checkNonEmpty(n int) CheckResult {
	if n == 0 {
		return CheckError
	}
	return CheckOK
}
