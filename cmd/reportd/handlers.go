package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	readiness "github.com/alnah/go-readiness-report"
)

// maxBodyBytes bounds assessment payloads; results are small JSON
// documents, so 1MB is generous.
const maxBodyBytes = 1 << 20

// Client-facing error messages. Internal error detail is logged only.
const (
	msgMissingName    = "Missing student name"
	msgInvalidBody    = "Invalid request body"
	msgGenerateFailed = "Failed to generate report"
)

// handleGeneratePDF serves POST /api/generate-pdf.
func (s *server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.metrics.requests.WithLabelValues(outcomeValidation).Inc()
		s.writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	result, err := readiness.ParseAssessmentResult(body)
	if err != nil {
		s.metrics.requests.WithLabelValues(outcomeValidation).Inc()
		if errors.Is(err, readiness.ErrMissingStudentName) {
			s.writeError(w, http.StatusBadRequest, msgMissingName)
			return
		}
		s.writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	report, err := s.source.Generate(ctx, *result)
	if err != nil {
		if errors.Is(err, readiness.ErrMissingStudentName) {
			s.metrics.requests.WithLabelValues(outcomeValidation).Inc()
			s.writeError(w, http.StatusBadRequest, msgMissingName)
			return
		}
		s.metrics.requests.WithLabelValues(outcomeError).Inc()
		s.logger.Error("report generation failed",
			zap.String("student", readiness.SlugifyName(result.StudentName)),
			zap.Error(err),
		)
		s.writeError(w, http.StatusInternalServerError, msgGenerateFailed)
		return
	}

	outcome := outcomePDF
	if report.Fallback {
		outcome = outcomeFallback
		s.logger.Warn("served HTML fallback",
			zap.String("student", readiness.SlugifyName(result.StudentName)),
		)
	}
	s.metrics.requests.WithLabelValues(outcome).Inc()
	s.metrics.duration.Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Body); err != nil {
		s.logger.Warn("writing response body", zap.Error(err))
	}
}

// handleHealthz reports liveness.
func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// writeError sends the uniform JSON error body.
func (s *server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		s.logger.Warn("writing error response", zap.Error(err))
	}
}
