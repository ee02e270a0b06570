package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	readiness "github.com/alnah/go-readiness-report"
)

// reportSource abstracts report generation behind the service pool so
// handlers can be tested without a browser.
type reportSource interface {
	Generate(ctx context.Context, result readiness.AssessmentResult) (*readiness.Report, error)
}

// pooledSource serves reports from a bounded ServicePool. A caller
// queued for a worker gives up when its request context is canceled.
type pooledSource struct {
	pool *readiness.ServicePool
}

func (p *pooledSource) Generate(ctx context.Context, result readiness.AssessmentResult) (*readiness.Report, error) {
	svc, err := p.pool.AcquireContext(ctx)
	if err != nil {
		return nil, err
	}
	defer p.pool.Release(svc)

	return svc.GenerateReport(ctx, result)
}

// server holds the HTTP layer's dependencies.
type server struct {
	logger  *zap.Logger
	source  reportSource
	metrics *serverMetrics
}

// newServer wires handlers around a report source.
func newServer(logger *zap.Logger, source reportSource, reg *prometheus.Registry) *server {
	return &server{
		logger:  logger,
		source:  source,
		metrics: newServerMetrics(reg),
	}
}

// router builds the route table.
func (s *server) router(reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/api/generate-pdf", s.handleGeneratePDF).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}

// statusRecorder captures the response code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests emits one structured log line per request.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
