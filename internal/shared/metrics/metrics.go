package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "legalassist_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"method", "route", "status"})

	analysisTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "legalassist_analysis_total",
		Help: "Analysis requests by operation and outcome",
	}, []string{"operation", "outcome"})

	analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "legalassist_analysis_duration_ms",
		Help:    "Analysis duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000},
	}, []string{"operation"})

	documentsUploadedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "legalassist_documents_uploaded_total",
		Help: "Uploaded documents by content type",
	}, []string{"mimetype"})

	extractionFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "legalassist_extraction_failed_total",
		Help: "Text extractions that produced no text because of an error",
	}, []string{"mimetype"})

	fileRemovalFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "legalassist_file_removal_failed_total",
		Help: "Document deletions whose backing file could not be removed",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		analysisTotal,
		analysisDuration,
		documentsUploadedTotal,
		extractionFailedTotal,
		fileRemovalFailedTotal,
	)
}

// ObserveRequest counts a finished HTTP request.
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// ObserveAnalysis records the outcome and duration of an analysis call.
func ObserveAnalysis(operation string, d time.Duration, err error) {
	outcome := "completed"
	if err != nil {
		outcome = "failed"
	}
	analysisTotal.WithLabelValues(operation, outcome).Inc()
	analysisDuration.WithLabelValues(operation).Observe(float64(d.Microseconds()) / 1000.0)
}

// IncDocumentUploaded increments the uploaded counter.
func IncDocumentUploaded(mimeType string) {
	documentsUploadedTotal.WithLabelValues(mimeType).Inc()
}

// IncExtractionFailed increments the extraction failure counter.
func IncExtractionFailed(mimeType string) {
	extractionFailedTotal.WithLabelValues(mimeType).Inc()
}

// IncFileRemovalFailed increments the file removal failure counter.
func IncFileRemovalFailed() {
	fileRemovalFailedTotal.Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
