package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auth_http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Risk Metrics
	RiskAssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_risk_assessments_total",
			Help: "Total number of login risk assessments",
		},
		[]string{"action"}, // Allow, Challenge, StepUp, Block
	)

	RiskScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_risk_score",
			Help:    "Distribution of login risk scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	AnomaliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_anomalies_total",
			Help: "Total number of recorded login anomalies",
		},
		[]string{"severity"},
	)

	// MFA Metrics
	MFACodesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_mfa_codes_sent_total",
			Help: "Total number of MFA codes sent",
		},
		[]string{"method", "kind"}, // sms/email, send/resend
	)

	MFAVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_mfa_verifications_total",
			Help: "Total number of MFA verifications",
		},
		[]string{"outcome"}, // success, mismatch, locked, rejected
	)

	// Session Metrics
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_sessions_created_total",
			Help: "Total number of sessions created",
		},
	)

	SessionsRevoked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_sessions_revoked_total",
			Help: "Total number of sessions revoked",
		},
		[]string{"reason"},
	)

	// Rate limiter
	RateLimitAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_rate_limit_attempts_total",
			Help: "Total number of attempts recorded by the rate limiter",
		},
		[]string{"action", "outcome"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_errors_total",
			Help: "Total number of unexpected errors by operation",
		},
		[]string{"operation"},
	)
)

// Middleware echo 요청 메트릭 수집
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			ActiveRequests.Inc()
			defer ActiveRequests.Dec()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			path := c.Path()
			method := c.Request().Method

			HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Helper functions for use cases
func TrackRiskAssessment(action string, score int) {
	RiskAssessmentsTotal.WithLabelValues(action).Inc()
	RiskScore.Observe(float64(score))
}

func TrackAnomaly(severity string) {
	AnomaliesTotal.WithLabelValues(severity).Inc()
}

func TrackMFASent(method, kind string) {
	MFACodesSent.WithLabelValues(method, kind).Inc()
}

func TrackMFAVerification(outcome string) {
	MFAVerifications.WithLabelValues(outcome).Inc()
}

func TrackSessionCreated() {
	SessionsCreated.Inc()
}

func TrackSessionsRevoked(reason string, count int64) {
	if count > 0 {
		SessionsRevoked.WithLabelValues(reason).Add(float64(count))
	}
}

func TrackRateLimitAttempt(action string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	RateLimitAttempts.WithLabelValues(action, outcome).Inc()
}

func TrackError(operation string) {
	ErrorsTotal.WithLabelValues(operation).Inc()
}
