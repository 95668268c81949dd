package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Rejected                 Outcome       = "rejected"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

// HealthCheck reports whether the service can serve requests.
type HealthCheck func(ctx context.Context) error

var defaultHistogramBucketsSeconds = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5}

// collectors are created eagerly so recording works before Init registers them
var (
	once          sync.Once
	metricsRouter *chi.Mux

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "operation_duration_seconds",
			Help:    "Histogram of engine operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"action", "status"},
	)

	operationRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operation_rejected_count",
			Help: "The total number of rejected operations by error code",
		},
		[]string{"action", "code"},
	)

	votesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifier_votes_count",
			Help: "The total number of accepted verifier votes",
		},
		[]string{"transition"},
	)

	bloomFalsePositiveCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bloom_false_positive_count",
			Help: "Number of registrations the duplicate filter flagged but the authoritative check allowed",
		},
	)

	tournamentsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tournaments_count",
			Help: "Number of tournaments by status",
		},
		[]string{"status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int, healthCheck HealthCheck) {
	once.Do(func() {
		initMetricsRouter(metricsPort, healthCheck)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int, healthCheck HealthCheck) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	metricsRouter.Get("/health", healthHandler(healthCheck))
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

func healthHandler(healthCheck HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if healthCheck != nil {
			if err := healthCheck(r.Context()); err != nil {
				log.Ctx(r.Context()).Warn().Err(err).Msg("Health check failed")
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		operationDuration,
		operationRejections,
		votesCounter,
		bloomFalsePositiveCounter,
		tournamentsGauge,
		queueSendErrorCounter,
		pollerDurationHistogram,
		dbLatency,
	)
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

// RecordOperation observes one submitted operation. A non-empty code marks a
// rejection by the engine; failure without a code is an infrastructure error.
func RecordOperation(d time.Duration, action string, code string, failure bool) {
	status := Success
	switch {
	case code != "":
		status = Rejected
		operationRejections.WithLabelValues(action, code).Inc()
	case failure:
		status = Error
	}

	operationDuration.WithLabelValues(action, status.String()).Observe(d.Seconds())
}

func RecordVote(transition string) {
	votesCounter.WithLabelValues(transition).Inc()
}

func IncBloomFalsePositive() {
	bloomFalsePositiveCounter.Inc()
}

func RecordTournamentsByStatus(status string, count int64) {
	tournamentsGauge.WithLabelValues(status).Set(float64(count))
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
