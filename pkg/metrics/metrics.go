package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for monitoring
var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hopper_runs_total",
		Help: "The total number of hop transfer runs by outcome",
	}, []string{"status"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hopper_run_duration_seconds",
		Help:    "Time taken for a full hop transfer run",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10), // Start at 1s with 10 buckets doubling in size
	})

	StepAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hopper_step_attempts_total",
		Help: "The total number of submit+confirm attempts by step",
	}, []string{"step"})

	StepFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hopper_step_failures_total",
		Help: "Total number of terminal step failures by step and error type",
	}, []string{"step", "error_type"})

	StepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hopper_step_duration_seconds",
		Help:    "Time taken to complete a step including retries",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"step"})

	ConfirmationPolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hopper_confirmation_polls_total",
		Help: "Total number of transaction status polls by outcome",
	}, []string{"outcome"})

	HopBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hopper_hop_balance_sol",
		Help: "Last observed balance of the current hop account in SOL",
	})

	SenderBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hopper_sender_balance_sol",
		Help: "Last observed balance of the sender account in SOL",
	})

	CircuitBreakerTrips = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hopper_circuit_breaker_trips_total",
		Help: "Number of times the RPC circuit breaker tripped",
	})

	AttemptsRefused = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hopper_attempts_refused_total",
		Help: "Number of attempts refused locally because the circuit breaker was open",
	}, []string{"step"})
)
