package hop

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/solhop-labs/hopper/pkg/circuitbreaker"
	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/logger"
	"github.com/solhop-labs/hopper/pkg/metrics"
	"github.com/solhop-labs/hopper/pkg/models"
)

// Step is one retryable network side effect: a single Submit call
// broadcasts one transfer and returns its signature.
type Step interface {
	// Name identifies the step for results, logs and metrics.
	Name() models.Step
	// Description is the human-readable form used in logs and errors.
	Description() string
	// Submit performs one real network submission.
	Submit(ctx context.Context) (solana.Signature, error)
}

// ConfirmFunc blocks until it has terminal knowledge about a signature:
// ok, failed on chain, or unknown after its own polling budget.
type ConfirmFunc func(ctx context.Context, sig solana.Signature) ledger.TxStatus

// RetryConfirm repeats a submit+confirm cycle up to MaxAttempts times
// with a fixed Delay between attempts. Each attempt performs one real
// submission; retried attempts may double-submit functionally equivalent
// transfers, the ledger offers no deduplication at this layer.
type RetryConfirm struct {
	Confirm     ConfirmFunc
	MaxAttempts int
	Delay       time.Duration
	Breaker     *circuitbreaker.CircuitBreaker
	Logger      logger.Logger
}

// Run drives the retry loop for one step. The returned StepResult carries
// the confirmed signature on success, or the terminal error with the
// number of attempts made.
func (rc *RetryConfirm) Run(ctx context.Context, step Step) models.StepResult {
	name := step.Name()
	res := models.StepResult{Step: name}

	for attempt := 1; attempt <= rc.MaxAttempts; attempt++ {
		res.Attempts = attempt

		if rc.Breaker != nil && rc.Breaker.IsEnabled() && rc.Breaker.IsOpen() {
			// Refuse locally instead of hammering the endpoint.
			rc.Logger.ErrorWithStep(string(name), "attempt %d/%d refused: circuit breaker open", attempt, rc.MaxAttempts)
			metrics.AttemptsRefused.WithLabelValues(string(name)).Inc()
		} else {
			rc.Logger.InfoWithStep(string(name), "attempt %d/%d: %s", attempt, rc.MaxAttempts, step.Description())
			metrics.StepAttempts.WithLabelValues(string(name)).Inc()

			outcome := rc.attempt(ctx, step)
			switch outcome.Kind {
			case models.OutcomeConfirmedOk:
				if rc.Breaker != nil {
					rc.Breaker.RecordSuccess()
				}
				res.Signature = outcome.Signature
				return res
			case models.OutcomeConfirmedFailed:
				rc.Logger.ErrorWithStep(string(name), "transaction %s failed on chain", outcome.Signature)
			case models.OutcomeSubmitted:
				rc.Logger.ErrorWithStep(string(name), "confirmation of %s not resolved, counting attempt as failed", outcome.Signature)
			case models.OutcomeSubmissionError:
				rc.Logger.ErrorWithStep(string(name), "submit failed: %v", outcome.Err)
				// A pre-submission balance check failure is permanent,
				// retrying cannot help.
				var ibe *InsufficientBalanceError
				if errors.As(outcome.Err, &ibe) {
					res.Err = ibe
					return res
				}
				if rc.Breaker != nil {
					rc.Breaker.RecordFailure()
				}
			}
		}

		if attempt == rc.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			res.Err = ctx.Err()
			return res
		case <-time.After(rc.Delay):
		}
	}

	res.Err = &StepExhaustedError{Description: step.Description(), Attempts: rc.MaxAttempts}
	return res
}

// attempt performs exactly one submit+confirm cycle.
func (rc *RetryConfirm) attempt(ctx context.Context, step Step) models.TransferOutcome {
	sig, err := step.Submit(ctx)
	if err != nil {
		return models.TransferOutcome{Kind: models.OutcomeSubmissionError, Err: err}
	}

	switch rc.Confirm(ctx, sig) {
	case ledger.TxStatusOk:
		return models.TransferOutcome{Kind: models.OutcomeConfirmedOk, Signature: sig}
	case ledger.TxStatusFailed:
		return models.TransferOutcome{Kind: models.OutcomeConfirmedFailed, Signature: sig, Err: &ConfirmationFailedError{Signature: sig}}
	default:
		return models.TransferOutcome{Kind: models.OutcomeSubmitted, Signature: sig}
	}
}
