package hop

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/logger"
	"github.com/solhop-labs/hopper/pkg/models"
)

// scriptStep is a Step whose submissions are scripted per attempt.
type scriptStep struct {
	submits *int
	fn      func(n int) (solana.Signature, error)
}

func (s scriptStep) Name() models.Step    { return models.StepFundHop }
func (s scriptStep) Description() string  { return "scripted step" }
func (s scriptStep) Submit(_ context.Context) (solana.Signature, error) {
	*s.submits++
	return s.fn(*s.submits)
}

func sigN(n byte) solana.Signature {
	var sig solana.Signature
	sig[0] = n
	return sig
}

func newRetryConfirm(confirm ConfirmFunc, maxAttempts int) *RetryConfirm {
	return &RetryConfirm{
		Confirm:     confirm,
		MaxAttempts: maxAttempts,
		Delay:       0,
		Logger:      &logger.EmptyLogger{},
	}
}

func TestRetryConfirm(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		submits, confirms := 0, 0
		rc := newRetryConfirm(func(_ context.Context, _ solana.Signature) ledger.TxStatus {
			confirms++
			return ledger.TxStatusOk
		}, 3)

		res := rc.Run(context.Background(), scriptStep{submits: &submits, fn: func(n int) (solana.Signature, error) {
			return sigN(byte(n)), nil
		}})

		require.NoError(t, res.Err)
		assert.Equal(t, sigN(1), res.Signature)
		assert.Equal(t, 1, res.Attempts)
		assert.Equal(t, 1, submits)
		assert.Equal(t, 1, confirms)
	})

	t.Run("exhausts attempts when confirm always fails", func(t *testing.T) {
		submits, confirms := 0, 0
		rc := newRetryConfirm(func(_ context.Context, _ solana.Signature) ledger.TxStatus {
			confirms++
			return ledger.TxStatusFailed
		}, 3)

		res := rc.Run(context.Background(), scriptStep{submits: &submits, fn: func(n int) (solana.Signature, error) {
			return sigN(byte(n)), nil
		}})

		require.Error(t, res.Err)
		var exhausted *StepExhaustedError
		require.ErrorAs(t, res.Err, &exhausted)
		assert.Equal(t, 3, exhausted.Attempts)
		// Exactly one submit+confirm cycle per attempt.
		assert.Equal(t, 3, submits)
		assert.Equal(t, 3, confirms)
	})

	t.Run("submit errors consume attempts without confirm calls", func(t *testing.T) {
		submits, confirms := 0, 0
		rc := newRetryConfirm(func(_ context.Context, _ solana.Signature) ledger.TxStatus {
			confirms++
			return ledger.TxStatusOk
		}, 3)

		res := rc.Run(context.Background(), scriptStep{submits: &submits, fn: func(_ int) (solana.Signature, error) {
			return solana.Signature{}, &SubmissionError{Err: errors.New("rpc down")}
		}})

		require.Error(t, res.Err)
		assert.Equal(t, 3, submits)
		assert.Equal(t, 0, confirms)
	})

	t.Run("unknown confirmation counts as a failed attempt", func(t *testing.T) {
		submits := 0
		statuses := []ledger.TxStatus{ledger.TxStatusUnknown, ledger.TxStatusOk}
		calls := 0
		rc := newRetryConfirm(func(_ context.Context, _ solana.Signature) ledger.TxStatus {
			calls++
			return statuses[calls-1]
		}, 3)

		res := rc.Run(context.Background(), scriptStep{submits: &submits, fn: func(n int) (solana.Signature, error) {
			return sigN(byte(n)), nil
		}})

		require.NoError(t, res.Err)
		assert.Equal(t, 2, res.Attempts)
		assert.Equal(t, 2, submits)
		// The retried attempt produced a fresh transaction, not a resend
		// of the first signature.
		assert.Equal(t, sigN(2), res.Signature)
	})

	t.Run("insufficient balance aborts without retries", func(t *testing.T) {
		submits := 0
		rc := newRetryConfirm(func(_ context.Context, _ solana.Signature) ledger.TxStatus {
			return ledger.TxStatusOk
		}, 3)

		res := rc.Run(context.Background(), scriptStep{submits: &submits, fn: func(_ int) (solana.Signature, error) {
			return solana.Signature{}, fmt.Errorf("precheck: %w", &InsufficientBalanceError{Have: 1, Need: 2})
		}})

		var ibe *InsufficientBalanceError
		require.ErrorAs(t, res.Err, &ibe)
		assert.Equal(t, 1, submits)
	})

	t.Run("repeated attempts produce distinct signatures", func(t *testing.T) {
		// The ledger offers no deduplication: two attempts are two
		// distinct transactions.
		submits := 0
		var seen []solana.Signature
		calls := 0
		rc := newRetryConfirm(func(_ context.Context, sig solana.Signature) ledger.TxStatus {
			calls++
			seen = append(seen, sig)
			if calls == 1 {
				return ledger.TxStatusFailed
			}
			return ledger.TxStatusOk
		}, 3)

		res := rc.Run(context.Background(), scriptStep{submits: &submits, fn: func(n int) (solana.Signature, error) {
			return sigN(byte(n)), nil
		}})

		require.NoError(t, res.Err)
		require.Len(t, seen, 2)
		assert.NotEqual(t, seen[0], seen[1])
	})
}
