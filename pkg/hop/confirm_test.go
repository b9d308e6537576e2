package hop

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"

	"github.com/solhop-labs/hopper/pkg/hop/mocks"
	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/logger"
)

func newConfirmer(client ledger.Client, maxRetries int) *Confirmer {
	return &Confirmer{
		Client:        client,
		Commitment:    rpc.CommitmentFinalized,
		MaxRetries:    maxRetries,
		RetryInterval: 0,
		Logger:        &logger.EmptyLogger{},
	}
}

func TestConfirmer(t *testing.T) {
	t.Run("resolves on the last allowed poll", func(t *testing.T) {
		// 19 consecutive not-yet-available responses, then success on
		// the 20th poll, inside a budget of 20.
		client := &mocks.Client{
			StatusFn: func(n int, _ solana.Signature) (ledger.TxStatus, error) {
				if n < 20 {
					return ledger.TxStatusUnknown, errors.New("not yet indexed")
				}
				return ledger.TxStatusOk, nil
			},
		}

		status := newConfirmer(client, 20).Confirm(context.Background(), sigN(1))

		assert.Equal(t, ledger.TxStatusOk, status)
		assert.Equal(t, 20, client.StatusPolls())
	})

	t.Run("on-chain failure is terminal", func(t *testing.T) {
		client := &mocks.Client{
			StatusFn: func(_ int, _ solana.Signature) (ledger.TxStatus, error) {
				return ledger.TxStatusFailed, nil
			},
		}

		status := newConfirmer(client, 20).Confirm(context.Background(), sigN(1))

		assert.Equal(t, ledger.TxStatusFailed, status)
		assert.Equal(t, 1, client.StatusPolls())
	})

	t.Run("budget exhaustion yields unknown", func(t *testing.T) {
		client := &mocks.Client{
			StatusFn: func(_ int, _ solana.Signature) (ledger.TxStatus, error) {
				return ledger.TxStatusUnknown, nil
			},
		}

		status := newConfirmer(client, 5).Confirm(context.Background(), sigN(1))

		assert.Equal(t, ledger.TxStatusUnknown, status)
		assert.Equal(t, 5, client.StatusPolls())
	})

	t.Run("transient fetch errors are retried not surfaced", func(t *testing.T) {
		client := &mocks.Client{
			StatusFn: func(n int, _ solana.Signature) (ledger.TxStatus, error) {
				if n < 3 {
					return ledger.TxStatusUnknown, errors.New("rpc unavailable")
				}
				return ledger.TxStatusOk, nil
			},
		}

		status := newConfirmer(client, 5).Confirm(context.Background(), sigN(1))

		assert.Equal(t, ledger.TxStatusOk, status)
		assert.Equal(t, 3, client.StatusPolls())
	})
}
