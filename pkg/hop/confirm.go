package hop

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/logger"
	"github.com/solhop-labs/hopper/pkg/metrics"
)

// Confirmer polls a transaction's status at the configured commitment
// level until the ledger reports a terminal state or the polling budget
// is exhausted. Transient fetch errors and not-yet-indexed responses are
// treated as "not yet available" and retried, never surfaced.
type Confirmer struct {
	Client        ledger.Client
	Commitment    rpc.CommitmentType
	MaxRetries    int
	RetryInterval time.Duration
	Logger        logger.Logger
}

// Confirm blocks until it knows the transaction's fate. TxStatusUnknown
// means the budget ran out without a terminal status; the caller treats
// that as a retryable failure, not a success.
func (c *Confirmer) Confirm(ctx context.Context, sig solana.Signature) ledger.TxStatus {
	for attempt := 1; attempt <= c.MaxRetries; attempt++ {
		status, err := c.Client.TransactionStatus(ctx, sig, c.Commitment)
		if err != nil {
			c.Logger.Debug("awaiting confirmation of %s (try %d/%d): %v", sig, attempt, c.MaxRetries, err)
		} else {
			switch status {
			case ledger.TxStatusOk:
				c.Logger.Info("transaction %s confirmed, try count: %d", sig, attempt)
				metrics.ConfirmationPolls.WithLabelValues("ok").Inc()
				return ledger.TxStatusOk
			case ledger.TxStatusFailed:
				c.Logger.Error("transaction %s landed but failed on chain", sig)
				metrics.ConfirmationPolls.WithLabelValues("failed").Inc()
				return ledger.TxStatusFailed
			}
			c.Logger.Debug("transaction %s not yet available (try %d/%d)", sig, attempt, c.MaxRetries)
		}
		metrics.ConfirmationPolls.WithLabelValues("pending").Inc()

		if attempt == c.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ledger.TxStatusUnknown
		case <-time.After(c.RetryInterval):
		}
	}

	c.Logger.Error("max retries reached, confirmation of %s failed", sig)
	return ledger.TxStatusUnknown
}
