package hop

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/logger"
	"github.com/solhop-labs/hopper/pkg/models"
)

// BalanceWaiter polls an account balance until a caller condition over
// the lamport balance holds. Per-poll network errors are logged and
// consume one attempt; only exhausting all attempts is fatal.
type BalanceWaiter struct {
	Client        ledger.Client
	Commitment    rpc.CommitmentType
	MaxRetries    int
	RetryInterval time.Duration
	Logger        logger.Logger
}

// Wait returns the first observed balance satisfying cond. It never
// polls more than MaxRetries times and never returns early without a
// satisfying observation; exhaustion yields a BalanceTimeoutError.
func (w *BalanceWaiter) Wait(ctx context.Context, account solana.PublicKey, cond func(lamports uint64) bool) (uint64, error) {
	step := string(models.StepBalanceWait)

	for attempt := 1; attempt <= w.MaxRetries; attempt++ {
		lamports, err := w.Client.Balance(ctx, account, w.Commitment)
		if err != nil {
			w.Logger.ErrorWithStep(step, "balance check %d/%d for %s failed: %v", attempt, w.MaxRetries, account, err)
		} else if cond(lamports) {
			w.Logger.InfoWithStep(step, "balance of %s is %.9f SOL", account, ledger.LamportsToSol(lamports))
			return lamports, nil
		} else {
			w.Logger.DebugWithStep(step, "balance of %s is %d lamports (try %d/%d), waiting", account, lamports, attempt, w.MaxRetries)
		}

		if attempt == w.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(w.RetryInterval):
		}
	}

	return 0, &BalanceTimeoutError{Account: account, Attempts: w.MaxRetries}
}
