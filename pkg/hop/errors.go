package hop

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// InsufficientBalanceError reports a balance check that failed before
// anything was submitted. It is never retried.
type InsufficientBalanceError struct {
	Account solana.PublicKey
	Have    uint64
	Need    uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on %s: have %d lamports, need %d", e.Account, e.Have, e.Need)
}

// SubmissionError wraps a broadcast failure from the ledger client. The
// whole submit+confirm attempt is retried.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ConfirmationFailedError means the transaction landed but the ledger
// reports an error for it. The signature is not retried; the whole
// attempt is retried as a new transaction.
type ConfirmationFailedError struct {
	Signature solana.Signature
}

func (e *ConfirmationFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed on chain", e.Signature)
}

// ConfirmationTimeoutError means the transaction status never resolved
// within the polling budget. Treated as a failed attempt, not a success.
type ConfirmationTimeoutError struct {
	Signature solana.Signature
	Polls     int
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("confirmation of %s not resolved after %d polls", e.Signature, e.Polls)
}

// BalanceTimeoutError means the hop account never showed the expected
// balance. Fatal for the run.
type BalanceTimeoutError struct {
	Account  solana.PublicKey
	Attempts int
}

func (e *BalanceTimeoutError) Error() string {
	return fmt.Sprintf("balance of %s did not satisfy condition after %d polls", e.Account, e.Attempts)
}

// StepExhaustedError means a step's retry budget was fully consumed.
// Fatal for the run.
type StepExhaustedError struct {
	Description string
	Attempts    int
}

func (e *StepExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts", e.Description, e.Attempts)
}

// errorType classifies terminal errors for metrics labels.
func errorType(err error) string {
	switch err.(type) {
	case *InsufficientBalanceError:
		return "insufficient_balance"
	case *SubmissionError:
		return "submission_error"
	case *ConfirmationFailedError:
		return "confirmation_failed"
	case *ConfirmationTimeoutError:
		return "confirmation_timeout"
	case *BalanceTimeoutError:
		return "balance_timeout"
	case *StepExhaustedError:
		return "step_exhausted"
	default:
		return "unknown_error"
	}
}
