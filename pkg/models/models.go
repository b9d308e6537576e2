package models

import (
	"github.com/gagliardetto/solana-go"
)

// Step identifies one logical step of a hop transfer run.
type Step string

const (
	// StepFundHop moves amount+fee from the sender into the hop account
	StepFundHop Step = "fund_hop"
	// StepBalanceWait waits until the funding is visible on the hop account
	StepBalanceWait Step = "balance_wait"
	// StepForward moves the amount from the hop account to the receiver
	StepForward Step = "forward_to_receiver"
	// StepRecover sweeps leftover funds out of the hop account
	StepRecover Step = "recover_leftover"
)

// TransferIntent describes a single transfer to be submitted to the ledger.
// An intent is constructed fresh for each submission attempt and is
// immutable once submitted.
type TransferIntent struct {
	// From is the account the lamports are moved out of. It always signs.
	From solana.PrivateKey
	// To receives the lamports.
	To solana.PublicKey
	// Lamports is the transfer amount in the smallest ledger unit.
	Lamports uint64

	// FeePayer pays the transaction fee. The zero value means From pays.
	FeePayer solana.PublicKey
	// Cosigner is an additional required signer. Set only by recovery
	// sweeps where the fee payer is not the source account.
	Cosigner solana.PrivateKey

	// Priority fee parameters attached ahead of the transfer instruction.
	ComputeUnitPrice uint64 // microlamports per compute unit
	ComputeUnitLimit uint32

	// SkipPreflight bypasses the RPC node's simulation before broadcast.
	SkipPreflight bool
}

// OutcomeKind classifies the result of a single submit+confirm attempt.
type OutcomeKind int

const (
	// OutcomeSubmitted means the transfer was broadcast but not yet confirmed
	OutcomeSubmitted OutcomeKind = iota
	// OutcomeConfirmedOk means the ledger reports the transaction landed without error
	OutcomeConfirmedOk
	// OutcomeConfirmedFailed means the transaction landed but failed on chain
	OutcomeConfirmedFailed
	// OutcomeSubmissionError means the broadcast itself was rejected or failed
	OutcomeSubmissionError
)

// TransferOutcome is the result of one submit attempt, consumed by the
// retry loop to decide whether to retry or stop.
type TransferOutcome struct {
	Kind      OutcomeKind
	Signature solana.Signature
	Err       error
}

// StepResult is the durable record of one logical step after all retries
// are exhausted: a final transaction signature on success, a terminal
// error otherwise.
type StepResult struct {
	Step      Step
	Signature solana.Signature
	Attempts  int
	Err       error
}

// Succeeded reports whether the step completed with a confirmed transaction.
func (r StepResult) Succeeded() bool {
	return r.Err == nil
}
