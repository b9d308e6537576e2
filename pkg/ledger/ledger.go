// Package ledger wraps Solana RPC access behind a small interface so the
// orchestrator can be driven against test doubles.
package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solhop-labs/hopper/pkg/models"
)

// TxStatus is the terminal knowledge about a submitted transaction.
type TxStatus int

const (
	// TxStatusUnknown means the status is not yet available at the
	// requested commitment level.
	TxStatusUnknown TxStatus = iota
	// TxStatusOk means the transaction landed without an error.
	TxStatusOk
	// TxStatusFailed means the transaction landed but failed on chain.
	TxStatusFailed
)

func (s TxStatus) String() string {
	switch s {
	case TxStatusOk:
		return "ok"
	case TxStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Client is the ledger capability consumed by the orchestrator: submit a
// signed transfer, fetch a transaction's status, fetch an account balance.
type Client interface {
	// SubmitTransfer signs and broadcasts the transfer described by the
	// intent and returns the transaction signature.
	SubmitTransfer(ctx context.Context, intent models.TransferIntent) (solana.Signature, error)

	// TransactionStatus fetches the status of a transaction at the given
	// commitment level. A non-nil error or TxStatusUnknown both mean the
	// status is not yet available.
	TransactionStatus(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType) (TxStatus, error)

	// Balance returns the lamport balance of an account.
	Balance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (uint64, error)
}
