package ledger

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solhop-labs/hopper/pkg/models"
)

// RPCClient implements Client on top of a Solana JSON-RPC endpoint.
type RPCClient struct {
	rpc *rpc.Client
}

var _ Client = (*RPCClient)(nil)

// NewRPCClient creates a client for the given RPC endpoint.
func NewRPCClient(endpoint string) *RPCClient {
	return &RPCClient{rpc: rpc.New(endpoint)}
}

// SubmitTransfer builds a transaction carrying the priority-fee
// instructions and a system transfer, signs it with the intent's keys and
// broadcasts it.
func (c *RPCClient) SubmitTransfer(ctx context.Context, intent models.TransferIntent) (solana.Signature, error) {
	from := intent.From.PublicKey()

	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to fetch recent blockhash: %v", err)
	}

	instructions := []solana.Instruction{
		computebudget.NewSetComputeUnitPriceInstruction(intent.ComputeUnitPrice).Build(),
		computebudget.NewSetComputeUnitLimitInstruction(intent.ComputeUnitLimit).Build(),
		system.NewTransferInstruction(intent.Lamports, from, intent.To).Build(),
	}

	payer := intent.FeePayer
	if payer.IsZero() {
		payer = from
	}

	tx, err := solana.NewTransaction(instructions, recent.Value.Blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build transaction: %v", err)
	}

	signers := map[solana.PublicKey]solana.PrivateKey{from: intent.From}
	if intent.Cosigner != nil {
		signers[intent.Cosigner.PublicKey()] = intent.Cosigner
	}
	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if pk, ok := signers[key]; ok {
			return &pk
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %v", err)
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       intent.SkipPreflight,
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %v", err)
	}
	return sig, nil
}

// TransactionStatus fetches the finalized transaction and inspects its
// meta error field. A fetch error or missing meta means the status is not
// yet available.
func (c *RPCClient) TransactionStatus(ctx context.Context, sig solana.Signature, commitment rpc.CommitmentType) (TxStatus, error) {
	maxVersion := uint64(0)
	res, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     commitment,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		return TxStatusUnknown, err
	}
	if res == nil || res.Meta == nil {
		return TxStatusUnknown, nil
	}
	if res.Meta.Err != nil {
		return TxStatusFailed, nil
	}
	return TxStatusOk, nil
}

// Balance returns the lamport balance of an account.
func (c *RPCClient) Balance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (uint64, error) {
	res, err := c.rpc.GetBalance(ctx, account, commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch balance of %s: %v", account, err)
	}
	return res.Value, nil
}
