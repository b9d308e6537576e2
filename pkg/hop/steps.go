package hop

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/models"
)

// fundStep moves amount+fee from the sender into the hop account.
type fundStep struct {
	client ledger.Client
	intent models.TransferIntent
}

func (s fundStep) Name() models.Step { return models.StepFundHop }

func (s fundStep) Description() string {
	return fmt.Sprintf("sending %.9f SOL into hop %s", ledger.LamportsToSol(s.intent.Lamports), s.intent.To)
}

func (s fundStep) Submit(ctx context.Context) (solana.Signature, error) {
	sig, err := s.client.SubmitTransfer(ctx, s.intent)
	if err != nil {
		return solana.Signature{}, &SubmissionError{Err: err}
	}
	return sig, nil
}

// forwardStep moves the intended amount from the hop account to the receiver.
type forwardStep struct {
	client ledger.Client
	intent models.TransferIntent
}

func (s forwardStep) Name() models.Step { return models.StepForward }

func (s forwardStep) Description() string {
	return fmt.Sprintf("sending %.9f SOL from hop to receiver %s", ledger.LamportsToSol(s.intent.Lamports), s.intent.To)
}

func (s forwardStep) Submit(ctx context.Context) (solana.Signature, error) {
	sig, err := s.client.SubmitTransfer(ctx, s.intent)
	if err != nil {
		return solana.Signature{}, &SubmissionError{Err: err}
	}
	return sig, nil
}

// recoverStep sweeps whatever is left on the hop account per the
// configured strategy. The sweep amount is re-read on every attempt so a
// retried sweep drains the current balance, not a stale one.
type recoverStep struct {
	client     ledger.Client
	hop        solana.PrivateKey
	strategy   RecoveryStrategy
	commitment rpc.CommitmentType
}

func (s recoverStep) Name() models.Step { return models.StepRecover }

func (s recoverStep) Description() string {
	return fmt.Sprintf("recovering leftover SOL from hop %s (%s)", s.hop.PublicKey(), s.strategy.Name())
}

func (s recoverStep) Submit(ctx context.Context) (solana.Signature, error) {
	balance, err := s.client.Balance(ctx, s.hop.PublicKey(), s.commitment)
	if err != nil {
		return solana.Signature{}, &SubmissionError{Err: err}
	}
	if balance == 0 {
		return solana.Signature{}, &InsufficientBalanceError{Account: s.hop.PublicKey(), Have: 0, Need: 1}
	}

	sig, err := s.client.SubmitTransfer(ctx, s.strategy.SweepIntent(s.hop, balance))
	if err != nil {
		return solana.Signature{}, &SubmissionError{Err: err}
	}
	return sig, nil
}
