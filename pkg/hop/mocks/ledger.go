// Package mocks provides a scriptable ledger client for tests, without
// touching the network.
package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/models"
)

// Signature builds a deterministic, non-zero signature for tests.
func Signature(n byte) solana.Signature {
	var sig solana.Signature
	sig[0] = n
	sig[63] = 1
	return sig
}

// Client is a scriptable implementation of ledger.Client. Behavior is
// overridden per call via the Fn fields; unset fields fall back to a
// permissive default (fresh signature, confirmed ok, 1 SOL balance).
type Client struct {
	mu sync.Mutex

	// SubmitFn is called with the 1-based submission count.
	SubmitFn func(n int, intent models.TransferIntent) (solana.Signature, error)
	// StatusFn is called with the 1-based status poll count.
	StatusFn func(n int, sig solana.Signature) (ledger.TxStatus, error)
	// BalanceFn is called with the 1-based balance poll count.
	BalanceFn func(n int, account solana.PublicKey) (uint64, error)

	// Calls records the order of operations: "submit", "status", "balance".
	Calls []string
	// Submitted records every intent in submission order.
	Submitted []models.TransferIntent

	submits  int
	statuses int
	balances int
}

var _ ledger.Client = (*Client)(nil)

func (c *Client) SubmitTransfer(_ context.Context, intent models.TransferIntent) (solana.Signature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submits++
	c.Calls = append(c.Calls, "submit")
	c.Submitted = append(c.Submitted, intent)

	if c.SubmitFn != nil {
		return c.SubmitFn(c.submits, intent)
	}
	return Signature(byte(c.submits)), nil
}

func (c *Client) TransactionStatus(_ context.Context, sig solana.Signature, _ rpc.CommitmentType) (ledger.TxStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses++
	c.Calls = append(c.Calls, "status")

	if c.StatusFn != nil {
		return c.StatusFn(c.statuses, sig)
	}
	return ledger.TxStatusOk, nil
}

func (c *Client) Balance(_ context.Context, account solana.PublicKey, _ rpc.CommitmentType) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances++
	c.Calls = append(c.Calls, "balance")

	if c.BalanceFn != nil {
		return c.BalanceFn(c.balances, account)
	}
	return ledger.LamportsPerSol, nil
}

// Submits returns how many submissions were performed.
func (c *Client) Submits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submits
}

// StatusPolls returns how many status polls were performed.
func (c *Client) StatusPolls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statuses
}

// BalancePolls returns how many balance polls were performed.
func (c *Client) BalancePolls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances
}

// CallsCopy returns a snapshot of the recorded call order.
func (c *Client) CallsCopy() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.Calls))
	copy(out, c.Calls)
	return out
}

// Ledger is an in-memory account ledger for orchestrator tests: submits
// move lamports between accounts and produce distinct signatures, status
// polls confirm everything.
type Ledger struct {
	Client
	balancesMu sync.Mutex
	accounts   map[solana.PublicKey]uint64
	// FeePerTx is deducted from the fee payer on every submission.
	FeePerTx uint64
}

// NewLedger creates an in-memory ledger with the given starting balances.
func NewLedger(accounts map[solana.PublicKey]uint64) *Ledger {
	l := &Ledger{accounts: accounts}
	l.SubmitFn = l.applyTransfer
	l.BalanceFn = func(_ int, account solana.PublicKey) (uint64, error) {
		l.balancesMu.Lock()
		defer l.balancesMu.Unlock()
		return l.accounts[account], nil
	}
	return l
}

func (l *Ledger) applyTransfer(n int, intent models.TransferIntent) (solana.Signature, error) {
	l.balancesMu.Lock()
	defer l.balancesMu.Unlock()

	from := intent.From.PublicKey()
	if l.accounts[from] < intent.Lamports {
		return solana.Signature{}, fmt.Errorf("insufficient funds on %s", from)
	}
	l.accounts[from] -= intent.Lamports
	l.accounts[intent.To] += intent.Lamports

	payer := intent.FeePayer
	if payer.IsZero() {
		payer = from
	}
	if l.accounts[payer] >= l.FeePerTx {
		l.accounts[payer] -= l.FeePerTx
	}
	return Signature(byte(n)), nil
}

// BalanceOf reads an account balance directly.
func (l *Ledger) BalanceOf(account solana.PublicKey) uint64 {
	l.balancesMu.Lock()
	defer l.balancesMu.Unlock()
	return l.accounts[account]
}
