// Package hop implements the hop-transfer orchestrator: a sequential
// state machine that moves value from a sender to a receiver through a
// freshly generated intermediate account, gating each step on externally
// observed balance and confirmation state.
package hop

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solhop-labs/hopper/pkg/circuitbreaker"
	"github.com/solhop-labs/hopper/pkg/keystore"
	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/logger"
	"github.com/solhop-labs/hopper/pkg/metrics"
	"github.com/solhop-labs/hopper/pkg/models"
)

// Default retry budgets and fee parameters, matching the tuning the
// service ships with. All are overridable through Options.
const (
	DefaultMaxAttempts          = 3
	DefaultAttemptDelay         = 1 * time.Second
	DefaultConfirmMaxRetries    = 20
	DefaultConfirmRetryInterval = 3 * time.Second
	DefaultBalanceMaxRetries    = 5
	DefaultBalanceRetryInterval = 1 * time.Second
	DefaultRecoverCooldown      = 5 * time.Second
	DefaultComputeUnitPrice     = 100_000
	DefaultComputeUnitLimit     = 10_000
)

// State tracks the progress of a single run through the step sequence.
type State string

const (
	StateInit               State = "init"
	StateHopFunded          State = "hop_funded"
	StateHopBalanceObserved State = "hop_balance_observed"
	StateForwarded          State = "forwarded_to_receiver"
	StateLeftoverRecovered  State = "leftover_recovered"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Result is the outcome of one full hop transfer run: the per-step
// records plus the hop account involved, for manual recovery if needed.
type Result struct {
	ToHop      models.StepResult
	ToReceiver models.StepResult
	RecoverHop models.StepResult

	HopAccount          solana.PublicKey
	ObservedHopLamports uint64
	State               State
	FailedStep          models.Step
	Elapsed             time.Duration
}

// Complete reports whether all three steps confirmed.
func (r *Result) Complete() bool {
	return r.State == StateDone
}

// Options configures a single orchestration run.
type Options struct {
	Sender   solana.PrivateKey
	Receiver solana.PublicKey

	Commitment           rpc.CommitmentType
	MaxAttempts          int
	AttemptDelay         time.Duration
	ConfirmMaxRetries    int
	ConfirmRetryInterval time.Duration
	BalanceMaxRetries    int
	BalanceRetryInterval time.Duration
	RecoverCooldown      time.Duration
	ComputeUnitPrice     uint64
	ComputeUnitLimit     uint32

	// KeysDir is where the hop key material is persisted at creation.
	KeysDir string

	// Strategy decides the recovery target. Nil means DirectTransfer
	// back to the sender.
	Strategy RecoveryStrategy

	// Breaker optionally guards RPC submissions. Nil disables.
	Breaker *circuitbreaker.CircuitBreaker

	Logger logger.Logger
}

func (o *Options) applyDefaults() {
	if o.Commitment == "" {
		o.Commitment = rpc.CommitmentFinalized
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.AttemptDelay == 0 {
		o.AttemptDelay = DefaultAttemptDelay
	}
	if o.ConfirmMaxRetries == 0 {
		o.ConfirmMaxRetries = DefaultConfirmMaxRetries
	}
	if o.ConfirmRetryInterval == 0 {
		o.ConfirmRetryInterval = DefaultConfirmRetryInterval
	}
	if o.BalanceMaxRetries == 0 {
		o.BalanceMaxRetries = DefaultBalanceMaxRetries
	}
	if o.BalanceRetryInterval == 0 {
		o.BalanceRetryInterval = DefaultBalanceRetryInterval
	}
	if o.RecoverCooldown == 0 {
		o.RecoverCooldown = DefaultRecoverCooldown
	}
	if o.ComputeUnitPrice == 0 {
		o.ComputeUnitPrice = DefaultComputeUnitPrice
	}
	if o.ComputeUnitLimit == 0 {
		o.ComputeUnitLimit = DefaultComputeUnitLimit
	}
	if o.Logger == nil {
		o.Logger = &logger.EmptyLogger{}
	}
}

// Orchestrator owns one hop account and drives the fund → wait → forward
// → recover sequence for a single run. The hop key material is written
// once at construction and read-only afterwards, so an Orchestrator is
// safe to run alongside other Orchestrators without coordination.
type Orchestrator struct {
	client  ledger.Client
	opts    Options
	hopKey  solana.PrivateKey
	keyPath string
}

// New generates the hop account, persists its key material and returns an
// orchestrator ready to execute. The persisted file is a recovery aid,
// not a correctness dependency of the run itself.
func New(client ledger.Client, opts Options) (*Orchestrator, error) {
	if client == nil {
		return nil, fmt.Errorf("ledger client is required")
	}
	if opts.Sender == nil {
		return nil, fmt.Errorf("sender private key is required")
	}
	if opts.Receiver.IsZero() {
		return nil, fmt.Errorf("receiver public key is required")
	}
	opts.applyDefaults()
	if opts.Strategy == nil {
		opts.Strategy = DirectTransfer{
			Sender:           opts.Sender,
			ComputeUnitPrice: opts.ComputeUnitPrice,
			ComputeUnitLimit: opts.ComputeUnitLimit,
		}
	}

	hopKey, err := ledger.NewHopWallet()
	if err != nil {
		return nil, err
	}

	keyPath, err := keystore.Save(opts.KeysDir, hopKey.PublicKey().String(), hopKey.String())
	if err != nil {
		return nil, fmt.Errorf("failed to persist hop keys: %v", err)
	}
	opts.Logger.Info("created hop account %s, keys saved to %s", hopKey.PublicKey(), keyPath)

	return &Orchestrator{
		client:  client,
		opts:    opts,
		hopKey:  hopKey,
		keyPath: keyPath,
	}, nil
}

// HopAccount returns the public identifier of the hop account.
func (o *Orchestrator) HopAccount() solana.PublicKey {
	return o.hopKey.PublicKey()
}

// KeyPath returns where the hop key material was persisted.
func (o *Orchestrator) KeyPath() string {
	return o.keyPath
}

// Execute runs the full sequence: fund the hop with amount+fee, wait for
// the funds to land, forward the amount to the receiver, then after a
// cool-down sweep the leftover per the recovery strategy. Steps are
// strictly sequential; a step that exhausts its retry budget fails the
// run and already-completed steps are not rolled back.
func (o *Orchestrator) Execute(ctx context.Context, amountSOL, hopFeeSOL float64) (*Result, error) {
	start := time.Now()
	res := &Result{HopAccount: o.hopKey.PublicKey(), State: StateInit}

	amount := ledger.SolToLamports(amountSOL)
	feeBuffer := ledger.SolToLamports(hopFeeSOL)
	total := amount + feeBuffer
	if amount == 0 {
		return res, fmt.Errorf("amount %f SOL is below one lamport", amountSOL)
	}

	rc := &RetryConfirm{
		Confirm: (&Confirmer{
			Client:        o.client,
			Commitment:    o.opts.Commitment,
			MaxRetries:    o.opts.ConfirmMaxRetries,
			RetryInterval: o.opts.ConfirmRetryInterval,
			Logger:        o.opts.Logger,
		}).Confirm,
		MaxAttempts: o.opts.MaxAttempts,
		Delay:       o.opts.AttemptDelay,
		Breaker:     o.opts.Breaker,
		Logger:      o.opts.Logger,
	}

	// Fund the hop. The sender balance is checked before anything is
	// submitted; a short balance is permanent and submits nothing.
	sender := o.opts.Sender.PublicKey()
	if senderBalance, err := o.client.Balance(ctx, sender, o.opts.Commitment); err != nil {
		// Treated like any transient RPC error: the submission path will
		// surface a real failure if the endpoint stays down.
		o.opts.Logger.ErrorWithStep(string(models.StepFundHop), "sender balance check failed: %v", err)
	} else {
		metrics.SenderBalance.Set(ledger.LamportsToSol(senderBalance))
		if senderBalance < total {
			ibe := &InsufficientBalanceError{Account: sender, Have: senderBalance, Need: total}
			res.ToHop = models.StepResult{Step: models.StepFundHop, Err: ibe}
			return o.fail(res, models.StepFundHop, start, ibe)
		}
	}

	res.ToHop = o.runStep(ctx, rc, fundStep{
		client: o.client,
		intent: o.transferIntent(o.opts.Sender, o.hopKey.PublicKey(), total, false),
	})
	if res.ToHop.Err != nil {
		return o.fail(res, models.StepFundHop, start, res.ToHop.Err)
	}
	res.State = StateHopFunded

	// Wait until the funding is visible. The forward step never starts
	// before a balance covering the forward amount is observed.
	waiter := &BalanceWaiter{
		Client:        o.client,
		Commitment:    o.opts.Commitment,
		MaxRetries:    o.opts.BalanceMaxRetries,
		RetryInterval: o.opts.BalanceRetryInterval,
		Logger:        o.opts.Logger,
	}
	observed, err := waiter.Wait(ctx, o.hopKey.PublicKey(), func(lamports uint64) bool {
		return lamports >= amount
	})
	if err != nil {
		return o.fail(res, models.StepBalanceWait, start, err)
	}
	res.ObservedHopLamports = observed
	res.State = StateHopBalanceObserved
	metrics.HopBalance.Set(ledger.LamportsToSol(observed))

	res.ToReceiver = o.runStep(ctx, rc, forwardStep{
		client: o.client,
		intent: o.transferIntent(o.hopKey, o.opts.Receiver, amount, false),
	})
	if res.ToReceiver.Err != nil {
		return o.fail(res, models.StepForward, start, res.ToReceiver.Err)
	}
	res.State = StateForwarded

	// Give the forward transfer time to settle before reading the
	// leftover balance.
	o.opts.Logger.InfoWithStep(string(models.StepRecover), "waiting %v before recovering leftover", o.opts.RecoverCooldown)
	select {
	case <-ctx.Done():
		return o.fail(res, models.StepRecover, start, ctx.Err())
	case <-time.After(o.opts.RecoverCooldown):
	}

	res.RecoverHop = o.runStep(ctx, rc, recoverStep{
		client:     o.client,
		hop:        o.hopKey,
		strategy:   o.opts.Strategy,
		commitment: o.opts.Commitment,
	})
	if res.RecoverHop.Err != nil {
		// Best-effort cleanup: the value already delivered to the
		// receiver stands, but the run is reported incomplete.
		res.State = StateFailed
		res.FailedStep = models.StepRecover
		res.Elapsed = time.Since(start)
		metrics.RunsTotal.WithLabelValues("incomplete").Inc()
		metrics.RunDuration.Observe(res.Elapsed.Seconds())
		return res, fmt.Errorf("leftover recovery failed, keys persisted at %s: %v", o.keyPath, res.RecoverHop.Err)
	}
	res.State = StateDone
	res.Elapsed = time.Since(start)

	metrics.RunsTotal.WithLabelValues("success").Inc()
	metrics.RunDuration.Observe(res.Elapsed.Seconds())
	o.opts.Logger.Notice("hop transfer completed in %.2fs", res.Elapsed.Seconds())
	return res, nil
}

// runStep drives one step through the retry loop and records its duration.
func (o *Orchestrator) runStep(ctx context.Context, rc *RetryConfirm, step Step) models.StepResult {
	stepStart := time.Now()
	result := rc.Run(ctx, step)
	metrics.StepDuration.WithLabelValues(string(step.Name())).Observe(time.Since(stepStart).Seconds())
	return result
}

// fail marks the run failed at the given step and records metrics.
func (o *Orchestrator) fail(res *Result, step models.Step, start time.Time, err error) (*Result, error) {
	res.State = StateFailed
	res.FailedStep = step
	res.Elapsed = time.Since(start)
	metrics.StepFailures.WithLabelValues(string(step), errorType(err)).Inc()
	metrics.RunsTotal.WithLabelValues("failed").Inc()
	metrics.RunDuration.Observe(res.Elapsed.Seconds())
	o.opts.Logger.ErrorWithStep(string(step), "run failed: %v", err)
	return res, err
}

// transferIntent builds a fresh intent carrying the configured priority
// fee parameters.
func (o *Orchestrator) transferIntent(from solana.PrivateKey, to solana.PublicKey, lamports uint64, skipPreflight bool) models.TransferIntent {
	return models.TransferIntent{
		From:             from,
		To:               to,
		Lamports:         lamports,
		ComputeUnitPrice: o.opts.ComputeUnitPrice,
		ComputeUnitLimit: o.opts.ComputeUnitLimit,
		SkipPreflight:    skipPreflight,
	}
}
