package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/solhop-labs/hopper/pkg/circuitbreaker"
	"github.com/solhop-labs/hopper/pkg/config"
	"github.com/solhop-labs/hopper/pkg/health"
	"github.com/solhop-labs/hopper/pkg/hop"
	"github.com/solhop-labs/hopper/pkg/ledger"
	"github.com/solhop-labs/hopper/pkg/logger"
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg := logger.NewStdLogger(cfg.LoggerConfig.Coloring, cfg.LoggerConfig.Level)
	client := ledger.NewRPCClient(cfg.RPCURL)

	breaker := circuitbreaker.New(
		cfg.CircuitBreaker.Enabled,
		cfg.CircuitBreaker.Threshold,
		cfg.CircuitBreaker.WindowDuration,
		cfg.CircuitBreaker.ResetTimeout,
		lg,
	)

	// Start health monitoring server
	healthServer := health.NewServer(cfg.MetricsPort, cfg.RPCURL, client, cfg.SenderPrivateKey.PublicKey(), breaker, lg)
	go healthServer.Start()

	// Set up context with cancellation on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalCh
		lg.Notice("received termination signal, shutting down")
		cancel()
	}()

	// One independent orchestration per receiver, each with its own hop account
	orchs := make([]*hop.Orchestrator, 0, len(cfg.Receivers))
	for _, receiver := range cfg.Receivers {
		strategy, err := hop.StrategyFromName(cfg.RecoveryStrategy, cfg.SenderPrivateKey, receiver, cfg.ComputeUnitPrice, cfg.ComputeUnitLimit)
		if err != nil {
			log.Fatalf("Failed to configure recovery strategy: %v", err)
		}

		orch, err := hop.New(client, hop.Options{
			Sender:               cfg.SenderPrivateKey,
			Receiver:             receiver,
			Commitment:           cfg.Commitment,
			MaxAttempts:          cfg.Retry.MaxAttempts,
			AttemptDelay:         cfg.Retry.AttemptDelay,
			ConfirmMaxRetries:    cfg.Retry.ConfirmMaxRetries,
			ConfirmRetryInterval: cfg.Retry.ConfirmRetryInterval,
			BalanceMaxRetries:    cfg.Retry.BalanceMaxRetries,
			BalanceRetryInterval: cfg.Retry.BalanceRetryInterval,
			RecoverCooldown:      cfg.Retry.RecoverCooldown,
			ComputeUnitPrice:     cfg.ComputeUnitPrice,
			ComputeUnitLimit:     cfg.ComputeUnitLimit,
			KeysDir:              cfg.KeysDir,
			Strategy:             strategy,
			Breaker:              breaker,
			Logger:               lg,
		})
		if err != nil {
			log.Fatalf("Failed to create orchestrator for receiver %s: %v", receiver, err)
		}
		orchs = append(orchs, orch)
	}

	lg.Info("starting %d hop transfer(s) of %f SOL (fee buffer %f SOL)", len(orchs), cfg.AmountSOL, cfg.HopFeeSOL)
	results, err := hop.Batch(ctx, orchs, cfg.AmountSOL, cfg.HopFeeSOL)

	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Complete() {
			lg.Notice("hop %s complete: to_hop=%s to_receiver=%s recover_hop=%s",
				res.HopAccount, res.ToHop.Signature, res.ToReceiver.Signature, res.RecoverHop.Signature)
		} else {
			lg.Error("hop %s incomplete: failed at %s", res.HopAccount, res.FailedStep)
		}
	}

	if err != nil {
		lg.Error("hop transfer failed: %v", err)
		os.Exit(1)
	}
	lg.Notice("all hop transfers complete")
}
