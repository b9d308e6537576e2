package config

import (
	"fmt"
	"log"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"

	"github.com/solhop-labs/hopper/pkg/logger"
)

// Config holds the configuration for the hop transfer service
type Config struct {
	RPCURL           string
	SenderPrivateKey solana.PrivateKey
	Receivers        []solana.PublicKey
	AmountSOL        float64
	HopFeeSOL        float64

	Commitment       rpc.CommitmentType
	Retry            RetryConfig
	ComputeUnitPrice uint64
	ComputeUnitLimit uint32

	KeysDir          string
	RecoveryStrategy string
	MetricsPort      string
	CircuitBreaker   CircuitBreakerConfig
	LoggerConfig     LoggerConfig
}

// RetryConfig holds the per-step retry budgets
type RetryConfig struct {
	MaxAttempts          int
	AttemptDelay         time.Duration
	ConfirmMaxRetries    int
	ConfirmRetryInterval time.Duration
	BalanceMaxRetries    int
	BalanceRetryInterval time.Duration
	RecoverCooldown      time.Duration
}

// CircuitBreakerConfig holds circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled        bool
	Threshold      int
	WindowDuration time.Duration
	ResetTimeout   time.Duration
}

// LoggerConfig holds the configuration for logging
type LoggerConfig struct {
	Level    logger.Level
	Coloring bool
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	senderKey, err := GetEnvSenderPrivateKey()
	if err != nil {
		return nil, err
	}

	receivers, err := GetEnvReceivers()
	if err != nil {
		return nil, err
	}

	amountSOL, err := GetEnvAmountSOL()
	if err != nil {
		return nil, err
	}

	hopFeeSOL, err := GetEnvHopFeeSOL()
	if err != nil {
		return nil, err
	}

	commitment, err := GetEnvCommitment()
	if err != nil {
		return nil, err
	}

	retry, err := GetEnvRetryConfig()
	if err != nil {
		return nil, err
	}

	cuPrice, cuLimit, err := GetEnvComputeBudget()
	if err != nil {
		return nil, err
	}

	strategy, err := GetEnvRecoveryStrategy()
	if err != nil {
		return nil, err
	}

	metricsPort, err := GetEnvMetricsPort()
	if err != nil {
		return nil, err
	}

	cbEnabled, err := GetEnvCircuitBreakerEnabled()
	if err != nil {
		return nil, err
	}

	cbThreshold, err := GetEnvCircuitBreakerThreshold()
	if err != nil {
		return nil, err
	}

	cbWindow, err := GetEnvCircuitBreakerWindow()
	if err != nil {
		return nil, err
	}

	cbReset, err := GetEnvCircuitBreakerReset()
	if err != nil {
		return nil, err
	}

	logLevel, err := GetEnvLogLevel()
	if err != nil {
		return nil, err
	}

	logColoring, err := GetEnvLogColoring()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RPCURL:           GetEnvRPCURL(),
		SenderPrivateKey: senderKey,
		Receivers:        receivers,
		AmountSOL:        amountSOL,
		HopFeeSOL:        hopFeeSOL,
		Commitment:       commitment,
		Retry:            retry,
		ComputeUnitPrice: cuPrice,
		ComputeUnitLimit: cuLimit,
		KeysDir:          GetEnvKeysDir(),
		RecoveryStrategy: strategy,
		MetricsPort:      metricsPort,
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:        cbEnabled,
			Threshold:      cbThreshold,
			WindowDuration: cbWindow,
			ResetTimeout:   cbReset,
		},
		LoggerConfig: LoggerConfig{
			Level:    logLevel,
			Coloring: logColoring,
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.SenderPrivateKey == nil {
		return fmt.Errorf("SENDER_PRIVATE_KEY environment variable is required")
	}
	if len(cfg.Receivers) == 0 {
		return fmt.Errorf("at least one receiver public key is required")
	}
	if cfg.AmountSOL <= 0 {
		return fmt.Errorf("AMOUNT_SOL must be greater than 0")
	}
	for _, receiver := range cfg.Receivers {
		if receiver.Equals(cfg.SenderPrivateKey.PublicKey()) {
			return fmt.Errorf("receiver %s is the sender itself", receiver)
		}
	}
	return nil
}
