package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/solhop-labs/hopper/pkg/hop"
	"github.com/solhop-labs/hopper/pkg/logger"
)

const (
	// DefaultRPCURL is the Solana RPC endpoint used when none is configured
	DefaultRPCURL = "https://api.mainnet-beta.solana.com"

	// DefaultHopFeeSOL is the fee buffer funded into the hop account on
	// top of the forwarded amount, covering the hop's own outgoing fees
	DefaultHopFeeSOL = 0.01

	// DefaultCommitment is the durability level required before a
	// transaction counts as confirmed
	DefaultCommitment = "finalized"

	// DefaultKeysDir is where hop key material files are written
	DefaultKeysDir = "."

	// DefaultRecoveryStrategy decides where leftover hop funds go
	DefaultRecoveryStrategy = "direct"

	// DefaultMetricsPort defines the default port for the metrics server
	DefaultMetricsPort = "8080"

	// DefaultCircuitBreakerEnabled defines whether the circuit breaker is enabled
	DefaultCircuitBreakerEnabled = true

	// DefaultCircuitBreakerThreshold defines the number of failures before the circuit breaker trips
	DefaultCircuitBreakerThreshold = 5

	// DefaultCircuitBreakerWindow defines the time window for the circuit breaker in seconds
	DefaultCircuitBreakerWindow = 5

	// DefaultCircuitBreakerReset defines the reset timeout for the circuit breaker in seconds
	DefaultCircuitBreakerReset = 15
)

// GetEnvRPCURL returns the RPC endpoint from environment variables
func GetEnvRPCURL() string {
	rpcURL := os.Getenv("RPC_URL")
	if rpcURL == "" {
		return DefaultRPCURL
	}
	return rpcURL
}

// GetEnvSenderPrivateKey returns the sender signing key from environment variables
func GetEnvSenderPrivateKey() (solana.PrivateKey, error) {
	raw := os.Getenv("SENDER_PRIVATE_KEY")
	if raw == "" {
		return nil, fmt.Errorf("SENDER_PRIVATE_KEY environment variable is required")
	}

	key, err := solana.PrivateKeyFromBase58(raw)
	if err != nil {
		// Never echo the value back: it is signing material.
		return nil, fmt.Errorf("invalid SENDER_PRIVATE_KEY: must be a base58 private key")
	}
	return key, nil
}

// GetEnvReceivers returns the receiver public keys from environment variables.
// RECEIVER_PUBKEYS is a comma-separated list; one independent hop transfer
// runs per receiver.
func GetEnvReceivers() ([]solana.PublicKey, error) {
	raw := os.Getenv("RECEIVER_PUBKEYS")
	if raw == "" {
		return nil, fmt.Errorf("RECEIVER_PUBKEYS environment variable is required")
	}

	var receivers []solana.PublicKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, err := solana.PublicKeyFromBase58(part)
		if err != nil {
			return nil, fmt.Errorf("invalid receiver public key %s: %v", part, err)
		}
		receivers = append(receivers, key)
	}
	if len(receivers) == 0 {
		return nil, fmt.Errorf("RECEIVER_PUBKEYS must contain at least one public key")
	}
	return receivers, nil
}

// GetEnvAmountSOL returns the transfer amount from environment variables
func GetEnvAmountSOL() (float64, error) {
	raw := os.Getenv("AMOUNT_SOL")
	if raw == "" {
		return 0, fmt.Errorf("AMOUNT_SOL environment variable is required")
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid AMOUNT_SOL value: %s, must be a number", raw)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("AMOUNT_SOL must be greater than 0")
	}
	return amount, nil
}

// GetEnvHopFeeSOL returns the hop fee buffer from environment variables
func GetEnvHopFeeSOL() (float64, error) {
	raw := os.Getenv("HOP_FEE_SOL")
	if raw == "" {
		return DefaultHopFeeSOL, nil
	}

	fee, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid HOP_FEE_SOL value: %s, must be a number", raw)
	}
	if fee < 0 {
		return 0, fmt.Errorf("HOP_FEE_SOL must be greater than or equal to 0")
	}
	return fee, nil
}

// GetEnvCommitment returns the commitment level from environment variables
func GetEnvCommitment() (rpc.CommitmentType, error) {
	commitment := os.Getenv("COMMITMENT")
	if commitment == "" {
		commitment = DefaultCommitment
	}

	switch commitment {
	case "processed":
		return rpc.CommitmentProcessed, nil
	case "confirmed":
		return rpc.CommitmentConfirmed, nil
	case "finalized":
		return rpc.CommitmentFinalized, nil
	}
	return "", fmt.Errorf("invalid COMMITMENT value: %s, must be 'processed', 'confirmed' or 'finalized'", commitment)
}

// GetEnvRetryConfig returns the per-step retry budgets from environment variables
func GetEnvRetryConfig() (RetryConfig, error) {
	cfg := RetryConfig{
		MaxAttempts:          hop.DefaultMaxAttempts,
		AttemptDelay:         hop.DefaultAttemptDelay,
		ConfirmMaxRetries:    hop.DefaultConfirmMaxRetries,
		ConfirmRetryInterval: hop.DefaultConfirmRetryInterval,
		BalanceMaxRetries:    hop.DefaultBalanceMaxRetries,
		BalanceRetryInterval: hop.DefaultBalanceRetryInterval,
		RecoverCooldown:      hop.DefaultRecoverCooldown,
	}

	var err error
	if cfg.MaxAttempts, err = getEnvPositiveInt("MAX_ATTEMPTS", cfg.MaxAttempts); err != nil {
		return cfg, err
	}
	if cfg.AttemptDelay, err = getEnvDuration("ATTEMPT_DELAY", cfg.AttemptDelay); err != nil {
		return cfg, err
	}
	if cfg.ConfirmMaxRetries, err = getEnvPositiveInt("CONFIRM_MAX_RETRIES", cfg.ConfirmMaxRetries); err != nil {
		return cfg, err
	}
	if cfg.ConfirmRetryInterval, err = getEnvDuration("CONFIRM_RETRY_INTERVAL", cfg.ConfirmRetryInterval); err != nil {
		return cfg, err
	}
	if cfg.BalanceMaxRetries, err = getEnvPositiveInt("BALANCE_MAX_RETRIES", cfg.BalanceMaxRetries); err != nil {
		return cfg, err
	}
	if cfg.BalanceRetryInterval, err = getEnvDuration("BALANCE_RETRY_INTERVAL", cfg.BalanceRetryInterval); err != nil {
		return cfg, err
	}
	if cfg.RecoverCooldown, err = getEnvDuration("RECOVER_COOLDOWN", cfg.RecoverCooldown); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GetEnvComputeBudget returns the priority fee parameters from environment variables
func GetEnvComputeBudget() (uint64, uint32, error) {
	price := uint64(hop.DefaultComputeUnitPrice)
	limit := uint32(hop.DefaultComputeUnitLimit)

	if raw := os.Getenv("COMPUTE_UNIT_PRICE"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid COMPUTE_UNIT_PRICE value: %s, must be an integer", raw)
		}
		price = parsed
	}
	if raw := os.Getenv("COMPUTE_UNIT_LIMIT"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid COMPUTE_UNIT_LIMIT value: %s, must be an integer", raw)
		}
		limit = uint32(parsed)
	}
	return price, limit, nil
}

// GetEnvKeysDir returns the directory for hop key files from environment variables
func GetEnvKeysDir() string {
	dir := os.Getenv("KEYS_DIR")
	if dir == "" {
		return DefaultKeysDir
	}
	return dir
}

// GetEnvRecoveryStrategy returns the recovery strategy name from environment variables
func GetEnvRecoveryStrategy() (string, error) {
	strategy := os.Getenv("RECOVERY_STRATEGY")
	if strategy == "" {
		return DefaultRecoveryStrategy, nil
	}

	if strategy != "direct" && strategy != "wrap_close" {
		return "", fmt.Errorf("invalid RECOVERY_STRATEGY value: %s, must be 'direct' or 'wrap_close'", strategy)
	}
	return strategy, nil
}

// GetEnvMetricsPort returns the metrics server port from environment variables
func GetEnvMetricsPort() (string, error) {
	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		return DefaultMetricsPort, nil
	}

	// Validate port format
	if _, err := strconv.Atoi(metricsPort); err != nil {
		return "", fmt.Errorf("invalid METRICS_PORT value: %s, must be a valid integer", metricsPort)
	}
	return metricsPort, nil
}

// GetEnvCircuitBreakerEnabled returns whether the circuit breaker is enabled from environment variables
func GetEnvCircuitBreakerEnabled() (bool, error) {
	enabled := os.Getenv("CIRCUIT_BREAKER_ENABLED")
	if enabled == "" {
		return DefaultCircuitBreakerEnabled, nil
	}

	if enabled == "true" {
		return true, nil
	} else if enabled == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid CIRCUIT_BREAKER_ENABLED value: %s, must be 'true' or 'false'", enabled)
}

// GetEnvCircuitBreakerThreshold returns the circuit breaker threshold from environment variables
func GetEnvCircuitBreakerThreshold() (int, error) {
	return getEnvPositiveInt("CIRCUIT_BREAKER_THRESHOLD", DefaultCircuitBreakerThreshold)
}

// GetEnvCircuitBreakerWindow returns the circuit breaker window duration from environment variables
func GetEnvCircuitBreakerWindow() (time.Duration, error) {
	return getEnvDuration("CIRCUIT_BREAKER_WINDOW", DefaultCircuitBreakerWindow*time.Second)
}

// GetEnvCircuitBreakerReset returns the circuit breaker reset timeout from environment variables
func GetEnvCircuitBreakerReset() (time.Duration, error) {
	return getEnvDuration("CIRCUIT_BREAKER_RESET", DefaultCircuitBreakerReset*time.Second)
}

// GetEnvLogLevel returns the log level from environment variables
func GetEnvLogLevel() (logger.Level, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return logger.InfoLevel, nil
	}

	switch level {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "notice":
		return logger.NoticeLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL value: %s, must be 'debug', 'info', 'notice' or 'error'", level)
}

// GetEnvLogColoring returns whether log coloring is enabled from environment variables
func GetEnvLogColoring() (bool, error) {
	coloring := os.Getenv("LOG_COLORING")
	if coloring == "" {
		return false, nil
	}

	if coloring == "true" {
		return true, nil
	} else if coloring == "false" {
		return false, nil
	}

	return false, fmt.Errorf("invalid LOG_COLORING value: %s, must be 'true' or 'false'", coloring)
}

func getEnvPositiveInt(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %s, must be an integer", name, raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", name)
	}
	return value, nil
}

func getEnvDuration(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %s, must be a valid duration string", name, raw)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", name)
	}
	return parsed, nil
}
