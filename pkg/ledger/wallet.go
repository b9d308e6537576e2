package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// NewHopWallet generates a fresh keypair for use as an intermediate
// account. The private key must never be logged; it is persisted once via
// pkg/keystore and otherwise only handed to the signing step.
func NewHopWallet() (solana.PrivateKey, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate hop keypair: %v", err)
	}
	return key, nil
}
