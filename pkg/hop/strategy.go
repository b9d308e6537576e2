package hop

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solhop-labs/hopper/pkg/models"
)

// RecoveryStrategy decides where leftover hop funds go once the forward
// step is done, and how the sweep transaction is shaped. The two
// strategies have deliberately different recovery targets and are never
// merged: DirectTransfer returns the remainder to the sender,
// WrapAndClose delivers it to the receiver.
type RecoveryStrategy interface {
	Name() string
	// SweepIntent builds the transfer that drains lamports from the hop
	// account.
	SweepIntent(hop solana.PrivateKey, lamports uint64) models.TransferIntent
}

// DirectTransfer sweeps the full hop balance back to the sender. The
// sweep fee is paid by the sender account, so the hop account can be
// drained to zero; preflight is skipped because the simulated balance
// may lag the sweep amount.
type DirectTransfer struct {
	Sender           solana.PrivateKey
	ComputeUnitPrice uint64
	ComputeUnitLimit uint32
}

func (DirectTransfer) Name() string { return "direct" }

func (s DirectTransfer) SweepIntent(hop solana.PrivateKey, lamports uint64) models.TransferIntent {
	return models.TransferIntent{
		From:             hop,
		To:               s.Sender.PublicKey(),
		Lamports:         lamports,
		FeePayer:         s.Sender.PublicKey(),
		Cosigner:         s.Sender,
		ComputeUnitPrice: s.ComputeUnitPrice,
		ComputeUnitLimit: s.ComputeUnitLimit,
		SkipPreflight:    true,
	}
}

// WrapAndClose delivers the swept remainder to the receiver instead of
// returning it to the sender, closing out the hop account toward the
// destination side.
type WrapAndClose struct {
	Receiver         solana.PublicKey
	ComputeUnitPrice uint64
	ComputeUnitLimit uint32
}

func (WrapAndClose) Name() string { return "wrap_close" }

func (s WrapAndClose) SweepIntent(hop solana.PrivateKey, lamports uint64) models.TransferIntent {
	return models.TransferIntent{
		From:             hop,
		To:               s.Receiver,
		Lamports:         lamports,
		ComputeUnitPrice: s.ComputeUnitPrice,
		ComputeUnitLimit: s.ComputeUnitLimit,
		SkipPreflight:    true,
	}
}

// StrategyFromName maps a configured strategy name to an implementation.
func StrategyFromName(name string, sender solana.PrivateKey, receiver solana.PublicKey, cuPrice uint64, cuLimit uint32) (RecoveryStrategy, error) {
	switch name {
	case "direct", "":
		return DirectTransfer{Sender: sender, ComputeUnitPrice: cuPrice, ComputeUnitLimit: cuLimit}, nil
	case "wrap_close":
		return WrapAndClose{Receiver: receiver, ComputeUnitPrice: cuPrice, ComputeUnitLimit: cuLimit}, nil
	default:
		return nil, fmt.Errorf("unknown recovery strategy: %s, must be 'direct' or 'wrap_close'", name)
	}
}
