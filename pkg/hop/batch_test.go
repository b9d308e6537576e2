package hop

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solhop-labs/hopper/pkg/hop/mocks"
	"github.com/solhop-labs/hopper/pkg/ledger"
)

func TestBatch(t *testing.T) {
	t.Run("runs one independent transfer per receiver", func(t *testing.T) {
		senderA, err := solana.NewRandomPrivateKey()
		require.NoError(t, err)
		senderB, err := solana.NewRandomPrivateKey()
		require.NoError(t, err)
		receiverA := solana.PublicKey{7}
		receiverB := solana.PublicKey{8}

		clientA := mocks.NewLedger(map[solana.PublicKey]uint64{
			senderA.PublicKey(): 1 * ledger.LamportsPerSol,
		})
		clientB := mocks.NewLedger(map[solana.PublicKey]uint64{
			senderB.PublicKey(): 1 * ledger.LamportsPerSol,
		})

		orchA, err := New(clientA, testOptions(t, senderA, receiverA))
		require.NoError(t, err)
		orchB, err := New(clientB, testOptions(t, senderB, receiverB))
		require.NoError(t, err)

		results, err := Batch(context.Background(), []*Orchestrator{orchA, orchB}, 0.10, 0.01)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.True(t, results[0].Complete())
		assert.True(t, results[1].Complete())
		assert.NotEqual(t, results[0].HopAccount, results[1].HopAccount)
		assert.Equal(t, uint64(100_000_000), clientA.BalanceOf(receiverA))
		assert.Equal(t, uint64(100_000_000), clientB.BalanceOf(receiverB))
	})

	t.Run("one failing run does not stop the others", func(t *testing.T) {
		sender, err := solana.NewRandomPrivateKey()
		require.NoError(t, err)
		receiver := solana.PublicKey{7}

		funded := mocks.NewLedger(map[solana.PublicKey]uint64{
			sender.PublicKey(): 1 * ledger.LamportsPerSol,
		})
		broke := mocks.NewLedger(map[solana.PublicKey]uint64{
			sender.PublicKey(): 1_000,
		})

		okOrch, err := New(funded, testOptions(t, sender, receiver))
		require.NoError(t, err)
		failOrch, err := New(broke, testOptions(t, sender, receiver))
		require.NoError(t, err)

		results, err := Batch(context.Background(), []*Orchestrator{okOrch, failOrch}, 0.10, 0.01)
		require.Error(t, err)
		require.Len(t, results, 2)

		assert.True(t, results[0].Complete())
		require.NotNil(t, results[1])
		assert.Equal(t, StateFailed, results[1].State)
		assert.Equal(t, uint64(100_000_000), funded.BalanceOf(receiver))
	})
}
