package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolToLamports(t *testing.T) {
	tests := []struct {
		name string
		sol  float64
		want uint64
	}{
		{name: "tenth of a SOL", sol: 0.1, want: 100_000_000},
		{name: "hundredth of a SOL", sol: 0.01, want: 10_000_000},
		{name: "whole SOL", sol: 2.0, want: 2_000_000_000},
		{name: "zero", sol: 0, want: 0},
		{name: "sub-lamport truncates to zero", sol: 0.0000000001, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SolToLamports(tt.sol))
		})
	}
}

func TestLamportsToSol(t *testing.T) {
	assert.Equal(t, 1.5, LamportsToSol(1_500_000_000))
	assert.Equal(t, 0.0, LamportsToSol(0))
	assert.Equal(t, 0.01, LamportsToSol(10_000_000))
}
