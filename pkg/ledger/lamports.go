package ledger

// LamportsPerSol is the fixed scale factor between the human fractional
// unit and the smallest ledger unit.
const LamportsPerSol = 1_000_000_000

// SolToLamports converts a SOL amount to lamports by truncation.
// Sub-lamport rounding loss is accepted; callers must pre-validate that
// the scaled amount is representable for fee accounting.
func SolToLamports(sol float64) uint64 {
	return uint64(sol * LamportsPerSol)
}

// LamportsToSol converts lamports to a SOL amount for display.
func LamportsToSol(lamports uint64) float64 {
	return float64(lamports) / LamportsPerSol
}
