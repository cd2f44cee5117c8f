package amm

const (
	// MinimumLiquidity is burned from the first depositor's shares so the
	// pool can never be fully drained back to an empty state.
	MinimumLiquidity uint64 = 100_000

	// BpsDenominator converts basis points to a fraction.
	BpsDenominator uint64 = 10_000
)
