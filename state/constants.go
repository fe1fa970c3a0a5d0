package state

// Protocol parameters. All monetary thresholds are denominated in whole USD
// and converted to lamports at the cached oracle price, so the economics stay
// stable regardless of base-asset volatility. These are deliberately constants
// rather than config fields: anyone can verify what they are getting.
const (
	// Graduation market-cap target in USD.
	GraduationMarketCapUSD uint64 = 42_000

	// Creator seed bounds in USD.
	MinSeedUSD uint64 = 40
	MaxSeedUSD uint64 = 20_000

	// Token supply minted at graduation. 800M distributed pro-rata to share
	// holders, 200M paired with the accumulated base currency as pool
	// liquidity. Token uses 9 decimals.
	TokensForHolders uint64 = 800_000_000
	TokensForLP      uint64 = 200_000_000
	TotalSupply      uint64 = 1_000_000_000
	TokenDecimals    uint8  = 9
	DecimalFactor    uint64 = 1_000_000_000

	// Fee schedule in basis points. Buys pay 1% total, split between creator
	// and protocol by verification tier. Sells pay nothing; free exit at
	// basis is a protocol guarantee.
	TotalFeeBps             uint64 = 100
	CreatorFeeUnverifiedBps uint64 = 30
	CreatorFeeVerifiedBps   uint64 = 50
	SellFeeBps              uint64 = 0
	BpsDenominator          uint64 = 10_000

	// Time windows in seconds.
	VestingDurationSeconds int64 = 42 * 24 * 60 * 60
	LaunchDurationSeconds  int64 = 7 * 24 * 60 * 60

	// Whale-protection ceiling per buy, in lamports (1000 base units).
	MaxBuyLamports uint64 = 1_000_000_000_000

	// Graduation gates enforced off-chain by the operator, kept here so the
	// engine and the operator agree on the numbers.
	GraduationMinHolders            uint64 = 100
	GraduationMaxConcentrationBps   uint64 = 1_000
	GraduationThresholdNoticeBps    uint64 = 9_500
	LamportsPerBaseUnit             uint64 = 1_000_000_000

	// Price-dependent conversions refuse to run on a price older than this.
	MaxPriceStalenessSeconds int64 = 300

	// Yield distribution in basis points. The compounded remainder is always
	// computed as total minus the other three shares so the four parts sum
	// exactly to the input.
	YieldCallerBps   uint64 = 100
	YieldCreatorBps  uint64 = 6_000
	YieldProtocolBps uint64 = 1_000

	// Storage deposits held by records and reclaimed when they close.
	PositionDepositLamports uint64 = 2_039_280
	LaunchDepositLamports   uint64 = 5_616_720
)
