package launchpad

import "errors"

// Operation failures. Each maps a distinct rejection cause so callers can
// branch on the reason instead of parsing messages.
var (
	// Authorization.
	ErrUnauthorized = errors.New("launchpad: unauthorized")

	// Validation.
	ErrPaused           = errors.New("launchpad: protocol paused")
	ErrInvalidAmount    = errors.New("launchpad: amount must be positive")
	ErrExceedsMaxBuy    = errors.New("launchpad: amount exceeds per-buy maximum")
	ErrMinOutZero       = errors.New("launchpad: minimum output must be positive")
	ErrInvalidMetadata  = errors.New("launchpad: invalid launch metadata")
	ErrSeedTooSmall     = errors.New("launchpad: seed below minimum")
	ErrSeedTooLarge     = errors.New("launchpad: seed above maximum")
	ErrSlippageExceeded = errors.New("launchpad: output below minimum")

	// Lifecycle state.
	ErrLaunchEnded       = errors.New("launchpad: launch window ended")
	ErrLaunchNotEnded    = errors.New("launchpad: launch window still open")
	ErrAlreadyGraduated  = errors.New("launchpad: launch already graduated")
	ErrNotGraduated      = errors.New("launchpad: launch not graduated")
	ErrRefundModeActive  = errors.New("launchpad: launch is in refund mode")
	ErrRefundNotEnabled  = errors.New("launchpad: refund mode not enabled")
	ErrLaunchNotEmpty    = errors.New("launchpad: launch still has open positions")
	ErrVaultNotActivated = errors.New("launchpad: vault not activated")

	// Economic.
	ErrInsufficientShares = errors.New("launchpad: insufficient shares")
	ErrBelowTarget        = errors.New("launchpad: market cap below graduation target")
	ErrNoSharesToClaim    = errors.New("launchpad: no shares to claim")
	ErrNothingToClaim     = errors.New("launchpad: nothing to claim")
	ErrAlreadyClaimed     = errors.New("launchpad: already claimed")
	ErrNoFeesToClaim      = errors.New("launchpad: no fees to claim")
	ErrSeedNotVested      = errors.New("launchpad: seed shares still vesting")

	// Oracle.
	ErrPriceUnavailable = errors.New("launchpad: price unavailable or stale")

	// Records.
	ErrConfigNotFound      = errors.New("launchpad: config not initialized")
	ErrConfigExists        = errors.New("launchpad: config already initialized")
	ErrLaunchNotFound      = errors.New("launchpad: launch not found")
	ErrPositionNotFound    = errors.New("launchpad: position not found")
	ErrVaultNotFound       = errors.New("launchpad: vault not found")
	ErrOperationInProgress = errors.New("launchpad: operation already in progress")
)
