package cultivation

import "errors"

// Expected game-rule failures. All recoverable; surfaced to the caller with a
// human-readable reason, never fatal.
var (
	ErrAlreadyActive          = errors.New("an activity is already in progress")
	ErrNoActivity             = errors.New("no activity in progress")
	ErrNotYetDue              = errors.New("activity has not finished yet")
	ErrTooShort               = errors.New("practice session too short")
	ErrAtMaxTier              = errors.New("already at the highest tier")
	ErrInsufficientExperience = errors.New("not enough experience to break through")
	ErrOnCooldown             = errors.New("action is on cooldown")
	ErrInvalidTarget          = errors.New("invalid target")
	ErrInsufficientCurrency   = errors.New("not enough spirit stones")
	ErrUnknownCatalogEntry    = errors.New("unknown catalog entry")
	ErrItemNotOwned           = errors.New("item not owned")
	ErrAlreadyStarted         = errors.New("journey already started")
)
