package split

import "errors"

var (
	// ErrSplitsLocked indicates the registry has been locked against changes.
	ErrSplitsLocked = errors.New("split: registry is locked")

	// ErrLengthMismatch indicates the address and percentage lists differ in length.
	ErrLengthMismatch = errors.New("split: address and percentage counts differ")

	// ErrNoEntries indicates an attempt to configure an empty registry.
	ErrNoEntries = errors.New("split: no recipient entries")

	// ErrInvalidShare indicates a percentage outside the 1..100 range.
	ErrInvalidShare = errors.New("split: share percentage must be between 1 and 100")

	// ErrDuplicateRecipient indicates the same address appears twice in one configuration.
	ErrDuplicateRecipient = errors.New("split: duplicate recipient address")

	// ErrInvalidSplitTotal indicates the percentages do not sum to exactly 100.
	ErrInvalidSplitTotal = errors.New("split: percentages must sum to exactly 100")

	// ErrNoSplitsDefined indicates a distribution over an empty registry.
	ErrNoSplitsDefined = errors.New("split: no splits defined")

	// ErrDistributionMismatch indicates computed payouts do not partition the amount.
	ErrDistributionMismatch = errors.New("split: distributed total does not equal amount")

	// ErrAmountTooLarge indicates the amount would overflow share arithmetic.
	ErrAmountTooLarge = errors.New("split: amount too large for share arithmetic")

	// ErrInvalidRegistryData indicates serialized registry data is malformed.
	ErrInvalidRegistryData = errors.New("split: invalid registry data")
)
