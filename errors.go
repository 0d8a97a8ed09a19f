package attribution

import (
	"github.com/refparse/attribution/referrers"
)

// Sentinel errors for construction-time failures, usable with errors.Is().
// Classification itself never returns an error: malformed input degrades to
// the direct or referral fallbacks instead of failing the call.
var (
	// ErrInvalidDataset indicates the referrer dataset could not be parsed.
	ErrInvalidDataset = referrers.ErrInvalidDataset

	// ErrEmptyDataset indicates the referrer dataset contained no domains.
	ErrEmptyDataset = referrers.ErrEmptyDataset
)
