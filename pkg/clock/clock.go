// Package clock provides the notion of current time used by the vault.
package clock

import (
	"time"
)

// Clock supplies the current timestamp used as "now" in every vault operation.
// Implementations must be monotonically non-decreasing across operations.
type Clock interface {
	Now() time.Time
}
