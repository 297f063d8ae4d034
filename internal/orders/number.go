package orders

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// newNumber builds a human-readable order number: prefix, 4-digit year and a
// zero-padded random 4-digit suffix, e.g. LMN-2025-0423. Uniqueness is
// enforced by the repository, not by this format.
func newNumber(prefix string) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().Year(), rand.IntN(10000))
}
