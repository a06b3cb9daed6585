package ledger

import "strings"

type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
)

// Serial-tracked items are the laptop generations that carry an asset
// number; everything else is bulk-counted.
var serialPatterns = []string{"G8", "G9", "G10"}

// SerialTracked reports whether units of the item must each supply a SAN.
func SerialTracked(item string) bool {
	for _, p := range serialPatterns {
		if strings.Contains(item, p) {
			return true
		}
	}
	return false
}

// Reject is one unit skipped during serial collection; the transaction
// carries on with the remaining units.
type Reject struct {
	Serial string
	Err    error
}

// Result reports what a transaction actually did. For serial-tracked items
// Committed may fall short of Requested: the operator cancelled (Cancelled,
// Abandoned > 0) or some identifiers were rejected. Already-committed units
// are never rolled back.
type Result struct {
	Requested int
	Committed int
	Abandoned int
	Cancelled bool
	Rejected  []Reject
}
