package sans

import (
	"strings"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/location"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/store"
)

// Conflict records a serial whose audit logs show it present at more than
// one location at once. That only happens if uniqueness was bypassed (for
// example by hand-editing the workbook); the first location in enum order
// wins for the projection, but the drift is reported instead of masked.
type Conflict struct {
	Serial    string
	Locations []location.Location
}

// Reconcile recomputes the derived Location column of every asset from the
// per-location audit logs. It is idempotent: with no intervening mutation a
// second pass changes nothing. The batch form exists to repair rows that
// predate location tracking or were edited outside the normal update path.
func (r *Registry) Reconcile() []Conflict {
	var conflicts []Conflict
	for i := range r.ds.SANs {
		a := &r.ds.SANs[i]
		var present []location.Location
		for _, loc := range location.All() {
			if presentAt(r.ds, loc, a.Serial) {
				present = append(present, loc)
			}
		}
		switch len(present) {
		case 0:
			// No log evidence. Rows imported before audit logging keep
			// whatever location the sheet already carried.
		case 1:
			a.Location = present[0]
		default:
			a.Location = present[0]
			conflicts = append(conflicts, Conflict{Serial: a.Serial, Locations: present})
		}
	}
	return conflicts
}

// Snapshot runs a reconcile pass and returns a copy of the asset table,
// optionally filtered by a case-insensitive substring of the serial. Backs
// the "SANs In Stock" listing.
func (r *Registry) Snapshot(filter string) ([]store.SerialAsset, []Conflict) {
	conflicts := r.Reconcile()
	filter = strings.ToLower(filter)
	out := make([]store.SerialAsset, 0, len(r.ds.SANs))
	for _, a := range r.ds.SANs {
		if filter == "" || strings.Contains(strings.ToLower(a.Serial), filter) {
			out = append(out, a)
		}
	}
	return out, conflicts
}
