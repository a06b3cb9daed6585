// Package sans maintains the global registry of serial-numbered assets
// (SANs) and derives their current location from the per-location audit
// logs.
package sans

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/location"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/store"
)

var (
	ErrBadSerial       = errors.New("invalid SAN number")
	ErrDuplicateSerial = errors.New("duplicate or already used SAN number")
	ErrUnmatchedSerial = errors.New("no matching SAN at this location")
)

const prefix = "SAN"

// Normalize canonicalizes operator input. A bare run of 5-6 digits gains
// the SAN prefix; an already prefixed number passes through. All
// comparisons downstream are exact-string on the normalized form.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	digits := strings.TrimPrefix(raw, prefix)
	if len(digits) < 5 || len(digits) > 6 {
		return "", fmt.Errorf("%w: %q", ErrBadSerial, raw)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("%w: %q", ErrBadSerial, raw)
		}
	}
	return prefix + digits, nil
}

// Registry answers uniqueness and location queries over the shared
// dataset. It holds a handle to the one live Dataset, never a copy.
type Registry struct {
	ds *store.Dataset
}

func NewRegistry(ds *store.Dataset) *Registry { return &Registry{ds: ds} }

// IsUnique reports whether no asset across any location carries the
// normalized serial.
func (r *Registry) IsUnique(serial string) bool {
	return r.ds.FindSAN(serial) == -1
}

// Register appends a new asset record for the supplying location. The
// serial must already be normalized.
func (r *Registry) Register(loc location.Location, serial, item string, at time.Time) error {
	if !r.IsUnique(serial) {
		return fmt.Errorf("%s: %w", serial, ErrDuplicateSerial)
	}
	r.ds.SANs = append(r.ds.SANs, store.SerialAsset{
		Serial:       serial,
		Item:         item,
		RegisteredAt: at,
		Location:     loc,
	})
	return nil
}

// Withdraw removes the asset matching (serial, item) at the given
// location. No match is a reported, non-fatal error: the caller skips that
// unit and carries on.
func (r *Registry) Withdraw(loc location.Location, serial, item string) error {
	for i := range r.ds.SANs {
		a := r.ds.SANs[i]
		if a.Serial == serial && a.Item == item && a.Location == loc {
			r.ds.SANs = append(r.ds.SANs[:i], r.ds.SANs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%s (%s): %w", serial, item, ErrUnmatchedSerial)
}

// LocationOf derives the serial's current location from the audit logs:
// the first location, in enum order, whose log shows the serial as still
// present. False means withdrawn or never registered.
func (r *Registry) LocationOf(serial string) (location.Location, bool) {
	if r.ds.FindSAN(serial) == -1 {
		return "", false
	}
	for _, loc := range location.All() {
		if presentAt(r.ds, loc, serial) {
			return loc, true
		}
	}
	return "", false
}

// presentAt reports whether the location's log leaves the serial in stock:
// the most recent entry naming it is an add.
func presentAt(ds *store.Dataset, loc location.Location, serial string) bool {
	logs := ds.Logs[loc]
	for i := len(logs) - 1; i >= 0; i-- {
		if logs[i].Serial == serial {
			return strings.HasPrefix(logs[i].Action, "add")
		}
	}
	return false
}
