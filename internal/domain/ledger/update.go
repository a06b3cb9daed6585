// Package ledger implements the count-update transaction: the one path by
// which item counts, the SAN registry and the audit logs change together.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/domain/sans"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/infra/metrics"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/location"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/store"
)

// SerialSource supplies one raw identifier per unit during serial
// collection. ok=false means the operator cancelled the remaining units;
// units already committed stay committed.
type SerialSource interface {
	Next() (raw string, ok bool)
}

// Saver persists the whole dataset. *store.Store implements it.
type Saver interface {
	Save(*store.Dataset) error
}

// Updater runs count-update transactions against the shared dataset.
// Single-writer: a transaction runs to completion, including its
// interactive serial prompts, before the next one may start.
type Updater struct {
	ds  *store.Dataset
	st  Saver
	reg *sans.Registry
	log *slog.Logger
	now func() time.Time
}

func NewUpdater(ds *store.Dataset, st Saver, reg *sans.Registry, log *slog.Logger) *Updater {
	return &Updater{ds: ds, st: st, reg: reg, log: log, now: time.Now}
}

// Update applies one operator transaction: (location, item, operation,
// quantity). For serial-tracked items each unit pulls one identifier from
// src; every accepted identifier is registered, logged and persisted
// before the next prompt, so a later cancel keeps what was entered. The
// effective quantity applied to the count is the number of units that
// actually went through.
func (u *Updater) Update(ctx context.Context, loc location.Location, item string, op Operation, qty int, src SerialSource) (Result, error) {
	res := Result{Requested: qty}
	if op != OpAdd && op != OpSubtract {
		return res, fmt.Errorf("unknown operation %q", op)
	}
	if qty <= 0 {
		return res, fmt.Errorf("quantity must be a positive number, got %d", qty)
	}
	rec := u.ds.FindItem(loc, item)
	if rec == nil {
		return res, fmt.Errorf("item %q at %s: %w", item, loc.Label(), store.ErrNotFound)
	}

	tracked := SerialTracked(item)
	if tracked {
		if src == nil {
			return res, errors.New("serial-tracked item needs a serial source")
		}
		if err := u.collectSerials(ctx, loc, item, op, qty, src, &res); err != nil {
			return res, err
		}
	}

	// APPLY_COUNT: snapshot, then move by the effective quantity.
	// Subtraction clamps at zero.
	eff := qty
	if tracked {
		eff = res.Committed
	}
	rec.LastCount = rec.NewCount
	applied := eff
	switch op {
	case OpAdd:
		rec.NewCount += eff
	case OpSubtract:
		if applied > rec.NewCount {
			applied = rec.NewCount
		}
		rec.NewCount -= applied
	}
	if !tracked {
		res.Committed = applied
	} else {
		res.Abandoned = res.Requested - res.Committed
	}

	// One aggregate entry per transaction, on top of any per-serial
	// entries already appended during collection.
	if !tracked || res.Committed > 0 {
		u.ds.AppendLog(loc, store.AuditEntry{
			Timestamp: u.now(),
			Item:      item,
			Action:    fmt.Sprintf("%s %d", op, applied),
		})
	}

	if err := u.save(); err != nil {
		return res, err
	}

	metrics.Transactions.WithLabelValues(string(op)).Inc()
	u.log.Info("count updated",
		"location", string(loc), "item", item, "op", string(op),
		"requested", res.Requested, "committed", res.Committed,
		"last", rec.LastCount, "new", rec.NewCount)
	return res, nil
}

// collectSerials is the COLLECT_SERIALS state: one identifier per unit
// until the requested quantity is reached or the operator cancels.
// Rejected identifiers (bad format, duplicate, unmatched) skip that unit
// and the loop re-prompts; they never unwind committed units.
func (u *Updater) collectSerials(ctx context.Context, loc location.Location, item string, op Operation, qty int, src SerialSource, res *Result) error {
	for res.Committed < qty {
		if err := ctx.Err(); err != nil {
			res.Cancelled = true
			return nil
		}
		raw, ok := src.Next()
		if !ok {
			res.Cancelled = true
			return nil
		}
		serial, err := sans.Normalize(raw)
		if err != nil {
			u.reject(res, raw, err, "format")
			continue
		}

		now := u.now()
		switch op {
		case OpAdd:
			if err := u.reg.Register(loc, serial, item, now); err != nil {
				u.reject(res, serial, err, "duplicate")
				continue
			}
		case OpSubtract:
			if err := u.reg.Withdraw(loc, serial, item); err != nil {
				u.reject(res, serial, err, "unmatched")
				continue
			}
		}
		u.ds.AppendLog(loc, store.AuditEntry{
			Timestamp: now,
			Item:      item,
			Action:    string(op),
			Serial:    serial,
		})
		// Persist each accepted unit immediately so a cancel or crash
		// later in the transaction cannot lose it.
		if err := u.save(); err != nil {
			return err
		}
		res.Committed++
	}
	return nil
}

func (u *Updater) reject(res *Result, serial string, err error, reason string) {
	res.Rejected = append(res.Rejected, Reject{Serial: serial, Err: err})
	metrics.SerialRejects.WithLabelValues(reason).Inc()
	u.log.Warn("serial rejected", "serial", serial, "err", err)
}

func (u *Updater) save() error {
	if err := u.st.Save(u.ds); err != nil {
		return fmt.Errorf("persist dataset: %w", err)
	}
	metrics.Saves.Inc()
	return nil
}
