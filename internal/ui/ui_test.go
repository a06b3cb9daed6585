package ui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/domain/ledger"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/domain/sans"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/location"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/store"
)

type nopSaver struct{}

func (nopSaver) Save(*store.Dataset) error { return nil }

func run(t *testing.T, ds *store.Dataset, script string) string {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := sans.NewRegistry(ds)
	upd := ledger.NewUpdater(ds, nopSaver{}, reg, log)
	var out strings.Builder
	u := New(log, ds, reg, upd, t.TempDir(), strings.NewReader(script), &out)
	if err := u.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func testDataset() *store.Dataset {
	ds := store.NewDataset()
	ds.Items[location.Basement42] = []store.ItemRecord{
		{Name: "Laptop G9", LastCount: 2, NewCount: 2},
		{Name: "Cable", LastCount: 5, NewCount: 5},
	}
	return ds
}

func TestAddSerialFlow(t *testing.T) {
	ds := testDataset()
	out := run(t, ds, "add 1 Laptop G9\n12345\nquit\n")

	if !strings.Contains(out, "SAN number for unit 1/1") {
		t.Errorf("missing serial prompt in output:\n%s", out)
	}
	if !strings.Contains(out, "done: add 1 x Laptop G9") {
		t.Errorf("missing completion line in output:\n%s", out)
	}
	if rec := ds.FindItem(location.Basement42, "Laptop G9"); rec.NewCount != 3 {
		t.Errorf("NewCount = %d, want 3", rec.NewCount)
	}
	if len(ds.SANs) != 1 || ds.SANs[0].Serial != "SAN12345" {
		t.Errorf("SANs = %+v", ds.SANs)
	}
}

func TestSerialPromptValidatesLength(t *testing.T) {
	ds := testDataset()
	// Two bad inputs are re-asked at the prompt before a valid one.
	out := run(t, ds, "add 1 Laptop G9\n12\nabcdef\n12345\nquit\n")

	if strings.Count(out, "please enter a valid SAN number") != 2 {
		t.Errorf("expected two re-prompts:\n%s", out)
	}
	if len(ds.SANs) != 1 {
		t.Errorf("SANs = %+v", ds.SANs)
	}
}

func TestCancelSerialEntry(t *testing.T) {
	ds := testDataset()
	out := run(t, ds, "add 2 Laptop G9\n12345\n\nquit\n")

	if !strings.Contains(out, "cancelled with 1 of 2 units entered; 1 abandoned") {
		t.Errorf("missing cancel summary:\n%s", out)
	}
	if rec := ds.FindItem(location.Basement42, "Laptop G9"); rec.NewCount != 3 {
		t.Errorf("NewCount = %d, want 3 (committed unit kept)", rec.NewCount)
	}
}

func TestBulkUpdateAndLocationSwitch(t *testing.T) {
	ds := testDataset()
	ds.Items[location.Darwin] = []store.ItemRecord{{Name: "Headset", NewCount: 1}}
	out := run(t, ds, "loc Darwin\nadd 4 Headset\nquit\n")

	if !strings.Contains(out, "now at Darwin") {
		t.Errorf("location switch missing:\n%s", out)
	}
	if rec := ds.FindItem(location.Darwin, "Headset"); rec.NewCount != 5 {
		t.Errorf("NewCount = %d, want 5", rec.NewCount)
	}
}

func TestBadQuantityRejectedBeforePrompting(t *testing.T) {
	ds := testDataset()
	out := run(t, ds, "add zero Cable\nsub 0 Cable\nquit\n")

	if strings.Count(out, "quantity must be a positive number") != 2 {
		t.Errorf("expected two validation messages:\n%s", out)
	}
	if rec := ds.FindItem(location.Basement42, "Cable"); rec.NewCount != 5 {
		t.Errorf("NewCount = %d, want 5", rec.NewCount)
	}
}
