package store

import (
	"time"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/location"
)

// TimeLayout is the timestamp format used everywhere in the workbook.
const TimeLayout = "2006-01-02 15:04:05"

// ItemRecord is one row of a location's item sheet. LastCount is the
// snapshot of NewCount taken at the start of the most recent update;
// NewCount is the live count and never goes below zero.
type ItemRecord struct {
	Name      string
	LastCount int
	NewCount  int
}

// AuditEntry is one row of a location's timestamp sheet. Serial is empty
// for bulk (non-serial) entries; Action then carries the quantity, e.g.
// "add 3". Entries are append-only.
type AuditEntry struct {
	Timestamp time.Time
	Item      string
	Action    string
	Serial    string
}

// SerialAsset is one row of the global All_SANs sheet. Location is a
// derived projection; the per-location audit logs stay authoritative.
type SerialAsset struct {
	Serial       string
	Item         string
	RegisteredAt time.Time
	Location     location.Location // empty when withdrawn or never derived
}

// Dataset is the whole workbook in memory. It is owned by exactly one
// foreground transaction at a time; every mutation is followed by a full
// Save.
type Dataset struct {
	Items map[location.Location][]ItemRecord
	Logs  map[location.Location][]AuditEntry
	SANs  []SerialAsset
}

func NewDataset() *Dataset {
	ds := &Dataset{
		Items: make(map[location.Location][]ItemRecord),
		Logs:  make(map[location.Location][]AuditEntry),
	}
	for _, loc := range location.All() {
		ds.Items[loc] = nil
		ds.Logs[loc] = nil
	}
	return ds
}

// FindItem returns a pointer into the location's item table, or nil if the
// item is not provisioned there.
func (ds *Dataset) FindItem(loc location.Location, name string) *ItemRecord {
	items := ds.Items[loc]
	for i := range items {
		if items[i].Name == name {
			return &items[i]
		}
	}
	return nil
}

func (ds *Dataset) AppendLog(loc location.Location, e AuditEntry) {
	ds.Logs[loc] = append(ds.Logs[loc], e)
}

// FindSAN returns the index of the asset with the given serial, or -1.
func (ds *Dataset) FindSAN(serial string) int {
	for i := range ds.SANs {
		if ds.SANs[i].Serial == serial {
			return i
		}
	}
	return -1
}
