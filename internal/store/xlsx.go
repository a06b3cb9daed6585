package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/location"
)

const sansSheet = "All_SANs"

// Store persists a whole Dataset to a single xlsx workbook. There is no
// partial save: every mutation rewrites the complete workbook.
type Store struct {
	path string
}

func New(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

// Load reads the entire workbook into memory. A missing file is
// ErrNotFound; a missing sheet is ErrFormat.
func (s *Store) Load() (*Dataset, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("workbook %s: %w", s.path, ErrNotFound)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	ds := NewDataset()
	for _, loc := range location.All() {
		items, err := sheetRows(f, loc.ItemsSheet())
		if err != nil {
			return nil, err
		}
		for _, row := range items {
			if cell(row, 0) == "" {
				continue
			}
			ds.Items[loc] = append(ds.Items[loc], ItemRecord{
				Name:      cell(row, 0),
				LastCount: parseCount(cell(row, 1)),
				NewCount:  parseCount(cell(row, 2)),
			})
		}

		logs, err := sheetRows(f, loc.TimestampsSheet())
		if err != nil {
			return nil, err
		}
		for _, row := range logs {
			if cell(row, 0) == "" && cell(row, 1) == "" {
				continue
			}
			ds.Logs[loc] = append(ds.Logs[loc], AuditEntry{
				Timestamp: parseTime(cell(row, 0)),
				Item:      cell(row, 1),
				Action:    cell(row, 2),
				Serial:    cell(row, 3),
			})
		}
	}

	sans, err := sheetRows(f, sansSheet)
	if err != nil {
		return nil, err
	}
	for _, row := range sans {
		if cell(row, 0) == "" {
			continue
		}
		asset := SerialAsset{
			Serial:       cell(row, 0),
			Item:         cell(row, 1),
			RegisteredAt: parseTime(cell(row, 2)),
		}
		// Column D may be absent on workbooks that predate the location
		// projection; Reconcile fills it in.
		if loc, err := location.Parse(cell(row, 3)); err == nil {
			asset.Location = loc
		}
		ds.SANs = append(ds.SANs, asset)
	}
	return ds, nil
}

// Save serializes the whole dataset and replaces the workbook via a temp
// file in the same directory plus rename, so readers never observe a
// partially written file.
func (s *Store) Save(ds *Dataset) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, loc := range location.All() {
		if err := writeSheet(f, loc.ItemsSheet(),
			[]interface{}{"Item", "LastCount", "NewCount"},
			len(ds.Items[loc]), func(i int) []interface{} {
				it := ds.Items[loc][i]
				return []interface{}{it.Name, it.LastCount, it.NewCount}
			}); err != nil {
			return fmt.Errorf("save %s: %w", loc.ItemsSheet(), err)
		}
		if err := writeSheet(f, loc.TimestampsSheet(),
			[]interface{}{"Timestamp", "Item", "Action", "SAN Number"},
			len(ds.Logs[loc]), func(i int) []interface{} {
				e := ds.Logs[loc][i]
				return []interface{}{e.Timestamp.Format(TimeLayout), e.Item, e.Action, e.Serial}
			}); err != nil {
			return fmt.Errorf("save %s: %w", loc.TimestampsSheet(), err)
		}
	}
	if err := writeSheet(f, sansSheet,
		[]interface{}{"SAN Number", "Item", "Time", "Location"},
		len(ds.SANs), func(i int) []interface{} {
			a := ds.SANs[i]
			return []interface{}{a.Serial, a.Item, a.RegisteredAt.Format(TimeLayout), string(a.Location)}
		}); err != nil {
		return fmt.Errorf("save %s: %w", sansSheet, err)
	}

	// The default sheet is only there because excelize requires one.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("persist workbook: %w", err)
	}
	tmpName := tmp.Name()
	_ = tmp.Close()
	if err := f.SaveAs(tmpName); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("persist workbook: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("persist workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []interface{}, n int, row func(int) []interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row(i)
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return err
		}
	}
	return nil
}

func sheetRows(f *excelize.File, name string) ([][]string, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx == -1 {
		return nil, fmt.Errorf("sheet %q missing: %w", name, ErrFormat)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil // skip header
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseCount(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Numeric cells occasionally come back as floats ("3.0").
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int(v)
	}
	return 0
}

func parseTime(s string) time.Time {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
