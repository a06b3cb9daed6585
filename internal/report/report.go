// Package report renders per-location-set inventory level charts from a
// loaded dataset. Each report is a small workbook with the summed counts
// and an embedded horizontal bar chart, written under the Plots folder
// next to the live workbook.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m4cd4r4/Assets-App-WA-Region/internal/location"
	"github.com/m4cd4r4/Assets-App-WA-Region/internal/store"
)

const dataSheet = "Inventory"

// Set is a named group of locations charted together.
type Set struct {
	Name      string
	Title     string
	Locations []location.Location
}

var sets = []Set{
	{"basement", "Basement 4.2 Inventory Levels", []location.Location{location.Basement42}},
	{"buildroom", "Build Room Inventory Levels", []location.Location{location.BuildRoom}},
	{"darwin", "Darwin Inventory Levels", []location.Location{location.Darwin}},
	{"combined", "Total (combined) Inventory Levels (Perth)", []location.Location{location.Basement42, location.BuildRoom}},
}

func SetNames() []string {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return names
}

func findSet(name string) (Set, error) {
	for _, s := range sets {
		if s.Name == name {
			return s, nil
		}
	}
	return Set{}, fmt.Errorf("unknown report set %q", name)
}

// Build sums NewCount per item across the set's locations and returns a
// workbook with the table and a bar chart. Items are sorted by name.
func Build(ds *store.Dataset, setName string, at time.Time) (*excelize.File, error) {
	set, err := findSet(setName)
	if err != nil {
		return nil, err
	}

	totals := map[string]int{}
	var order []string
	for _, loc := range set.Locations {
		for _, it := range ds.Items[loc] {
			if _, seen := totals[it.Name]; !seen {
				order = append(order, it.Name)
			}
			totals[it.Name] += it.NewCount
		}
	}
	sort.Strings(order)

	f := excelize.NewFile()
	if _, err := f.NewSheet(dataSheet); err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	header := []interface{}{"Item", "Volume"}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, name := range order {
		row := []interface{}{name, totals[name]}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if len(order) > 0 {
		title := fmt.Sprintf("%s - %s", set.Title, at.Format("02-01-2006"))
		last := len(order) + 1
		chart := &excelize.Chart{
			Type: excelize.Bar,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$B$1", dataSheet),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", dataSheet, last),
			}},
			Title:    []excelize.RichTextRun{{Text: title}},
			Legend:   excelize.ChartLegend{Position: "none"},
			PlotArea: excelize.ChartPlotArea{ShowVal: true},
		}
		if err := f.AddChart(dataSheet, "D2", chart); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Write builds the set's report and saves it under
// <plotsDir>/<dd-mm-yyyy>/<set>_inventory_levels_<HH.MM.SS>.xlsx, the
// layout the old report scripts used.
func Write(ds *store.Dataset, setName, plotsDir string) (string, error) {
	now := time.Now()
	f, err := Build(ds, setName, now)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	dir := filepath.Join(plotsDir, now.Format("02-01-2006"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_inventory_levels_%s.xlsx", setName, now.Format("15.04.05")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}
