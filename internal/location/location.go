package location

import "fmt"

// Location is one of the fixed physical stock sites. Each location owns
// exactly one item sheet and one timestamp (audit) sheet in the workbook.
type Location string

const (
	Basement42 Location = "4.2"
	BuildRoom  Location = "BR"
	Level17    Location = "L17"
	Basement43 Location = "B4.3"
	Darwin     Location = "Darwin"
)

type sheets struct {
	items      string
	timestamps string
	label      string
}

var table = map[Location]sheets{
	Basement42: {"4.2_Items", "4.2_Timestamps", "Basement 4.2"},
	BuildRoom:  {"BR_Items", "BR_Timestamps", "Build Room"},
	Level17:    {"L17_Items", "L17_Timestamps", "Level 17"},
	Basement43: {"B4.3_Items", "B4.3_Timestamps", "Basement 4.3"},
	Darwin:     {"Darwin_Items", "Darwin_Timestamps", "Darwin"},
}

// All returns every location in a stable order. Reconciliation and the
// workbook layout both depend on this order staying fixed.
func All() []Location {
	return []Location{Basement42, BuildRoom, Level17, Basement43, Darwin}
}

// ItemsSheet returns the name of the workbook sheet holding the location's
// item counts.
func (l Location) ItemsSheet() string { return table[l].items }

// TimestampsSheet returns the name of the workbook sheet holding the
// location's audit log.
func (l Location) TimestampsSheet() string { return table[l].timestamps }

// Label is the operator-facing site name.
func (l Location) Label() string { return table[l].label }

func (l Location) Valid() bool {
	_, ok := table[l]
	return ok
}

// Parse accepts either the short code ("4.2", "BR", ...) or the label
// ("Basement 4.2", ...), case-sensitive on codes.
func Parse(s string) (Location, error) {
	l := Location(s)
	if l.Valid() {
		return l, nil
	}
	for loc, sh := range table {
		if sh.label == s {
			return loc, nil
		}
	}
	return "", fmt.Errorf("unknown location %q", s)
}
