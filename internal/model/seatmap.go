package model

import (
	"errors"
	"sort"
)

// Errors returned by SelectSeat. Handlers turn these into flash messages.
var (
	ErrSeatUnknown       = errors.New("seat not found")
	ErrSeatNotSelectable = errors.New("seat is not available")
)

// SectionGrid is one section laid out as a dense row/column grid. Cells with
// no seat at that position are nil, so templates can render spacer cells.
type SectionGrid struct {
	Section string
	Rows    [][]*Seat
}

// BuildSeatMap groups seats by section and arranges each section into a grid
// sized by the section's maximum row and column. Sections come back sorted by
// name. Seats with out-of-range coordinates are dropped rather than panicking
// the page.
func BuildSeatMap(seats []Seat) []SectionGrid {
	bySection := make(map[string][]Seat)
	for _, s := range seats {
		bySection[s.Section] = append(bySection[s.Section], s)
	}

	names := make([]string, 0, len(bySection))
	for name := range bySection {
		names = append(names, name)
	}
	sort.Strings(names)

	grids := make([]SectionGrid, 0, len(names))
	for _, name := range names {
		group := bySection[name]
		maxRow, maxCol := 0, 0
		for _, s := range group {
			if s.Row > maxRow {
				maxRow = s.Row
			}
			if s.Col > maxCol {
				maxCol = s.Col
			}
		}
		rows := make([][]*Seat, maxRow)
		for i := range rows {
			rows[i] = make([]*Seat, maxCol)
		}
		for i := range group {
			s := &group[i]
			if s.Row < 1 || s.Col < 1 {
				continue
			}
			rows[s.Row-1][s.Col-1] = s
		}
		grids = append(grids, SectionGrid{Section: name, Rows: rows})
	}
	return grids
}

// SectionNames returns the distinct section names in sorted order, for the
// section filter chips.
func SectionNames(seats []Seat) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range seats {
		if !seen[s.Section] {
			seen[s.Section] = true
			names = append(names, s.Section)
		}
	}
	sort.Strings(names)
	return names
}

// FilterSection keeps only seats in the named section. An empty name means
// all sections.
func FilterSection(seats []Seat, section string) []Seat {
	if section == "" {
		return seats
	}
	var out []Seat
	for _, s := range seats {
		if s.Section == section {
			out = append(out, s)
		}
	}
	return out
}

// AvailableCount counts seats open for sale; capacity events book against
// this number instead of a seat id.
func AvailableCount(seats []Seat) int {
	n := 0
	for _, s := range seats {
		if s.Status == SeatAvailable {
			n++
		}
	}
	return n
}

// SelectSeat resolves a requested seat id against the seat list. Unknown ids
// and seats that are not AVAILABLE are rejected.
func SelectSeat(seats []Seat, seatID int64) (*Seat, error) {
	for i := range seats {
		if seats[i].SeatID == seatID {
			if !seats[i].Selectable() {
				return nil, ErrSeatNotSelectable
			}
			return &seats[i], nil
		}
	}
	return nil, ErrSeatUnknown
}

// ToggleSeat implements single-seat selection: picking the already-selected
// seat clears the selection, picking another replaces it.
func ToggleSeat(selected, clicked int64) int64 {
	if selected == clicked {
		return 0
	}
	return clicked
}
