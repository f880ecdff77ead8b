package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeats() []Seat {
	return []Seat{
		{SeatID: 1, Section: "B", Row: 1, Col: 1, Status: SeatAvailable},
		{SeatID: 2, Section: "B", Row: 2, Col: 3, Status: SeatSold},
		{SeatID: 3, Section: "A", Row: 1, Col: 1, Status: SeatAvailable},
		{SeatID: 4, Section: "A", Row: 1, Col: 2, Status: SeatReserved},
		{SeatID: 5, Section: "A", Row: 2, Col: 2, Status: SeatAvailable},
	}
}

func TestBuildSeatMap(t *testing.T) {
	grids := BuildSeatMap(testSeats())
	require.Len(t, grids, 2)

	// Sections sorted by name.
	assert.Equal(t, "A", grids[0].Section)
	assert.Equal(t, "B", grids[1].Section)

	// Section A sized by its own max row/col.
	a := grids[0]
	require.Len(t, a.Rows, 2)
	require.Len(t, a.Rows[0], 2)
	require.NotNil(t, a.Rows[0][0])
	assert.Equal(t, int64(3), a.Rows[0][0].SeatID)
	assert.Nil(t, a.Rows[1][0], "missing position stays empty")

	// Section B has a 2x3 grid with only two occupied cells.
	b := grids[1]
	require.Len(t, b.Rows, 2)
	require.Len(t, b.Rows[0], 3)
	require.NotNil(t, b.Rows[1][2])
	assert.Equal(t, int64(2), b.Rows[1][2].SeatID)
}

func TestBuildSeatMapDropsBadCoordinates(t *testing.T) {
	grids := BuildSeatMap([]Seat{
		{SeatID: 1, Section: "A", Row: 0, Col: 0, Status: SeatAvailable},
		{SeatID: 2, Section: "A", Row: 1, Col: 1, Status: SeatAvailable},
	})
	require.Len(t, grids, 1)
	require.Len(t, grids[0].Rows, 1)
	assert.Equal(t, int64(2), grids[0].Rows[0][0].SeatID)
}

func TestToggleSeat(t *testing.T) {
	// Selecting A then A again clears the selection.
	assert.Equal(t, int64(0), ToggleSeat(7, 7))
	// Selecting A then B keeps only B.
	assert.Equal(t, int64(9), ToggleSeat(7, 9))
	// Fresh selection.
	assert.Equal(t, int64(7), ToggleSeat(0, 7))
}

func TestSelectSeat(t *testing.T) {
	seats := testSeats()

	s, err := SelectSeat(seats, 3)
	require.NoError(t, err)
	assert.Equal(t, "A", s.Section)

	_, err = SelectSeat(seats, 4)
	assert.ErrorIs(t, err, ErrSeatNotSelectable)

	_, err = SelectSeat(seats, 99)
	assert.ErrorIs(t, err, ErrSeatUnknown)
}

func TestAvailableCountAndFilter(t *testing.T) {
	seats := testSeats()
	assert.Equal(t, 3, AvailableCount(seats))
	assert.Equal(t, []string{"A", "B"}, SectionNames(seats))
	assert.Len(t, FilterSection(seats, "A"), 3)
	assert.Len(t, FilterSection(seats, ""), 5)
	assert.Equal(t, 2, AvailableCount(FilterSection(seats, "A")))
}
