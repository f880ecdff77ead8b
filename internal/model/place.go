package model

// PlaceSection describes one seating block of a venue.
type PlaceSection struct {
	SectionName string `json:"sectionName"`
	RowCount    int    `json:"rowCount"`
	ColCount    int    `json:"colCount"`
}

// Place is a venue with its seating sections.
type Place struct {
	PlaceID   int64          `json:"placeId"`
	PlaceName string         `json:"placeName"`
	Address   string         `json:"address"`
	Sections  []PlaceSection `json:"sections"`
}

// CreatePlace is the body of POST /place/create.
type CreatePlace struct {
	PlaceName string         `json:"placeName"`
	Address   string         `json:"address"`
	Sections  []PlaceSection `json:"sections"`
}
