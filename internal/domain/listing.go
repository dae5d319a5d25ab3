package domain

import "time"

// SearchRequest is the caller-supplied input of one FullSearch call.
// Latitude and Longitude are either both set or both nil.
type SearchRequest struct {
	Location  string
	PageSize  int
	CheckIn   time.Time
	CheckOut  time.Time
	Latitude  *float64
	Longitude *float64
}

// HasCoords reports whether the search is driven by explicit coordinates.
func (r SearchRequest) HasCoords() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ListingRecord is one flattened search result row.
type ListingRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	PageName      string `json:"pageName"`
	AmountPerStay string `json:"amountPerStay"`
}

// Row returns the record in CSV column order.
func (l ListingRecord) Row() []string {
	return []string{l.ID, l.Title, l.PageName, l.AmountPerStay}
}

// ArchivedListing is a ListingRecord together with the search it came from.
type ArchivedListing struct {
	ListingRecord
	Location  string    `json:"location"`
	CheckIn   string    `json:"checkin"`
	CheckOut  string    `json:"checkout"`
	FetchedAt time.Time `json:"fetchedAt"`
}
