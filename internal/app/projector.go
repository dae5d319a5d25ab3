package app

import (
	"encoding/json"
	"strconv"

	"booking_listings/internal/domain"
)

// DefaultSentinel is written for any field the response does not carry.
const DefaultSentinel = "N/A"

/********** field paths (single source of truth) **********/

var resultsPath = []string{"data", "searchQueries", "search", "results"}

var (
	idPath       = []string{"basicPropertyData", "id"}
	titlePath    = []string{"displayName", "text"}
	pageNamePath = []string{"basicPropertyData", "pageName"}
	amountPath   = []string{"priceDisplayInfoIrene", "displayPrice", "amountPerStay", "amount"}
)

/********** tiny helpers **********/

// lookupPath walks nested JSON objects key by key. ok is false when any hop is
// missing, null or not an object.
func lookupPath(root any, keys ...string) (any, bool) {
	cur := root
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := obj[k]
		if !ok || v == nil {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// scalarText renders a JSON leaf as text. Objects, arrays and null are not leaves.
func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

/********** projector **********/

// Projector flattens FullSearch responses into ListingRecords.
type Projector struct {
	Sentinel string
}

func NewProjector(sentinel string) Projector {
	return Projector{Sentinel: sentinel}
}

// Project never fails: missing structure yields no records, missing fields the sentinel.
// Output order follows data.searchQueries.search.results.
func (p Projector) Project(resp any) []domain.ListingRecord {
	raw, ok := lookupPath(resp, resultsPath...)
	if !ok {
		return []domain.ListingRecord{}
	}
	results, ok := raw.([]any)
	if !ok {
		return []domain.ListingRecord{}
	}

	out := make([]domain.ListingRecord, 0, len(results))
	for _, item := range results {
		out = append(out, domain.ListingRecord{
			ID:            p.field(item, idPath),
			Title:         p.field(item, titlePath),
			PageName:      p.field(item, pageNamePath),
			AmountPerStay: p.field(item, amountPath),
		})
	}
	return out
}

func (p Projector) field(item any, path []string) string {
	v, ok := lookupPath(item, path...)
	if !ok {
		return p.Sentinel
	}
	if s, ok := scalarText(v); ok {
		return s
	}
	return p.Sentinel
}

// CountSentinels reports how many fields of rs fell back to the sentinel.
func (p Projector) CountSentinels(rs []domain.ListingRecord) int {
	n := 0
	for _, r := range rs {
		for _, f := range r.Row() {
			if f == p.Sentinel {
				n++
			}
		}
	}
	return n
}
