package booking_test

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"testing"
	"time"

	"booking_listings/internal/adapters/booking"
	"booking_listings/internal/domain"
)

func pfloat(f float64) *float64 { return &f }

func validReq() domain.SearchRequest {
	return domain.SearchRequest{
		Location: "Bangalore",
		PageSize: 20,
		CheckIn:  time.Date(2025, 3, 27, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 3, 29, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildRequest_InvalidArguments(t *testing.T) {
	cases := map[string]func(r *domain.SearchRequest){
		"empty location":     func(r *domain.SearchRequest) { r.Location = "" },
		"blank location":     func(r *domain.SearchRequest) { r.Location = "   " },
		"zero page size":     func(r *domain.SearchRequest) { r.PageSize = 0 },
		"negative page size": func(r *domain.SearchRequest) { r.PageSize = -5 },
		"latitude only":      func(r *domain.SearchRequest) { r.Latitude = pfloat(12.9716) },
		"longitude only":     func(r *domain.SearchRequest) { r.Longitude = pfloat(77.5946) },
		"nan latitude":       func(r *domain.SearchRequest) { r.Latitude, r.Longitude = pfloat(math.NaN()), pfloat(1) },
		"inf longitude":      func(r *domain.SearchRequest) { r.Latitude, r.Longitude = pfloat(1), pfloat(math.Inf(1)) },
		"missing dates":      func(r *domain.SearchRequest) { r.CheckIn = time.Time{} },
		"checkout before in": func(r *domain.SearchRequest) { r.CheckOut = r.CheckIn.Add(-24 * time.Hour) },
		"checkout same day":  func(r *domain.SearchRequest) { r.CheckOut = r.CheckIn },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := validReq()
			mutate(&r)
			_, err := booking.BuildRequest(r)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestBuildRequest_Coordinates(t *testing.T) {
	r := validReq()
	r.Latitude, r.Longitude = pfloat(12.9716), pfloat(77.5946)

	p, err := booking.BuildRequest(r)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	loc := p.Variables.Input.Location
	if loc.DestType != domain.DestTypeLatLong {
		t.Fatalf("destType: got %q", loc.DestType)
	}
	if loc.Latitude == nil || *loc.Latitude != 12.9716 || loc.Longitude == nil || *loc.Longitude != 77.5946 {
		t.Fatalf("coordinates not embedded verbatim: %+v", loc)
	}
	if loc.SearchString != "Bangalore" {
		t.Fatalf("searchString: got %q", loc.SearchString)
	}

	// mutating the caller's values must not leak into the payload
	*r.Latitude = 0
	if *loc.Latitude != 12.9716 {
		t.Fatalf("payload aliases caller latitude")
	}
}

func TestBuildRequest_TextSearch(t *testing.T) {
	p, err := booking.BuildRequest(validReq())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	loc := m["variables"].(map[string]any)["input"].(map[string]any)["location"].(map[string]any)
	if loc["destType"] != domain.DestTypeText {
		t.Fatalf("destType: got %v", loc["destType"])
	}
	if _, ok := loc["latitude"]; ok {
		t.Fatalf("latitude must be absent in text search: %v", loc)
	}
	if loc["searchString"] != "Bangalore" {
		t.Fatalf("searchString: got %v", loc["searchString"])
	}
}

func TestBuildRequest_StaticTemplate(t *testing.T) {
	r := validReq()
	r.PageSize = 7
	p, err := booking.BuildRequest(r)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, _ := json.Marshal(p)
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if m["operationName"] != "FullSearch" {
		t.Fatalf("operationName: %v", m["operationName"])
	}
	if ext, ok := m["extensions"].(map[string]any); !ok || len(ext) != 0 {
		t.Fatalf("extensions must be an empty object: %v", m["extensions"])
	}
	vars := m["variables"].(map[string]any)
	if vars["carouselLowCodeExp"] != false {
		t.Fatalf("carouselLowCodeExp: %v", vars["carouselLowCodeExp"])
	}
	in := vars["input"].(map[string]any)

	pg := in["pagination"].(map[string]any)
	if pg["rowsPerPage"] != float64(7) || pg["offset"] != float64(0) {
		t.Fatalf("pagination: %v", pg)
	}
	dates := in["dates"].(map[string]any)
	if dates["checkin"] != "2025-03-27" || dates["checkout"] != "2025-03-29" {
		t.Fatalf("dates: %v", dates)
	}
	drc := in["flexibleDatesConfig"].(map[string]any)["dateRangeCalendar"].(map[string]any)
	if drc["checkin"].([]any)[0] != "2025-03-27" || drc["checkout"].([]any)[0] != "2025-03-29" {
		t.Fatalf("dateRangeCalendar: %v", drc)
	}

	want := map[string]any{
		"nbRooms":                    float64(1),
		"nbAdults":                   float64(1),
		"nbChildren":                 float64(0),
		"travelPurpose":              float64(2),
		"enableCampaigns":            true,
		"showAparthotelAsHotel":      true,
		"useSearchParamsFromSession": true,
		"doAvailabilityCheck":        false,
		"needsRoomsMatch":            false,
		"sbCalendarOpen":             false,
		"acidCarouselContext":        nil,
		"forcedBlocks":               nil,
		"referrerBlock":              nil,
		"encodedAutocompleteMeta":    nil,
	}
	for k, v := range want {
		got, ok := in[k]
		if !ok || got != v {
			t.Errorf("%s: want %v, got %v (present=%v)", k, v, got, ok)
		}
	}
	for _, k := range []string{"childrenAges", "selectedFilterSources", "seoThemeIds"} {
		arr, ok := in[k].([]any)
		if !ok || len(arr) != 0 {
			t.Errorf("%s must be an empty array, got %v", k, in[k])
		}
	}
}

func TestBuildRequest_QueryDocumentVerbatim(t *testing.T) {
	raw, err := os.ReadFile("fullsearch.graphql")
	if err != nil {
		t.Fatalf("read query: %v", err)
	}
	p, err := booking.BuildRequest(validReq())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Query != string(raw) || booking.Query() != string(raw) {
		t.Fatalf("query document was altered")
	}

	b, _ := json.Marshal(p)
	var back struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Query != string(raw) {
		t.Fatalf("query document did not survive JSON encoding")
	}
}
