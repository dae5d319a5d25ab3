package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"booking_listings/internal/adapters/booking"
	httpserver "booking_listings/internal/adapters/http_server"
	"booking_listings/internal/app"
	"booking_listings/internal/domain"
)

type stubClient struct {
	last domain.RequestPayload
	resp map[string]any
	err  error
}

func (s *stubClient) Search(ctx context.Context, p domain.RequestPayload) (map[string]any, error) {
	s.last = p
	return s.resp, s.err
}

func newHandler(c domain.SearchClient) http.Handler {
	svc := app.NewSearchService(booking.BuildRequest, c, app.NewProjector(app.DefaultSentinel), nil, nil, time.Minute)
	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{
		S:   svc,
		Now: func() time.Time { return time.Date(2025, 3, 26, 10, 0, 0, 0, time.UTC) },
	})
	return srv.Mux()
}

func oneResult() map[string]any {
	return map[string]any{"data": map[string]any{"searchQueries": map[string]any{"search": map[string]any{"results": []any{
		map[string]any{
			"basicPropertyData": map[string]any{"id": "123", "pageName": "hotel-x"},
			"displayName":       map[string]any{"text": "Hotel, X"},
		},
	}}}}}
}

func TestSearchJSON_DefaultsAndCoordinates(t *testing.T) {
	c := &stubClient{resp: oneResult()}
	h := newHandler(c)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/listings?location=Bangalore&lat=12.9716&lng=77.5946", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var got []domain.ListingRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := domain.ListingRecord{ID: "123", Title: "Hotel, X", PageName: "hotel-x", AmountPerStay: "N/A"}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("body: %+v", got)
	}

	in := c.last.Variables.Input
	if in.Location.DestType != domain.DestTypeLatLong || *in.Location.Latitude != 12.9716 {
		t.Fatalf("location: %+v", in.Location)
	}
	if in.Pagination.RowsPerPage != 20 || in.Dates.Checkin != "2025-03-27" || in.Dates.Checkout != "2025-03-28" {
		t.Fatalf("defaults: %+v %+v", in.Pagination, in.Dates)
	}

	// conditional GET
	etag := rr.Header().Get("ETag")
	req := httptest.NewRequest("GET", "/v1/listings?location=Bangalore&lat=12.9716&lng=77.5946", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}
}

func TestSearchJSON_BadInput(t *testing.T) {
	h := newHandler(&stubClient{resp: oneResult()})
	for _, q := range []string{
		"",                              // no location
		"location=X&rows=0",             // non-positive page size
		"location=X&rows=abc",           // not an integer
		"location=X&lat=12.9",           // half a coordinate pair
		"location=X&lat=abc&lng=1",      // not a number
		"location=X&checkin=27-03-2025", // bad date format
		"location=X&checkin=2025-03-29&checkout=2025-03-27",
	} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/listings?"+q, nil))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%q: expected 400, got %d", q, rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
			t.Errorf("%q: content-type %q", q, ct)
		}
	}
}

func TestSearch_UpstreamFailureIs502(t *testing.T) {
	h := newHandler(&stubClient{err: booking.ErrUnauthorized})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/listings.csv?location=X", nil))
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
}

func TestSearchCSV(t *testing.T) {
	h := newHandler(&stubClient{resp: oneResult()})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/listings.csv?location=Silvassa&rows=5", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("content-type: %q", rr.Header().Get("Content-Type"))
	}
	want := "Listing ID,Listing Title,Page Name,Amount Per Stay\n123,\"Hotel, X\",hotel-x,N/A\n"
	if rr.Body.String() != want {
		t.Fatalf("body:\n%q", rr.Body.String())
	}
}

func TestArchive_DisabledAndValidation(t *testing.T) {
	h := newHandler(&stubClient{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/archive?location=X", nil))
	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/archive", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	h := newHandler(&stubClient{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, rr.Body.String())
	}
}
