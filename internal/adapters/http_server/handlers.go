// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"booking_listings/internal/app"
	"booking_listings/internal/domain"
	"booking_listings/internal/storage/csvfile"
)

const (
	defaultRows = 20
	maxRows     = 100
)

type Handlers struct {
	S   *app.SearchService
	Now func() time.Time // for tests; nil means time.Now
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/listings", h.searchJSON)
	s.mux.Get("/v1/listings.csv", h.searchCSV)
	s.mux.Get("/v1/archive", h.listArchive)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeSearchError maps the error taxonomy onto HTTP statuses.
func writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeProblem(w, http.StatusBadRequest, "Invalid search", err.Error())
	case errors.Is(err, domain.ErrTransport):
		log.Warn().Err(err).Msg("upstream search failed")
		writeProblem(w, http.StatusBadGateway, "Upstream failure", "listing search upstream failed")
	default:
		log.Error().Err(err).Msg("search failed")
		writeProblem(w, http.StatusInternalServerError, "Internal error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// parseSearch reads location, rows, checkin, checkout, lat and lng. Semantic checks
// (pairing of lat/lng, date order, ...) are left to the request builder.
func (h *Handlers) parseSearch(q url.Values) (domain.SearchRequest, error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	in, out := app.StayFrom(now(), 1)
	req := domain.SearchRequest{
		Location: strings.TrimSpace(q.Get("location")),
		PageSize: defaultRows,
		CheckIn:  in,
		CheckOut: out,
	}

	if rs := q.Get("rows"); rs != "" {
		n, err := strconv.Atoi(rs)
		if err != nil || n > maxRows {
			return req, fmt.Errorf("%w: rows must be an integer between 1 and %d", domain.ErrInvalidArgument, maxRows)
		}
		req.PageSize = n
	}
	for _, d := range []struct {
		key string
		dst *time.Time
	}{{"checkin", &req.CheckIn}, {"checkout", &req.CheckOut}} {
		if v := q.Get(d.key); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return req, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrInvalidArgument, d.key)
			}
			*d.dst = t
		}
	}
	if q.Get("checkin") != "" && q.Get("checkout") == "" {
		req.CheckOut = req.CheckIn.AddDate(0, 0, 1)
	}
	for _, c := range []struct {
		key string
		dst **float64
	}{{"lat", &req.Latitude}, {"lng", &req.Longitude}} {
		if v := q.Get(c.key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return req, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidArgument, c.key)
			}
			*c.dst = &f
		}
	}
	return req, nil
}

func (h *Handlers) searchJSON(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseSearch(r.URL.Query())
	if err != nil {
		writeSearchError(w, err)
		return
	}
	rs, err := h.S.Search(r.Context(), req)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	etag, body := calcETagAndBody(rs)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write searchJSON body")
	}
}

// csvResponse is a domain.ListingWriter over an HTTP response.
type csvResponse struct{ w http.ResponseWriter }

func (c csvResponse) WriteListings(rs []domain.ListingRecord) error {
	c.w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	c.w.Header().Set("Content-Disposition", `attachment; filename="listings.csv"`)
	c.w.WriteHeader(http.StatusOK)
	return csvfile.Encode(c.w, rs)
}

func (h *Handlers) searchCSV(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseSearch(r.URL.Query())
	if err != nil {
		writeSearchError(w, err)
		return
	}
	if _, err := h.S.Export(r.Context(), req, csvResponse{w: w}, "http"); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) || errors.Is(err, domain.ErrTransport) {
			writeSearchError(w, err)
			return
		}
		// headers are already out; nothing left to tell the client
		log.Error().Err(err).Msg("failed to write searchCSV body")
	}
}

func (h *Handlers) listArchive(w http.ResponseWriter, r *http.Request) {
	loc := strings.TrimSpace(r.URL.Query().Get("location"))
	if loc == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid location", "location is required")
		return
	}
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 500 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 500")
			return
		}
		limit = l
	}

	out, err := h.S.ListArchived(r.Context(), loc, limit)
	if errors.Is(err, app.ErrArchiveDisabled) {
		writeProblem(w, http.StatusNotImplemented, "Archive disabled", "MYSQL_DSN is not configured")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("list archive failed")
		writeProblem(w, http.StatusInternalServerError, "Internal error", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Error().Err(err).Msg("failed to write listArchive body")
	}
}
