package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"booking_listings/internal/domain"
)

// Header is the first row of every export.
var Header = []string{"Listing ID", "Listing Title", "Page Name", "Amount Per Stay"}

// Writer overwrites one CSV file per WriteListings call.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Path() string { return w.path }

func (w *Writer) WriteListings(rs []domain.ListingRecord) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}
	if err := Encode(f, rs); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	return f.Close()
}

// Encode writes the header and one row per record to out.
func Encode(out io.Writer, rs []domain.ListingRecord) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rs {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode parses what Encode wrote. The header row must match.
func Decode(in io.Reader) ([]domain.ListingRecord, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	for i, h := range Header {
		if head[i] != h {
			return nil, fmt.Errorf("unexpected header column %d: %q", i, head[i])
		}
	}

	var out []domain.ListingRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ListingRecord{ID: row[0], Title: row[1], PageName: row[2], AmountPerStay: row[3]})
	}
}

// ReadFile decodes the CSV at path.
func ReadFile(path string) ([]domain.ListingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
