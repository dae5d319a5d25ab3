package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"booking_listings/internal/domain"
)

const dateLayout = "2006-01-02"

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the listings table when it does not exist yet.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createListingsSQL); err != nil {
		return fmt.Errorf("create listings table: %w", err)
	}
	return nil
}

func (r *Repo) UpsertListings(ctx context.Context, req domain.SearchRequest, rs []domain.ListingRecord) error {
	if len(rs) == 0 {
		return nil
	}
	checkin := req.CheckIn.Format(dateLayout)
	checkout := req.CheckOut.Format(dateLayout)

	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*7) // 7 params per row
	for _, l := range rs {
		values = append(values, "(?,?,?,?,?,?,?)")
		args = append(args,
			l.ID,            // listing_id
			l.Title,         // title
			l.PageName,      // page_name
			l.AmountPerStay, // amount_per_stay
			req.Location,    // location
			checkin,         // checkin
			checkout,        // checkout
		)
	}
	sqlStr := insertListingsPrefix + strings.Join(values, ",") + insertListingsOnDup
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("upsert %d listings: %w", len(rs), err)
	}
	return nil
}

func (r *Repo) ListByLocation(ctx context.Context, location string, limit int) ([]domain.ArchivedListing, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listByLocationSQL, location, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ArchivedListing, 0, limit)
	for rows.Next() {
		var a domain.ArchivedListing
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.PageName,
			&a.AmountPerStay,
			&a.Location,
			&a.CheckIn, &a.CheckOut,
			&a.FetchedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
