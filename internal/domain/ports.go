package domain

import "context"

// SearchClient sends a built FullSearch payload upstream and returns the decoded JSON body.
type SearchClient interface {
	Search(ctx context.Context, p RequestPayload) (map[string]any, error)
}

// ListingWriter persists a batch of rows (CSV file, HTTP body, ...).
type ListingWriter interface {
	WriteListings(rs []ListingRecord) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type ListingRepository interface {
	// Write path
	UpsertListings(ctx context.Context, req SearchRequest, rs []ListingRecord) error

	// Read path
	ListByLocation(ctx context.Context, location string, limit int) ([]ArchivedListing, error)
}
