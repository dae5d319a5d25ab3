package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"booking_listings/internal/adapters/observability"
	"booking_listings/internal/domain"
)

// BuildFunc turns a SearchRequest into the upstream payload.
type BuildFunc func(domain.SearchRequest) (domain.RequestPayload, error)

var ErrArchiveDisabled = errors.New("listing archive is not configured")

type SearchService struct {
	build    BuildFunc
	client   domain.SearchClient
	proj     Projector
	cache    domain.Cache             // optional
	repo     domain.ListingRepository // optional
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewSearchService(b BuildFunc, c domain.SearchClient, p Projector, cache domain.Cache, repo domain.ListingRepository, ttl time.Duration) *SearchService {
	return &SearchService{build: b, client: c, proj: p, cache: cache, repo: repo, cacheTTL: ttl}
}

// Search builds the payload, sends it once and projects the response.
// Identical searches in flight at the same time share one upstream call.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) ([]domain.ListingRecord, error) {
	payload, err := s.build(req)
	if err != nil {
		return nil, err
	}
	key, err := cacheKey(payload)
	if err != nil {
		return nil, err
	}

	// 1) cache (best-effort)
	if s.cache != nil {
		var cached []domain.ListingRecord
		ok, cerr := s.cache.Get(ctx, key, &cached)
		switch {
		case errors.Is(cerr, domain.ErrCorruptCacheEntry):
			log.Warn().Err(cerr).Str("key", key).Msg("dropping undecodable cache entry")
			if derr := s.cache.Del(ctx, key); derr != nil {
				log.Warn().Err(derr).Str("key", key).Msg("cache del failed")
			}
		case cerr != nil:
			log.Warn().Err(cerr).Str("key", key).Msg("cache get failed")
		case ok:
			log.Debug().Str("key", key).Int("rows", len(cached)).Msg("search served from cache")
			return cached, nil
		}
	}

	// 2) upstream; the shared call outlives any single caller, the client timeout bounds it
	start := time.Now()
	ch := s.sf.DoChan(key, func() (any, error) {
		resp, err := s.client.Search(context.WithoutCancel(ctx), payload)
		if err != nil {
			return nil, err
		}
		return s.proj.Project(resp), nil
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("search %q: %w: %w", req.Location, domain.ErrTransport, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("search %q: %w", req.Location, res.Err)
	}
	rs := res.Val.([]domain.ListingRecord)
	if res.Shared {
		// every caller gets its own backing array
		rs = append([]domain.ListingRecord(nil), rs...)
	}

	log.Info().
		Str("location", req.Location).
		Bool("coords", req.HasCoords()).
		Int("rows", len(rs)).
		Int("defaulted_fields", s.proj.CountSentinels(rs)).
		Dur("took", time.Since(start)).
		Msg("search completed")

	// 3) cache + archive (best-effort)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rs, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	s.archive(ctx, req, rs)

	return rs, nil
}

// Export runs Search and hands the rows to w.
func (s *SearchService) Export(ctx context.Context, req domain.SearchRequest, w domain.ListingWriter, sink string) (int, error) {
	rs, err := s.Search(ctx, req)
	if err != nil {
		return 0, err
	}
	if err := w.WriteListings(rs); err != nil {
		return 0, fmt.Errorf("write %s: %w", sink, err)
	}
	observability.ObserveExport(sink, len(rs))
	return len(rs), nil
}

// ListArchived returns previously archived rows for a location, newest first.
func (s *SearchService) ListArchived(ctx context.Context, location string, limit int) ([]domain.ArchivedListing, error) {
	if s.repo == nil {
		return nil, ErrArchiveDisabled
	}
	return s.repo.ListByLocation(ctx, location, limit)
}

// archive skips rows without a real listing id; they cannot be keyed.
func (s *SearchService) archive(ctx context.Context, req domain.SearchRequest, rs []domain.ListingRecord) {
	if s.repo == nil {
		return
	}
	keep := make([]domain.ListingRecord, 0, len(rs))
	for _, r := range rs {
		if r.ID == "" || r.ID == s.proj.Sentinel {
			continue
		}
		keep = append(keep, r)
	}
	if skipped := len(rs) - len(keep); skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("rows without listing id not archived")
	}
	if len(keep) == 0 {
		return
	}
	if err := s.repo.UpsertListings(ctx, req, keep); err != nil {
		log.Warn().Err(err).Str("location", req.Location).Msg("archive upsert failed")
	}
}

func cacheKey(p domain.RequestPayload) (string, error) {
	b, err := json.Marshal(p.Variables)
	if err != nil {
		return "", fmt.Errorf("encode variables: %w", err)
	}
	sum := sha1.Sum(b)
	return "search:" + hex.EncodeToString(sum[:]), nil
}
