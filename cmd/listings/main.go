package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"booking_listings/internal/adapters/booking"
	"booking_listings/internal/adapters/observability"
	"booking_listings/internal/app"
	"booking_listings/internal/domain"
	"booking_listings/internal/shared"
	"booking_listings/internal/storage/csvfile"
)

// example search run on every invocation
const (
	exampleLocation = "Bangalore"
	examplePageSize = 20
	exampleLat      = 12.9716
	exampleLng      = 77.5946
	exampleNights   = 2
)

func main() {
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	client, err := booking.New(cfg.GraphQLURL, booking.Session(cfg.Session), cfg.HTTPTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize booking client")
	}
	svc := app.NewSearchService(booking.BuildRequest, client, app.NewProjector(cfg.Sentinel), nil, nil, cfg.CacheTTL)

	lat, lng := exampleLat, exampleLng
	checkIn, checkOut := app.StayFrom(time.Now(), exampleNights)
	req := domain.SearchRequest{
		Location:  exampleLocation,
		PageSize:  examplePageSize,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Latitude:  &lat,
		Longitude: &lng,
	}

	log.Info().
		Str("endpoint", cfg.GraphQLURL).
		Str("location", req.Location).
		Int("rows", req.PageSize).
		Str("checkin", checkIn.Format("2006-01-02")).
		Str("checkout", checkOut.Format("2006-01-02")).
		Msg("listings export starting")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout+5*time.Second)
	defer cancel()

	w := csvfile.NewWriter(cfg.OutputPath)
	n, err := svc.Export(ctx, req, w, "csv")
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("listings export failed")
	}
	log.Info().Int("rows", n).Str("file", w.Path()).Msg("listings export completed")
}
