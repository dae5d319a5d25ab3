package booking

import (
	"fmt"
	"math"
	"strings"

	"booking_listings/internal/domain"
)

const dateLayout = "2006-01-02"

// BuildRequest validates req and returns the FullSearch payload for it.
// All failures wrap domain.ErrInvalidArgument.
func BuildRequest(req domain.SearchRequest) (domain.RequestPayload, error) {
	if err := Validate(req); err != nil {
		return domain.RequestPayload{}, err
	}

	checkin := req.CheckIn.Format(dateLayout)
	checkout := req.CheckOut.Format(dateLayout)

	loc := domain.LocationInput{
		SearchString: req.Location,
		DestType:     domain.DestTypeText,
	}
	if req.HasCoords() {
		lat, lon := *req.Latitude, *req.Longitude
		loc.DestType = domain.DestTypeLatLong
		loc.Latitude = &lat
		loc.Longitude = &lon
	}

	in := defaultInput()
	in.Dates = domain.DatesInput{Checkin: checkin, Checkout: checkout}
	in.FlexibleDatesConfig.DateRangeCalendar = domain.DateRangeCalendar{
		Checkin:  []string{checkin},
		Checkout: []string{checkout},
	}
	in.Location = loc
	in.Pagination = domain.PaginationInput{RowsPerPage: req.PageSize, Offset: 0}

	return domain.RequestPayload{
		OperationName: OperationName,
		Variables:     domain.SearchVariables{Input: in, CarouselLowCodeExp: false},
		Query:         fullSearchQuery,
	}, nil
}

// Validate checks req without building anything.
func Validate(req domain.SearchRequest) error {
	if strings.TrimSpace(req.Location) == "" {
		return invalid("location must be non-empty text")
	}
	if req.PageSize <= 0 {
		return invalid("page size must be a positive integer, got %d", req.PageSize)
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return invalid("latitude and longitude must be supplied together")
	}
	if req.HasCoords() {
		if !finite(*req.Latitude) || !finite(*req.Longitude) {
			return invalid("coordinates must be finite float values")
		}
	}
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return invalid("check-in and check-out dates are required")
	}
	if !req.CheckOut.After(req.CheckIn) {
		return invalid("check-out %s must be after check-in %s",
			req.CheckOut.Format(dateLayout), req.CheckIn.Format(dateLayout))
	}
	return nil
}

// defaultInput is the search page's "no filters, exact dates, one room, one adult"
// configuration. The upstream rejects requests that deviate from it.
func defaultInput() domain.SearchQueryInput {
	return domain.SearchQueryInput{
		ChildrenAges:          []int{},
		EnableCampaigns:       true,
		SelectedFilterSources: []string{},
		FlexibleDatesConfig: domain.FlexibleDatesConfig{
			BroadDatesCalendar: domain.BroadDatesCalendar{
				CheckinMonths: []string{},
				Los:           []int{},
				StartWeekdays: []int{},
			},
			DateFlexUseCase: "DATE_RANGE",
		},
		NbRooms:                    1,
		NbAdults:                   1,
		NbChildren:                 0,
		ShowAparthotelAsHotel:      true,
		OptionalFeatures:           domain.OptionalFeatures{ForceArpExperiments: true},
		TravelPurpose:              2,
		SeoThemeIDs:                []int{},
		UseSearchParamsFromSession: true,
		MerchInput:                 domain.MerchInput{TestCampaignIDs: []int{}},
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidArgument}, args...)...)
}
