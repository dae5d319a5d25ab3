package domain

// RequestPayload is the JSON body of a FullSearch GraphQL call. Field names
// mirror the upstream SearchQueryInput; nil pointers are sent as null.
type RequestPayload struct {
	OperationName string          `json:"operationName"`
	Variables     SearchVariables `json:"variables"`
	Extensions    struct{}        `json:"extensions"`
	Query         string          `json:"query"`
}

type SearchVariables struct {
	Input              SearchQueryInput `json:"input"`
	CarouselLowCodeExp bool             `json:"carouselLowCodeExp"`
}

type SearchQueryInput struct {
	AcidCarouselContext        *string             `json:"acidCarouselContext"`
	ChildrenAges               []int               `json:"childrenAges"`
	Dates                      DatesInput          `json:"dates"`
	DoAvailabilityCheck        bool                `json:"doAvailabilityCheck"`
	EncodedAutocompleteMeta    *string             `json:"encodedAutocompleteMeta"`
	EnableCampaigns            bool                `json:"enableCampaigns"`
	Filters                    FiltersInput        `json:"filters"`
	SelectedFilterSources      []string            `json:"selectedFilterSources"`
	FlexibleDatesConfig        FlexibleDatesConfig `json:"flexibleDatesConfig"`
	ForcedBlocks               *string             `json:"forcedBlocks"`
	Location                   LocationInput       `json:"location"`
	MetaContext                MetaContext         `json:"metaContext"`
	NbRooms                    int                 `json:"nbRooms"`
	NbAdults                   int                 `json:"nbAdults"`
	NbChildren                 int                 `json:"nbChildren"`
	ShowAparthotelAsHotel      bool                `json:"showAparthotelAsHotel"`
	NeedsRoomsMatch            bool                `json:"needsRoomsMatch"`
	OptionalFeatures           OptionalFeatures    `json:"optionalFeatures"`
	Pagination                 PaginationInput     `json:"pagination"`
	ReferrerBlock              *string             `json:"referrerBlock"`
	SbCalendarOpen             bool                `json:"sbCalendarOpen"`
	Sorters                    SortersInput        `json:"sorters"`
	TravelPurpose              int                 `json:"travelPurpose"`
	SeoThemeIDs                []int               `json:"seoThemeIds"`
	UseSearchParamsFromSession bool                `json:"useSearchParamsFromSession"`
	MerchInput                 MerchInput          `json:"merchInput"`
}

// DatesInput carries dates as YYYY-MM-DD.
type DatesInput struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

type FiltersInput struct {
	SelectedFilters string `json:"selectedFilters,omitempty"`
}

type FlexibleDatesConfig struct {
	BroadDatesCalendar BroadDatesCalendar `json:"broadDatesCalendar"`
	DateFlexUseCase    string             `json:"dateFlexUseCase"`
	DateRangeCalendar  DateRangeCalendar  `json:"dateRangeCalendar"`
}

type BroadDatesCalendar struct {
	CheckinMonths []string `json:"checkinMonths"`
	Los           []int    `json:"los"`
	StartWeekdays []int    `json:"startWeekdays"`
}

type DateRangeCalendar struct {
	Checkin  []string `json:"checkin"`
	Checkout []string `json:"checkout"`
}

// LocationInput.DestType is the location discriminator: DestTypeLatLong when
// coordinates drive the search, DestTypeText otherwise.
type LocationInput struct {
	SearchString string   `json:"searchString"`
	DestType     string   `json:"destType"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

const (
	DestTypeLatLong = "LATLONG"
	DestTypeText    = "CITY"
)

type MetaContext struct {
	MetaCampaignID       int     `json:"metaCampaignId"`
	ExternalTotalPrice   *string `json:"externalTotalPrice"`
	FeedPrice            *string `json:"feedPrice"`
	HotelCenterAccountID *string `json:"hotelCenterAccountId"`
	RateRuleID           *string `json:"rateRuleId"`
	DragongateTraceID    *string `json:"dragongateTraceId"`
	PricingProductsTag   *string `json:"pricingProductsTag"`
}

type OptionalFeatures struct {
	ForceArpExperiments bool `json:"forceArpExperiments"`
	TestProperties      bool `json:"testProperties"`
}

type PaginationInput struct {
	RowsPerPage int `json:"rowsPerPage"`
	Offset      int `json:"offset"`
}

type SortersInput struct {
	SelectedSorter   *string `json:"selectedSorter"`
	ReferenceGeoID   *string `json:"referenceGeoId"`
	TripTypeIntentID *string `json:"tripTypeIntentId"`
}

type MerchInput struct {
	TestCampaignIDs []int `json:"testCampaignIds"`
}
