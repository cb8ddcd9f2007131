package ptalk

import (
	"ptalk-server/models"
	"ptalk-server/models/venue"
)

// VenueQuery are the list filters of GET /v1/venues.
type VenueQuery struct {
	Status   string
	Keyword  string
	Page     int
	PageSize int
}

// PTalkAPI defines the interface for interacting with the PTalk merchant API
type PTalkAPI interface {
	Login(email, password string) (*models.LoginResponse, error)
	SetToken(token string)
	ListVenues(query VenueQuery) (*models.ListResponse[venue.VenueListItem], error)
	GetVenue(venueID string) (*venue.Venue, error)
	UpdateVenue(venueID string, form venue.VenueEditFormData) (*venue.Venue, error)
	PreviewOpeningHours(venueID, text string) (*venue.ParseOutcome, error)
	ParseOpeningHours(text string, existingDays []venue.DayType) (*venue.ParseOutcome, error)
	ParseCoordinate(text string) (*venue.Coordinate, error)
}
