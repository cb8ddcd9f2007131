package ptalk

import (
	"context"
	"fmt"
	"time"

	"ptalk-server/dao/redis"
	"ptalk-server/db"
	"ptalk-server/models"
	"ptalk-server/models/venue"
	services "ptalk-server/service"
	"ptalk-server/smartpaste"
)

const MOCK_ACCESS_TOKEN = "mock-access-token"

// PTalkApiClientMock answers from the bundled demo fixtures, in process.
type PTalkApiClientMock struct {
	auth   *services.AuthService
	venues *services.VenueService
	token  string
}

// NewPTalkApiClientMock seeds an in-memory store from resourcesDir.
func NewPTalkApiClientMock(resourcesDir string) (*PTalkApiClientMock, error) {
	client := db.NewMockRedisClient(context.Background())
	venueDAO := redis.NewRedisVenueDAO(client)
	tagDAO := redis.NewRedisTagDAO(client)
	merchantDAO := redis.NewRedisMerchantDAO(client)

	seeder := services.NewMockDataSeederService(venueDAO, tagDAO, redis.NewRedisCommentDAO(client), merchantDAO, nil,
		services.NewResourceSeedLoader(resourcesDir))
	if err := seeder.SeedAll(); err != nil {
		fmt.Println("Could not seed mock client from resources")
		return nil, err
	}
	return &PTalkApiClientMock{
		auth:   services.NewAuthService(merchantDAO, redis.NewRedisSessionDAO(client), "mock-secret", "ptalk-mock", time.Hour, time.Hour),
		venues: services.NewVenueService(venueDAO, tagDAO),
	}, nil
}

// Login checks the credentials against the seeded merchant and returns fixed tokens.
func (c *PTalkApiClientMock) Login(email, password string) (*models.LoginResponse, error) {
	if _, err := c.auth.Login(models.LoginRequest{Email: email, Password: password}); err != nil {
		return nil, err
	}
	c.token = MOCK_ACCESS_TOKEN
	return &models.LoginResponse{AccessToken: MOCK_ACCESS_TOKEN, RefreshToken: "mock-refresh-token", ExpiresIn: 3600}, nil
}

func (c *PTalkApiClientMock) SetToken(token string) {
	c.token = token
}

func (c *PTalkApiClientMock) ListVenues(query VenueQuery) (*models.ListResponse[venue.VenueListItem], error) {
	resp, err := c.venues.ListVenues(services.VenueFilter{
		Status:   query.Status,
		Keyword:  query.Keyword,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PTalkApiClientMock) GetVenue(venueID string) (*venue.Venue, error) {
	return c.venues.GetVenue(venueID)
}

func (c *PTalkApiClientMock) UpdateVenue(venueID string, form venue.VenueEditFormData) (*venue.Venue, error) {
	return c.venues.UpdateVenue(venueID, form)
}

func (c *PTalkApiClientMock) PreviewOpeningHours(venueID, text string) (*venue.ParseOutcome, error) {
	outcome, err := c.venues.PreviewOpeningHours(venueID, text)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (c *PTalkApiClientMock) ParseOpeningHours(text string, existingDays []venue.DayType) (*venue.ParseOutcome, error) {
	outcome, err := smartpaste.ParseOpeningHoursText(text, existingDays)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (c *PTalkApiClientMock) ParseCoordinate(text string) (*venue.Coordinate, error) {
	coord, ok := smartpaste.ParseCoordinateText(text)
	if !ok {
		return nil, services.ErrInvalidCoordinate
	}
	return &coord, nil
}
