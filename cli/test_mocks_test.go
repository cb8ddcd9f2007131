package cli

import (
	"ptalk-server/api/ptalk"
	"ptalk-server/models"
	"ptalk-server/models/venue"
)

type testPTalkAPI struct {
	token        string
	loginFn      func(email, password string) (*models.LoginResponse, error)
	listVenuesFn func(query ptalk.VenueQuery) (*models.ListResponse[venue.VenueListItem], error)
	venues       map[string]venue.Venue
	previewFn    func(venueID, text string) (*venue.ParseOutcome, error)
	getCalls     int
	updated      map[string]venue.VenueEditFormData
}

var _ ptalk.PTalkAPI = (*testPTalkAPI)(nil)

func (m *testPTalkAPI) Login(email, password string) (*models.LoginResponse, error) {
	return m.loginFn(email, password)
}

func (m *testPTalkAPI) SetToken(token string) {
	m.token = token
}

func (m *testPTalkAPI) ListVenues(query ptalk.VenueQuery) (*models.ListResponse[venue.VenueListItem], error) {
	return m.listVenuesFn(query)
}

func (m *testPTalkAPI) GetVenue(venueID string) (*venue.Venue, error) {
	m.getCalls++
	v := m.venues[venueID]
	return &v, nil
}

func (m *testPTalkAPI) UpdateVenue(venueID string, form venue.VenueEditFormData) (*venue.Venue, error) {
	if m.updated == nil {
		m.updated = make(map[string]venue.VenueEditFormData)
	}
	m.updated[venueID] = form
	v := m.venues[venueID]
	v.Address = form.Address
	v.OpeningHours = form.OpeningHours
	return &v, nil
}

func (m *testPTalkAPI) PreviewOpeningHours(venueID, text string) (*venue.ParseOutcome, error) {
	return m.previewFn(venueID, text)
}

func (m *testPTalkAPI) ParseOpeningHours(string, []venue.DayType) (*venue.ParseOutcome, error) {
	return &venue.ParseOutcome{}, nil
}

func (m *testPTalkAPI) ParseCoordinate(string) (*venue.Coordinate, error) {
	return &venue.Coordinate{}, nil
}
