package ptalk

import (
	"net/url"
	"strconv"

	"ptalk-server/api"
	"ptalk-server/models"
	"ptalk-server/models/venue"
)

// PTalkApiClient embeds the common HTTPClient
type PTalkApiClient struct {
	*api.HTTPClient
}

func NewPTalkApiClient(httpClient *api.HTTPClient) *PTalkApiClient {
	return &PTalkApiClient{
		HTTPClient: httpClient,
	}
}

// call performs the request and unwraps the ApiResponse envelope.
func call[T any](c *PTalkApiClient, method, endpoint string, body interface{}) (*T, error) {
	var env models.ApiResponse[T]
	if err := c.Request(method, endpoint, nil, body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Login authenticates and keeps the access token for later calls.
func (c *PTalkApiClient) Login(email, password string) (*models.LoginResponse, error) {
	resp, err := call[models.LoginResponse](c, "POST", "/v1/auth/login", models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return resp, nil
}

func (c *PTalkApiClient) ListVenues(query VenueQuery) (*models.ListResponse[venue.VenueListItem], error) {
	vals := url.Values{}
	if query.Status != "" {
		vals.Set("status", query.Status)
	}
	if query.Keyword != "" {
		vals.Set("keyword", query.Keyword)
	}
	if query.Page > 0 {
		vals.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		vals.Set("pageSize", strconv.Itoa(query.PageSize))
	}
	endpoint := "/v1/venues"
	if encoded := vals.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	return call[models.ListResponse[venue.VenueListItem]](c, "GET", endpoint, nil)
}

func (c *PTalkApiClient) GetVenue(venueID string) (*venue.Venue, error) {
	return call[venue.Venue](c, "GET", "/v1/venues/"+url.PathEscape(venueID), nil)
}

func (c *PTalkApiClient) UpdateVenue(venueID string, form venue.VenueEditFormData) (*venue.Venue, error) {
	return call[venue.Venue](c, "PUT", "/v1/venues/"+url.PathEscape(venueID), form)
}

func (c *PTalkApiClient) PreviewOpeningHours(venueID, text string) (*venue.ParseOutcome, error) {
	body := map[string]string{"text": text}
	return call[venue.ParseOutcome](c, "POST", "/v1/venues/"+url.PathEscape(venueID)+"/opening-hours/preview", body)
}

func (c *PTalkApiClient) ParseOpeningHours(text string, existingDays []venue.DayType) (*venue.ParseOutcome, error) {
	body := map[string]interface{}{"text": text, "existingDays": existingDays}
	resp, err := call[struct {
		Outcome venue.ParseOutcome `json:"outcome"`
	}](c, "POST", "/v1/smart-paste/opening-hours", body)
	if err != nil {
		return nil, err
	}
	return &resp.Outcome, nil
}

func (c *PTalkApiClient) ParseCoordinate(text string) (*venue.Coordinate, error) {
	return call[venue.Coordinate](c, "POST", "/v1/smart-paste/coordinate", map[string]string{"text": text})
}
