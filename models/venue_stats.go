package models

// VenueStats are the counters shown above the venue table.
type VenueStats struct {
	All     int `json:"all"`
	Active  int `json:"active"`
	Pending int `json:"pending"`
	Closed  int `json:"closed"`
}
