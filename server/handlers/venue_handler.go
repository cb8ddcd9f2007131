package handlers

import (
	"bytes"
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"ptalk-server/models/venue"
	services "ptalk-server/service"
	"ptalk-server/util"
)

const (
	LAT_QUERY_ARG       = "lat"
	LON_QUERY_ARG       = "lon"
	RADIUS_QUERY_ARG    = "radius"
	STATUS_QUERY_ARG    = "status"
	KEYWORD_QUERY_ARG   = "keyword"
	PAGE_QUERY_ARG      = "page"
	PAGE_SIZE_QUERY_ARG = "pageSize"
	VENUE_ID_PATH_VAR   = "id"
)

type OpeningHoursTextRequest struct {
	Text             string `json:"text"`
	ConfirmOverwrite bool   `json:"confirmOverwrite"`
}

type QuickSetRequest struct {
	Days      []venue.DayType `json:"days"`
	OpenTime  string          `json:"openTime"`
	CloseTime string          `json:"closeTime"`
}

type LocationTextRequest struct {
	Text string `json:"text"`
}

type ApplyOpeningHoursResponse struct {
	Venue   *venue.Venue       `json:"venue"`
	Outcome venue.ParseOutcome `json:"outcome"`
}

type VenueHandler struct {
	venueService *services.VenueService
}

func NewVenueHandler(venueService *services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func venueID(r *http.Request) string {
	return mux.Vars(r)[VENUE_ID_PATH_VAR]
}

func badArgument(w http.ResponseWriter, name string) {
	writeErrorMessage(w, http.StatusBadRequest, ERROR_CODE_BAD_REQUEST, "Invalid argument "+name)
}

// ListVenues handles GET /v1/venues?status&keyword&page&pageSize
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(r.URL.Query(), w)
	if !ok {
		return
	}
	resp, err := h.venueService.ListVenues(filter)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, resp)
}

func (h *VenueHandler) parseFilter(vals url.Values, w http.ResponseWriter) (services.VenueFilter, bool) {
	filter := services.VenueFilter{
		Status:  vals.Get(STATUS_QUERY_ARG),
		Keyword: vals.Get(KEYWORD_QUERY_ARG),
	}
	var err error
	if filter.Page, err = parseArgInt(vals, PAGE_QUERY_ARG, 1); err != nil {
		badArgument(w, PAGE_QUERY_ARG)
		return filter, false
	}
	if filter.PageSize, err = parseArgInt(vals, PAGE_SIZE_QUERY_ARG, services.DEFAULT_PAGE_SIZE); err != nil {
		badArgument(w, PAGE_SIZE_QUERY_ARG)
		return filter, false
	}
	return filter, true
}

// GetStats handles GET /v1/venues/stats
func (h *VenueHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.venueService.Stats()
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, stats)
}

// GetVenuesNearby handles GET /v1/venues/nearby?lat&lon&radius
func (h *VenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}
	venues, err := h.venueService.NearbyVenues(lat, lon, radius)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, venues)
}

func (h *VenueHandler) parseArgs(vals url.Values, w http.ResponseWriter) (lat, lon, radius float64, ok bool) {
	var err error
	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		badArgument(w, LAT_QUERY_ARG)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		badArgument(w, LON_QUERY_ARG)
		return
	}
	radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil {
		badArgument(w, RADIUS_QUERY_ARG)
		return
	}
	ok = true
	return
}

// GetVenueMap handles GET /v1/venues/map and answers an HTML chart.
func (h *VenueHandler) GetVenueMap(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.AllVenues()
	if err != nil {
		writeError(w, err, nil)
		return
	}
	var buf bytes.Buffer
	if err := util.RenderVenueMap(&buf, venues); err != nil {
		writeError(w, err, nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Println("[VenueHandler] Error writing venue map:", err)
	}
}

// GetVenue handles GET /v1/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	v, err := h.venueService.GetVenue(venueID(r))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, v)
}

// UpdateVenue handles PUT /v1/venues/{id}
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	var form venue.VenueEditFormData
	if !decodeJSON(w, r, &form) {
		return
	}
	v, err := h.venueService.UpdateVenue(venueID(r), form)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, v)
}

// DeleteVenue handles DELETE /v1/venues/{id}
func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	if err := h.venueService.DeleteVenue(venueID(r)); err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess[any](w, nil)
}

// ToggleStatus handles POST /v1/venues/{id}/toggle-status
func (h *VenueHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	v, err := h.venueService.ToggleStatus(venueID(r))
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, v)
}

// PreviewOpeningHours handles POST /v1/venues/{id}/opening-hours/preview
func (h *VenueHandler) PreviewOpeningHours(w http.ResponseWriter, r *http.Request) {
	var req OpeningHoursTextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	outcome, err := h.venueService.PreviewOpeningHours(venueID(r), req.Text)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, outcome)
}

// ApplyOpeningHours handles POST /v1/venues/{id}/opening-hours/apply. A 409
// carries the parse outcome so the client can ask for confirmation.
func (h *VenueHandler) ApplyOpeningHours(w http.ResponseWriter, r *http.Request) {
	var req OpeningHoursTextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, outcome, err := h.venueService.ApplyOpeningHours(venueID(r), req.Text, req.ConfirmOverwrite)
	if err != nil {
		writeError(w, err, outcome)
		return
	}
	writeSuccess(w, ApplyOpeningHoursResponse{Venue: v, Outcome: outcome})
}

// QuickSetOpeningHours handles POST /v1/venues/{id}/opening-hours/quick-set
func (h *VenueHandler) QuickSetOpeningHours(w http.ResponseWriter, r *http.Request) {
	var req QuickSetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := h.venueService.QuickSetOpeningHours(venueID(r), req.Days, req.OpenTime, req.CloseTime)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, v)
}

// ParseLocation handles POST /v1/venues/{id}/location/parse
func (h *VenueHandler) ParseLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationTextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := h.venueService.SetLocationFromText(venueID(r), req.Text)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, v)
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
