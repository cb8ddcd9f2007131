package handlers

import (
	"net/http"

	"ptalk-server/models/venue"
	services "ptalk-server/service"
	"ptalk-server/smartpaste"
)

type ParseOpeningHoursRequest struct {
	Text         string          `json:"text"`
	ExistingDays []venue.DayType `json:"existingDays"`
}

type ParseTextRequest struct {
	Text string `json:"text"`
}

// ParseOpeningHoursResponse pairs the outcome with its canonical text form.
type ParseOpeningHoursResponse struct {
	Outcome   venue.ParseOutcome `json:"outcome"`
	Formatted string             `json:"formatted"`
}

// SmartPasteHandler exposes the stateless text parsers.
type SmartPasteHandler struct{}

func NewSmartPasteHandler() *SmartPasteHandler {
	return &SmartPasteHandler{}
}

// ParseOpeningHours handles POST /v1/smart-paste/opening-hours
func (h *SmartPasteHandler) ParseOpeningHours(w http.ResponseWriter, r *http.Request) {
	var req ParseOpeningHoursRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	outcome, err := smartpaste.ParseOpeningHoursText(req.Text, req.ExistingDays)
	if err != nil {
		writeError(w, err, nil)
		return
	}
	writeSuccess(w, ParseOpeningHoursResponse{Outcome: outcome, Formatted: smartpaste.FormatOutcome(outcome)})
}

// ParseCoordinate handles POST /v1/smart-paste/coordinate
func (h *SmartPasteHandler) ParseCoordinate(w http.ResponseWriter, r *http.Request) {
	var req ParseTextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	coord, ok := smartpaste.ParseCoordinateText(req.Text)
	if !ok {
		writeError(w, services.ErrInvalidCoordinate, nil)
		return
	}
	writeSuccess(w, coord)
}

// ParseRegister handles POST /v1/smart-paste/register
func (h *SmartPasteHandler) ParseRegister(w http.ResponseWriter, r *http.Request) {
	var req ParseTextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeSuccess(w, smartpaste.ParseRegisterText(req.Text))
}
