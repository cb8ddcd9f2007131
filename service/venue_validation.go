package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"ptalk-server/models/venue"
)

const MAX_ADDRESS_LENGTH = 200
const MAX_DESCRIPTION_LENGTH = 1000
const MAX_VENUE_IMAGES = 10

var (
	venuePhonePattern = regexp.MustCompile(`^[\d\-\+\(\)\s]*$`)
	clockTimePattern  = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func validHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// validateOpeningHours checks the stored shape: each day once and HH:MM periods.
func validateOpeningHours(week venue.WeekSchedule, errs fieldErrors) {
	if err := week.Validate(); err != nil {
		errs.add("openingHours", err.Error())
		return
	}
	for _, day := range week {
		for i, p := range day.Periods {
			if !clockTimePattern.MatchString(p.OpenTime) || !clockTimePattern.MatchString(p.CloseTime) {
				errs.add(fmt.Sprintf("openingHours[%d].periods[%d]", day.DayType, i), "time must be HH:MM")
			}
		}
	}
}

// ValidateVenueForm applies the rules of the venue edit form.
func ValidateVenueForm(form venue.VenueEditFormData) error {
	errs := fieldErrors{}

	if !form.CategoryType.Valid() {
		errs.add("categoryType", "unknown category")
	}
	address := strings.TrimSpace(form.Address)
	if address == "" {
		errs.add("address", "address is required")
	} else if utf8.RuneCountInString(address) > MAX_ADDRESS_LENGTH {
		errs.add("address", fmt.Sprintf("address must be at most %d characters", MAX_ADDRESS_LENGTH))
	}
	if !venuePhonePattern.MatchString(form.Phone) {
		errs.add("phone", "phone may only contain digits, spaces and + - ( )")
	}
	if form.Location.Latitude < venue.MIN_LATITUDE || form.Location.Latitude > venue.MAX_LATITUDE {
		errs.add("location.latitude", "latitude must be between -90 and 90")
	}
	if form.Location.Longitude < venue.MIN_LONGITUDE || form.Location.Longitude > venue.MAX_LONGITUDE {
		errs.add("location.longitude", "longitude must be between -180 and 180")
	}
	if form.GoogleMapsURL != "" && !validHTTPURL(form.GoogleMapsURL) {
		errs.add("googleMapsUrl", "invalid URL")
	}
	if form.Website != "" && !validHTTPURL(form.Website) {
		errs.add("website", "invalid URL")
	}
	if utf8.RuneCountInString(form.Description) > MAX_DESCRIPTION_LENGTH {
		errs.add("description", fmt.Sprintf("description must be at most %d characters", MAX_DESCRIPTION_LENGTH))
	}
	if len(form.Images) > MAX_VENUE_IMAGES {
		errs.add("images", fmt.Sprintf("at most %d images", MAX_VENUE_IMAGES))
	}
	validateOpeningHours(form.OpeningHours, errs)
	if form.PetGroundingRuleType != nil && !form.PetGroundingRuleType.Valid() {
		errs.add("petGroundingRuleType", "unknown pet grounding rule")
	}
	for _, m := range form.ReservationMethods {
		if !m.Valid() {
			errs.add("reservationMethods", fmt.Sprintf("unknown reservation method %d", m))
		}
	}

	return errs.err()
}
