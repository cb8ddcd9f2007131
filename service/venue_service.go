package services

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"ptalk-server/models"
	"ptalk-server/models/venue"
	"ptalk-server/smartpaste"
)

const DEFAULT_PAGE_SIZE = 10
const MAX_PAGE_SIZE = 100

// Status tabs of the venue list. The closed tab covers both inactive and closed venues.
const (
	STATUS_FILTER_ALL     = "all"
	STATUS_FILTER_ACTIVE  = "active"
	STATUS_FILTER_PENDING = "pending"
	STATUS_FILTER_CLOSED  = "closed"
)

type VenueFilter struct {
	Status   string
	Keyword  string
	Page     int
	PageSize int
}

type VenueService struct {
	venueRepo VenueRepository
	tagRepo   TagRepository
	now       func() time.Time
}

// NewVenueService constructs a new VenueService over the given repositories.
func NewVenueService(venueRepo VenueRepository, tagRepo TagRepository) *VenueService {
	return &VenueService{
		venueRepo: venueRepo,
		tagRepo:   tagRepo,
		now:       time.Now,
	}
}

func matchesStatus(status venue.BusinessStatus, filter string) bool {
	switch strings.ToLower(filter) {
	case "", STATUS_FILTER_ALL:
		return true
	case STATUS_FILTER_ACTIVE:
		return status == venue.STATUS_ACTIVE
	case STATUS_FILTER_PENDING:
		return status == venue.STATUS_PENDING
	case STATUS_FILTER_CLOSED:
		return status == venue.STATUS_INACTIVE || status == venue.STATUS_CLOSED
	}
	return false
}

func matchesKeyword(v venue.Venue, keyword string) bool {
	if keyword == "" {
		return true
	}
	keyword = strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(v.Name), keyword) ||
		strings.Contains(strings.ToLower(v.Address), keyword)
}

// lessVenueID orders numeric-looking ids naturally ("2" before "10").
func lessVenueID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func sortVenues(venues []venue.Venue) {
	sort.SliceStable(venues, func(i, j int) bool {
		return lessVenueID(venues[i].ID, venues[j].ID)
	})
}

func (vs *VenueService) allVenues() ([]venue.Venue, error) {
	venues, err := vs.venueRepo.ListVenues()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list venues")
	}
	sortVenues(venues)
	return venues, nil
}

// ListVenues returns one page of venues matching the status tab and keyword.
func (vs *VenueService) ListVenues(filter VenueFilter) (models.ListResponse[venue.VenueListItem], error) {
	var resp models.ListResponse[venue.VenueListItem]

	switch strings.ToLower(filter.Status) {
	case "", STATUS_FILTER_ALL, STATUS_FILTER_ACTIVE, STATUS_FILTER_PENDING, STATUS_FILTER_CLOSED:
	default:
		return resp, &ValidationError{Fields: map[string]string{"status": "unknown status filter " + filter.Status}}
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = DEFAULT_PAGE_SIZE
	}
	if pageSize > MAX_PAGE_SIZE {
		pageSize = MAX_PAGE_SIZE
	}

	venues, err := vs.allVenues()
	if err != nil {
		return resp, err
	}
	keyword := strings.TrimSpace(filter.Keyword)
	matched := make([]venue.VenueListItem, 0, len(venues))
	for i := range venues {
		if matchesStatus(venues[i].Status, filter.Status) && matchesKeyword(venues[i], keyword) {
			matched = append(matched, venues[i].ListItem())
		}
	}

	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	resp.Items = matched[start:end]
	resp.Pagination = models.NewPagination(page, pageSize, len(matched))
	return resp, nil
}

// AllVenues returns every venue in list order.
func (vs *VenueService) AllVenues() ([]venue.Venue, error) {
	return vs.allVenues()
}

func (vs *VenueService) GetVenue(id string) (*venue.Venue, error) {
	v, err := vs.venueRepo.GetVenue(id)
	if err != nil {
		return nil, translateNotFound(err, "venue "+id)
	}
	return v, nil
}

func (vs *VenueService) save(v *venue.Venue) error {
	v.UpdatedAt = vs.now().UTC()
	if err := vs.venueRepo.UpsertVenue(*v); err != nil {
		return errors.Wrapf(err, "failed to save venue %s", v.ID)
	}
	return nil
}

func (vs *VenueService) resolveTags(ids []string) ([]venue.VenueTag, error) {
	tags := make([]venue.VenueTag, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		tag, err := vs.tagRepo.GetTag(id)
		if err != nil {
			if isNotFound(err) {
				return nil, &ValidationError{Fields: map[string]string{"tagIds": "unknown tag " + id}}
			}
			return nil, errors.Wrapf(err, "failed to resolve tag %s", id)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// UpdateVenue validates the form and overwrites the editable fields of the venue.
func (vs *VenueService) UpdateVenue(id string, form venue.VenueEditFormData) (*venue.Venue, error) {
	v, err := vs.GetVenue(id)
	if err != nil {
		return nil, err
	}
	if !v.Actions.CanEdit {
		return nil, errors.Wrapf(ErrActionNotAllowed, "edit venue %s", id)
	}
	if err := ValidateVenueForm(form); err != nil {
		return nil, err
	}
	tags, err := vs.resolveTags(form.TagIDs)
	if err != nil {
		return nil, err
	}

	v.CategoryType = form.CategoryType
	v.Location = form.Location
	v.Address = strings.TrimSpace(form.Address)
	v.Phone = form.Phone
	v.Images = form.Images
	v.OpeningHours = form.OpeningHours.Clone()
	v.GoogleMapsURL = form.GoogleMapsURL
	v.Website = form.Website
	v.Description = form.Description
	if form.PetGroundingRuleType != nil {
		v.PetGroundingRuleType = *form.PetGroundingRuleType
	}
	v.ReservationMethods = form.ReservationMethods
	v.Tags = tags

	if err := vs.save(v); err != nil {
		return nil, err
	}
	log.Printf("[VenueService] Updated %s", v.ToString())
	return v, nil
}

func (vs *VenueService) DeleteVenue(id string) error {
	v, err := vs.GetVenue(id)
	if err != nil {
		return err
	}
	if !v.Actions.CanDelete {
		return errors.Wrapf(ErrActionNotAllowed, "delete venue %s", id)
	}
	if err := vs.venueRepo.DeleteVenue(id); err != nil {
		return errors.Wrapf(err, "failed to delete venue %s", id)
	}
	log.Printf("[VenueService] Deleted venue %s", id)
	return nil
}

// ToggleStatus switches an active venue to inactive and back. Pending and
// closed venues cannot be toggled.
func (vs *VenueService) ToggleStatus(id string) (*venue.Venue, error) {
	v, err := vs.GetVenue(id)
	if err != nil {
		return nil, err
	}
	if !v.Actions.CanToggleStatus {
		return nil, errors.Wrapf(ErrActionNotAllowed, "toggle venue %s", id)
	}
	switch v.Status {
	case venue.STATUS_ACTIVE:
		v.Status = venue.STATUS_INACTIVE
	case venue.STATUS_INACTIVE:
		v.Status = venue.STATUS_ACTIVE
	default:
		return nil, errors.Wrapf(ErrActionNotAllowed, "venue %s is %s", id, venue.BusinessStatusLabels[v.Status])
	}
	if err := vs.save(v); err != nil {
		return nil, err
	}
	log.Printf("[VenueService] Venue %s status is now %d", id, v.Status)
	return v, nil
}

func (vs *VenueService) Stats() (models.VenueStats, error) {
	venues, err := vs.venueRepo.ListVenues()
	if err != nil {
		return models.VenueStats{}, errors.Wrap(err, "failed to list venues")
	}
	stats := models.VenueStats{All: len(venues)}
	for _, v := range venues {
		switch {
		case matchesStatus(v.Status, STATUS_FILTER_ACTIVE):
			stats.Active++
		case matchesStatus(v.Status, STATUS_FILTER_PENDING):
			stats.Pending++
		case matchesStatus(v.Status, STATUS_FILTER_CLOSED):
			stats.Closed++
		}
	}
	return stats, nil
}

// NearbyVenues returns venues within radius km of the point, nearest first.
func (vs *VenueService) NearbyVenues(lat, lon, radius float64) ([]venue.Venue, error) {
	if !(venue.Coordinate{Latitude: lat, Longitude: lon}).Valid() {
		return nil, &ValidationError{Fields: map[string]string{"location": "coordinate out of range"}}
	}
	if radius <= 0 {
		return nil, &ValidationError{Fields: map[string]string{"radius": "radius must be positive"}}
	}
	return vs.venueRepo.GetNearbyVenues(lat, lon, radius)
}

// PreviewOpeningHours parses text against the venue's current schedule
// without saving anything.
func (vs *VenueService) PreviewOpeningHours(id, text string) (venue.ParseOutcome, error) {
	v, err := vs.GetVenue(id)
	if err != nil {
		return venue.ParseOutcome{}, err
	}
	return smartpaste.ParseOpeningHoursText(text, v.OpeningHours.DaysWithPeriods())
}

// ApplyOpeningHours parses text and merges it into the venue's schedule.
// When the parse would overwrite days that already have periods, the
// caller must pass confirmOverwrite or ErrConflictNotConfirmed is returned
// together with the outcome.
func (vs *VenueService) ApplyOpeningHours(id, text string, confirmOverwrite bool) (*venue.Venue, venue.ParseOutcome, error) {
	v, err := vs.GetVenue(id)
	if err != nil {
		return nil, venue.ParseOutcome{}, err
	}
	outcome, err := smartpaste.ParseOpeningHoursText(text, v.OpeningHours.DaysWithPeriods())
	if err != nil {
		return nil, outcome, err
	}
	if !outcome.HasApplicableData() {
		return nil, outcome, ErrNothingToApply
	}
	if outcome.HasConflicts() && !confirmOverwrite {
		return nil, outcome, ErrConflictNotConfirmed
	}

	merged, err := smartpaste.ConvertToFormFormat(outcome.RecognizedPeriods, outcome.ClosedDays, v.OpeningHours)
	if err != nil {
		return nil, outcome, errors.Wrapf(err, "venue %s has a malformed schedule", id)
	}
	v.OpeningHours = merged
	if err := vs.save(v); err != nil {
		return nil, outcome, err
	}
	log.Printf("[VenueService] Applied %d periods and %d closed days to venue %s",
		len(outcome.RecognizedPeriods), len(outcome.ClosedDays), id)
	return v, outcome, nil
}

// QuickSetOpeningHours gives every listed day the single period open-close.
func (vs *VenueService) QuickSetOpeningHours(id string, days []venue.DayType, openTime, closeTime string) (*venue.Venue, error) {
	errs := fieldErrors{}
	if len(days) == 0 {
		errs.add("days", "select at least one day")
	}
	if !clockTimePattern.MatchString(openTime) {
		errs.add("openTime", "time must be HH:MM")
	}
	if !clockTimePattern.MatchString(closeTime) {
		errs.add("closeTime", "time must be HH:MM")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	v, err := vs.GetVenue(id)
	if err != nil {
		return nil, err
	}
	week, err := smartpaste.QuickSet(v.OpeningHours, days, openTime, closeTime)
	if err != nil {
		if errors.Is(err, smartpaste.ErrInvalidDayType) {
			return nil, &ValidationError{Fields: map[string]string{"days": err.Error()}}
		}
		return nil, errors.Wrapf(err, "venue %s has a malformed schedule", id)
	}
	v.OpeningHours = week
	if err := vs.save(v); err != nil {
		return nil, err
	}
	return v, nil
}

// SetLocationFromText parses "lat, lon" text and stores it as the venue location.
func (vs *VenueService) SetLocationFromText(id, text string) (*venue.Venue, error) {
	coord, ok := smartpaste.ParseCoordinateText(text)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidCoordinate, "%q", text)
	}
	v, err := vs.GetVenue(id)
	if err != nil {
		return nil, err
	}
	v.Location = coord
	if err := vs.save(v); err != nil {
		return nil, err
	}
	return v, nil
}
