package venue

import (
	"fmt"
	"time"
)

// BusinessCategory is the kind of venue.
type BusinessCategory int

const (
	CATEGORY_RESTAURANT BusinessCategory = 1
	CATEGORY_HOSPITAL   BusinessCategory = 2
	CATEGORY_SALON      BusinessCategory = 3
	CATEGORY_HOTEL      BusinessCategory = 4
)

var BusinessCategoryLabels = map[BusinessCategory]string{
	CATEGORY_RESTAURANT: "餐廳",
	CATEGORY_HOSPITAL:   "醫院",
	CATEGORY_SALON:      "美容院",
	CATEGORY_HOTEL:      "飯店",
}

func (c BusinessCategory) Valid() bool {
	_, ok := BusinessCategoryLabels[c]
	return ok
}

// BusinessStatus is the review/operating state of a venue.
type BusinessStatus int

const (
	STATUS_PENDING  BusinessStatus = 0
	STATUS_ACTIVE   BusinessStatus = 1
	STATUS_INACTIVE BusinessStatus = 2
	STATUS_CLOSED   BusinessStatus = 3
)

var BusinessStatusLabels = map[BusinessStatus]string{
	STATUS_PENDING:  "待審核",
	STATUS_ACTIVE:   "營業中",
	STATUS_INACTIVE: "暫停營業",
	STATUS_CLOSED:   "已關閉",
}

func (s BusinessStatus) Valid() bool {
	_, ok := BusinessStatusLabels[s]
	return ok
}

// PetGroundingRuleType tells whether pets may walk on the floor.
type PetGroundingRuleType int

const (
	GROUNDING_UNKNOWN            PetGroundingRuleType = 0
	GROUNDING_ALLOWED_WITH_LEASH PetGroundingRuleType = 1
	GROUNDING_CARRIER_REQUIRED   PetGroundingRuleType = 2
)

var PetGroundingRuleTypeLabels = map[PetGroundingRuleType]string{
	GROUNDING_UNKNOWN:            "不確定",
	GROUNDING_ALLOWED_WITH_LEASH: "可落地，需牽繩",
	GROUNDING_CARRIER_REQUIRED:   "需使用推車或籠子",
}

func (p PetGroundingRuleType) Valid() bool {
	_, ok := PetGroundingRuleTypeLabels[p]
	return ok
}

type ReservationMethod int

const (
	RESERVATION_QUEUE  ReservationMethod = 1
	RESERVATION_ONLINE ReservationMethod = 2
	RESERVATION_PHONE  ReservationMethod = 3
)

var ReservationMethodLabels = map[ReservationMethod]string{
	RESERVATION_QUEUE:  "現場排隊",
	RESERVATION_ONLINE: "線上預約",
	RESERVATION_PHONE:  "電話預約",
}

func (r ReservationMethod) Valid() bool {
	_, ok := ReservationMethodLabels[r]
	return ok
}

const (
	MIN_LATITUDE  = -90.0
	MAX_LATITUDE  = 90.0
	MIN_LONGITUDE = -180.0
	MAX_LONGITUDE = 180.0
)

// Coordinate is a validated latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) Valid() bool {
	return c.Latitude >= MIN_LATITUDE && c.Latitude <= MAX_LATITUDE &&
		c.Longitude >= MIN_LONGITUDE && c.Longitude <= MAX_LONGITUDE
}

type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// BusinessActions are the operations the merchant may perform on a venue.
type BusinessActions struct {
	CanEdit         bool `json:"canEdit"`
	CanDelete       bool `json:"canDelete"`
	CanToggleStatus bool `json:"canToggleStatus"`
}

// VenueTag is a pet-friendly feature label.
type VenueTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Venue is a pet-friendly venue listing owned by a merchant.
type Venue struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	CategoryType         BusinessCategory     `json:"categoryType"`
	Location             Coordinate           `json:"location"`
	RatingSummary        RatingSummary        `json:"ratingSummary"`
	Status               BusinessStatus       `json:"status"`
	Address              string               `json:"address"`
	Phone                string               `json:"phone,omitempty"`
	Images               []string             `json:"images"`
	Actions              BusinessActions      `json:"actions"`
	OpeningHours         WeekSchedule         `json:"openingHours"`
	GoogleMapsURL        string               `json:"googleMapsUrl,omitempty"`
	WarningURL           string               `json:"warningUrl,omitempty"`
	Website              string               `json:"website,omitempty"`
	Description          string               `json:"description,omitempty"`
	PetGroundingRuleType PetGroundingRuleType `json:"petGroundingRuleType,omitempty"`
	ReservationMethods   []ReservationMethod  `json:"reservationMethods,omitempty"`
	Tags                 []VenueTag           `json:"tags,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

func (v *Venue) ToString() string {
	return fmt.Sprintf("Venue(id=%s, name=%s, address=%s, lat=%f, lon=%f)",
		v.ID, v.Name, v.Address, v.Location.Latitude, v.Location.Longitude)
}

// ListItem returns the trimmed form shown in venue tables.
func (v *Venue) ListItem() VenueListItem {
	return VenueListItem{
		ID:           v.ID,
		Name:         v.Name,
		CategoryType: v.CategoryType,
		Address:      v.Address,
		Status:       v.Status,
		Images:       v.Images,
	}
}

type VenueListItem struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	CategoryType BusinessCategory `json:"categoryType"`
	Address      string           `json:"address"`
	Status       BusinessStatus   `json:"status"`
	Images       []string         `json:"images"`
}

// VenueEditFormData is the editable part of a venue submitted by the merchant.
type VenueEditFormData struct {
	CategoryType         BusinessCategory      `json:"categoryType"`
	Location             Coordinate            `json:"location"`
	Address              string                `json:"address"`
	Phone                string                `json:"phone,omitempty"`
	Images               []string              `json:"images"`
	OpeningHours         WeekSchedule          `json:"openingHours"`
	GoogleMapsURL        string                `json:"googleMapsUrl,omitempty"`
	Website              string                `json:"website,omitempty"`
	Description          string                `json:"description,omitempty"`
	PetGroundingRuleType *PetGroundingRuleType `json:"petGroundingRuleType,omitempty"`
	ReservationMethods   []ReservationMethod   `json:"reservationMethods,omitempty"`
	TagIDs               []string              `json:"tagIds,omitempty"`
}

// FormData returns the editable fields of v, as the edit form is initialized.
func (v *Venue) FormData() VenueEditFormData {
	tagIDs := make([]string, 0, len(v.Tags))
	for _, t := range v.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	rule := v.PetGroundingRuleType
	return VenueEditFormData{
		CategoryType:         v.CategoryType,
		Location:             v.Location,
		Address:              v.Address,
		Phone:                v.Phone,
		Images:               v.Images,
		OpeningHours:         v.OpeningHours.Clone(),
		GoogleMapsURL:        v.GoogleMapsURL,
		Website:              v.Website,
		Description:          v.Description,
		PetGroundingRuleType: &rule,
		ReservationMethods:   v.ReservationMethods,
		TagIDs:               tagIDs,
	}
}
