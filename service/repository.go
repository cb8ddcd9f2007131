package services

import (
	"time"

	"ptalk-server/models"
	"ptalk-server/models/comment"
	"ptalk-server/models/venue"
)

// VenueRepository is the venue storage the services depend on.
type VenueRepository interface {
	UpsertVenue(v venue.Venue) error
	GetVenue(id string) (*venue.Venue, error)
	ListVenues() ([]venue.Venue, error)
	DeleteVenue(id string) error
	GetNearbyVenues(lat, lon, radius float64) ([]venue.Venue, error)
}

type TagRepository interface {
	UpsertTag(tag venue.VenueTag) error
	GetTag(id string) (*venue.VenueTag, error)
	ListTags() ([]venue.VenueTag, error)
}

type CommentRepository interface {
	UpsertComment(c comment.CommentItem) error
	ListCommentsByVenue(venueID string) ([]comment.CommentItem, error)
}

type MerchantRepository interface {
	CreateMerchant(account models.MerchantAccount) error
	SaveMerchant(account models.MerchantAccount) error
	GetMerchant(id string) (*models.MerchantAccount, error)
	GetMerchantByEmail(email string) (*models.MerchantAccount, error)
}

type SessionRepository interface {
	SaveSession(tokenID, merchantID string, ttl time.Duration) error
	GetSession(tokenID string) (string, error)
	DeleteSession(tokenID string) error
}

// StorePurger wipes every record so the demo data can be seeded from scratch.
type StorePurger interface {
	PurgeAll() error
}
