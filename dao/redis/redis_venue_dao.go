package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"ptalk-server/db"
	"ptalk-server/models/venue"
)

const VENUES_GEO_KEY_V1 = "venues_geo_v1"
const VENUES_GEO_PLACE_MEMBER_FORMAT_V1 = "venues_geo_place_v1:%s"

// RedisVenueDAO handles venue operations using Redis.
type RedisVenueDAO struct {
	client db.RedisClient
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient) *RedisVenueDAO {
	return &RedisVenueDAO{client: client}
}

func venueKey(id string) string {
	return fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, id)
}

// UpsertVenue stores the venue as a geolocation with the venue's JSON data.
func (dao *RedisVenueDAO) UpsertVenue(v venue.Venue) error {
	ctx := dao.client.GetContext()
	return dao.client.AddLocationWithJSON(ctx, VENUES_GEO_KEY_V1, venueKey(v.ID), v.Location.Latitude, v.Location.Longitude, v)
}

// GetVenue returns ErrNotFound when no venue has the given id.
func (dao *RedisVenueDAO) GetVenue(id string) (*venue.Venue, error) {
	str, err := dao.client.Get(venueKey(id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("venue %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get venue %s: %w", id, err)
	}
	var v venue.Venue
	if err := json.Unmarshal([]byte(str), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
	}
	return &v, nil
}

// ListVenues returns every stored venue. Members that vanish between the key
// scan and the read are skipped.
func (dao *RedisVenueDAO) ListVenues() ([]venue.Venue, error) {
	ids, err := dao.ListAllVenueIDs()
	if err != nil {
		return nil, err
	}
	venues := make([]venue.Venue, 0, len(ids))
	for _, id := range ids {
		v, err := dao.GetVenue(id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		venues = append(venues, *v)
	}
	return venues, nil
}

// ListAllVenueIDs returns all venue IDs present in the geo index.
func (dao *RedisVenueDAO) ListAllVenueIDs() ([]string, error) {
	keys, err := dao.client.Keys(venueKey("*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list venue geo keys: %w", err)
	}
	ids := make([]string, 0, len(keys))
	prefix := venueKey("")
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

func (dao *RedisVenueDAO) DeleteVenue(id string) error {
	ctx := dao.client.GetContext()
	if err := dao.client.RemoveLocation(ctx, VENUES_GEO_KEY_V1, venueKey(id)); err != nil {
		return fmt.Errorf("failed to delete venue %s: %w", id, err)
	}
	log.Printf("[RedisVenueDAO] Deleted venue %s", id)
	return nil
}

// GetNearbyVenues retrieves venues within radius km, nearest first.
func (dao *RedisVenueDAO) GetNearbyVenues(lat, lon float64, radius float64) ([]venue.Venue, error) {
	venuesJSON, err := dao.client.GetLocationsWithinRadius(VENUES_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisVenueDAO] failed to get venues: %w", err)
	}

	venues := make([]venue.Venue, len(venuesJSON))
	for i, venueJSON := range venuesJSON {
		if err := json.Unmarshal([]byte(venueJSON), &venues[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
		}
	}
	return venues, nil
}
