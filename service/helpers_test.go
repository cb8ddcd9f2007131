package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ptalk-server/dao/redis"
	"ptalk-server/db"
	"ptalk-server/models"
	"ptalk-server/models/comment"
	"ptalk-server/models/venue"
)

type testStore struct {
	client    *db.MockRedisClient
	venues    *redis.RedisVenueDAO
	tags      *redis.RedisTagDAO
	comments  *redis.RedisCommentDAO
	merchants *redis.RedisMerchantDAO
	sessions  *redis.RedisSessionDAO
	purger    *redis.RedisStorePurger
}

func newTestStore() *testStore {
	client := db.NewMockRedisClient(context.Background())
	return &testStore{
		client:    client,
		venues:    redis.NewRedisVenueDAO(client),
		tags:      redis.NewRedisTagDAO(client),
		comments:  redis.NewRedisCommentDAO(client),
		merchants: redis.NewRedisMerchantDAO(client),
		sessions:  redis.NewRedisSessionDAO(client),
		purger:    redis.NewRedisStorePurger(client),
	}
}

var fixedNow = time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC)

func allowAll() venue.BusinessActions {
	return venue.BusinessActions{CanEdit: true, CanDelete: true, CanToggleStatus: true}
}

func fixtureData() *SeedData {
	hours := venue.DefaultWeekSchedule()
	hours[2].Periods = []venue.TimePeriod{}
	return &SeedData{
		Tags: []venue.VenueTag{{ID: "t1", Name: "大型犬友善"}, {ID: "t2", Name: "提供寵物餐"}, {ID: "t10", Name: "提供寵物用品"}},
		Venues: []venue.Venue{
			{ID: "1", Name: "毛孩咖啡廳", Address: "台北市大安區", Status: venue.STATUS_ACTIVE, CategoryType: venue.CATEGORY_RESTAURANT,
				Location: venue.Coordinate{Latitude: 25.0339, Longitude: 121.5619}, Actions: allowAll(), OpeningHours: hours},
			{ID: "2", Name: "寵物美容坊", Address: "新北市板橋區", Status: venue.STATUS_PENDING, CategoryType: venue.CATEGORY_SALON,
				Location: venue.Coordinate{Latitude: 25.0478, Longitude: 121.5171}, Actions: allowAll(), OpeningHours: venue.DefaultWeekSchedule()},
			{ID: "3", Name: "汪汪旅館", Address: "台中市西區", Status: venue.STATUS_CLOSED, CategoryType: venue.CATEGORY_HOTEL,
				Location: venue.Coordinate{Latitude: 24.1477, Longitude: 120.6736}, Actions: venue.BusinessActions{CanEdit: true}, OpeningHours: venue.DefaultWeekSchedule()},
			{ID: "10", Name: "喵星人餐廳", Address: "台北市中山區", Status: venue.STATUS_INACTIVE, CategoryType: venue.CATEGORY_RESTAURANT,
				Location: venue.Coordinate{Latitude: 25.0418, Longitude: 121.5449}, Actions: allowAll(), OpeningHours: venue.DefaultWeekSchedule()},
		},
		Comments: []comment.CommentItem{
			{ID: "c1", Venue: comment.CommentVenue{ID: "1"}, Feedback: comment.Feedback{Type: comment.FEEDBACK_PAW}, UpdateTime: fixedNow.Add(-72 * time.Hour)},
			{ID: "c2", Venue: comment.CommentVenue{ID: "1"}, Feedback: comment.Feedback{Type: comment.FEEDBACK_POOP}, UpdateTime: fixedNow.Add(-24 * time.Hour)},
			{ID: "c3", Venue: comment.CommentVenue{ID: "1"}, Feedback: comment.Feedback{Type: comment.FEEDBACK_PAW}, UpdateTime: fixedNow.Add(-48 * time.Hour)},
		},
		Merchant: &models.MerchantSeed{
			Password: "demo1234",
			Profile:  models.MerchantProfile{ID: "m1", Email: "demo@ptalk.com", Status: models.MERCHANT_STATUS_ENABLED, ContactMethod: models.CONTACT_METHOD_PHONE},
		},
	}
}

func seededStore(t *testing.T) *testStore {
	t.Helper()
	store := newTestStore()
	seeder := NewMockDataSeederService(store.venues, store.tags, store.comments, store.merchants, store.purger, func() (*SeedData, error) {
		return fixtureData(), nil
	})
	require.NoError(t, seeder.SeedAll())
	return store
}
