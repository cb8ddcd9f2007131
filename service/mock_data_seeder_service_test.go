package services

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptalk-server/dao/redis"
	"ptalk-server/models"
	"ptalk-server/models/venue"
)

func TestMockDataSeederService_SeedAll(t *testing.T) {
	// Arrange
	store := seededStore(t)

	// Act
	venues, err := store.venues.ListVenues()
	require.NoError(t, err)
	tags, err := store.tags.ListTags()
	require.NoError(t, err)
	comments, err := store.comments.ListCommentsByVenue("1")
	require.NoError(t, err)
	merchant, err := store.merchants.GetMerchantByEmail("demo@ptalk.com")
	require.NoError(t, err)

	// Assert
	assert.Len(t, venues, 4)
	assert.Len(t, tags, 3)
	assert.Len(t, comments, 3)
	assert.True(t, checkPassword(merchant.PasswordHash, "demo1234"))
}

func TestMockDataSeederService_ReseedResetsState(t *testing.T) {
	store := seededStore(t)
	vs := NewVenueService(store.venues, store.tags)
	require.NoError(t, vs.DeleteVenue("1"))
	ms := NewMerchantService(store.merchants)
	require.NoError(t, ms.ChangePassword("m1", changePassword("demo1234", "changed1")))

	seeder := NewMockDataSeederService(store.venues, store.tags, store.comments, store.merchants, store.purger, func() (*SeedData, error) {
		return fixtureData(), nil
	})
	require.NoError(t, seeder.SeedAll())

	_, err := vs.GetVenue("1")
	assert.NoError(t, err)
	account, err := store.merchants.GetMerchant("m1")
	require.NoError(t, err)
	assert.True(t, checkPassword(account.PasswordHash, "demo1234"))
}

func TestMockDataSeederService_ResetAllDropsStateSinceLastSeed(t *testing.T) {
	// Arrange
	as, store := newTestAuthService(t)
	_, err := as.Register(validRegistration())
	require.NoError(t, err)
	_, err = as.Login(models.LoginRequest{Email: "new@ptalk.com", Password: "secret99"})
	require.NoError(t, err)
	require.NoError(t, store.venues.UpsertVenue(venue.Venue{ID: "99", Name: "臨時店家", Location: venue.Coordinate{Latitude: 25, Longitude: 121}}))
	require.NoError(t, store.venues.DeleteVenue("2"))
	seeder := NewMockDataSeederService(store.venues, store.tags, store.comments, store.merchants, store.purger, func() (*SeedData, error) {
		return fixtureData(), nil
	})

	// Act
	require.NoError(t, seeder.ResetAll())

	// Assert
	_, err = store.merchants.GetMerchantByEmail("new@ptalk.com")
	assert.ErrorIs(t, err, redis.ErrNotFound)
	sessions, err := store.client.Keys("session_v1:*")
	require.NoError(t, err)
	assert.Empty(t, sessions)
	_, err = store.venues.GetVenue("99")
	assert.ErrorIs(t, err, redis.ErrNotFound)
	_, err = store.venues.GetVenue("2")
	assert.NoError(t, err)
	venues, err := store.venues.ListVenues()
	require.NoError(t, err)
	assert.Len(t, venues, 4)
	_, err = store.merchants.GetMerchantByEmail("demo@ptalk.com")
	assert.NoError(t, err)

	_, err = as.Register(validRegistration())
	assert.NoError(t, err, "the email claim is released by the reset")
}

func TestMockDataSeederService_PeriodicJobStopsOnCancel(t *testing.T) {
	store := seededStore(t)
	seeder := NewMockDataSeederService(store.venues, store.tags, store.comments, store.merchants, store.purger, func() (*SeedData, error) {
		return fixtureData(), nil
	})
	require.NoError(t, store.venues.DeleteVenue("1"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		seeder.runPeriodicJob(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := store.venues.GetVenue("1")
		return err == nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("periodic job did not stop after cancel")
	}
}

func TestMockDataSeederService_LoaderError(t *testing.T) {
	store := newTestStore()
	seeder := NewMockDataSeederService(store.venues, store.tags, store.comments, store.merchants, store.purger, func() (*SeedData, error) {
		return nil, errors.New("disk on fire")
	})

	err := seeder.SeedAll()

	assert.ErrorContains(t, err, "disk on fire")
}

func TestNewResourceSeedLoader(t *testing.T) {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	load := NewResourceSeedLoader(filepath.Join(filepath.Dir(file), "..", "resources"))

	data, err := load()

	require.NoError(t, err)
	assert.Len(t, data.Venues, 5)
	assert.Len(t, data.Tags, 15)
	assert.Len(t, data.Comments, 11)
	require.NotNil(t, data.Merchant)
	assert.Equal(t, "demo@ptalk.com", data.Merchant.Profile.Email)

	_, err = NewResourceSeedLoader(t.TempDir())()
	assert.Error(t, err)
}
