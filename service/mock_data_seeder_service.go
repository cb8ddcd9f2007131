package services

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"ptalk-server/config"
	"ptalk-server/models"
	"ptalk-server/models/comment"
	"ptalk-server/models/venue"
	"ptalk-server/util"
)

// SeedData is the demo dataset loaded from the resources fixtures.
type SeedData struct {
	Venues   []venue.Venue
	Tags     []venue.VenueTag
	Comments []comment.CommentItem
	Merchant *models.MerchantSeed
}

// SeedLoader reads the demo dataset. It is called on every seeding run so
// edited fixtures are picked up on the next reset.
type SeedLoader func() (*SeedData, error)

// NewResourceSeedLoader reads the mock_*.json fixtures from resourcesDir.
func NewResourceSeedLoader(resourcesDir string) SeedLoader {
	return func() (*SeedData, error) {
		var data SeedData
		var err error
		if data.Tags, err = util.ReadTagsFromJSON(filepath.Join(resourcesDir, config.MOCK_TAGS_RESOURCE)); err != nil {
			return nil, err
		}
		if data.Venues, err = util.ReadVenuesFromJSON(filepath.Join(resourcesDir, config.MOCK_VENUES_RESOURCE)); err != nil {
			return nil, err
		}
		if data.Comments, err = util.ReadCommentsFromJSON(filepath.Join(resourcesDir, config.MOCK_COMMENTS_RESOURCE)); err != nil {
			return nil, err
		}
		if data.Merchant, err = util.ReadMerchantSeedFromJSON(filepath.Join(resourcesDir, config.MOCK_MERCHANT_RESOURCE)); err != nil {
			return nil, err
		}
		return &data, nil
	}
}

// MockDataSeederService fills the store with demo data and, in demo mode,
// periodically wipes and re-seeds it.
type MockDataSeederService struct {
	venueRepo    VenueRepository
	tagRepo      TagRepository
	commentRepo  CommentRepository
	merchantRepo MerchantRepository
	purger       StorePurger
	load         SeedLoader
}

// NewMockDataSeederService builds a seeder. purger may be nil when the
// store is never reset, in which case ResetAll only re-upserts.
func NewMockDataSeederService(
	venueRepo VenueRepository,
	tagRepo TagRepository,
	commentRepo CommentRepository,
	merchantRepo MerchantRepository,
	purger StorePurger,
	load SeedLoader,
) *MockDataSeederService {
	return &MockDataSeederService{
		venueRepo:    venueRepo,
		tagRepo:      tagRepo,
		commentRepo:  commentRepo,
		merchantRepo: merchantRepo,
		purger:       purger,
		load:         load,
	}
}

// StartPeriodicJob launches the background reset loop. It stops when ctx is done.
func (ms *MockDataSeederService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go ms.runPeriodicJob(ctx, interval)
}

func (ms *MockDataSeederService) runPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[MockDataSeederService] Periodic demo data reset stopped.")
			return
		case <-ticker.C:
			log.Println("[MockDataSeederService] Running periodic demo data reset.")
			if err := ms.ResetAll(); err != nil {
				log.Printf("[MockDataSeederService] ResetAll returned error: %v", err)
			} else {
				log.Println("[MockDataSeederService] ResetAll completed successfully.")
			}
		}
	}
}

// ResetAll wipes the store and seeds it again, dropping accounts, sessions
// and edits made since the last run.
func (ms *MockDataSeederService) ResetAll() error {
	if ms.purger != nil {
		if err := ms.purger.PurgeAll(); err != nil {
			return errors.Wrap(err, "failed to purge store")
		}
	}
	return ms.SeedAll()
}

// SeedAll loads the fixtures and upserts tags, venues, comments and the demo merchant.
func (ms *MockDataSeederService) SeedAll() error {
	data, err := ms.load()
	if err != nil {
		return errors.Wrap(err, "failed to load seed data")
	}

	for _, t := range data.Tags {
		if err := ms.tagRepo.UpsertTag(t); err != nil {
			log.Printf("[MockDataSeederService] Upsert failed for tag %s: %v", t.ID, err)
		}
	}
	log.Printf("[MockDataSeederService] Seeded %d tags", len(data.Tags))

	seen := make(map[string]struct{})
	for _, v := range data.Venues {
		if _, dup := seen[v.ID]; dup {
			log.Printf("[MockDataSeederService] Skipping duplicate venue ID=%s", v.ID)
			continue
		}
		seen[v.ID] = struct{}{}
		if err := ms.venueRepo.UpsertVenue(v); err != nil {
			log.Printf("[MockDataSeederService] Upsert failed for venue %s: %v", v.ID, err)
		}
	}
	log.Printf("[MockDataSeederService] Seeded %d venues", len(seen))

	for _, c := range data.Comments {
		if err := ms.commentRepo.UpsertComment(c); err != nil {
			log.Printf("[MockDataSeederService] Upsert failed for comment %s: %v", c.ID, err)
		}
	}
	log.Printf("[MockDataSeederService] Seeded %d comments", len(data.Comments))

	if data.Merchant != nil {
		if err := ms.seedMerchant(*data.Merchant); err != nil {
			return err
		}
	}
	return nil
}

// seedMerchant creates the demo account or resets its password and profile.
func (ms *MockDataSeederService) seedMerchant(seed models.MerchantSeed) error {
	hash, err := HashPassword(seed.Password)
	if err != nil {
		return err
	}
	account := models.MerchantAccount{Profile: seed.Profile, PasswordHash: hash}

	if _, err := ms.merchantRepo.GetMerchant(seed.Profile.ID); err == nil {
		return errors.Wrap(ms.merchantRepo.SaveMerchant(account), "failed to reset demo merchant")
	} else if !isNotFound(err) {
		return errors.Wrap(err, "failed to look up demo merchant")
	}
	if err := ms.merchantRepo.CreateMerchant(account); err != nil {
		return errors.Wrap(err, "failed to create demo merchant")
	}
	log.Printf("[MockDataSeederService] Seeded demo merchant %s", seed.Profile.Email)
	return nil
}
