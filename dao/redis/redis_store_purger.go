package redis

import (
	"fmt"
	"log"

	"ptalk-server/db"
)

// purgePatterns cover every key family except venues, which also live in the geo index.
var purgePatterns = []string{
	fmt.Sprintf(TAG_KEY_FORMAT_V1, "*"),
	fmt.Sprintf(COMMENT_KEY_FORMAT_V1, "*", "*"),
	fmt.Sprintf(MERCHANT_KEY_FORMAT_V1, "*"),
	fmt.Sprintf(MERCHANT_EMAIL_KEY_FORMAT_V1, "*"),
	fmt.Sprintf(SESSION_KEY_FORMAT_V1, "*"),
}

// RedisStorePurger removes everything the PTalk DAOs have written.
type RedisStorePurger struct {
	client db.RedisClient
	venues *RedisVenueDAO
}

func NewRedisStorePurger(client db.RedisClient) *RedisStorePurger {
	return &RedisStorePurger{client: client, venues: NewRedisVenueDAO(client)}
}

// PurgeAll deletes venues, tags, comments, merchants, email claims and sessions.
func (p *RedisStorePurger) PurgeAll() error {
	ids, err := p.venues.ListAllVenueIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := p.venues.DeleteVenue(id); err != nil {
			return err
		}
	}

	removed := len(ids)
	for _, pattern := range purgePatterns {
		keys, err := p.client.Keys(pattern)
		if err != nil {
			return fmt.Errorf("failed to list keys %s: %w", pattern, err)
		}
		for _, k := range keys {
			if err := p.client.Del(k); err != nil {
				return fmt.Errorf("failed to delete key %s: %w", k, err)
			}
		}
		removed += len(keys)
	}
	log.Printf("[RedisStorePurger] Removed %d keys", removed)
	return nil
}
