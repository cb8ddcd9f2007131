package redis

import (
	"encoding/json"
	"errors"
	"fmt"

	"ptalk-server/db"
	"ptalk-server/models/venue"
)

const TAG_KEY_FORMAT_V1 = "tag_v1:%s"

type RedisTagDAO struct {
	client db.RedisClient
}

func NewRedisTagDAO(client db.RedisClient) *RedisTagDAO {
	return &RedisTagDAO{client: client}
}

func (dao *RedisTagDAO) UpsertTag(tag venue.VenueTag) error {
	data, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("failed to marshal tag %s: %w", tag.ID, err)
	}
	if err := dao.client.Set(fmt.Sprintf(TAG_KEY_FORMAT_V1, tag.ID), string(data)); err != nil {
		return fmt.Errorf("failed to set tag in redis: %w", err)
	}
	return nil
}

func (dao *RedisTagDAO) GetTag(id string) (*venue.VenueTag, error) {
	str, err := dao.client.Get(fmt.Sprintf(TAG_KEY_FORMAT_V1, id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag %s: %w", id, err)
	}
	var tag venue.VenueTag
	if err := json.Unmarshal([]byte(str), &tag); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tag JSON: %w", err)
	}
	return &tag, nil
}

func (dao *RedisTagDAO) ListTags() ([]venue.VenueTag, error) {
	keys, err := dao.client.Keys(fmt.Sprintf(TAG_KEY_FORMAT_V1, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list tag keys: %w", err)
	}
	tags := make([]venue.VenueTag, 0, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(k)
		if errors.Is(err, db.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get tag %s: %w", k, err)
		}
		var tag venue.VenueTag
		if err := json.Unmarshal([]byte(str), &tag); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tag JSON: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
