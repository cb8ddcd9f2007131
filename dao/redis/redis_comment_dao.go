package redis

import (
	"encoding/json"
	"errors"
	"fmt"

	"ptalk-server/db"
	"ptalk-server/models/comment"
)

// COMMENT_KEY_FORMAT_V1 is keyed by venue id then comment id.
const COMMENT_KEY_FORMAT_V1 = "comment_v1:%s:%s"

type RedisCommentDAO struct {
	client db.RedisClient
}

func NewRedisCommentDAO(client db.RedisClient) *RedisCommentDAO {
	return &RedisCommentDAO{client: client}
}

func (dao *RedisCommentDAO) UpsertComment(c comment.CommentItem) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal comment %s: %w", c.ID, err)
	}
	key := fmt.Sprintf(COMMENT_KEY_FORMAT_V1, c.Venue.ID, c.ID)
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set comment in redis: %w", err)
	}
	return nil
}

// ListCommentsByVenue returns the comments of one venue in key order.
func (dao *RedisCommentDAO) ListCommentsByVenue(venueID string) ([]comment.CommentItem, error) {
	keys, err := dao.client.Keys(fmt.Sprintf(COMMENT_KEY_FORMAT_V1, venueID, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list comment keys: %w", err)
	}
	comments := make([]comment.CommentItem, 0, len(keys))
	for _, k := range keys {
		str, err := dao.client.Get(k)
		if errors.Is(err, db.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get comment %s: %w", k, err)
		}
		var c comment.CommentItem
		if err := json.Unmarshal([]byte(str), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comment JSON: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}
