package redis

import (
	"errors"
	"fmt"
	"time"

	"ptalk-server/db"
)

// SESSION_KEY_FORMAT_V1 is keyed by the token id (jti) and holds the merchant id.
const SESSION_KEY_FORMAT_V1 = "session_v1:%s"

type RedisSessionDAO struct {
	client db.RedisClient
}

func NewRedisSessionDAO(client db.RedisClient) *RedisSessionDAO {
	return &RedisSessionDAO{client: client}
}

func (dao *RedisSessionDAO) SaveSession(tokenID, merchantID string, ttl time.Duration) error {
	if err := dao.client.SetWithTTL(fmt.Sprintf(SESSION_KEY_FORMAT_V1, tokenID), merchantID, ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession returns the merchant id owning the session, or ErrNotFound once it expired.
func (dao *RedisSessionDAO) GetSession(tokenID string) (string, error) {
	merchantID, err := dao.client.Get(fmt.Sprintf(SESSION_KEY_FORMAT_V1, tokenID))
	if errors.Is(err, db.ErrKeyNotFound) {
		return "", fmt.Errorf("session %s: %w", tokenID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return merchantID, nil
}

func (dao *RedisSessionDAO) DeleteSession(tokenID string) error {
	if err := dao.client.Del(fmt.Sprintf(SESSION_KEY_FORMAT_V1, tokenID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
