package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"ptalk-server/db"
	"ptalk-server/models"
)

const MERCHANT_KEY_FORMAT_V1 = "merchant_v1:%s"

// MERCHANT_EMAIL_KEY_FORMAT_V1 maps a lowercased email to the merchant id.
const MERCHANT_EMAIL_KEY_FORMAT_V1 = "merchant_email_v1:%s"

// ErrEmailTaken is returned when registering an email that already has an account.
var ErrEmailTaken = errors.New("email already registered")

type RedisMerchantDAO struct {
	client db.RedisClient
}

func NewRedisMerchantDAO(client db.RedisClient) *RedisMerchantDAO {
	return &RedisMerchantDAO{client: client}
}

func emailKey(email string) string {
	return fmt.Sprintf(MERCHANT_EMAIL_KEY_FORMAT_V1, strings.ToLower(strings.TrimSpace(email)))
}

// CreateMerchant claims the email index, then stores the account. Only one
// of several concurrent registrations for the same email can win the claim.
func (dao *RedisMerchantDAO) CreateMerchant(account models.MerchantAccount) error {
	key := emailKey(account.Profile.Email)
	claimed, err := dao.client.SetNX(key, account.Profile.ID)
	if err != nil {
		return fmt.Errorf("failed to claim merchant email: %w", err)
	}
	if !claimed {
		return fmt.Errorf("%s: %w", account.Profile.Email, ErrEmailTaken)
	}
	if err := dao.SaveMerchant(account); err != nil {
		if delErr := dao.client.Del(key); delErr != nil {
			log.Printf("[RedisMerchantDAO] Failed to release email claim %s: %v", key, delErr)
		}
		return err
	}
	return nil
}

// SaveMerchant overwrites the stored account. The email index is left untouched.
func (dao *RedisMerchantDAO) SaveMerchant(account models.MerchantAccount) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal merchant %s: %w", account.Profile.ID, err)
	}
	if err := dao.client.Set(fmt.Sprintf(MERCHANT_KEY_FORMAT_V1, account.Profile.ID), string(data)); err != nil {
		return fmt.Errorf("failed to set merchant in redis: %w", err)
	}
	return nil
}

func (dao *RedisMerchantDAO) GetMerchant(id string) (*models.MerchantAccount, error) {
	str, err := dao.client.Get(fmt.Sprintf(MERCHANT_KEY_FORMAT_V1, id))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("merchant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant %s: %w", id, err)
	}
	var account models.MerchantAccount
	if err := json.Unmarshal([]byte(str), &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal merchant JSON: %w", err)
	}
	return &account, nil
}

func (dao *RedisMerchantDAO) GetMerchantByEmail(email string) (*models.MerchantAccount, error) {
	id, err := dao.client.Get(emailKey(email))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("merchant email %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve merchant email: %w", err)
	}
	return dao.GetMerchant(id)
}
