package services

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"ptalk-server/models"
)

type MerchantService struct {
	merchants MerchantRepository
	now       func() time.Time
}

func NewMerchantService(merchants MerchantRepository) *MerchantService {
	return &MerchantService{merchants: merchants, now: time.Now}
}

func (ms *MerchantService) account(merchantID string) (*models.MerchantAccount, error) {
	account, err := ms.merchants.GetMerchant(merchantID)
	if err != nil {
		return nil, translateNotFound(err, "merchant "+merchantID)
	}
	return account, nil
}

func (ms *MerchantService) GetProfile(merchantID string) (*models.MerchantProfile, error) {
	account, err := ms.account(merchantID)
	if err != nil {
		return nil, err
	}
	return &account.Profile, nil
}

// UpdateProfile changes the contact fields. Email, company and tax id are read-only.
func (ms *MerchantService) UpdateProfile(merchantID string, req models.UpdateProfileRequest) (*models.MerchantProfile, error) {
	account, err := ms.account(merchantID)
	if err != nil {
		return nil, err
	}

	phone := ""
	if req.Phone != nil {
		phone = *req.Phone
	} else if account.Profile.Phone != nil {
		phone = *account.Profile.Phone
	}
	lineID := ""
	if req.LineID != nil {
		lineID = *req.LineID
	}
	method := req.ContactMethod
	if method == "" {
		method = account.Profile.ContactMethod
	}
	errs := fieldErrors{}
	validateContact(req.ContactName, phone, method, lineID, errs)
	if err := errs.err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.ContactName)
	account.Profile.ContactName = &name
	account.Profile.Phone = &phone
	account.Profile.ContactMethod = method
	if trimmed := strings.TrimSpace(lineID); trimmed != "" {
		account.Profile.LineID = &trimmed
	} else {
		account.Profile.LineID = nil
	}
	account.Profile.UpdatedAt = ms.now().UTC()

	if err := ms.merchants.SaveMerchant(*account); err != nil {
		return nil, errors.Wrap(err, "failed to save merchant profile")
	}
	return &account.Profile, nil
}

func (ms *MerchantService) ChangePassword(merchantID string, req models.ChangePasswordRequest) error {
	account, err := ms.account(merchantID)
	if err != nil {
		return err
	}
	if !checkPassword(account.PasswordHash, req.CurrentPassword) {
		return ErrWrongPassword
	}
	errs := fieldErrors{}
	validatePassword(req.NewPassword, req.ConfirmPassword, "newPassword", errs)
	if err := errs.err(); err != nil {
		return err
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	account.Profile.UpdatedAt = ms.now().UTC()
	if err := ms.merchants.SaveMerchant(*account); err != nil {
		return errors.Wrap(err, "failed to save merchant password")
	}
	return nil
}
