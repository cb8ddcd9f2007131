package models

import "time"

// MerchantStatus mirrors the account review lifecycle.
type MerchantStatus int

const (
	MERCHANT_STATUS_PENDING  MerchantStatus = 1
	MERCHANT_STATUS_ENABLED  MerchantStatus = 2
	MERCHANT_STATUS_DISABLED MerchantStatus = 3
	MERCHANT_STATUS_REJECTED MerchantStatus = 4
)

// ContactMethod is how the merchant prefers to be reached.
type ContactMethod string

const (
	CONTACT_METHOD_LINE  ContactMethod = "line"
	CONTACT_METHOD_PHONE ContactMethod = "phone"
)

type MerchantProfile struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	CompanyName   string         `json:"companyName"`
	ContactName   *string        `json:"contactName"`
	Phone         *string        `json:"phone"`
	LineID        *string        `json:"lineId"`
	TaxID         *string        `json:"taxId"`
	Address       *string        `json:"address"`
	ContactMethod ContactMethod  `json:"contactMethod,omitempty"`
	Status        MerchantStatus `json:"status"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type UpdateProfileRequest struct {
	ContactName   string        `json:"contactName"`
	Phone         *string       `json:"phone,omitempty"`
	LineID        *string       `json:"lineId,omitempty"`
	ContactMethod ContactMethod `json:"contactMethod,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// MerchantAccount is the stored form of a merchant: the profile plus the credential hash.
type MerchantAccount struct {
	Profile      MerchantProfile `json:"profile"`
	PasswordHash string          `json:"passwordHash"`
}

// MerchantSeed is a demo account as stored in the resources fixtures, with a plaintext password.
type MerchantSeed struct {
	Password string          `json:"password"`
	Profile  MerchantProfile `json:"profile"`
}
