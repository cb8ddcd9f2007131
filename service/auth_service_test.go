package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptalk-server/models"
)

const testSecret = "test-secret"

func newTestAuthService(t *testing.T) (*AuthService, *testStore) {
	t.Helper()
	store := seededStore(t)
	as := NewAuthService(store.merchants, store.sessions, testSecret, "ptalk-test", time.Hour, 24*time.Hour)
	as.now = func() time.Time { return fixedNow }
	return as, store
}

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Email:           "new@ptalk.com",
		Password:        "secret99",
		ConfirmPassword: "secret99",
		ContactName:     "王小明",
		ContactPhone:    "0987654321",
		ContactMethod:   models.CONTACT_METHOD_PHONE,
	}
}

func TestAuthService_Register(t *testing.T) {
	as, store := newTestAuthService(t)

	profile, err := as.Register(validRegistration())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(profile.ID, MERCHANT_ID_PREFIX))
	assert.Equal(t, models.MERCHANT_STATUS_PENDING, profile.Status)
	account, err := store.merchants.GetMerchantByEmail("NEW@ptalk.com")
	require.NoError(t, err)
	assert.True(t, checkPassword(account.PasswordHash, "secret99"))
}

func TestAuthService_Register_Validation(t *testing.T) {
	as, _ := newTestAuthService(t)

	tests := []struct {
		name   string
		mutate func(r *models.RegisterRequest)
		field  string
	}{
		{"bad email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *models.RegisterRequest) { r.Password, r.ConfirmPassword = "abc", "abc" }, "password"},
		{"mismatched confirmation", func(r *models.RegisterRequest) { r.ConfirmPassword = "secret98" }, "confirmPassword"},
		{"missing name", func(r *models.RegisterRequest) { r.ContactName = " " }, "contactName"},
		{"landline", func(r *models.RegisterRequest) { r.ContactPhone = "0221234567" }, "contactPhone"},
		{"line without id", func(r *models.RegisterRequest) { r.ContactMethod = models.CONTACT_METHOD_LINE }, "lineId"},
		{"unknown method", func(r *models.RegisterRequest) { r.ContactMethod = "fax" }, "contactMethod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(&req)

			_, err := as.Register(req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	as, _ := newTestAuthService(t)
	req := validRegistration()
	req.Email = "demo@ptalk.com"

	_, err := as.Register(req)

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	as, _ := newTestAuthService(t)

	resp, err := as.Login(models.LoginRequest{Email: "demo@ptalk.com", Password: "demo1234"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, 3600, resp.ExpiresIn)
	merchantID, err := as.Authenticate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "m1", merchantID)
}

func TestAuthService_Login_Failures(t *testing.T) {
	as, store := newTestAuthService(t)

	_, err := as.Login(models.LoginRequest{Email: "demo@ptalk.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = as.Login(models.LoginRequest{Email: "nobody@ptalk.com", Password: "demo1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	account, err := store.merchants.GetMerchant("m1")
	require.NoError(t, err)
	account.Profile.Status = models.MERCHANT_STATUS_DISABLED
	require.NoError(t, store.merchants.SaveMerchant(*account))
	_, err = as.Login(models.LoginRequest{Email: "demo@ptalk.com", Password: "demo1234"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthService_Authenticate_Rejects(t *testing.T) {
	as, _ := newTestAuthService(t)
	resp, err := as.Login(models.LoginRequest{Email: "demo@ptalk.com", Password: "demo1234"})
	require.NoError(t, err)

	t.Run("refresh token used as access token", func(t *testing.T) {
		_, err := as.Authenticate(resp.RefreshToken)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := as.Authenticate("not.a.token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewAuthService(nil, nil, "another-secret", "ptalk-test", time.Hour, time.Hour)
		other.now = as.now
		_, err := other.parse(resp.AccessToken, TOKEN_TYPE_ACCESS)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		as.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
		defer func() { as.now = func() time.Time { return fixedNow } }()

		_, err := as.Authenticate(resp.AccessToken)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	as, _ := newTestAuthService(t)
	first, err := as.Login(models.LoginRequest{Email: "demo@ptalk.com", Password: "demo1234"})
	require.NoError(t, err)

	second, err := as.Refresh(first.RefreshToken)

	require.NoError(t, err)
	merchantID, err := as.Authenticate(second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "m1", merchantID)
	_, err = as.Authenticate(first.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = as.Refresh(first.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = as.Refresh(second.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	as, _ := newTestAuthService(t)
	resp, err := as.Login(models.LoginRequest{Email: "demo@ptalk.com", Password: "demo1234"})
	require.NoError(t, err)

	require.NoError(t, as.Logout(resp.AccessToken))

	_, err = as.Authenticate(resp.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = as.Refresh(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, as.Logout(resp.AccessToken), ErrUnauthorized)
}
