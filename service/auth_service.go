package services

import (
	"fmt"
	"log"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"ptalk-server/dao/redis"
	"ptalk-server/models"
)

const TOKEN_TYPE_ACCESS = "access"
const TOKEN_TYPE_REFRESH = "refresh"
const MIN_PASSWORD_LENGTH = 6
const MAX_CONTACT_NAME_LENGTH = 50
const MERCHANT_ID_PREFIX = "m_"

var mobilePhonePattern = regexp.MustCompile(`^09\d{8}$`)

// TokenClaims are the JWT claims issued to merchants. The token id is the
// session id, so deleting the session revokes both tokens of a pair.
type TokenClaims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type AuthService struct {
	merchants  MerchantRepository
	sessions   SessionRepository
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(
	merchants MerchantRepository,
	sessions SessionRepository,
	secret string,
	issuer string,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		merchants:  merchants,
		sessions:   sessions,
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func validateContact(contactName, phone string, method models.ContactMethod, lineID string, errs fieldErrors) {
	name := strings.TrimSpace(contactName)
	if name == "" {
		errs.add("contactName", "contact name is required")
	} else if utf8.RuneCountInString(name) > MAX_CONTACT_NAME_LENGTH {
		errs.add("contactName", fmt.Sprintf("contact name must be at most %d characters", MAX_CONTACT_NAME_LENGTH))
	}
	if !mobilePhonePattern.MatchString(phone) {
		errs.add("contactPhone", "phone must look like 09xxxxxxxx")
	}
	switch method {
	case models.CONTACT_METHOD_PHONE:
	case models.CONTACT_METHOD_LINE:
		if strings.TrimSpace(lineID) == "" {
			errs.add("lineId", "LINE id is required when contacting by LINE")
		}
	default:
		errs.add("contactMethod", "choose line or phone")
	}
}

func validatePassword(password, confirm string, field string, errs fieldErrors) {
	if len(password) < MIN_PASSWORD_LENGTH {
		errs.add(field, fmt.Sprintf("password must be at least %d characters", MIN_PASSWORD_LENGTH))
	}
	if password != confirm {
		errs.add("confirmPassword", "passwords do not match")
	}
}

// Register creates a merchant account pending review.
func (as *AuthService) Register(req models.RegisterRequest) (*models.MerchantProfile, error) {
	errs := fieldErrors{}
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		errs.add("email", "invalid email")
	}
	validatePassword(req.Password, req.ConfirmPassword, "password", errs)
	validateContact(req.ContactName, req.ContactPhone, req.ContactMethod, req.LineID, errs)
	if err := errs.err(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	contactName := strings.TrimSpace(req.ContactName)
	phone := req.ContactPhone
	profile := models.MerchantProfile{
		ID:            MERCHANT_ID_PREFIX + shortuuid.New(),
		Email:         email,
		ContactName:   &contactName,
		Phone:         &phone,
		ContactMethod: req.ContactMethod,
		Status:        models.MERCHANT_STATUS_PENDING,
		UpdatedAt:     as.now().UTC(),
	}
	if lineID := strings.TrimSpace(req.LineID); lineID != "" {
		profile.LineID = &lineID
	}

	err = as.merchants.CreateMerchant(models.MerchantAccount{Profile: profile, PasswordHash: hash})
	if errors.Is(err, redis.ErrEmailTaken) {
		return nil, errors.Wrap(ErrEmailTaken, email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create merchant")
	}
	log.Printf("[AuthService] Registered merchant %s", profile.ID)
	return &profile, nil
}

func (as *AuthService) signToken(merchantID, sessionID, tokenType string, ttl time.Duration) (string, error) {
	now := as.now()
	claims := TokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   merchantID,
			Issuer:    as.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

func (as *AuthService) issueTokens(merchantID string) (models.LoginResponse, error) {
	sessionID := uuid.NewString()
	if err := as.sessions.SaveSession(sessionID, merchantID, as.refreshTTL); err != nil {
		return models.LoginResponse{}, err
	}
	access, err := as.signToken(merchantID, sessionID, TOKEN_TYPE_ACCESS, as.accessTTL)
	if err != nil {
		return models.LoginResponse{}, err
	}
	refresh, err := as.signToken(merchantID, sessionID, TOKEN_TYPE_REFRESH, as.refreshTTL)
	if err != nil {
		return models.LoginResponse{}, err
	}
	return models.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(as.accessTTL.Seconds()),
	}, nil
}

// Login verifies the credentials and opens a new session.
func (as *AuthService) Login(req models.LoginRequest) (models.LoginResponse, error) {
	account, err := as.merchants.GetMerchantByEmail(req.Email)
	if isNotFound(err) {
		return models.LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.LoginResponse{}, errors.Wrap(err, "failed to load merchant")
	}
	if !checkPassword(account.PasswordHash, req.Password) {
		return models.LoginResponse{}, ErrInvalidCredentials
	}
	switch account.Profile.Status {
	case models.MERCHANT_STATUS_DISABLED, models.MERCHANT_STATUS_REJECTED:
		return models.LoginResponse{}, ErrAccountDisabled
	}

	resp, err := as.issueTokens(account.Profile.ID)
	if err != nil {
		return models.LoginResponse{}, err
	}
	log.Printf("[AuthService] Merchant %s logged in", account.Profile.ID)
	return resp, nil
}

// parse validates signature, expiry, issuer and token type, then checks the session is still open.
func (as *AuthService) parse(tokenStr, wantType string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return as.secret, nil
	}, jwt.WithIssuer(as.issuer), jwt.WithTimeFunc(as.now))
	if err != nil || !token.Valid {
		return nil, errors.Wrap(ErrUnauthorized, "invalid or expired token")
	}
	if claims.TokenType != wantType {
		return nil, errors.Wrapf(ErrUnauthorized, "expected %s token", wantType)
	}
	merchantID, err := as.sessions.GetSession(claims.ID)
	if isNotFound(err) {
		return nil, errors.Wrap(ErrUnauthorized, "session closed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if merchantID != claims.Subject {
		return nil, errors.Wrap(ErrUnauthorized, "session does not match token")
	}
	return claims, nil
}

// Authenticate resolves an access token to the merchant id.
func (as *AuthService) Authenticate(accessToken string) (string, error) {
	claims, err := as.parse(accessToken, TOKEN_TYPE_ACCESS)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Refresh rotates the session: the old pair stops working.
func (as *AuthService) Refresh(refreshToken string) (models.LoginResponse, error) {
	claims, err := as.parse(refreshToken, TOKEN_TYPE_REFRESH)
	if err != nil {
		return models.LoginResponse{}, err
	}
	if err := as.sessions.DeleteSession(claims.ID); err != nil {
		return models.LoginResponse{}, err
	}
	return as.issueTokens(claims.Subject)
}

// Logout closes the session behind an access token.
func (as *AuthService) Logout(accessToken string) error {
	claims, err := as.parse(accessToken, TOKEN_TYPE_ACCESS)
	if err != nil {
		return err
	}
	if err := as.sessions.DeleteSession(claims.ID); err != nil {
		return err
	}
	log.Printf("[AuthService] Merchant %s logged out", claims.Subject)
	return nil
}
