package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RegisterRequest struct {
	Email           string        `json:"email"`
	Password        string        `json:"password"`
	ConfirmPassword string        `json:"confirmPassword"`
	ContactName     string        `json:"contactName"`
	ContactPhone    string        `json:"contactPhone"`
	ContactMethod   ContactMethod `json:"contactMethod"`
	LineID          string        `json:"lineId,omitempty"`
}
