package dto

// RegisterRequest is the payload for member self-registration.
// Accounts always start with the MEMBER role; managers promote later.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"socio@integria.org"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cret-pass1"`
	FirstName string `json:"firstName" binding:"required,min=2,max=100" example:"Ane"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100" example:"Etxeberria"`
	Phone     string `json:"phone,omitempty" example:"+34600111222"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the opaque refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse is returned on successful register/login/refresh.
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType" example:"Bearer"`
	ExpiresIn        int64  `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn" example:"2592000"`
}
