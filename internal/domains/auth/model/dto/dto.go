package dto

import "hotel/infras/jwt"

// TokenRequest exchanges the staff API key for a bearer token issued to subject.
type TokenRequest struct {
	APIKey  string `json:"apiKey"  validate:"required"`
	Subject string `json:"subject" validate:"required,notblank,max=100"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

func (t *TokenResponse) FromToken(token *jwt.Token) {
	t.AccessToken = token.AccessToken
	t.TokenType = token.TokenType
	t.ExpiresIn = token.ExpiresIn
}
