package services

import (
	"errors"
	"fmt"
	"time"

	"vidtube_server/models"
	"vidtube_server/utils"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims extends the registered JWT claims with the user identity the
// handlers need without a database round trip.
type AccessClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates the HS256 access/refresh token pair.
// Access tokens are short-lived; refresh tokens are long-lived, signed with a
// separate secret and persisted on the user record for rotation.
type TokenService struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

func NewTokenService(accessSecret, refreshSecret string) *TokenService {
	return &TokenService{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessExpiry:  time.Hour,
		RefreshExpiry: 10 * 24 * time.Hour,
		Issuer:        "vidtube",
	}
}

// GenerateTokens creates the access + refresh pair for a user.
func (t *TokenService) GenerateTokens(user *models.User) (string, string, error) {
	now := time.Now()

	accessClaims := AccessClaims{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    t.Issuer,
			Subject:   user.UserID,
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(t.AccessSecret)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(t.RefreshExpiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    t.Issuer,
		Subject:   user.UserID,
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(t.RefreshSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAccessToken verifies the signature and returns the user ID.
func (t *TokenService) ValidateAccessToken(tokenString string) (string, error) {
	return t.validate(tokenString, t.AccessSecret)
}

// ValidateRefreshToken verifies a refresh token and returns the user ID.
func (t *TokenService) ValidateRefreshToken(tokenString string) (string, error) {
	return t.validate(tokenString, t.RefreshSecret)
}

func (t *TokenService) validate(tokenString string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC so a forged "none"/RS256 header
		// cannot sidestep the signature check.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", utils.ErrUnauthorized
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return "", utils.ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
