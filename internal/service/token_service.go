package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing is returned when a request carries no token at all.
	ErrTokenMissing = errors.New("token not provided")
	// ErrTokenMalformed is returned when the token is not structurally a JWT.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenSignature is returned when the signature does not verify.
	ErrTokenSignature = errors.New("token signature is invalid")
)

// TokenService issues and verifies signed bearer tokens binding to a user id.
// Verification is a pure function of the token and the signing key; nothing
// is stored server-side and issued tokens cannot be revoked before expiry.
type TokenService interface {
	Issue(userID int64) (string, error)
	Verify(tokenString string) (int64, error)
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &tokenService{secret: secret, ttl: ttl}
}

func (s *tokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}

func (s *tokenService) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, ErrTokenMissing
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignature
		default:
			return 0, ErrTokenMalformed
		}
	}
	if !token.Valid || claims.UserID <= 0 {
		return 0, ErrTokenMalformed
	}

	return claims.UserID, nil
}
