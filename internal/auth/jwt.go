package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrEmptyJWTSecret = errors.New("JWT secret must not be empty")
)

const defaultJWTDuration = 7 * 24 * time.Hour

// Subject identifies the principal a verified token was issued to.
type Subject struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type JWTManagerInterface interface {
	GenerateAccessJWT(id, username string) (string, error)
	ValidateAccessToken(tokenString string) (Subject, error)
}

type AccessTokenCustomClaims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewJWTManager(secret string) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrEmptyJWTSecret
	}
	return &JWTManager{
		secret:   []byte(secret),
		duration: defaultJWTDuration,
		now:      time.Now,
	}, nil
}

func (j *JWTManager) GenerateAccessJWT(id, username string) (string, error) {
	issuedAt := j.now()
	claims := &AccessTokenCustomClaims{
		ID:       id,
		Username: username,
		StandardClaims: jwt.StandardClaims{
			Subject:   id,
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: issuedAt.Add(j.duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ValidateAccessToken checks signature and expiry. Every failure maps to
// ErrUnauthorized.
func (j *JWTManager) ValidateAccessToken(tokenString string) (Subject, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessTokenCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return j.secret, nil
	})
	if err != nil {
		return Subject{}, ErrUnauthorized
	}

	claims, ok := token.Claims.(*AccessTokenCustomClaims)
	if !ok || !token.Valid || claims.ID == "" || claims.ExpiresAt == 0 {
		return Subject{}, ErrUnauthorized
	}

	return Subject{ID: claims.ID, Username: claims.Username}, nil
}
