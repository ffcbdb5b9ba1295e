package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guessnica/guessnica-backend/internal/dto"
	"github.com/guessnica/guessnica-backend/internal/model"
)

const tokenLifetime = 3 * time.Hour

// TokenClaims is what the middleware extracts from a validated token.
type TokenClaims struct {
	UserID        string
	Email         string
	Role          string
	SecurityStamp string
}

type JwtService interface {
	GenerateToken(user *model.User) (*dto.TokenResponseDTO, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
}

type jwtService struct {
	secret []byte
	now    func() time.Time
}

func NewJwtService(secret string) JwtService {
	return &jwtService{secret: []byte(secret), now: time.Now}
}

func (s *jwtService) GenerateToken(user *model.User) (*dto.TokenResponseDTO, error) {
	expires := s.now().UTC().Add(tokenLifetime)

	claims := jwt.MapClaims{
		"sub":    user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"sstamp": user.SecurityStamp,
		"iat":    s.now().Unix(),
		"exp":    expires.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponseDTO{Token: signed, ExpiresAt: expires}, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("missing subject claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	stamp, _ := claims["sstamp"].(string)

	return &TokenClaims{UserID: sub, Email: email, Role: role, SecurityStamp: stamp}, nil
}
