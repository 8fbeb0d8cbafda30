package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"aiacademy/internal/model"
)

// AuthService signs students in through the identity provider and issues
// API tokens
type AuthService struct {
	identity  IdentityProvider
	profiles  *ProfileService
	jwtSecret []byte
	ttl       time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(identity IdentityProvider, profiles *ProfileService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		identity:  identity,
		profiles:  profiles,
		jwtSecret: []byte(secret),
		ttl:       ttl,
	}
}

// Login validates credentials and returns a token plus the dashboard redirect
func (s *AuthService) Login(ctx context.Context, in *model.LoginRequest) (*model.LoginResponse, error) {
	id, err := s.identity.SignIn(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.IssueToken(id.UID, id.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &model.LoginResponse{
		Success:  true,
		UID:      id.UID,
		Token:    token,
		Redirect: "/dashboard/" + id.UID,
	}, nil
}

// Register creates the account, then stores the profile under its uid
func (s *AuthService) Register(ctx context.Context, in *model.SignUpRequest) (*model.SignUpResponse, error) {
	id, err := s.identity.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	err = s.profiles.Register(ctx, &model.RegisterRequest{
		UID:            id.UID,
		Email:          in.Email,
		Name:           in.Name,
		RegisterNumber: in.RegisterNumber,
		Degree:         in.Degree,
		Batch:          in.Batch,
		College:        in.College,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}

	return &model.SignUpResponse{
		Success:  true,
		Message:  "User registered successfully!",
		UID:      id.UID,
		Redirect: "/login",
	}, nil
}

// IssueToken signs a token for uid
func (s *AuthService) IssueToken(uid, email string) (string, error) {
	now := time.Now()
	claims := &model.UserClaims{
		UserID: uid,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a user JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
