package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims issued after a successful sign in
type UserClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after successful sign in
type LoginResponse struct {
	Success  bool   `json:"success"`
	UID      string `json:"uid"`
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
}

// SignUpRequest is the body of POST /api/auth/register: credentials plus profile
type SignUpRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	Name           string `json:"name" validate:"required,notblank"`
	RegisterNumber string `json:"registerNumber"`
	Degree         string `json:"degree"`
	Batch          string `json:"batch"`
	College        string `json:"college"`
}

// SignUpResponse is returned after account creation
type SignUpResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	UID      string `json:"uid"`
	Redirect string `json:"redirect"`
}
