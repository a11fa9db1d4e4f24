package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest represents the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims represents the JWT token claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
