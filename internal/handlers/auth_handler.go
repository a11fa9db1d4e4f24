package handlers

import (
	"net/http"
	"time"

	"employee-records/internal/auth"
	"employee-records/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * time.Hour

type AuthHandler struct {
	verifier auth.CredentialVerifier
	secret   []byte
}

func NewAuthHandler(verifier auth.CredentialVerifier, secret string) *AuthHandler {
	return &AuthHandler{verifier: verifier, secret: []byte(secret)}
}

// Login verifies credentials and issues a bearer token
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	if !h.verifier.Verify(c.Request.Context(), input.Username, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := h.generateToken(input.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *AuthHandler) generateToken(username string) (string, error) {
	now := time.Now()
	claims := models.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}
