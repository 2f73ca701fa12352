package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"calmicasa-api/internal/auth"
)

type AuthHandler struct {
	credentials *auth.CredentialValidator
	tokens      *auth.TokenService
}

func NewAuthHandler(credentials *auth.CredentialValidator, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		tokens:      tokens,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserPayload struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    UserPayload `json:"user"`
}

type VerifyResponse struct {
	Success bool        `json:"success"`
	User    UserPayload `json:"user"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, msgEmailPasswordRequired)
	}

	if !h.credentials.Validate(req.Email, req.Password) {
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.tokens.Issue(req.Email, true)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
		User:    UserPayload{Email: req.Email, IsAdmin: true},
	})
}

// Verify decodes the presented bearer token. Why it failed (missing, forged,
// expired) is deliberately not distinguished in the response.
func (h *AuthHandler) Verify(c echo.Context) error {
	token := auth.BearerToken(c)
	if token == "" {
		return respondError(c, http.StatusUnauthorized, msgNoTokenProvided)
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, msgInvalidToken)
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		Success: true,
		User:    UserPayload{Email: claims.Email, IsAdmin: claims.IsAdmin},
	})
}
