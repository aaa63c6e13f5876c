package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/adapter/http/mapper"
	"taskease/internal/core/ports"
	"taskease/pkg/apierrors"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidAuthPayload)
		return
	}

	session, err := h.authService.Signup(c.Request.Context(), req.IDToken, req.Username)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAuthenticate, "failed to sign up")
		return
	}

	c.JSON(http.StatusCreated, toAuthResponse(session, "User created successfully"))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidAuthPayload)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAuthenticate, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(session, "Logged in successfully"))
}

func toAuthResponse(session ports.Session, message string) dto.AuthResponse {
	return dto.AuthResponse{
		Success:   true,
		Message:   message,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		User:      mapper.ToUserItem(session.User),
	}
}
