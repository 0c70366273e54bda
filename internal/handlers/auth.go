package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billyziiii/docker-fullstack/internal/models"
	"github.com/billyziiii/docker-fullstack/internal/services"
)

type AuthHandler struct {
	authService    *services.AuthService
	jwtService     *services.JWTService
	minPasswordLen int
}

func NewAuthHandler(authService *services.AuthService, jwtService *services.JWTService, minPasswordLen int) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		jwtService:     jwtService,
		minPasswordLen: minPasswordLen,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(h.minPasswordLen); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrDuplicateUsername) {
		fail(c, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		failInternal(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		failInternal(c, err)
		return
	}

	ok(c, http.StatusCreated, "Registration successful", gin.H{
		"user":  user.Profile(),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		fail(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		failInternal(c, err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		failInternal(c, err)
		return
	}

	ok(c, http.StatusOK, "Login successful", gin.H{
		"user":  user.Profile(),
		"token": token,
	})
}
