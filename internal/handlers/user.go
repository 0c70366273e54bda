package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/billyziiii/docker-fullstack/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		failInternal(c, err)
		return
	}

	ok(c, http.StatusOK, "", gin.H{"user": profile})
}
