package models

import (
	"fmt"
	"strings"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SlotRequest struct {
	Bet int64 `json:"bet"`
}

// Validate checks the registration payload before it reaches the auth
// service. minPasswordLen comes from config.
func (r *RegisterRequest) Validate(minPasswordLen int) error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	if len(r.Username) > 32 {
		return fmt.Errorf("username must be at most 32 characters")
	}
	if len(r.Password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}
