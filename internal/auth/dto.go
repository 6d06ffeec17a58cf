package auth

import (
	"github.com/angelmondragon/scancart-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	UserID   string `json:"Userid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is produced by a successful login. AccessToken is empty when
// token issuance is disabled.
type LoginResult struct {
	User        *users.UserDTO
	AccessToken string
}

// RegisterRequest is the account creation payload. Name is optional and
// defaults to the user id.
type RegisterRequest struct {
	UserID    string `json:"Userid" validate:"required,max=64"`
	Password  string `json:"Password" validate:"required"`
	Name      string `json:"Name,omitempty" validate:"omitempty,max=255"`
	Birthdate string `json:"Birthdate,omitempty"`
	Gender    string `json:"Gender,omitempty" validate:"omitempty,max=32"`
	PhoneNum  string `json:"Phone_num,omitempty" validate:"omitempty,max=32"`
	Email     string `json:"Email,omitempty" validate:"omitempty,email"`
}
