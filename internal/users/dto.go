package users

import (
	"time"

	"github.com/angelmondragon/scancart-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	UserID    string     `json:"Userid"`
	Name      string     `json:"Name"`
	Birthdate *time.Time `json:"Birthdate,omitempty"`
	Gender    string     `json:"Gender,omitempty"`
	PhoneNum  string     `json:"Phone_num,omitempty"`
	Email     string     `json:"Email,omitempty"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	UserID       string
	Name         string
	Birthdate    *time.Time
	Gender       string
	PhoneNum     string
	Email        string
	PasswordHash string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		UserID:    u.UserID,
		Name:      u.Name,
		Birthdate: u.Birthdate,
		Gender:    u.Gender,
		PhoneNum:  u.PhoneNum,
		Email:     u.Email,
	}
}

func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		UserID:    d.UserID,
		Name:      d.Name,
		Birthdate: d.Birthdate,
		Gender:    d.Gender,
		PhoneNum:  d.PhoneNum,
		Email:     d.Email,
		Password:  d.PasswordHash,
	}
}
