package dto

import (
	"time"

	"github.com/yukikurage/studio-pm-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserRefDTO is the short form of a user embedded in other resources
type UserRefDTO struct {
	ID   uint64      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// UserListResponse represents the admin user listing
type UserListResponse struct {
	Users []UserDTO `json:"users"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserRefDTO converts a User model to UserRefDTO
func ToUserRefDTO(user models.User) UserRefDTO {
	return UserRefDTO{ID: user.ID, Name: user.Name, Role: user.Role}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

func toUserRefs(users []models.User) []UserRefDTO {
	out := make([]UserRefDTO, len(users))
	for i, u := range users {
		out[i] = ToUserRefDTO(u)
	}
	return out
}

// SessionResponse is returned after login and registration
type SessionResponse struct {
	Message  string  `json:"message"`
	User     UserDTO `json:"user"`
	Redirect string  `json:"redirect,omitempty"`
}
