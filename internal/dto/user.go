package dto

import (
	"time"

	"github.com/yukikurage/e-signature-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenDTO represents an issued bearer token
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToTokenDTO wraps an access token for API responses
func ToTokenDTO(token string) TokenDTO {
	return TokenDTO{
		AccessToken: token,
		TokenType:   "bearer",
	}
}
