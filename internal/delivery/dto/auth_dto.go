package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Username   string   `json:"username" validate:"required,min=3,max=80"`
	Email      string   `json:"email" validate:"required,email,max=120"`
	Password   string   `json:"password" validate:"required,min=6"`
	Phone      string   `json:"phone" validate:"omitempty,min=7,max=20"`
	City       string   `json:"city" validate:"omitempty,max=100"`
	UserType   string   `json:"userType" validate:"required,oneof=donor bank recipient"`
	BloodGroup string   `json:"bloodGroup" validate:"omitempty,bloodgroup"`
	Latitude   *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Longitude  *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
}

// LoginRequest accepts either the username or the email in Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	City       string    `json:"city,omitempty"`
	Role       string    `json:"role"`
	BloodGroup string    `json:"bloodGroup,omitempty"`
	Latitude   *float64  `json:"lat,omitempty"`
	Longitude  *float64  `json:"lng,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}
