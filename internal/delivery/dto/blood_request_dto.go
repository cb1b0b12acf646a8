package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBloodRequestRequest struct {
	Name               string `json:"name" validate:"required,max=100"`
	RequiredBloodGroup string `json:"requiredBloodGroup" validate:"required,bloodgroup"`
	City               string `json:"city" validate:"required,max=100"`
	Phone              string `json:"phone" validate:"required,min=7,max=20"`
	UrgencyLevel       string `json:"urgencyLevel" validate:"omitempty,oneof=Low Medium High"`
}

// Response DTOs

type BloodRequestResponse struct {
	ID                 uuid.UUID `json:"id"`
	RequesterID        uuid.UUID `json:"requesterId"`
	Name               string    `json:"name"`
	RequiredBloodGroup string    `json:"requiredBloodGroup"`
	City               string    `json:"city"`
	Phone              string    `json:"phone"`
	UrgencyLevel       string    `json:"urgencyLevel"`
	CreatedAt          time.Time `json:"createdAt"`
}

type BloodRequestListResponse struct {
	Requests []BloodRequestResponse `json:"requests"`
	Count    int                    `json:"count"`
}
