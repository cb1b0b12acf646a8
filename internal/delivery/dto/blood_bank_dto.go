package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpsertBloodBankRequest struct {
	Name                 string   `json:"name" validate:"required,max=100"`
	City                 string   `json:"city" validate:"required,max=100"`
	Address              string   `json:"address" validate:"omitempty,max=255"`
	ContactNumber        string   `json:"contactNumber" validate:"required,min=7,max=20"`
	AvailableBloodGroups []string `json:"availableBloodGroups" validate:"omitempty,dive,bloodgroup"`
	StockStatus          string   `json:"stockStatus" validate:"omitempty,oneof=Available Low Critical"`
}

// Response DTOs

type BloodBankResponse struct {
	ID                   uuid.UUID `json:"id"`
	OwnerID              uuid.UUID `json:"ownerId"`
	Name                 string    `json:"name"`
	City                 string    `json:"city"`
	Address              string    `json:"address,omitempty"`
	ContactNumber        string    `json:"contactNumber"`
	AvailableBloodGroups []string  `json:"availableBloodGroups"`
	StockStatus          string    `json:"stockStatus"`
	CreatedAt            time.Time `json:"createdAt"`
}

type BloodBankListResponse struct {
	BloodBanks []BloodBankResponse `json:"bloodBanks"`
	Count      int                 `json:"count"`
}
