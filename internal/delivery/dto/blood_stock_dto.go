package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// StockMutationRequest is shared by add and update. BankID is optional and must
// name the caller's own bank when present.
type StockMutationRequest struct {
	BankID     *uuid.UUID `json:"bankId"`
	BloodGroup string     `json:"bloodGroup" validate:"required,bloodgroup"`
	Quantity   *int       `json:"quantity" validate:"required,gte=0"`
}

// Response DTOs

type StockResponse struct {
	ID          int64     `json:"id"`
	BankID      uuid.UUID `json:"bankId"`
	BankName    string    `json:"bankName,omitempty"`
	BankCity    string    `json:"bankCity,omitempty"`
	BloodGroup  string    `json:"bloodGroup"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type StockListResponse struct {
	Stock []StockResponse `json:"stock"`
	Count int             `json:"count"`
}
