package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// UpsertDonorRequest creates the caller's donor profile or patches it.
// On create, missing phone falls back to the account phone.
type UpsertDonorRequest struct {
	FullName           string `json:"fullName" validate:"omitempty,max=100"`
	BloodGroup         string `json:"bloodGroup" validate:"omitempty,bloodgroup"`
	Age                *int   `json:"age" validate:"omitempty,gte=18,lte=65"`
	Phone              string `json:"phone" validate:"omitempty,min=7,max=20"`
	City               string `json:"city" validate:"omitempty,max=100"`
	AvailabilityStatus *bool  `json:"availabilityStatus"`
	LastDonationDate   string `json:"lastDonationDate" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type DonorResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"userId"`
	FullName           string    `json:"fullName"`
	BloodGroup         string    `json:"bloodGroup"`
	Age                *int      `json:"age,omitempty"`
	PhoneNumber        string    `json:"phoneNumber"`
	Location           string    `json:"location"`
	Latitude           *float64  `json:"lat,omitempty"`
	Longitude          *float64  `json:"lng,omitempty"`
	AvailabilityStatus string    `json:"availabilityStatus"`
	LastDonationDate   string    `json:"lastDonationDate,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type MyDonorResponse struct {
	Found bool           `json:"found"`
	Donor *DonorResponse `json:"donor"`
}

type DonorListResponse struct {
	Donors []DonorResponse `json:"donors"`
	Count  int             `json:"count"`
}
