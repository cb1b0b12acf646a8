package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AvailabilityStatus string

const (
	Available    AvailabilityStatus = "Available"
	NotAvailable AvailabilityStatus = "Not Available"
)

func AvailabilityFromBool(available bool) AvailabilityStatus {
	if available {
		return Available
	}
	return NotAvailable
}

// DonorProfile is the searchable donor record. One per owner.
type DonorProfile struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID           `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName         string              `gorm:"type:varchar(100);not null" json:"full_name"`
	BloodGroup       BloodGroup          `gorm:"type:varchar(5);not null;index" json:"blood_group"`
	Age              *int                `json:"age,omitempty"`
	PhoneNumber      string              `gorm:"type:varchar(20);not null" json:"phone_number"`
	Location         string              `gorm:"type:varchar(100);not null;index" json:"location"`
	Latitude         decimal.NullDecimal `gorm:"type:numeric(9,6)" json:"latitude"`
	Longitude        decimal.NullDecimal `gorm:"type:numeric(9,6)" json:"longitude"`
	Availability     AvailabilityStatus  `gorm:"type:varchar(20);not null;default:'Available'" json:"availability_status"`
	LastDonationDate *time.Time          `gorm:"type:date" json:"last_donation_date,omitempty"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DonorProfile) TableName() string {
	return "donor_profiles"
}
