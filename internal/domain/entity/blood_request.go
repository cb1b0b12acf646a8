package entity

import (
	"time"

	"github.com/google/uuid"
)

type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "Low"
	UrgencyMedium UrgencyLevel = "Medium"
	UrgencyHigh   UrgencyLevel = "High"
)

// BloodRequest is an open request for blood posted by a recipient.
type BloodRequest struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequesterID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"requester_id"`
	Name               string       `gorm:"type:varchar(100);not null" json:"name"`
	RequiredBloodGroup BloodGroup   `gorm:"type:varchar(5);not null;index" json:"required_blood_group"`
	City               string       `gorm:"type:varchar(100);not null" json:"city"`
	Phone              string       `gorm:"type:varchar(20);not null" json:"phone"`
	UrgencyLevel       UrgencyLevel `gorm:"type:varchar(20);not null;default:'Medium'" json:"urgency_level"`
	CreatedAt          time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BloodRequest) TableName() string {
	return "blood_requests"
}
