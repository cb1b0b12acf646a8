package entity

import (
	"time"

	"github.com/google/uuid"
)

// BloodStock holds the unit count of one blood group at one bank.
type BloodStock struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	BloodBankID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_blood_stocks_bank_group" json:"blood_bank_id"`
	BloodGroup  BloodGroup `gorm:"type:varchar(5);not null;uniqueIndex:idx_blood_stocks_bank_group" json:"blood_group"`
	Quantity    int        `gorm:"not null;default:0" json:"quantity"`
	LastUpdated time.Time  `gorm:"autoUpdateTime" json:"last_updated"`

	// Relationships
	BloodBank *BloodBank `gorm:"foreignKey:BloodBankID" json:"blood_bank,omitempty"`
}

func (BloodStock) TableName() string {
	return "blood_stocks"
}
