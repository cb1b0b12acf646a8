package entity

import (
	"time"

	"github.com/google/uuid"
)

type StockStatus string

const (
	StockAvailable StockStatus = "Available"
	StockLow       StockStatus = "Low"
	StockCritical  StockStatus = "Critical"
)

// BloodBank is a bank profile owned by a bank account.
type BloodBank struct {
	ID                   uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OwnerID              uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"owner_id"`
	Name                 string        `gorm:"type:varchar(100);not null" json:"name"`
	City                 string        `gorm:"type:varchar(100);not null;index" json:"city"`
	Address              string        `gorm:"type:varchar(255)" json:"address,omitempty"`
	ContactNumber        string        `gorm:"type:varchar(20);not null" json:"contact_number"`
	AvailableBloodGroups BloodGroupSet `gorm:"type:varchar(255);not null;default:''" json:"available_blood_groups"`
	StockStatus          StockStatus   `gorm:"type:varchar(20);not null;default:'Available'" json:"stock_status"`
	CreatedAt            time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Stock []BloodStock `gorm:"foreignKey:BloodBankID" json:"stock,omitempty"`
}

func (BloodBank) TableName() string {
	return "blood_banks"
}
