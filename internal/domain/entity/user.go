package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is the authentication record shared by donors, banks and recipients.
type User struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username   string              `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email      string              `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Password   string              `gorm:"type:text;not null" json:"-"`
	Phone      string              `gorm:"type:varchar(20)" json:"phone"`
	City       string              `gorm:"type:varchar(100)" json:"city"`
	Role       Role                `gorm:"type:varchar(20);not null;index" json:"role"`
	BloodGroup *BloodGroup         `gorm:"type:varchar(5)" json:"blood_group,omitempty"`
	Latitude   decimal.NullDecimal `gorm:"type:numeric(9,6)" json:"latitude"`
	Longitude  decimal.NullDecimal `gorm:"type:numeric(9,6)" json:"longitude"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DonorProfile *DonorProfile `gorm:"foreignKey:UserID" json:"-"`
	BloodBank    *BloodBank    `gorm:"foreignKey:OwnerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
