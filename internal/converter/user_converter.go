package converter

import (
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		City:      user.City,
		Role:      user.Role.String(),
		Latitude:  decimalToFloat(user.Latitude),
		Longitude: decimalToFloat(user.Longitude),
		CreatedAt: user.CreatedAt,
	}
	if user.BloodGroup != nil {
		response.BloodGroup = user.BloodGroup.String()
	}

	return response
}

// FloatToDecimal stores coordinates with fixed precision.
func FloatToDecimal(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v).Round(6))
}

func decimalToFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
