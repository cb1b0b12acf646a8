package converter

import (
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
)

func BloodBankToResponse(bank *entity.BloodBank) *dto.BloodBankResponse {
	if bank == nil {
		return nil
	}

	groups := make([]string, len(bank.AvailableBloodGroups))
	for i, g := range bank.AvailableBloodGroups {
		groups[i] = g.String()
	}

	return &dto.BloodBankResponse{
		ID:                   bank.ID,
		OwnerID:              bank.OwnerID,
		Name:                 bank.Name,
		City:                 bank.City,
		Address:              bank.Address,
		ContactNumber:        bank.ContactNumber,
		AvailableBloodGroups: groups,
		StockStatus:          string(bank.StockStatus),
		CreatedAt:            bank.CreatedAt,
	}
}

func BloodBanksToResponses(banks []entity.BloodBank) []dto.BloodBankResponse {
	responses := make([]dto.BloodBankResponse, len(banks))
	for i := range banks {
		responses[i] = *BloodBankToResponse(&banks[i])
	}
	return responses
}
