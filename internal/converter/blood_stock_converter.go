package converter

import (
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
)

func BloodStockToResponse(stock *entity.BloodStock) *dto.StockResponse {
	if stock == nil {
		return nil
	}

	response := &dto.StockResponse{
		ID:          stock.ID,
		BankID:      stock.BloodBankID,
		BloodGroup:  stock.BloodGroup.String(),
		Quantity:    stock.Quantity,
		LastUpdated: stock.LastUpdated,
	}
	if stock.BloodBank != nil {
		response.BankName = stock.BloodBank.Name
		response.BankCity = stock.BloodBank.City
	}

	return response
}

func BloodStocksToResponses(stock []entity.BloodStock) []dto.StockResponse {
	responses := make([]dto.StockResponse, len(stock))
	for i := range stock {
		responses[i] = *BloodStockToResponse(&stock[i])
	}
	return responses
}
