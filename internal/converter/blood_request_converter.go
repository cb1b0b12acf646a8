package converter

import (
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
)

func BloodRequestToResponse(request *entity.BloodRequest) *dto.BloodRequestResponse {
	if request == nil {
		return nil
	}

	return &dto.BloodRequestResponse{
		ID:                 request.ID,
		RequesterID:        request.RequesterID,
		Name:               request.Name,
		RequiredBloodGroup: request.RequiredBloodGroup.String(),
		City:               request.City,
		Phone:              request.Phone,
		UrgencyLevel:       string(request.UrgencyLevel),
		CreatedAt:          request.CreatedAt,
	}
}

func BloodRequestsToResponses(requests []entity.BloodRequest) []dto.BloodRequestResponse {
	responses := make([]dto.BloodRequestResponse, len(requests))
	for i := range requests {
		responses[i] = *BloodRequestToResponse(&requests[i])
	}
	return responses
}
