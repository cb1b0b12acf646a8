package converter

import (
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
)

func DonorProfileToResponse(profile *entity.DonorProfile) *dto.DonorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DonorResponse{
		ID:                 profile.ID,
		UserID:             profile.UserID,
		FullName:           profile.FullName,
		BloodGroup:         profile.BloodGroup.String(),
		Age:                profile.Age,
		PhoneNumber:        profile.PhoneNumber,
		Location:           profile.Location,
		Latitude:           decimalToFloat(profile.Latitude),
		Longitude:          decimalToFloat(profile.Longitude),
		AvailabilityStatus: string(profile.Availability),
		CreatedAt:          profile.CreatedAt,
	}
	if profile.LastDonationDate != nil {
		response.LastDonationDate = profile.LastDonationDate.Format("2006-01-02")
	}

	return response
}

func DonorProfilesToResponses(profiles []entity.DonorProfile) []dto.DonorResponse {
	responses := make([]dto.DonorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DonorProfileToResponse(&profiles[i])
	}
	return responses
}
