package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/delivery/http/middleware"
	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/usecase"
	"nearest-blood-locator/pkg/response"
	"nearest-blood-locator/pkg/validator"
)

type DonorHandler struct {
	donorUsecase usecase.DonorUsecase
	validator    *validator.CustomValidator
}

func NewDonorHandler(donorUsecase usecase.DonorUsecase, validator *validator.CustomValidator) *DonorHandler {
	return &DonorHandler{
		donorUsecase: donorUsecase,
		validator:    validator,
	}
}

// SearchDonors lists donors, optionally filtered by ?bloodGroup, ?location and ?available=true
func (h *DonorHandler) SearchDonors(w http.ResponseWriter, r *http.Request) {
	group, err := bloodGroupParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid blood group")
		return
	}

	filter := &entity.DonorFilter{
		BloodGroup: group,
		Location:   firstQuery(r, "location", "city"),
	}
	if raw := r.URL.Query().Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "available must be true or false")
			return
		}
		filter.AvailableOnly = available
	}

	donors, err := h.donorUsecase.SearchDonors(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to search donors")
		return
	}

	response.Success(w, http.StatusOK, "Donors retrieved successfully", donors)
}

func (h *DonorHandler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	profile, err := h.donorUsecase.GetMyProfile(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get donor profile")
		return
	}

	response.Success(w, http.StatusOK, "Donor profile retrieved successfully", profile)
}

func (h *DonorHandler) UpsertMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.UpsertDonorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	donor, created, err := h.donorUsecase.UpsertMyProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDonorFieldsRequired),
			errors.Is(err, usecase.ErrInvalidDateFormat),
			errors.Is(err, entity.ErrInvalidBloodGroup):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to save donor profile")
		}
		return
	}

	if created {
		response.Success(w, http.StatusCreated, "Donor profile created successfully", donor)
		return
	}
	response.Success(w, http.StatusOK, "Donor profile updated successfully", donor)
}

func (h *DonorHandler) DeleteMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.donorUsecase.DeleteMyProfile(r.Context(), userID); err != nil {
		if errors.Is(err, usecase.ErrDonorNotFound) {
			response.NotFound(w, "Donor profile not found")
			return
		}
		response.InternalServerError(w, "Failed to delete donor profile")
		return
	}

	response.Success(w, http.StatusOK, "Donor profile deleted successfully", nil)
}
