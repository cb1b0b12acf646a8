package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/delivery/http/middleware"
	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/usecase"
	"nearest-blood-locator/pkg/response"
	"nearest-blood-locator/pkg/validator"
)

type BloodBankHandler struct {
	bankUsecase usecase.BloodBankUsecase
	validator   *validator.CustomValidator
}

func NewBloodBankHandler(bankUsecase usecase.BloodBankUsecase, validator *validator.CustomValidator) *BloodBankHandler {
	return &BloodBankHandler{
		bankUsecase: bankUsecase,
		validator:   validator,
	}
}

// SearchBanks lists banks, optionally filtered by ?bloodGroup and ?city (or ?location)
func (h *BloodBankHandler) SearchBanks(w http.ResponseWriter, r *http.Request) {
	group, err := bloodGroupParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid blood group")
		return
	}

	banks, err := h.bankUsecase.SearchBanks(r.Context(), &entity.BloodBankFilter{
		BloodGroup: group,
		City:       firstQuery(r, "city", "location"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to search blood banks")
		return
	}

	response.Success(w, http.StatusOK, "Blood banks retrieved successfully", banks)
}

func (h *BloodBankHandler) GetMyBanks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	banks, err := h.bankUsecase.GetMyBanks(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get blood banks")
		return
	}

	response.Success(w, http.StatusOK, "Blood banks retrieved successfully", banks)
}

func (h *BloodBankHandler) UpsertMyBank(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.UpsertBloodBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bank, created, err := h.bankUsecase.UpsertMyBank(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidBloodGroup) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to save blood bank")
		return
	}

	if created {
		response.Success(w, http.StatusCreated, "Blood bank created successfully", bank)
		return
	}
	response.Success(w, http.StatusOK, "Blood bank updated successfully", bank)
}

func (h *BloodBankHandler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	bankID, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid blood bank ID")
		return
	}

	if err := h.bankUsecase.DeleteBank(r.Context(), userID, bankID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBloodBankNotFound):
			response.NotFound(w, "Blood bank not found")
		case errors.Is(err, usecase.ErrBloodBankNotOwned):
			response.Error(w, http.StatusForbidden, "You can only delete your own blood bank", response.CodeNotOwner)
		default:
			response.InternalServerError(w, "Failed to delete blood bank")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood bank deleted successfully", nil)
}
