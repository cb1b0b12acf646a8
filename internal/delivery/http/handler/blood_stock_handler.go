package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/delivery/http/middleware"
	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/usecase"
	"nearest-blood-locator/pkg/response"
	"nearest-blood-locator/pkg/validator"

	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BloodStockHandler struct {
	stockUsecase usecase.BloodStockUsecase
	validator    *validator.CustomValidator
}

func NewBloodStockHandler(stockUsecase usecase.BloodStockUsecase, validator *validator.CustomValidator) *BloodStockHandler {
	return &BloodStockHandler{
		stockUsecase: stockUsecase,
		validator:    validator,
	}
}

// ListStock serves the owner view to an authenticated bank account and the
// public view to everyone else.
func (h *BloodStockHandler) ListStock(w http.ResponseWriter, r *http.Request) {
	group, err := bloodGroupParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid blood group")
		return
	}

	userID, authenticated := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetRoleFromContext(r.Context())

	var stock *dto.StockListResponse
	if authenticated && role == entity.RoleBank {
		stock, err = h.stockUsecase.GetMyStock(r.Context(), userID, group)
	} else {
		bankID, parseErr := queryUUID(r, "bankId")
		if parseErr != nil {
			response.BadRequest(w, "Invalid blood bank ID")
			return
		}
		stock, err = h.stockUsecase.GetPublicStock(r.Context(), &entity.StockFilter{BankID: bankID, BloodGroup: group})
	}
	if err != nil {
		h.writeStockError(w, err, "Failed to get blood stock")
		return
	}

	response.Success(w, http.StatusOK, "Blood stock retrieved successfully", stock)
}

func (h *BloodStockHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.stockUsecase.AddStock, http.StatusCreated, "Stock entry added successfully")
}

func (h *BloodStockHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.stockUsecase.UpdateStock, http.StatusOK, "Stock entry updated successfully")
}

func (h *BloodStockHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, ownerID uuid.UUID, req *dto.StockMutationRequest) (*dto.StockResponse, error),
	status int,
	message string,
) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.StockMutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	stock, err := op(r.Context(), userID, &req)
	if err != nil {
		h.writeStockError(w, err, "Failed to save stock entry")
		return
	}

	response.Success(w, status, message, stock)
}

func (h *BloodStockHandler) ExportStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	report, filename, err := h.stockUsecase.ExportStock(r.Context(), userID)
	if err != nil {
		h.writeStockError(w, err, "Failed to export blood stock")
		return
	}

	response.File(w, xlsxContentType, filename, report)
}

func (h *BloodStockHandler) writeStockError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUnknownBloodGroup):
		response.Error(w, http.StatusNotFound, "No stock entry for this blood group. Use Add Entry first", response.CodeUnknownBloodGroup)
	case errors.Is(err, usecase.ErrDuplicateBloodGroup):
		response.Conflict(w, "Stock entry for this blood group already exists. Use Update instead", response.CodeDuplicateBloodGroup)
	case errors.Is(err, usecase.ErrNegativeQuantity), errors.Is(err, entity.ErrInvalidBloodGroup):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrBloodBankRequired):
		response.Error(w, http.StatusForbidden, "Please register your blood bank profile first", response.CodeBloodBankRequired)
	case errors.Is(err, usecase.ErrBloodBankNotOwned):
		response.Error(w, http.StatusForbidden, "You can only manage stock of your own blood bank", response.CodeNotOwner)
	default:
		response.InternalServerError(w, fallback)
	}
}
