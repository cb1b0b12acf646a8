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

type BloodRequestHandler struct {
	requestUsecase usecase.BloodRequestUsecase
	validator      *validator.CustomValidator
}

func NewBloodRequestHandler(requestUsecase usecase.BloodRequestUsecase, validator *validator.CustomValidator) *BloodRequestHandler {
	return &BloodRequestHandler{
		requestUsecase: requestUsecase,
		validator:      validator,
	}
}

func (h *BloodRequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	group, err := bloodGroupParam(r)
	if err != nil {
		response.BadRequest(w, "Invalid blood group")
		return
	}

	requests, err := h.requestUsecase.ListRequests(r.Context(), &entity.RequestFilter{
		BloodGroup: group,
		City:       firstQuery(r, "city", "location"),
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get blood requests")
		return
	}

	response.Success(w, http.StatusOK, "Blood requests retrieved successfully", requests)
}

func (h *BloodRequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid blood request ID")
		return
	}

	req, err := h.requestUsecase.GetRequest(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrBloodRequestNotFound) {
			response.NotFound(w, "Blood request not found")
			return
		}
		response.InternalServerError(w, "Failed to get blood request")
		return
	}

	response.Success(w, http.StatusOK, "Blood request retrieved successfully", req)
}

func (h *BloodRequestHandler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.requestUsecase.GetMyRequests(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get blood requests")
		return
	}

	response.Success(w, http.StatusOK, "Blood requests retrieved successfully", requests)
}

func (h *BloodRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.CreateBloodRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.requestUsecase.CreateRequest(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidBloodGroup) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to create blood request")
		return
	}

	response.Success(w, http.StatusCreated, "Blood request created successfully", created)
}

func (h *BloodRequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid blood request ID")
		return
	}

	if err := h.requestUsecase.CancelRequest(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBloodRequestNotFound):
			response.NotFound(w, "Blood request not found")
		case errors.Is(err, usecase.ErrBloodRequestNotOwned):
			response.Error(w, http.StatusForbidden, "You can only cancel your own requests", response.CodeNotOwner)
		default:
			response.InternalServerError(w, "Failed to cancel blood request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Blood request cancelled successfully", nil)
}
