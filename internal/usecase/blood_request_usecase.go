package usecase

import (
	"context"
	"errors"
	"strings"

	"nearest-blood-locator/internal/converter"
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/domain/repository"
	"nearest-blood-locator/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrBloodRequestNotFound = errors.New("blood request not found")
	ErrBloodRequestNotOwned = errors.New("blood request belongs to another account")
)

type BloodRequestUsecase interface {
	CreateRequest(ctx context.Context, requesterID uuid.UUID, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error)
	ListRequests(ctx context.Context, filter *entity.RequestFilter) (*dto.BloodRequestListResponse, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*dto.BloodRequestResponse, error)
	GetMyRequests(ctx context.Context, requesterID uuid.UUID) (*dto.BloodRequestListResponse, error)
	CancelRequest(ctx context.Context, requesterID, id uuid.UUID) error
}

type bloodRequestUsecase struct {
	log          *logrus.Logger
	tx           repository.Transactor
	requestRepo  repository.BloodRequestRepository
	auditService service.AuditService
}

func NewBloodRequestUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	requestRepo repository.BloodRequestRepository,
	auditService service.AuditService,
) BloodRequestUsecase {
	return &bloodRequestUsecase{
		log:          log,
		tx:           tx,
		requestRepo:  requestRepo,
		auditService: auditService,
	}
}

func (u *bloodRequestUsecase) CreateRequest(ctx context.Context, requesterID uuid.UUID, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error) {
	group, err := entity.ParseBloodGroup(req.RequiredBloodGroup)
	if err != nil {
		return nil, err
	}

	urgency := entity.UrgencyMedium
	if req.UrgencyLevel != "" {
		urgency = entity.UrgencyLevel(req.UrgencyLevel)
	}

	request := &entity.BloodRequest{
		ID:                 uuid.New(),
		RequesterID:        requesterID,
		Name:               strings.TrimSpace(req.Name),
		RequiredBloodGroup: group,
		City:               strings.TrimSpace(req.City),
		Phone:              strings.TrimSpace(req.Phone),
		UrgencyLevel:       urgency,
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.requestRepo.Create(ctx, request); err != nil {
			u.log.Warnf("Failed to create blood request: %+v", err)
			return err
		}
		return u.auditService.LogCreate(ctx, requesterID, entity.AuditActionRequestCreate, "blood_request", request.ID.String(), converter.BloodRequestToResponse(request))
	})
	if err != nil {
		return nil, err
	}

	return converter.BloodRequestToResponse(request), nil
}

func (u *bloodRequestUsecase) ListRequests(ctx context.Context, filter *entity.RequestFilter) (*dto.BloodRequestListResponse, error) {
	requests, err := u.requestRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find blood requests: %+v", err)
		return nil, err
	}

	responses := converter.BloodRequestsToResponses(requests)
	return &dto.BloodRequestListResponse{Requests: responses, Count: len(responses)}, nil
}

func (u *bloodRequestUsecase) GetRequest(ctx context.Context, id uuid.UUID) (*dto.BloodRequestResponse, error) {
	request, err := u.requestRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find blood request: %+v", err)
		return nil, err
	}
	if request == nil {
		return nil, ErrBloodRequestNotFound
	}

	return converter.BloodRequestToResponse(request), nil
}

func (u *bloodRequestUsecase) GetMyRequests(ctx context.Context, requesterID uuid.UUID) (*dto.BloodRequestListResponse, error) {
	requests, err := u.requestRepo.FindByRequesterID(ctx, requesterID)
	if err != nil {
		u.log.Warnf("Failed to find blood requests: %+v", err)
		return nil, err
	}

	responses := converter.BloodRequestsToResponses(requests)
	return &dto.BloodRequestListResponse{Requests: responses, Count: len(responses)}, nil
}

func (u *bloodRequestUsecase) CancelRequest(ctx context.Context, requesterID, id uuid.UUID) error {
	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := u.requestRepo.FindByID(ctx, id)
		if err != nil {
			u.log.Warnf("Failed to find blood request: %+v", err)
			return err
		}
		if request == nil {
			return ErrBloodRequestNotFound
		}
		if request.RequesterID != requesterID {
			return ErrBloodRequestNotOwned
		}

		affectedRows, err := u.requestRepo.Delete(ctx, id)
		if err != nil {
			u.log.Warnf("Failed delete blood request: %+v", err)
			return err
		}
		if affectedRows == 0 {
			return ErrBloodRequestNotFound
		}

		return u.auditService.LogDelete(ctx, requesterID, entity.AuditActionRequestCancel, "blood_request", id.String(), converter.BloodRequestToResponse(request))
	})
}
