package usecase

import (
	"context"

	"nearest-blood-locator/internal/converter"
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const auditTrailLimit = 50

type AuditLogUsecase interface {
	GetMyAuditLogs(ctx context.Context, userID uuid.UUID) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetMyAuditLogs(ctx context.Context, userID uuid.UUID) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindByUserID(ctx, userID, auditTrailLimit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	logResponses := converter.AuditLogsToResponses(logs)

	return &dto.AuditLogListResponse{
		Logs:  logResponses,
		Total: len(logs),
	}, nil
}
