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
	ErrBloodBankNotFound = errors.New("blood bank not found")
	ErrBloodBankNotOwned = errors.New("blood bank belongs to another account")
)

type BloodBankUsecase interface {
	// UpsertMyBank reports whether the bank was created.
	UpsertMyBank(ctx context.Context, ownerID uuid.UUID, req *dto.UpsertBloodBankRequest) (*dto.BloodBankResponse, bool, error)
	GetMyBanks(ctx context.Context, ownerID uuid.UUID) (*dto.BloodBankListResponse, error)
	SearchBanks(ctx context.Context, filter *entity.BloodBankFilter) (*dto.BloodBankListResponse, error)
	// DeleteBank removes the bank and every stock entry it holds.
	DeleteBank(ctx context.Context, ownerID, bankID uuid.UUID) error
}

type bloodBankUsecase struct {
	log          *logrus.Logger
	tx           repository.Transactor
	bankRepo     repository.BloodBankRepository
	stockRepo    repository.BloodStockRepository
	auditService service.AuditService
	stockCache   service.StockCache
}

func NewBloodBankUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	bankRepo repository.BloodBankRepository,
	stockRepo repository.BloodStockRepository,
	auditService service.AuditService,
	stockCache service.StockCache,
) BloodBankUsecase {
	return &bloodBankUsecase{
		log:          log,
		tx:           tx,
		bankRepo:     bankRepo,
		stockRepo:    stockRepo,
		auditService: auditService,
		stockCache:   stockCache,
	}
}

func (u *bloodBankUsecase) UpsertMyBank(ctx context.Context, ownerID uuid.UUID, req *dto.UpsertBloodBankRequest) (*dto.BloodBankResponse, bool, error) {
	groups, err := parseBloodGroupSet(req.AvailableBloodGroups)
	if err != nil {
		return nil, false, err
	}

	status := entity.StockAvailable
	if req.StockStatus != "" {
		status = entity.StockStatus(req.StockStatus)
	}

	var (
		bank    *entity.BloodBank
		created bool
	)
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := u.bankRepo.FindByOwnerID(ctx, ownerID)
		if err != nil {
			u.log.Warnf("Failed to find blood bank: %+v", err)
			return err
		}

		var oldValue *dto.BloodBankResponse
		if existing == nil {
			bank = &entity.BloodBank{ID: uuid.New(), OwnerID: ownerID}
			created = true
		} else {
			oldValue = converter.BloodBankToResponse(existing)
			bank = existing
		}

		bank.Name = strings.TrimSpace(req.Name)
		bank.City = strings.TrimSpace(req.City)
		bank.Address = strings.TrimSpace(req.Address)
		bank.ContactNumber = strings.TrimSpace(req.ContactNumber)
		bank.AvailableBloodGroups = groups
		bank.StockStatus = status

		if err := u.bankRepo.Save(ctx, bank); err != nil {
			u.log.Warnf("Failed to save blood bank: %+v", err)
			return err
		}

		if created {
			return u.auditService.LogCreate(ctx, ownerID, entity.AuditActionBankSave, "blood_bank", bank.ID.String(), converter.BloodBankToResponse(bank))
		}
		return u.auditService.LogUpdate(ctx, ownerID, entity.AuditActionBankSave, "blood_bank", bank.ID.String(), oldValue, converter.BloodBankToResponse(bank))
	})
	if err != nil {
		return nil, false, err
	}

	u.invalidateStock(ctx)

	return converter.BloodBankToResponse(bank), created, nil
}

func (u *bloodBankUsecase) GetMyBanks(ctx context.Context, ownerID uuid.UUID) (*dto.BloodBankListResponse, error) {
	bank, err := u.bankRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		u.log.Warnf("Failed to find blood bank: %+v", err)
		return nil, err
	}

	banks := []dto.BloodBankResponse{}
	if bank != nil {
		banks = append(banks, *converter.BloodBankToResponse(bank))
	}

	return &dto.BloodBankListResponse{
		BloodBanks: banks,
		Count:      len(banks),
	}, nil
}

func (u *bloodBankUsecase) SearchBanks(ctx context.Context, filter *entity.BloodBankFilter) (*dto.BloodBankListResponse, error) {
	banks, err := u.bankRepo.Search(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to search blood banks: %+v", err)
		return nil, err
	}

	responses := converter.BloodBanksToResponses(banks)

	return &dto.BloodBankListResponse{
		BloodBanks: responses,
		Count:      len(responses),
	}, nil
}

func (u *bloodBankUsecase) DeleteBank(ctx context.Context, ownerID, bankID uuid.UUID) error {
	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		bank, err := u.bankRepo.FindByID(ctx, bankID)
		if err != nil {
			u.log.Warnf("Failed to find blood bank: %+v", err)
			return err
		}
		if bank == nil {
			return ErrBloodBankNotFound
		}
		if bank.OwnerID != ownerID {
			return ErrBloodBankNotOwned
		}
		oldValue := converter.BloodBankToResponse(bank)

		removed, err := u.stockRepo.DeleteByBankID(ctx, bankID)
		if err != nil {
			u.log.Warnf("Failed delete blood stock: %+v", err)
			return err
		}

		affectedRows, err := u.bankRepo.Delete(ctx, bankID)
		if err != nil {
			u.log.Warnf("Failed delete blood bank: %+v", err)
			return err
		}
		if affectedRows == 0 {
			return ErrBloodBankNotFound
		}

		u.log.WithFields(logrus.Fields{
			"bank_id":       bankID,
			"stock_removed": removed,
		}).Info("Blood bank deleted")

		return u.auditService.LogDelete(ctx, ownerID, entity.AuditActionBankDelete, "blood_bank", bankID.String(), oldValue)
	})
	if err != nil {
		return err
	}

	u.invalidateStock(ctx)

	return nil
}

func (u *bloodBankUsecase) invalidateStock(ctx context.Context) {
	if err := u.stockCache.Invalidate(ctx); err != nil {
		u.log.Warnf("Failed to invalidate stock cache: %+v", err)
	}
}

// parseBloodGroupSet validates and de-duplicates, keeping first-seen order.
func parseBloodGroupSet(values []string) (entity.BloodGroupSet, error) {
	set := entity.BloodGroupSet{}
	for _, v := range values {
		g, err := entity.ParseBloodGroup(v)
		if err != nil {
			return nil, err
		}
		if !set.Contains(g) {
			set = append(set, g)
		}
	}
	return set, nil
}
