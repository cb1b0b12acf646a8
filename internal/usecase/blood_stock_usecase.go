package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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
	ErrBloodBankRequired   = errors.New("register your blood bank profile first")
	ErrNegativeQuantity    = errors.New("quantity must be a non-negative integer")
	ErrUnknownBloodGroup   = errors.New("no stock entry for this blood group, use add instead")
	ErrDuplicateBloodGroup = errors.New("stock entry for this blood group already exists, use update instead")
)

type BloodStockUsecase interface {
	GetMyStock(ctx context.Context, ownerID uuid.UUID, group entity.BloodGroup) (*dto.StockListResponse, error)
	GetPublicStock(ctx context.Context, filter *entity.StockFilter) (*dto.StockListResponse, error)
	// AddStock fails with ErrDuplicateBloodGroup when the group already has an entry.
	AddStock(ctx context.Context, ownerID uuid.UUID, req *dto.StockMutationRequest) (*dto.StockResponse, error)
	// UpdateStock fails with ErrUnknownBloodGroup when the group has no entry yet.
	UpdateStock(ctx context.Context, ownerID uuid.UUID, req *dto.StockMutationRequest) (*dto.StockResponse, error)
	ExportStock(ctx context.Context, ownerID uuid.UUID) ([]byte, string, error)
}

type bloodStockUsecase struct {
	log          *logrus.Logger
	tx           repository.Transactor
	bankRepo     repository.BloodBankRepository
	stockRepo    repository.BloodStockRepository
	auditService service.AuditService
	stockCache   service.StockCache
}

func NewBloodStockUsecase(
	log *logrus.Logger,
	tx repository.Transactor,
	bankRepo repository.BloodBankRepository,
	stockRepo repository.BloodStockRepository,
	auditService service.AuditService,
	stockCache service.StockCache,
) BloodStockUsecase {
	return &bloodStockUsecase{
		log:          log,
		tx:           tx,
		bankRepo:     bankRepo,
		stockRepo:    stockRepo,
		auditService: auditService,
		stockCache:   stockCache,
	}
}

// ownedBank resolves the caller's bank. A requested bank id must be that bank.
func (u *bloodStockUsecase) ownedBank(ctx context.Context, ownerID uuid.UUID, requested *uuid.UUID) (*entity.BloodBank, error) {
	bank, err := u.bankRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		u.log.Warnf("Failed to find blood bank: %+v", err)
		return nil, err
	}
	if bank == nil {
		return nil, ErrBloodBankRequired
	}
	if requested != nil && *requested != bank.ID {
		return nil, ErrBloodBankNotOwned
	}
	return bank, nil
}

func (u *bloodStockUsecase) GetMyStock(ctx context.Context, ownerID uuid.UUID, group entity.BloodGroup) (*dto.StockListResponse, error) {
	bank, err := u.ownedBank(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}

	stock, err := u.stockRepo.FindAll(ctx, &entity.StockFilter{BankID: &bank.ID, BloodGroup: group})
	if err != nil {
		u.log.Warnf("Failed to find blood stock: %+v", err)
		return nil, err
	}

	responses := converter.BloodStocksToResponses(stock)
	return &dto.StockListResponse{Stock: responses, Count: len(responses)}, nil
}

func (u *bloodStockUsecase) GetPublicStock(ctx context.Context, filter *entity.StockFilter) (*dto.StockListResponse, error) {
	key := stockFilterKey(filter)

	version, err := u.stockCache.Version(ctx)
	cacheOK := err == nil
	if err != nil {
		u.log.Warnf("Failed to read stock cache version: %+v", err)
	}

	if cacheOK {
		if payload, ok, err := u.stockCache.GetPublic(ctx, version, key); err != nil {
			u.log.Warnf("Failed to read stock cache: %+v", err)
		} else if ok {
			var cached dto.StockListResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
			u.log.Warnf("Discarding unreadable stock cache entry %q", key)
		}
	}

	stock, err := u.stockRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find blood stock: %+v", err)
		return nil, err
	}

	responses := converter.BloodStocksToResponses(stock)
	result := &dto.StockListResponse{Stock: responses, Count: len(responses)}

	if payload, err := json.Marshal(result); err == nil && cacheOK {
		if err := u.stockCache.SetPublic(ctx, version, key, payload); err != nil {
			u.log.Warnf("Failed to write stock cache: %+v", err)
		}
	}

	return result, nil
}

func (u *bloodStockUsecase) AddStock(ctx context.Context, ownerID uuid.UUID, req *dto.StockMutationRequest) (*dto.StockResponse, error) {
	group, quantity, err := parseStockMutation(req)
	if err != nil {
		return nil, err
	}

	var stock *entity.BloodStock
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		bank, err := u.ownedBank(ctx, ownerID, req.BankID)
		if err != nil {
			return err
		}

		existing, err := u.stockRepo.FindByBankAndGroup(ctx, bank.ID, group)
		if err != nil {
			u.log.Warnf("Failed to find blood stock: %+v", err)
			return err
		}
		if existing != nil {
			return ErrDuplicateBloodGroup
		}

		stock = &entity.BloodStock{
			BloodBankID: bank.ID,
			BloodGroup:  group,
			Quantity:    quantity,
		}
		if err := u.stockRepo.Create(ctx, stock); err != nil {
			if isDuplicateKeyError(err, "bank_group") {
				return ErrDuplicateBloodGroup
			}
			u.log.Warnf("Failed to create blood stock: %+v", err)
			return err
		}
		stock.BloodBank = bank

		return u.auditService.LogCreate(ctx, ownerID, entity.AuditActionStockAdd, "blood_stock", fmt.Sprint(stock.ID), converter.BloodStockToResponse(stock))
	})
	if err != nil {
		return nil, err
	}

	u.invalidateStock(ctx)

	return converter.BloodStockToResponse(stock), nil
}

func (u *bloodStockUsecase) UpdateStock(ctx context.Context, ownerID uuid.UUID, req *dto.StockMutationRequest) (*dto.StockResponse, error) {
	group, quantity, err := parseStockMutation(req)
	if err != nil {
		return nil, err
	}

	var stock *entity.BloodStock
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		bank, err := u.ownedBank(ctx, ownerID, req.BankID)
		if err != nil {
			return err
		}

		stock, err = u.stockRepo.FindByBankAndGroup(ctx, bank.ID, group)
		if err != nil {
			u.log.Warnf("Failed to find blood stock: %+v", err)
			return err
		}
		if stock == nil {
			return ErrUnknownBloodGroup
		}
		oldValue := converter.BloodStockToResponse(stock)

		if err := u.stockRepo.UpdateQuantity(ctx, stock.ID, quantity); err != nil {
			u.log.Warnf("Failed to update blood stock: %+v", err)
			return err
		}
		stock.Quantity = quantity
		stock.BloodBank = bank

		return u.auditService.LogUpdate(ctx, ownerID, entity.AuditActionStockUpdate, "blood_stock", fmt.Sprint(stock.ID), oldValue, converter.BloodStockToResponse(stock))
	})
	if err != nil {
		return nil, err
	}

	u.invalidateStock(ctx)

	return converter.BloodStockToResponse(stock), nil
}

func (u *bloodStockUsecase) ExportStock(ctx context.Context, ownerID uuid.UUID) ([]byte, string, error) {
	bank, err := u.ownedBank(ctx, ownerID, nil)
	if err != nil {
		return nil, "", err
	}

	stock, err := u.stockRepo.FindAll(ctx, &entity.StockFilter{BankID: &bank.ID})
	if err != nil {
		u.log.Warnf("Failed to find blood stock: %+v", err)
		return nil, "", err
	}

	report, err := service.BuildStockReport(bank, stock)
	if err != nil {
		u.log.Warnf("Failed to build stock report: %+v", err)
		return nil, "", err
	}

	filename := fmt.Sprintf("blood-stock-%s.xlsx", strings.ReplaceAll(strings.ToLower(bank.Name), " ", "-"))
	return report, filename, nil
}

func (u *bloodStockUsecase) invalidateStock(ctx context.Context) {
	if err := u.stockCache.Invalidate(ctx); err != nil {
		u.log.Warnf("Failed to invalidate stock cache: %+v", err)
	}
}

func parseStockMutation(req *dto.StockMutationRequest) (entity.BloodGroup, int, error) {
	group, err := entity.ParseBloodGroup(req.BloodGroup)
	if err != nil {
		return "", 0, err
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		return "", 0, ErrNegativeQuantity
	}
	return group, *req.Quantity, nil
}

func stockFilterKey(filter *entity.StockFilter) string {
	bank, group := "all", "all"
	if filter != nil {
		if filter.BankID != nil {
			bank = filter.BankID.String()
		}
		if filter.BloodGroup != "" {
			group = string(filter.BloodGroup)
		}
	}
	return bank + ":" + group
}
