// Package testutil provides in-memory stand-ins for postgres and Redis.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store is a tiny in-memory database shared by the memory repositories.
// Slices keep insertion order, which stands in for created_at.
type Store struct {
	mu        sync.Mutex
	users     []entity.User
	donors    []entity.DonorProfile
	banks     []entity.BloodBank
	stock     []entity.BloodStock
	requests  []entity.BloodRequest
	auditLogs []entity.AuditLog
	nextID    int64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// AuditLogs returns a copy of every audit row written so far.
func (s *Store) AuditLogs() []entity.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.AuditLog(nil), s.auditLogs...)
}

// StockCount returns the number of stock rows for a bank.
func (s *Store) StockCount(bankID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range s.stock {
		if st.BloodBankID == bankID {
			n++
		}
	}
	return n
}

// Transactor runs fn directly. The memory store has no rollback.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Users

type UserRepository struct{ s *Store }

func NewUserRepository(s *Store) repository.UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return uniqueViolation("users_username_key")
		}
		if u.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now

	stored := *user
	stored.DonorProfile, stored.BloodBank = nil, nil
	r.s.users = append(r.s.users, stored)

	if user.DonorProfile != nil {
		user.DonorProfile.CreatedAt, user.DonorProfile.UpdatedAt = now, now
		r.s.donors = append(r.s.donors, *user.DonorProfile)
	}
	if user.BloodBank != nil {
		user.BloodBank.CreatedAt, user.BloodBank.UpdatedAt = now, now
		bank := *user.BloodBank
		bank.Stock = nil
		r.s.banks = append(r.s.banks, bank)
	}
	return nil
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == identifier || u.Email == identifier {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

// Donor profiles

type DonorProfileRepository struct{ s *Store }

func NewDonorProfileRepository(s *Store) repository.DonorProfileRepository {
	return &DonorProfileRepository{s: s}
}

func (r *DonorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DonorProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.donors {
		if d.UserID == userID {
			found := d
			return &found, nil
		}
	}
	return nil, nil
}

func (r *DonorProfileRepository) Save(ctx context.Context, profile *entity.DonorProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	profile.UpdatedAt = now
	for i, d := range r.s.donors {
		if d.ID == profile.ID {
			r.s.donors[i] = *profile
			return nil
		}
		if d.UserID == profile.UserID {
			return uniqueViolation("donor_profiles_user_id_key")
		}
	}
	profile.CreatedAt = now
	r.s.donors = append(r.s.donors, *profile)
	return nil
}

func (r *DonorProfileRepository) Search(ctx context.Context, filter *entity.DonorFilter) ([]entity.DonorProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.DonorProfile{}
	for _, d := range r.s.donors {
		if filter != nil {
			if filter.BloodGroup != "" && d.BloodGroup != filter.BloodGroup {
				continue
			}
			if filter.Location != "" && !containsFold(d.Location, filter.Location) {
				continue
			}
			if filter.AvailableOnly && d.Availability != entity.Available {
				continue
			}
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *DonorProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, d := range r.s.donors {
		if d.UserID == userID {
			r.s.donors = append(r.s.donors[:i], r.s.donors[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Blood banks

type BloodBankRepository struct{ s *Store }

func NewBloodBankRepository(s *Store) repository.BloodBankRepository {
	return &BloodBankRepository{s: s}
}

func (r *BloodBankRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodBank, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.banks {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (r *BloodBankRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.BloodBank, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.banks {
		if b.OwnerID == ownerID {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (r *BloodBankRepository) Save(ctx context.Context, bank *entity.BloodBank) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	bank.UpdatedAt = now
	stored := *bank
	stored.Stock = nil
	for i, b := range r.s.banks {
		if b.ID == bank.ID {
			r.s.banks[i] = stored
			return nil
		}
		if b.OwnerID == bank.OwnerID {
			return uniqueViolation("blood_banks_owner_id_key")
		}
	}
	bank.CreatedAt = now
	stored.CreatedAt = now
	r.s.banks = append(r.s.banks, stored)
	return nil
}

func (r *BloodBankRepository) Search(ctx context.Context, filter *entity.BloodBankFilter) ([]entity.BloodBank, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.BloodBank{}
	for _, b := range r.s.banks {
		if filter != nil {
			if filter.BloodGroup != "" && !b.AvailableBloodGroups.Contains(filter.BloodGroup) {
				continue
			}
			if filter.City != "" && !containsFold(b.City, filter.City) {
				continue
			}
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BloodBankRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, b := range r.s.banks {
		if b.ID == id {
			r.s.banks = append(r.s.banks[:i], r.s.banks[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Blood stock

type BloodStockRepository struct{ s *Store }

func NewBloodStockRepository(s *Store) repository.BloodStockRepository {
	return &BloodStockRepository{s: s}
}

func (r *BloodStockRepository) FindByBankAndGroup(ctx context.Context, bankID uuid.UUID, group entity.BloodGroup) (*entity.BloodStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.stock {
		if st.BloodBankID == bankID && st.BloodGroup == group {
			found := st
			return &found, nil
		}
	}
	return nil, nil
}

func (r *BloodStockRepository) FindAll(ctx context.Context, filter *entity.StockFilter) ([]entity.BloodStock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.BloodStock{}
	for _, st := range r.s.stock {
		if filter != nil {
			if filter.BankID != nil && st.BloodBankID != *filter.BankID {
				continue
			}
			if filter.BloodGroup != "" && st.BloodGroup != filter.BloodGroup {
				continue
			}
		}
		for _, b := range r.s.banks {
			if b.ID == st.BloodBankID {
				bank := b
				st.BloodBank = &bank
				break
			}
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BloodBankID != out[j].BloodBankID {
			return out[i].BloodBankID.String() < out[j].BloodBankID.String()
		}
		return out[i].BloodGroup < out[j].BloodGroup
	})
	return out, nil
}

func (r *BloodStockRepository) Create(ctx context.Context, stock *entity.BloodStock) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.stock {
		if st.BloodBankID == stock.BloodBankID && st.BloodGroup == stock.BloodGroup {
			return uniqueViolation("idx_blood_stocks_bank_group")
		}
	}
	stock.ID = r.s.id()
	stock.LastUpdated = time.Now()
	stored := *stock
	stored.BloodBank = nil
	r.s.stock = append(r.s.stock, stored)
	return nil
}

func (r *BloodStockRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, st := range r.s.stock {
		if st.ID == id {
			r.s.stock[i].Quantity = quantity
			r.s.stock[i].LastUpdated = time.Now()
			return nil
		}
	}
	return nil
}

func (r *BloodStockRepository) DeleteByBankID(ctx context.Context, bankID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.stock[:0]
	var n int64
	for _, st := range r.s.stock {
		if st.BloodBankID == bankID {
			n++
			continue
		}
		kept = append(kept, st)
	}
	r.s.stock = kept
	return n, nil
}

// Blood requests

type BloodRequestRepository struct{ s *Store }

func NewBloodRequestRepository(s *Store) repository.BloodRequestRepository {
	return &BloodRequestRepository{s: s}
}

func (r *BloodRequestRepository) Create(ctx context.Context, request *entity.BloodRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	request.CreatedAt, request.UpdatedAt = now, now
	r.s.requests = append(r.s.requests, *request)
	return nil
}

func (r *BloodRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BloodRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.ID == id {
			found := req
			return &found, nil
		}
	}
	return nil, nil
}

// newestFirst walks requests from the most recent insert backwards.
func (r *BloodRequestRepository) newestFirst(keep func(entity.BloodRequest) bool) []entity.BloodRequest {
	out := []entity.BloodRequest{}
	for i := len(r.s.requests) - 1; i >= 0; i-- {
		if keep(r.s.requests[i]) {
			out = append(out, r.s.requests[i])
		}
	}
	return out
}

func (r *BloodRequestRepository) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]entity.BloodRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.newestFirst(func(req entity.BloodRequest) bool {
		return req.RequesterID == requesterID
	}), nil
}

func (r *BloodRequestRepository) FindAll(ctx context.Context, filter *entity.RequestFilter) ([]entity.BloodRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.newestFirst(func(req entity.BloodRequest) bool {
		if filter == nil {
			return true
		}
		if filter.BloodGroup != "" && req.RequiredBloodGroup != filter.BloodGroup {
			return false
		}
		return filter.City == "" || containsFold(req.City, filter.City)
	}), nil
}

func (r *BloodRequestRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, req := range r.s.requests {
		if req.ID == id {
			r.s.requests = append(r.s.requests[:i], r.s.requests[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// Audit logs

type AuditLogRepository struct{ s *Store }

func NewAuditLogRepository(s *Store) repository.AuditLogRepository {
	return &AuditLogRepository{s: s}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	log.ID = r.s.id()
	log.CreatedAt = time.Now()
	r.s.auditLogs = append(r.s.auditLogs, *log)
	return nil
}

func (r *AuditLogRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.AuditLog{}
	for i := len(r.s.auditLogs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		l := r.s.auditLogs[i]
		if l.UserID != nil && *l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}
