package client

import (
	"context"
	"sync"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Confirmer asks the user before a destructive call.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// RecordAPI is the owner-scoped part of API.
type RecordAPI interface {
	MyDonorProfile(ctx context.Context) (*dto.MyDonorResponse, error)
	UpsertDonorProfile(ctx context.Context, req *dto.UpsertDonorRequest) (*dto.DonorResponse, error)
	DeleteDonorProfile(ctx context.Context) error
	MyBanks(ctx context.Context) ([]dto.BloodBankResponse, error)
	UpsertBank(ctx context.Context, req *dto.UpsertBloodBankRequest) (*dto.BloodBankResponse, error)
	DeleteBank(ctx context.Context, id uuid.UUID) error
	MyStock(ctx context.Context, bloodGroup string) ([]dto.StockResponse, error)
	AddStock(ctx context.Context, req *dto.StockMutationRequest) (*dto.StockResponse, error)
	UpdateStock(ctx context.Context, req *dto.StockMutationRequest) (*dto.StockResponse, error)
	MyRequests(ctx context.Context) ([]dto.BloodRequestResponse, error)
	CreateRequest(ctx context.Context, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error)
	CancelRequest(ctx context.Context, id uuid.UUID) error
}

// AuthState reports whether a bearer token is available.
type AuthState interface {
	IsAuthenticated() bool
}

const (
	keyDonor    = "records:donor"
	keyBanks    = "records:banks"
	keyStock    = "records:stock"
	keyRequests = "records:requests"
)

// RecordManager owns the signed-in user's records and keeps a cached copy of
// each list. Every successful write re-reads the affected list from the server.
type RecordManager struct {
	api     RecordAPI
	session AuthState
	confirm Confirmer
	seq     *Sequencer
	log     *logrus.Logger

	mu       sync.RWMutex
	donor    *dto.DonorResponse
	banks    []dto.BloodBankResponse
	stock    []dto.StockResponse
	requests []dto.BloodRequestResponse
}

func NewRecordManager(api RecordAPI, session AuthState, confirm Confirmer, log *logrus.Logger) *RecordManager {
	return &RecordManager{
		api:     api,
		session: session,
		confirm: confirm,
		seq:     NewSequencer(),
		log:     log,
	}
}

func (m *RecordManager) requireAuth() error {
	if !m.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

func (m *RecordManager) confirmDelete(ctx context.Context, prompt string) error {
	ok, err := m.confirm.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeleteNotConfirmed
	}
	return nil
}

// refresh runs a reload after a successful write. The write already happened,
// so a failed reload is logged and not returned.
func (m *RecordManager) refresh(what string, reload func() error) {
	if err := reload(); err != nil {
		m.log.Warnf("Failed to reload %s after write: %+v", what, err)
	}
}

// Donor profile

// LoadDonorProfile returns nil when the caller has no profile yet.
func (m *RecordManager) LoadDonorProfile(ctx context.Context) (*dto.DonorResponse, error) {
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	seq := m.seq.Next(keyDonor)
	mine, err := m.api.MyDonorProfile(ctx)
	if !m.seq.IsLatest(keyDonor, seq) {
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}

	var donor *dto.DonorResponse
	if mine.Found {
		donor = mine.Donor
	}
	m.mu.Lock()
	m.donor = donor
	m.mu.Unlock()
	return donor, nil
}

func (m *RecordManager) SaveDonorProfile(ctx context.Context, req *dto.UpsertDonorRequest) (*dto.DonorResponse, error) {
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	if req.BloodGroup != "" {
		if _, err := entity.ParseBloodGroup(req.BloodGroup); err != nil {
			return nil, &ValidationError{Field: "bloodGroup", Err: err}
		}
	}
	saved, err := m.api.UpsertDonorProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	m.refresh("donor profile", func() error {
		_, err := m.LoadDonorProfile(ctx)
		return err
	})
	return saved, nil
}

func (m *RecordManager) DeleteDonorProfile(ctx context.Context) error {
	if err := m.requireAuth(); err != nil {
		return err
	}
	if err := m.confirmDelete(ctx, "Delete your donor profile?"); err != nil {
		return err
	}
	if err := m.api.DeleteDonorProfile(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	m.donor = nil
	m.mu.Unlock()
	m.refresh("donor profile", func() error {
		_, err := m.LoadDonorProfile(ctx)
		return err
	})
	return nil
}

func (m *RecordManager) DonorProfile() *dto.DonorResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.donor
}

// Blood banks

func (m *RecordManager) LoadBanks(ctx context.Context) ([]dto.BloodBankResponse, error) {
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	seq := m.seq.Next(keyBanks)
	banks, err := m.api.MyBanks(ctx)
	if !m.seq.IsLatest(keyBanks, seq) {
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.banks = banks
	m.mu.Unlock()
	return banks, nil
}

func (m *RecordManager) SaveBank(ctx context.Context, req *dto.UpsertBloodBankRequest) (*dto.BloodBankResponse, error) {
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	for _, g := range req.AvailableBloodGroups {
		if _, err := entity.ParseBloodGroup(g); err != nil {
			return nil, &ValidationError{Field: "availableBloodGroups", Err: err}
		}
	}
	saved, err := m.api.UpsertBank(ctx, req)
	if err != nil {
		return nil, err
	}
	m.refresh("blood banks", func() error {
		_, err := m.LoadBanks(ctx)
		return err
	})
	return saved, nil
}

// DeleteBank drops the cached entry only once the server has deleted it.
func (m *RecordManager) DeleteBank(ctx context.Context, id uuid.UUID) error {
	if err := m.requireAuth(); err != nil {
		return err
	}
	if err := m.confirmDelete(ctx, "Delete this blood bank and all of its stock?"); err != nil {
		return err
	}
	if err := m.api.DeleteBank(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	kept := m.banks[:0:0]
	for _, b := range m.banks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	m.banks = kept
	m.stock = nil
	m.mu.Unlock()

	m.refresh("blood banks", func() error {
		_, err := m.LoadBanks(ctx)
		return err
	})
	return nil
}

func (m *RecordManager) Banks() []dto.BloodBankResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]dto.BloodBankResponse(nil), m.banks...)
}

// Stock

func (m *RecordManager) LoadStock(ctx context.Context) ([]dto.StockResponse, error) {
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	seq := m.seq.Next(keyStock)
	stock, err := m.api.MyStock(ctx, "")
	if !m.seq.IsLatest(keyStock, seq) {
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.stock = stock
	m.mu.Unlock()
	return stock, nil
}

// AddStock creates an entry for a group the bank does not stock yet.
func (m *RecordManager) AddStock(ctx context.Context, bankID *uuid.UUID, bloodGroup string, quantity int) (*dto.StockResponse, error) {
	return m.mutateStock(ctx, bankID, bloodGroup, quantity, m.api.AddStock)
}

// UpdateStock sets the quantity of an existing entry.
func (m *RecordManager) UpdateStock(ctx context.Context, bankID *uuid.UUID, bloodGroup string, quantity int) (*dto.StockResponse, error) {
	return m.mutateStock(ctx, bankID, bloodGroup, quantity, m.api.UpdateStock)
}

func (m *RecordManager) mutateStock(
	ctx context.Context,
	bankID *uuid.UUID,
	bloodGroup string,
	quantity int,
	op func(context.Context, *dto.StockMutationRequest) (*dto.StockResponse, error),
) (*dto.StockResponse, error) {
	group, err := entity.ParseBloodGroup(bloodGroup)
	if err != nil {
		return nil, &ValidationError{Field: "bloodGroup", Err: err}
	}
	if quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Err: ErrNegativeQuantity}
	}
	if err := m.requireAuth(); err != nil {
		return nil, err
	}

	saved, err := op(ctx, &dto.StockMutationRequest{
		BankID:     bankID,
		BloodGroup: group.String(),
		Quantity:   &quantity,
	})
	if err != nil {
		return nil, err
	}
	m.refresh("blood stock", func() error {
		_, err := m.LoadStock(ctx)
		return err
	})
	return saved, nil
}

func (m *RecordManager) Stock() []dto.StockResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]dto.StockResponse(nil), m.stock...)
}

// Recipient requests

func (m *RecordManager) LoadMyRequests(ctx context.Context) ([]dto.BloodRequestResponse, error) {
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	seq := m.seq.Next(keyRequests)
	requests, err := m.api.MyRequests(ctx)
	if !m.seq.IsLatest(keyRequests, seq) {
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.requests = requests
	m.mu.Unlock()
	return requests, nil
}

func (m *RecordManager) CreateRequest(ctx context.Context, req *dto.CreateBloodRequestRequest) (*dto.BloodRequestResponse, error) {
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	if _, err := entity.ParseBloodGroup(req.RequiredBloodGroup); err != nil {
		return nil, &ValidationError{Field: "requiredBloodGroup", Err: err}
	}
	created, err := m.api.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	m.refresh("blood requests", func() error {
		_, err := m.LoadMyRequests(ctx)
		return err
	})
	return created, nil
}

func (m *RecordManager) CancelRequest(ctx context.Context, id uuid.UUID) error {
	if err := m.requireAuth(); err != nil {
		return err
	}
	if err := m.confirmDelete(ctx, "Cancel this blood request?"); err != nil {
		return err
	}
	if err := m.api.CancelRequest(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	kept := m.requests[:0:0]
	for _, r := range m.requests {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.requests = kept
	m.mu.Unlock()

	m.refresh("blood requests", func() error {
		_, err := m.LoadMyRequests(ctx)
		return err
	})
	return nil
}

func (m *RecordManager) Requests() []dto.BloodRequestResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]dto.BloodRequestResponse(nil), m.requests...)
}
