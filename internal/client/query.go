package client

import (
	"strings"
	"sync"

	"nearest-blood-locator/internal/domain/entity"
)

// Target is what a search looks for.
type Target string

const (
	TargetDonors Target = "donor"
	TargetBanks  Target = "bank"
)

func (t Target) Valid() bool {
	return t == TargetDonors || t == TargetBanks
}

// SearchQuery is a normalized search request. It is never persisted.
type SearchQuery struct {
	Target     Target
	BloodGroup entity.BloodGroup
	Location   string
}

// Key identifies the logical search for stale-response tracking.
func (q SearchQuery) Key() string {
	return string(q.Target) + "|" + string(q.BloodGroup)
}

// BuildQuery validates input. Blood group is the only required field and
// location is passed through trimmed.
func BuildQuery(target Target, bloodGroup, location string) (SearchQuery, error) {
	if !target.Valid() {
		return SearchQuery{}, &ValidationError{Field: "target", Err: ErrInvalidTarget}
	}
	if strings.TrimSpace(bloodGroup) == "" {
		return SearchQuery{}, &ValidationError{Field: "bloodGroup", Err: ErrMissingBloodGroup}
	}
	group, err := entity.ParseBloodGroup(bloodGroup)
	if err != nil {
		return SearchQuery{}, &ValidationError{Field: "bloodGroup", Err: err}
	}
	return SearchQuery{
		Target:     target,
		BloodGroup: group,
		Location:   strings.TrimSpace(location),
	}, nil
}

// CriteriaModel is the search form state: one target at a time plus the last
// validation error.
type CriteriaModel struct {
	mu     sync.Mutex
	target Target
	err    error
}

func NewCriteriaModel() *CriteriaModel {
	return &CriteriaModel{target: TargetDonors}
}

// SetTarget switches between donor and bank search.
func (m *CriteriaModel) SetTarget(t Target) error {
	if !t.Valid() {
		return &ValidationError{Field: "target", Err: ErrInvalidTarget}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = t
	return nil
}

func (m *CriteriaModel) Target() Target {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.target
}

// Submit builds a query for the current target. Success clears the previous error.
func (m *CriteriaModel) Submit(bloodGroup, location string) (SearchQuery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, err := BuildQuery(m.target, bloodGroup, location)
	m.err = err
	return q, err
}

func (m *CriteriaModel) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}
