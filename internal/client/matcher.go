package client

import (
	"context"
	"fmt"
	"strings"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Candidate is one search hit annotated for display. Exactly one of Donor and
// Bank is set, matching Kind.
type Candidate struct {
	Kind         Target
	ID           uuid.UUID
	Label        string
	Location     string
	Contact      string
	Status       string
	MatchedGroup entity.BloodGroup
	Donor        *dto.DonorResponse
	Bank         *dto.BloodBankResponse
}

// SearchResult keeps server order. An empty result is not an error.
type SearchResult struct {
	Query      SearchQuery
	Candidates []Candidate
}

func (r *SearchResult) Empty() bool {
	return len(r.Candidates) == 0
}

func (r *SearchResult) Len() int {
	return len(r.Candidates)
}

// Searcher is the remote candidate source.
type Searcher interface {
	SearchDonors(ctx context.Context, q DonorQuery) ([]dto.DonorResponse, error)
	SearchBanks(ctx context.Context, bloodGroup, city string) ([]dto.BloodBankResponse, error)
}

type Matcher struct {
	api Searcher
	seq *Sequencer
	log *logrus.Logger
}

func NewMatcher(api Searcher, log *logrus.Logger) *Matcher {
	return &Matcher{
		api: api,
		seq: NewSequencer(),
		log: log,
	}
}

// Search fetches candidates already filtered by the server and annotates them.
// A response overtaken by a newer search for the same key returns ErrStaleResponse,
// whether it succeeded or failed.
func (m *Matcher) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	key := q.Key()
	seq := m.seq.Next(key)

	var candidates []Candidate
	switch q.Target {
	case TargetDonors:
		donors, err := m.api.SearchDonors(ctx, DonorQuery{BloodGroup: q.BloodGroup.String(), Location: q.Location})
		if err != nil {
			if !m.seq.IsLatest(key, seq) {
				return nil, ErrStaleResponse
			}
			m.log.Warnf("Failed to search donors: %+v", err)
			return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
		}
		candidates = donorCandidates(donors, q.BloodGroup)
	case TargetBanks:
		banks, err := m.api.SearchBanks(ctx, q.BloodGroup.String(), q.Location)
		if err != nil {
			if !m.seq.IsLatest(key, seq) {
				return nil, ErrStaleResponse
			}
			m.log.Warnf("Failed to search blood banks: %+v", err)
			return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
		}
		candidates = bankCandidates(banks, q.BloodGroup)
	default:
		return nil, &ValidationError{Field: "target", Err: ErrInvalidTarget}
	}

	if !m.seq.IsLatest(key, seq) {
		return nil, ErrStaleResponse
	}

	return &SearchResult{Query: q, Candidates: candidates}, nil
}

func donorCandidates(donors []dto.DonorResponse, group entity.BloodGroup) []Candidate {
	out := make([]Candidate, 0, len(donors))
	for i := range donors {
		d := &donors[i]
		matched := group
		if matched == "" {
			matched = entity.BloodGroup(d.BloodGroup)
		}
		out = append(out, Candidate{
			Kind:         TargetDonors,
			ID:           d.ID,
			Label:        d.FullName,
			Location:     d.Location,
			Contact:      d.PhoneNumber,
			Status:       d.AvailabilityStatus,
			MatchedGroup: matched,
			Donor:        d,
		})
	}
	return out
}

func bankCandidates(banks []dto.BloodBankResponse, group entity.BloodGroup) []Candidate {
	out := make([]Candidate, 0, len(banks))
	for i := range banks {
		b := &banks[i]
		out = append(out, Candidate{
			Kind:         TargetBanks,
			ID:           b.ID,
			Label:        b.Name,
			Location:     b.City,
			Contact:      b.ContactNumber,
			Status:       b.StockStatus,
			MatchedGroup: group,
			Bank:         b,
		})
	}
	return out
}

// LocalFilter narrows a list already on screen. Text matches name or location
// case-insensitively; BloodGroup, when set, must match exactly.
type LocalFilter struct {
	Text       string
	BloodGroup entity.BloodGroup
}

func (f LocalFilter) matchText(fields ...string) bool {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	if text == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}

func FilterDonors(donors []dto.DonorResponse, f LocalFilter) []dto.DonorResponse {
	out := make([]dto.DonorResponse, 0, len(donors))
	for _, d := range donors {
		if f.BloodGroup != "" && d.BloodGroup != f.BloodGroup.String() {
			continue
		}
		if !f.matchText(d.FullName, d.Location) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterBanks treats a bank as matching a blood group when it lists the group as available.
func FilterBanks(banks []dto.BloodBankResponse, f LocalFilter) []dto.BloodBankResponse {
	out := make([]dto.BloodBankResponse, 0, len(banks))
	for _, b := range banks {
		if f.BloodGroup != "" && !containsGroup(b.AvailableBloodGroups, f.BloodGroup) {
			continue
		}
		if !f.matchText(b.Name, b.City) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func containsGroup(groups []string, group entity.BloodGroup) bool {
	for _, g := range groups {
		if g == group.String() {
			return true
		}
	}
	return false
}
