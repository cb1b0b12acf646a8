package client

import (
	"context"
	"fmt"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

// DashboardAPI is what the dashboards read.
type DashboardAPI interface {
	MyDonorProfile(ctx context.Context) (*dto.MyDonorResponse, error)
	MyBanks(ctx context.Context) ([]dto.BloodBankResponse, error)
	MyStock(ctx context.Context, bloodGroup string) ([]dto.StockResponse, error)
	MyRequests(ctx context.Context) ([]dto.BloodRequestResponse, error)
	ListRequests(ctx context.Context, bloodGroup, city string) ([]dto.BloodRequestResponse, error)
	SearchBanks(ctx context.Context, bloodGroup, city string) ([]dto.BloodBankResponse, error)
}

// Dashboard is the data behind one role dashboard. Fields not used by the
// role stay empty.
type Dashboard struct {
	View          View
	Identity      Identity
	Donor         *dto.DonorResponse
	Banks         []dto.BloodBankResponse
	Stock         []dto.StockResponse
	MyRequests    []dto.BloodRequestResponse
	OpenRequests  []dto.BloodRequestResponse
	MatchingBanks []dto.BloodBankResponse
}

type DashboardLoader struct {
	api     DashboardAPI
	session SessionReader
}

func NewDashboardLoader(api DashboardAPI, session SessionReader) *DashboardLoader {
	return &DashboardLoader{api: api, session: session}
}

// Load fetches everything the caller's dashboard shows in parallel.
func (l *DashboardLoader) Load(ctx context.Context) (*Dashboard, error) {
	identity, ok := l.session.Identity()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	d := &Dashboard{View: DashboardFor(identity.Role), Identity: identity}
	g, ctx := errgroup.WithContext(ctx)

	switch identity.Role {
	case entity.RoleDonor:
		g.Go(func() error {
			mine, err := l.api.MyDonorProfile(ctx)
			if err != nil {
				return fmt.Errorf("donor profile: %w", err)
			}
			if mine.Found {
				d.Donor = mine.Donor
			}
			return nil
		})
		g.Go(func() error {
			requests, err := l.api.ListRequests(ctx, identity.BloodGroup.String(), "")
			if err != nil {
				return fmt.Errorf("open requests: %w", err)
			}
			d.OpenRequests = requests
			return nil
		})
	case entity.RoleBank:
		g.Go(func() error {
			banks, err := l.api.MyBanks(ctx)
			if err != nil {
				return fmt.Errorf("blood banks: %w", err)
			}
			d.Banks = banks
			return nil
		})
		g.Go(func() error {
			stock, err := l.api.MyStock(ctx, "")
			if err != nil {
				return fmt.Errorf("blood stock: %w", err)
			}
			d.Stock = stock
			return nil
		})
		g.Go(func() error {
			requests, err := l.api.ListRequests(ctx, "", "")
			if err != nil {
				return fmt.Errorf("open requests: %w", err)
			}
			d.OpenRequests = requests
			return nil
		})
	case entity.RoleRecipient:
		g.Go(func() error {
			requests, err := l.api.MyRequests(ctx)
			if err != nil {
				return fmt.Errorf("my requests: %w", err)
			}
			d.MyRequests = requests
			if len(requests) == 0 {
				return nil
			}
			banks, err := l.api.SearchBanks(ctx, requests[0].RequiredBloodGroup, "")
			if err != nil {
				return fmt.Errorf("matching banks: %w", err)
			}
			d.MatchingBanks = banks
			return nil
		})
	default:
		return nil, entity.ErrUnknownRole
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
