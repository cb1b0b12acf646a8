package client

import (
	"context"
	"errors"
	"testing"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardAPI struct {
	fakeRecordAPI
	open          []dto.BloodRequestResponse
	searchedGroup string
	failBanks     bool
}

func (f *fakeDashboardAPI) ListRequests(ctx context.Context, bloodGroup, city string) ([]dto.BloodRequestResponse, error) {
	return f.open, nil
}

func (f *fakeDashboardAPI) SearchBanks(ctx context.Context, bloodGroup, city string) ([]dto.BloodBankResponse, error) {
	f.searchedGroup = bloodGroup
	if f.failBanks {
		return nil, errors.New("unreachable")
	}
	return []dto.BloodBankResponse{{Name: "City Blood Bank"}}, nil
}

func TestDashboard_RequiresIdentity(t *testing.T) {
	_, err := NewDashboardLoader(&fakeDashboardAPI{}, staticSession{}).Load(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestDashboard_Bank(t *testing.T) {
	api := &fakeDashboardAPI{
		fakeRecordAPI: fakeRecordAPI{
			banks: []dto.BloodBankResponse{{Name: "City"}},
			stock: []dto.StockResponse{{BloodGroup: "A+", Quantity: 3}},
		},
		open: []dto.BloodRequestResponse{{RequiredBloodGroup: "A+"}},
	}

	d, err := NewDashboardLoader(api, staticSession{identity: identityWith(entity.RoleBank)}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ViewBankDashboard, d.View)
	assert.Len(t, d.Banks, 1)
	assert.Len(t, d.Stock, 1)
	assert.Len(t, d.OpenRequests, 1)
	assert.Nil(t, d.Donor)
}

func TestDashboard_RecipientMatchesBanksToFirstRequest(t *testing.T) {
	api := &fakeDashboardAPI{
		fakeRecordAPI: fakeRecordAPI{
			requests: []dto.BloodRequestResponse{{RequiredBloodGroup: "O-"}, {RequiredBloodGroup: "A+"}},
		},
	}

	d, err := NewDashboardLoader(api, staticSession{identity: identityWith(entity.RoleRecipient)}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ViewRecipientDashboard, d.View)
	assert.Equal(t, "O-", api.searchedGroup)
	assert.Len(t, d.MatchingBanks, 1)

	api.failBanks = true
	_, err = NewDashboardLoader(api, staticSession{identity: identityWith(entity.RoleRecipient)}).Load(context.Background())
	assert.Error(t, err)
}
