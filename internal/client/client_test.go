package client_test

import (
	"context"
	"testing"
	"time"

	"nearest-blood-locator/internal/client"
	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/testutil"
	"nearest-blood-locator/internal/testutil/backend"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, b *backend.Backend, fs afero.Fs, confirm bool) *client.Client {
	t.Helper()
	return client.New(client.Options{
		BaseURL: b.URL(),
		Timeout: 5 * time.Second,
		Store:   client.NewFileStore(fs, "/session"),
		Confirmer: client.ConfirmFunc(func(context.Context, string) (bool, error) {
			return confirm, nil
		}),
		Log: testutil.NopLogger(),
	})
}

func registerAndLogin(t *testing.T, c *client.Client, req dto.RegisterRequest) client.Identity {
	t.Helper()
	ctx := context.Background()
	if req.Email == "" {
		req.Email = req.Username + "@example.com"
	}
	if req.Password == "" {
		req.Password = "secret123"
	}
	_, err := c.Register(ctx, &req)
	require.NoError(t, err)
	identity, err := c.Login(ctx, req.Username, req.Password)
	require.NoError(t, err)
	return identity
}

func TestDonorRegistersAndIsFound(t *testing.T) {
	b := backend.NewBackend(t)
	c := newClient(t, b, afero.NewMemMapFs(), true)
	ctx := context.Background()

	identity := registerAndLogin(t, c, dto.RegisterRequest{Username: "alice", UserType: "donor", BloodGroup: "O-", City: "Metro"})
	assert.Equal(t, entity.RoleDonor, identity.Role)
	assert.Equal(t, client.Redirect(client.ViewDonorDashboard), c.Router.Route())

	available := true
	_, err := c.Records.SaveDonorProfile(ctx, &dto.UpsertDonorRequest{
		BloodGroup:         "O-",
		Phone:              "5551234567",
		City:               "Metro",
		AvailabilityStatus: &available,
	})
	require.NoError(t, err)
	require.NotNil(t, c.Records.DonorProfile())

	result, err := c.Search(ctx, "O-", "")
	require.NoError(t, err)
	labels := make([]string, 0, result.Len())
	for _, cand := range result.Candidates {
		labels = append(labels, cand.Label)
	}
	assert.Contains(t, labels, "alice")

	result, err = c.Search(ctx, "A+", "")
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestBankStockAddThenUpdate(t *testing.T) {
	b := backend.NewBackend(t)
	c := newClient(t, b, afero.NewMemMapFs(), true)
	ctx := context.Background()

	registerAndLogin(t, c, dto.RegisterRequest{Username: "citybank", UserType: "bank", City: "Metro", Phone: "5550001111"})

	_, err := c.Records.AddStock(ctx, nil, "A+", 10)
	require.NoError(t, err)
	_, err = c.Records.UpdateStock(ctx, nil, "A+", 7)
	require.NoError(t, err)

	_, err = c.Records.AddStock(ctx, nil, "A+", 1)
	assert.ErrorIs(t, err, client.ErrDuplicateBloodGroup)
	_, err = c.Records.UpdateStock(ctx, nil, "B-", 1)
	assert.ErrorIs(t, err, client.ErrUnknownBloodGroup)

	public, err := c.API.PublicStock(ctx, nil, "A+")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, 7, public[0].Quantity)

	require.Len(t, c.Records.Stock(), 1)
	assert.Equal(t, 7, c.Records.Stock()[0].Quantity)
}

func TestDeleteForeignBankIsRefused(t *testing.T) {
	b := backend.NewBackend(t)
	owner := newClient(t, b, afero.NewMemMapFs(), true)
	intruder := newClient(t, b, afero.NewMemMapFs(), true)
	ctx := context.Background()

	registerAndLogin(t, owner, dto.RegisterRequest{Username: "citybank", UserType: "bank"})
	registerAndLogin(t, intruder, dto.RegisterRequest{Username: "otherbank", UserType: "bank"})

	banks, err := owner.Records.LoadBanks(ctx)
	require.NoError(t, err)
	require.Len(t, banks, 1)

	err = intruder.Records.DeleteBank(ctx, banks[0].ID)
	require.ErrorIs(t, err, client.ErrNotOwner)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	still, err := owner.Records.LoadBanks(ctx)
	require.NoError(t, err)
	assert.Equal(t, banks, still)
}

func TestSessionSurvivesRestart(t *testing.T) {
	b := backend.NewBackend(t)
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	first := newClient(t, b, fs, true)
	identity := registerAndLogin(t, first, dto.RegisterRequest{Username: "jane", UserType: "recipient"})

	second := newClient(t, b, fs, true)
	restored, ok := second.Session.Identity()
	require.True(t, ok)
	assert.Equal(t, identity, restored)
	assert.Equal(t, client.Render(), second.Guard.Guard(client.ViewRecipientDashboard, entity.RoleRecipient))
	assert.Equal(t, client.Redirect(client.ViewRecipientDashboard), second.Guard.Guard(client.ViewDonorDashboard, entity.RoleDonor))

	me, err := second.API.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jane", me.Username)

	require.NoError(t, second.Logout(ctx))
	_, err = first.API.Me(ctx)
	assert.Error(t, err, "token revoked on the server")

	third := newClient(t, b, fs, true)
	assert.False(t, third.Session.IsAuthenticated())
	assert.Equal(t, client.Redirect(client.ViewLogin), third.Router.Route())
}

func TestRecipientDashboard(t *testing.T) {
	b := backend.NewBackend(t)
	ctx := context.Background()

	bank := newClient(t, b, afero.NewMemMapFs(), true)
	registerAndLogin(t, bank, dto.RegisterRequest{Username: "citybank", UserType: "bank"})
	_, err := bank.Records.SaveBank(ctx, &dto.UpsertBloodBankRequest{
		Name: "City Blood Bank", City: "Metro", ContactNumber: "5550001111", AvailableBloodGroups: []string{"B-"},
	})
	require.NoError(t, err)

	recipient := newClient(t, b, afero.NewMemMapFs(), true)
	registerAndLogin(t, recipient, dto.RegisterRequest{Username: "jane", UserType: "recipient"})
	_, err = recipient.Records.CreateRequest(ctx, &dto.CreateBloodRequestRequest{
		Name: "Jane Roe", RequiredBloodGroup: "B-", City: "Metro", Phone: "5559876543",
	})
	require.NoError(t, err)

	d, err := recipient.Dashboard.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, client.ViewRecipientDashboard, d.View)
	require.Len(t, d.MyRequests, 1)
	require.Len(t, d.MatchingBanks, 1)
	assert.Equal(t, "City Blood Bank", d.MatchingBanks[0].Name)
}
