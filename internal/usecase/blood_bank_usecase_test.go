package usecase

import (
	"context"
	"testing"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertMyBank(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, dto.RegisterRequest{Username: "citybank", UserType: "bank", City: "Metro"})

	bank, created, err := f.banks.UpsertMyBank(ctx, owner, &dto.UpsertBloodBankRequest{
		Name:                 "City Blood Bank",
		City:                 "Metro",
		ContactNumber:        "5550001111",
		AvailableBloodGroups: []string{"A+", "o-"},
		StockStatus:          "Low",
	})
	require.NoError(t, err)
	assert.False(t, created, "registration already created the bank")
	assert.Equal(t, "City Blood Bank", bank.Name)
	assert.Equal(t, []string{"A+", "O-"}, bank.AvailableBloodGroups)
	assert.Equal(t, "Low", bank.StockStatus)

	banks, err := f.banks.GetMyBanks(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 1, banks.Count)
	assert.Equal(t, bank.ID, banks.BloodBanks[0].ID)
	assert.Equal(t, 1, f.cache.Invalidations)
}

func TestUpsertMyBank_InvalidGroup(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.banks.UpsertMyBank(context.Background(), uuid.New(), &dto.UpsertBloodBankRequest{
		Name: "x", City: "y", ContactNumber: "5550001111", AvailableBloodGroups: []string{"Q"},
	})
	assert.ErrorIs(t, err, entity.ErrInvalidBloodGroup)
}

func TestSearchBanks_ByGroupAndCity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, b := range []struct {
		owner, city string
		groups      []string
	}{
		{"bank1", "Metro", []string{"A+", "O-"}},
		{"bank2", "Metro", []string{"B+"}},
		{"bank3", "Gotham", []string{"O-"}},
	} {
		owner := f.register(t, dto.RegisterRequest{Username: b.owner, UserType: "bank"})
		_, _, err := f.banks.UpsertMyBank(ctx, owner, &dto.UpsertBloodBankRequest{
			Name: b.owner, City: b.city, ContactNumber: "5550001111", AvailableBloodGroups: b.groups,
		})
		require.NoError(t, err)
	}

	result, err := f.banks.SearchBanks(ctx, &entity.BloodBankFilter{BloodGroup: entity.BloodGroupONeg})
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "bank1", result.BloodBanks[0].Name)
	assert.Equal(t, "bank3", result.BloodBanks[1].Name)

	result, err = f.banks.SearchBanks(ctx, &entity.BloodBankFilter{BloodGroup: entity.BloodGroupONeg, City: "metro"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "bank1", result.BloodBanks[0].Name)
}

func TestDeleteBank_CascadesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, dto.RegisterRequest{Username: "citybank", UserType: "bank"})

	_, err := f.stock.AddStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(10)})
	require.NoError(t, err)
	banks, err := f.banks.GetMyBanks(ctx, owner)
	require.NoError(t, err)
	bankID := banks.BloodBanks[0].ID
	require.Equal(t, 1, f.store.StockCount(bankID))

	require.NoError(t, f.banks.DeleteBank(ctx, owner, bankID))
	assert.Equal(t, 0, f.store.StockCount(bankID))

	banks, err = f.banks.GetMyBanks(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 0, banks.Count)
}

func TestDeleteBank_NotOwnedLeavesRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, dto.RegisterRequest{Username: "citybank", UserType: "bank"})
	intruder := f.register(t, dto.RegisterRequest{Username: "otherbank", UserType: "bank"})

	banks, err := f.banks.GetMyBanks(ctx, owner)
	require.NoError(t, err)
	bankID := banks.BloodBanks[0].ID

	assert.ErrorIs(t, f.banks.DeleteBank(ctx, intruder, bankID), ErrBloodBankNotOwned)
	assert.ErrorIs(t, f.banks.DeleteBank(ctx, owner, uuid.New()), ErrBloodBankNotFound)

	banks, err = f.banks.GetMyBanks(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, banks.Count)
}
