package usecase

import (
	"bytes"
	"context"
	"testing"

	"nearest-blood-locator/internal/delivery/dto"
	"nearest-blood-locator/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestStock_AddAndUpdateAreDistinct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, dto.RegisterRequest{Username: "citybank", UserType: "bank"})

	_, err := f.stock.UpdateStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(5)})
	assert.ErrorIs(t, err, ErrUnknownBloodGroup)

	added, err := f.stock.AddStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, added.Quantity)
	assert.Equal(t, "citybank", added.BankName)

	_, err = f.stock.AddStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(3)})
	assert.ErrorIs(t, err, ErrDuplicateBloodGroup)

	updated, err := f.stock.UpdateStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	public, err := f.stock.GetPublicStock(ctx, &entity.StockFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, public.Count)
	assert.Equal(t, 7, public.Stock[0].Quantity)
}

func TestStock_NegativeQuantity(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, dto.RegisterRequest{Username: "citybank", UserType: "bank"})

	_, err := f.stock.AddStock(context.Background(), owner, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(-1)})
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestStock_RequiresOwnBank(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	noBank := f.register(t, dto.RegisterRequest{Username: "donor1", UserType: "donor"})
	owner := f.register(t, dto.RegisterRequest{Username: "citybank", UserType: "bank"})

	_, err := f.stock.AddStock(ctx, noBank, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(1)})
	assert.ErrorIs(t, err, ErrBloodBankRequired)

	other := uuid.New()
	_, err = f.stock.AddStock(ctx, owner, &dto.StockMutationRequest{BankID: &other, BloodGroup: "A+", Quantity: intPtr(1)})
	assert.ErrorIs(t, err, ErrBloodBankNotOwned)
}

func TestGetPublicStock_CachedUntilMutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, dto.RegisterRequest{Username: "citybank", UserType: "bank"})
	_, err := f.stock.AddStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "B+", Quantity: intPtr(4)})
	require.NoError(t, err)

	first, err := f.stock.GetPublicStock(ctx, &entity.StockFilter{BloodGroup: entity.BloodGroupBPos})
	require.NoError(t, err)
	second, err := f.stock.GetPublicStock(ctx, &entity.StockFilter{BloodGroup: entity.BloodGroupBPos})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.Hits)
	assert.Equal(t, first.Stock[0].Quantity, second.Stock[0].Quantity)

	_, err = f.stock.UpdateStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "B+", Quantity: intPtr(9)})
	require.NoError(t, err)

	third, err := f.stock.GetPublicStock(ctx, &entity.StockFilter{BloodGroup: entity.BloodGroupBPos})
	require.NoError(t, err)
	assert.Equal(t, 9, third.Stock[0].Quantity)
	assert.Equal(t, 1, f.cache.Hits)
}

func TestGetMyStock_OnlyOwnBank(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner1 := f.register(t, dto.RegisterRequest{Username: "bank1", UserType: "bank"})
	owner2 := f.register(t, dto.RegisterRequest{Username: "bank2", UserType: "bank"})

	_, err := f.stock.AddStock(ctx, owner1, &dto.StockMutationRequest{BloodGroup: "A+", Quantity: intPtr(1)})
	require.NoError(t, err)
	_, err = f.stock.AddStock(ctx, owner2, &dto.StockMutationRequest{BloodGroup: "O-", Quantity: intPtr(2)})
	require.NoError(t, err)

	mine, err := f.stock.GetMyStock(ctx, owner1, "")
	require.NoError(t, err)
	require.Equal(t, 1, mine.Count)
	assert.Equal(t, "A+", mine.Stock[0].BloodGroup)
}

func TestExportStock_Workbook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, dto.RegisterRequest{Username: "City Bank", UserType: "bank"})
	_, err := f.stock.AddStock(ctx, owner, &dto.StockMutationRequest{BloodGroup: "AB-", Quantity: intPtr(6)})
	require.NoError(t, err)

	report, filename, err := f.stock.ExportStock(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "blood-stock-city-bank.xlsx", filename)

	book, err := excelize.OpenReader(bytes.NewReader(report))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Blood Stock")
	require.NoError(t, err)
	found := false
	for _, r := range rows {
		if len(r) >= 2 && r[0] == "AB-" {
			assert.Equal(t, "6", r[1])
			found = true
		}
	}
	assert.True(t, found)
}
