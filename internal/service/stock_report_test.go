package service_test

import (
	"bytes"
	"testing"
	"time"

	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildStockReport_ListsEveryGroup(t *testing.T) {
	bank := &entity.BloodBank{ID: uuid.New(), Name: "City Blood Bank", City: "Metro"}
	stock := []entity.BloodStock{
		{BloodBankID: bank.ID, BloodGroup: entity.BloodGroupONeg, Quantity: 4, LastUpdated: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}

	report, err := service.BuildStockReport(bank, stock)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(report))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Blood Stock", "A1")
	require.NoError(t, err)
	assert.Equal(t, "City Blood Bank (Metro)", title)

	rows, err := f.GetRows("Blood Stock")
	require.NoError(t, err)
	require.Len(t, rows, 2+len(entity.BloodGroups))
	assert.Equal(t, []string{"Blood Group", "Quantity (units)", "Last Updated"}, rows[1])

	for i, group := range entity.BloodGroups {
		row := rows[i+2]
		assert.Equal(t, string(group), row[0])
		if group == entity.BloodGroupONeg {
			assert.Equal(t, []string{"O-", "4", "2024-05-01T10:00:00Z"}, row)
		} else {
			assert.Len(t, row, 1, "no entry for %s", group)
		}
	}
}
