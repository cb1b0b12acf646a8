package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestDonorProfileRepository_FindByUserIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDonorProfileRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "donor_profiles" WHERE user_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	profile, err := repo.FindByUserID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonorProfileRepository_SearchFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDonorProfileRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "donor_profiles" WHERE blood_group = $1 AND location ILIKE $2 AND availability = $3 ORDER BY created_at ASC`,
	)).
		WithArgs("O-", "%new%", "Available").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "blood_group", "location", "availability"}).
			AddRow(id.String(), "Alice", "O-", "New York", "Available"))

	profiles, err := repo.Search(context.Background(), &entity.DonorFilter{
		BloodGroup:    entity.BloodGroupONeg,
		Location:      "new",
		AvailableOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Alice", profiles[0].FullName)
	assert.Equal(t, entity.BloodGroupONeg, profiles[0].BloodGroup)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloodBankRepository_SearchByGroup(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBloodBankRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "blood_banks" WHERE $1 = ANY(string_to_array(available_blood_groups, ',')) AND city ILIKE $2 ORDER BY created_at ASC`,
	)).
		WithArgs("A+", "%metro%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "available_blood_groups"}).
			AddRow(uuid.NewString(), "City Blood Bank", "Metro", "A+,O-"))

	banks, err := repo.Search(context.Background(), &entity.BloodBankFilter{BloodGroup: entity.BloodGroupAPos, City: "metro"})
	require.NoError(t, err)
	require.Len(t, banks, 1)
	assert.True(t, banks[0].AvailableBloodGroups.Contains(entity.BloodGroupONeg))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloodStockRepository_DeleteByBankID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBloodStockRepository(db)
	bankID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "blood_stocks" WHERE blood_bank_id = $1`)).
		WithArgs(bankID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	removed, err := repo.DeleteByBankID(context.Background(), bankID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_CommitsAndRollsBack(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		tx := NewTransactor(db)
		repo := NewBloodStockRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "blood_stocks" SET "quantity"=$1`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			return repo.UpdateQuantity(ctx, 1, 7)
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		db, mock := newMockDB(t)
		tx := NewTransactor(db)
		repo := NewBloodStockRepository(db)
		failure := errors.New("audit write failed")

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "blood_stocks" WHERE blood_bank_id = $1`)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectRollback()

		err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
			if _, err := repo.DeleteByBankID(ctx, uuid.New()); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"metro", "%metro%"},
		{"100%", `%100\%%`},
		{"new_york", `%new\_york%`},
		{`a\b`, `%a\\b%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsPattern(tt.in), tt.in)
	}
}

func TestBloodRequestRepository_CityWildcardsAreLiteral(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBloodRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`city ILIKE $1`)).
		WithArgs(`%\%\_%`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	requests, err := repo.FindAll(context.Background(), &entity.RequestFilter{City: "%_"})
	require.NoError(t, err)
	assert.Empty(t, requests)
	assert.NoError(t, mock.ExpectationsWereMet())
}
