package transaction

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestLastPaymentDate(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewRepository(gdb)

	want := time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT MAX\(payment_date\) FROM "transactions"`).
		WithArgs(uint(7), TypeSalary, TypeWallet).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(want))

	got, err := repo.LastPaymentDate(7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(want))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastPaymentDateNeverPaid(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewRepository(gdb)

	mock.ExpectQuery(`SELECT MAX\(payment_date\) FROM "transactions"`).
		WithArgs(uint(7), TypeSalary, TypeWallet).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	got, err := repo.LastPaymentDate(7)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
