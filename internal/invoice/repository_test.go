package invoice

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
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

// RegisterPayment must lock the invoice row and compute the new counters
// from what it reads under the lock. Here the caller holds a stale invoice
// with amountPaid=0, but another event already committed 100; recording 150
// has to land on 250, not 150.
func TestRegisterPaymentComputesFromLockedRow(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewRepository(gdb)

	paidAt := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE .+ FOR UPDATE`).
		WithArgs(uint(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_amount", "amount_paid", "rest"}).
			AddRow(7, "500", "100", "400"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invoices" SET`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stale := &Invoice{
		ID:          7,
		TotalAmount: decimal.NewFromInt(500),
		AmountPaid:  decimal.Zero,
		Rest:        decimal.NewFromInt(500),
	}
	require.NoError(t, repo.RegisterPayment(nil, stale, decimal.NewFromInt(150), paidAt))

	assert.True(t, stale.AmountPaid.Equal(decimal.NewFromInt(250)), "got %s", stale.AmountPaid)
	assert.True(t, stale.Rest.Equal(decimal.NewFromInt(250)), "got %s", stale.Rest)
	require.NotNil(t, stale.LastPaymentDate)
	assert.Equal(t, paidAt, *stale.LastPaymentDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
