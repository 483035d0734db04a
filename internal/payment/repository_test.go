package payment

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

func TestSumInPeriod(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewRepository(gdb)

	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments"`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("4500"))

	total, err := repo.SumInPeriod(from, to)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(4500)), "got %s", total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumInPeriodEmpty(t *testing.T) {
	gdb, mock := mockDB(t)
	repo := NewRepository(gdb)

	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments"`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

	total, err := repo.SumInPeriod(from, to)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
