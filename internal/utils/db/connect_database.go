// internal/utils/db/connect_database.go
package db

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres database configured via the environment.
// Error translation is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey.
func Connect(ctx context.Context) (*gorm.DB, error) {
	dsn, err := BuildDSN(ctx)
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
}
