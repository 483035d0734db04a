// internal/transaction/recurring.go
package transaction

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RollRecurring materializes every due recurring transaction: a new row is
// appended with the due date as its payment date, and the template's
// NextPaymentDate advances one calendar month. Runs idempotently: a
// template is due at most once per call per month.
func RollRecurring(db *gorm.DB, now time.Time) (int, error) {
	repo := NewRepository(db)
	due, err := repo.ListDueRecurring(now)
	if err != nil {
		return 0, err
	}

	rolled := 0
	for i := range due {
		tpl := &due[i]
		next := tpl.NextPaymentDate.AddDate(0, 1, 0)

		err := db.Transaction(func(tx *gorm.DB) error {
			occurrence := Transaction{
				UserID:      tpl.UserID,
				Type:        tpl.Type,
				Amount:      tpl.Amount,
				PaymentDate: *tpl.NextPaymentDate,
				Description: tpl.Description,
			}
			if err := tx.Create(&occurrence).Error; err != nil {
				return err
			}
			return tx.Model(&Transaction{}).
				Where("id = ?", tpl.ID).
				Update("next_payment_date", next).Error
		})
		if err != nil {
			logrus.WithError(err).WithField("transactionId", tpl.ID).
				Warn("skipping recurring transaction")
			continue
		}
		rolled++
	}
	return rolled, nil
}
