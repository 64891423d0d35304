package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobboard/internal/models/db_models"
)

// PaymentOutcome reports what RecordVerified changed.
type PaymentOutcome struct {
	Recorded  bool // false for a repeated provider txn id
	UserFound bool
}

type PaymentRepository interface {
	RecordVerified(ctx context.Context, payment *db_models.Payment) (PaymentOutcome, error)
	FindByTxnID(ctx context.Context, txnID string) (*db_models.Payment, error)
	Count(ctx context.Context) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// RecordVerified appends the payment and upgrades the paying user in one
// transaction.
func (r *paymentRepository) RecordVerified(ctx context.Context, payment *db_models.Payment) (PaymentOutcome, error) {
	var out PaymentOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seen int64
		if err := tx.Model(&db_models.Payment{}).
			Where("provider_txn_id = ?", payment.ProviderTxnID).
			Count(&seen).Error; err != nil {
			return err
		}
		if seen > 0 {
			return nil
		}

		if err := tx.Create(payment).Error; err != nil {
			return mapWriteError(err)
		}
		out.Recorded = true

		res := tx.Model(&db_models.User{}).
			Where("username = ?", payment.Username).
			Update("status", db_models.EntitlementExclusive)
		if res.Error != nil {
			return res.Error
		}
		out.UserFound = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return PaymentOutcome{}, err
	}
	return out, nil
}

func (r *paymentRepository) FindByTxnID(ctx context.Context, txnID string) (*db_models.Payment, error) {
	var payment db_models.Payment
	err := r.db.WithContext(ctx).First(&payment, "provider_txn_id = ?", txnID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Payment{}).Count(&n).Error
	return n, err
}
