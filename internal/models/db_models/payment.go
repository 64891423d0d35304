package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment is one provider-verified notification. Rows are append-only and
// correlate to a user by username only.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt int64     `gorm:"autoCreateTime" json:"created_at"`

	PayerEmail  string `gorm:"size:120" json:"payer_email"`
	PaymentDate string `gorm:"size:64" json:"payment_date"`
	Username    string `gorm:"size:20;index" json:"username"`
	LastName    string `gorm:"size:64" json:"last_name"`
	GrossMinor  int64  `json:"gross_minor"` // 999 = 9.99
	FeeMinor    int64  `json:"fee_minor"`
	NetMinor    int64  `json:"net_minor"`
	Currency    string `gorm:"size:3" json:"currency"`
	Status      string `gorm:"size:32" json:"status"`

	// provider retries carry the same id
	ProviderTxnID string `gorm:"size:64;uniqueIndex" json:"provider_txn_id"`

	// verified form payload as received
	Receipt datatypes.JSON `json:"receipt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().Unix()
	}
	return nil
}
