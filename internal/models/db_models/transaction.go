package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending        TransactionStatus = "pending"
	TxnStatusCreated        TransactionStatus = "created"
	TxnStatusProcessing     TransactionStatus = "processing"
	TxnStatusRequiresAction TransactionStatus = "requires_action"
	TxnStatusSucceeded      TransactionStatus = "succeeded"
	TxnStatusCanceled       TransactionStatus = "canceled"
	TxnStatusFailed         TransactionStatus = "failed"
)

type Transaction struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;index"`
	Amount   float64   // major units, already divided by 100 on ingress
	Currency string    `gorm:"size:3"`
	Status   TransactionStatus `gorm:"type:varchar(20);index"`

	// Processor-side invoice or payment-intent id; the idempotency key
	// that collapses duplicate webhook deliveries.
	ProviderRef string `gorm:"uniqueIndex"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	User User `gorm:"foreignKey:UserID"`
}
