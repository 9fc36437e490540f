package db_models

import (
	"github.com/google/uuid"
)

type Commission struct {
	BaseModel
	AffiliateID uuid.UUID `gorm:"type:uuid;index"`
	Amount      float64
	Currency    string `gorm:"size:3"`

	// A transaction generates at most one commission.
	SourceTransactionID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	// Nil means unpaid/unclaimed; stamped when a payout request claims it.
	PayoutRequestID *uuid.UUID `gorm:"type:uuid;index"`

	Affiliate         User           `gorm:"foreignKey:AffiliateID"`
	SourceTransaction Transaction    `gorm:"foreignKey:SourceTransactionID"`
	PayoutRequest     *PayoutRequest `gorm:"foreignKey:PayoutRequestID"`
}
