package db_models

import (
	"github.com/google/uuid"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "PENDING"
	PayoutStatusApproved PayoutStatus = "APPROVED"
	PayoutStatusRejected PayoutStatus = "REJECTED"
	PayoutStatusPaid     PayoutStatus = "PAID"
)

func ValidPayoutStatus(s string) bool {
	switch PayoutStatus(s) {
	case PayoutStatusPending, PayoutStatusApproved, PayoutStatusRejected, PayoutStatusPaid:
		return true
	}
	return false
}

type PayoutRequest struct {
	BaseModel
	AffiliateID uuid.UUID `gorm:"type:uuid;index"`
	Amount      float64   // sum of claimed commissions at creation time
	Currency    string    `gorm:"size:3"`
	Status      PayoutStatus `gorm:"type:varchar(16);index;default:'PENDING'"`

	RequestedAt int64 `gorm:"not null"`
	ProcessedAt *int64

	Affiliate   User         `gorm:"foreignKey:AffiliateID"`
	Commissions []Commission `gorm:"foreignKey:PayoutRequestID"`
}
