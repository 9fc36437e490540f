package db_models

import (
	"github.com/google/uuid"
)

type AccountType string

const (
	AccountTypeUser  AccountType = "USER"
	AccountTypeAdmin AccountType = "ADMIN"
)

type SubscriptionStatus string

const (
	SubStatusInactive   SubscriptionStatus = "INACTIVE"
	SubStatusTrialing   SubscriptionStatus = "TRIALING"
	SubStatusActive     SubscriptionStatus = "ACTIVE"
	SubStatusPastDue    SubscriptionStatus = "PAST_DUE"
	SubStatusCanceled   SubscriptionStatus = "CANCELED"
	SubStatusIncomplete SubscriptionStatus = "INCOMPLETE"
)

type User struct {
	BaseModel
	FirstName    string
	LastName     string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	AccountType  AccountType `gorm:"type:varchar(16);default:'USER'"`

	SubscriptionStatus SubscriptionStatus `gorm:"type:varchar(16);default:'INACTIVE';index"`
	// Unix seconds; nil while no subscription period is known.
	CurrentPeriodEnd  *int64
	CancelAtPeriodEnd bool `gorm:"default:false"`

	// Payment-processor linkage.
	ProviderCustomerID string `gorm:"index"`
	ProviderSubID      string `gorm:"index"`

	// Set once at signup, never repointed. Nil for organic signups.
	ReferredByID *uuid.UUID `gorm:"type:uuid;index"`
	ReferredBy   *User      `gorm:"foreignKey:ReferredByID"`
	Referrals    []User     `gorm:"foreignKey:ReferredByID"`

	AvailableCourseDiscounts int `gorm:"default:0"`

	Transactions      []Transaction    `gorm:"foreignKey:UserID"`
	CommissionsEarned []Commission     `gorm:"foreignKey:AffiliateID"`
	CoursePurchases   []CoursePurchase `gorm:"foreignKey:UserID"`
}
