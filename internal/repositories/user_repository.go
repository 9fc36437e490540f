package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"influhub/internal/models/db_models"
)

type ReferralRow struct {
	ID        uuid.UUID `gorm:"column:id"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	CreatedAt int64     `gorm:"column:created_at"`
	HasPaid   bool      `gorm:"column:has_paid"`
}

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	Update(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByProviderCustomerID(ctx context.Context, customerID string) (*db_models.User, error)

	UpdateSubscriptionState(ctx context.Context, userID uuid.UUID, providerSubID string, status db_models.SubscriptionStatus, periodEnd *int64, cancelScheduled bool) error
	UpdatePeriodEnd(ctx context.Context, userID uuid.UUID, periodEnd *int64) error
	CancelByProviderSubID(ctx context.Context, providerSubID string) (int64, error)
	ConsumeCourseDiscount(ctx context.Context, userID uuid.UUID) (bool, error)

	CountReferrals(ctx context.Context, affiliateID uuid.UUID) (int64, error)
	ListReferrals(ctx context.Context, affiliateID uuid.UUID) ([]ReferralRow, error)
	CountAll(ctx context.Context) (int64, error)

	HasActiveMembership(ctx context.Context, userID string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByProviderCustomerID(ctx context.Context, customerID string) (*db_models.User, error) {
	if customerID == "" {
		return nil, nil
	}
	return r.findOne(ctx, "provider_customer_id = ?", customerID)
}

func (r *userRepository) findOne(ctx context.Context, query string, args ...interface{}) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, append([]interface{}{query}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateSubscriptionState(ctx context.Context, userID uuid.UUID, providerSubID string, status db_models.SubscriptionStatus, periodEnd *int64, cancelScheduled bool) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"provider_sub_id":      providerSubID,
			"subscription_status":  status,
			"current_period_end":   periodEnd,
			"cancel_at_period_end": cancelScheduled,
		}).Error
}

func (r *userRepository) UpdatePeriodEnd(ctx context.Context, userID uuid.UUID, periodEnd *int64) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Update("current_period_end", periodEnd).Error
}

func (r *userRepository) CancelByProviderSubID(ctx context.Context, providerSubID string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("provider_sub_id = ?", providerSubID).
		Updates(map[string]interface{}{
			"subscription_status":  db_models.SubStatusCanceled,
			"current_period_end":   nil,
			"cancel_at_period_end": false,
		})
	return tx.RowsAffected, tx.Error
}

// ConsumeCourseDiscount decrements the discount counter only while it is
// positive; returns whether a discount was actually consumed.
func (r *userRepository) ConsumeCourseDiscount(ctx context.Context, userID uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ? AND available_course_discounts > 0", userID).
		UpdateColumn("available_course_discounts", gorm.Expr("available_course_discounts - 1"))
	return tx.RowsAffected > 0, tx.Error
}

func (r *userRepository) CountReferrals(ctx context.Context, affiliateID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("referred_by_id = ?", affiliateID).
		Count(&n).Error
	return n, err
}

func (r *userRepository) ListReferrals(ctx context.Context, affiliateID uuid.UUID) ([]ReferralRow, error) {
	var rows []ReferralRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.id, users.first_name, users.last_name, users.created_at,
			EXISTS (
				SELECT 1 FROM transactions t
				WHERE t.user_id = users.id AND t.status = ? AND t.deleted_at IS NULL
			) AS has_paid`, db_models.TxnStatusSucceeded).
		Where("users.referred_by_id = ? AND users.deleted_at IS NULL", affiliateID).
		Order("users.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *userRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.User{}).Count(&n).Error
	return n, err
}

func (r *userRepository) HasActiveMembership(ctx context.Context, userID string) (bool, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return false, nil
	}
	var n int64
	err = r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ? AND subscription_status IN ?", id,
			[]db_models.SubscriptionStatus{db_models.SubStatusActive, db_models.SubStatusTrialing}).
		Count(&n).Error
	return n > 0, err
}
