package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"influhub/internal/models/db_models"
)

type LeaderboardRow struct {
	ID              uuid.UUID `gorm:"column:id"`
	FirstName       string    `gorm:"column:first_name"`
	LastName        string    `gorm:"column:last_name"`
	Email           string    `gorm:"column:email"`
	TotalCommission float64   `gorm:"column:total_commission"`
	Referrals       int64     `gorm:"column:referrals"`
}

type CommissionRepository interface {
	Insert(ctx context.Context, commission *db_models.Commission) error
	ExistsForTransaction(ctx context.Context, transactionID uuid.UUID) (bool, error)
	ListUnpaidByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]db_models.Commission, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Insert(ctx context.Context, commission *db_models.Commission) error {
	return r.db.WithContext(ctx).Create(commission).Error
}

func (r *commissionRepository) ExistsForTransaction(ctx context.Context, transactionID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Commission{}).
		Where("source_transaction_id = ?", transactionID).
		Count(&n).Error
	return n > 0, err
}

func (r *commissionRepository) ListUnpaidByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]db_models.Commission, error) {
	var commissions []db_models.Commission
	err := r.db.WithContext(ctx).
		Where("affiliate_id = ? AND payout_request_id IS NULL", affiliateID).
		Find(&commissions).Error
	return commissions, err
}

// Leaderboard ranks affiliates by total commission earned, ties broken
// by referral count.
func (r *commissionRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("commissions").
		Select(`users.id, users.first_name, users.last_name, users.email,
			SUM(commissions.amount) AS total_commission,
			(SELECT COUNT(*) FROM users r WHERE r.referred_by_id = users.id AND r.deleted_at IS NULL) AS referrals`).
		Joins("JOIN users ON users.id = commissions.affiliate_id").
		Where("commissions.deleted_at IS NULL").
		Group("users.id, users.first_name, users.last_name, users.email").
		Order("total_commission DESC, referrals DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
