package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"influhub/internal/models/db_models"
	"influhub/pkg/utils"
)

type PayoutRepository interface {
	HasPending(ctx context.Context, affiliateID uuid.UUID) (bool, error)
	// CreateWithClaim creates the payout request and stamps every listed
	// commission with its id, atomically. The pending-request check is
	// re-verified inside the transaction so two concurrent requests from
	// the same affiliate serialize instead of both proceeding.
	CreateWithClaim(ctx context.Context, payout *db_models.PayoutRequest, commissionIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.PayoutRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.PayoutStatus, processedAt int64) (*db_models.PayoutRequest, error)
	ListByStatus(ctx context.Context, status db_models.PayoutStatus) ([]db_models.PayoutRequest, error)
	ListByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]db_models.PayoutRequest, error)
}

type payoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{db: db}
}

func (r *payoutRepository) HasPending(ctx context.Context, affiliateID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.PayoutRequest{}).
		Where("affiliate_id = ? AND status = ?", affiliateID, db_models.PayoutStatusPending).
		Count(&n).Error
	return n > 0, err
}

func (r *payoutRepository) CreateWithClaim(ctx context.Context, payout *db_models.PayoutRequest, commissionIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending []db_models.PayoutRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("affiliate_id = ? AND status = ?", payout.AffiliateID, db_models.PayoutStatusPending).
			Find(&pending).Error; err != nil {
			return err
		}
		if len(pending) > 0 {
			return utils.ErrPendingPayoutExists
		}

		if err := tx.Create(payout).Error; err != nil {
			return err
		}

		claim := tx.Model(&db_models.Commission{}).
			Where("id IN ? AND payout_request_id IS NULL", commissionIDs).
			Update("payout_request_id", payout.ID)
		if claim.Error != nil {
			return claim.Error
		}
		// A commission claimed by a concurrent request in between would
		// make the payout amount wrong; roll everything back.
		if claim.RowsAffected != int64(len(commissionIDs)) {
			return utils.ErrNoUnpaidCommissions
		}
		return nil
	})
}

func (r *payoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.PayoutRequest, error) {
	var payout db_models.PayoutRequest
	err := r.db.WithContext(ctx).First(&payout, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payout, nil
}

func (r *payoutRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.PayoutStatus, processedAt int64) (*db_models.PayoutRequest, error) {
	var payout db_models.PayoutRequest
	err := r.db.WithContext(ctx).First(&payout, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	payout.Status = status
	payout.ProcessedAt = &processedAt
	if err := r.db.WithContext(ctx).Save(&payout).Error; err != nil {
		return nil, err
	}
	return &payout, nil
}

func (r *payoutRepository) ListByStatus(ctx context.Context, status db_models.PayoutStatus) ([]db_models.PayoutRequest, error) {
	var payouts []db_models.PayoutRequest
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Where("status = ?", status).
		Order("requested_at ASC").
		Find(&payouts).Error
	return payouts, err
}

func (r *payoutRepository) ListByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]db_models.PayoutRequest, error) {
	var payouts []db_models.PayoutRequest
	err := r.db.WithContext(ctx).
		Where("affiliate_id = ?", affiliateID).
		Order("requested_at DESC").
		Find(&payouts).Error
	return payouts, err
}
