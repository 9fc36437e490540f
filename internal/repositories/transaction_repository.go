package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"influhub/internal/models/db_models"
)

type RevenueBucket struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    float64   `gorm:"column:sum"`
}

type TransactionRepository interface {
	Insert(ctx context.Context, txn *db_models.Transaction) error
	FindByProviderRef(ctx context.Context, ref string) (*db_models.Transaction, error)
	// UpdateStatusByProviderRef updates in place and reports rows
	// affected; zero rows is the caller's idempotent no-op signal.
	UpdateStatusByProviderRef(ctx context.Context, ref string, status db_models.TransactionStatus) (int64, error)

	CountSucceededByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountSucceeded(ctx context.Context) (int64, error)
	SumSucceeded(ctx context.Context) (float64, error)
	MonthlyRevenue(ctx context.Context, since time.Time) ([]RevenueBucket, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Insert(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindByProviderRef(ctx context.Context, ref string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := r.db.WithContext(ctx).First(&txn, "provider_ref = ?", ref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) UpdateStatusByProviderRef(ctx context.Context, ref string, status db_models.TransactionStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("provider_ref = ?", ref).
		Update("status", status)
	return tx.RowsAffected, tx.Error
}

func (r *transactionRepository) CountSucceededByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("user_id = ? AND status = ?", userID, db_models.TxnStatusSucceeded).
		Count(&n).Error
	return n, err
}

func (r *transactionRepository) CountSucceeded(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("status = ?", db_models.TxnStatusSucceeded).
		Count(&n).Error
	return n, err
}

func (r *transactionRepository) SumSucceeded(ctx context.Context) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).
		Model(&db_models.Transaction{}).
		Where("status = ?", db_models.TxnStatusSucceeded).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

func (r *transactionRepository) MonthlyRevenue(ctx context.Context, since time.Time) ([]RevenueBucket, error) {
	var rows []RevenueBucket
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("date_trunc('month', to_timestamp(created_at)) AS bucket, SUM(amount) AS sum").
		Where("status = ? AND created_at >= ? AND deleted_at IS NULL", db_models.TxnStatusSucceeded, since.Unix()).
		Group("bucket").
		Order("bucket ASC").
		Find(&rows).Error
	return rows, err
}
