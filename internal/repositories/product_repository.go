package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"influhub/internal/models/db_models"
)

type ProductRepository interface {
	List(ctx context.Context, category string, limit, offset int) ([]db_models.WinningProduct, error)
	Count(ctx context.Context, category string) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.WinningProduct, error)
	Insert(ctx context.Context, product *db_models.WinningProduct) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	ListUnenriched(ctx context.Context, limit int) ([]db_models.WinningProduct, error)
	SetSummary(ctx context.Context, id uuid.UUID, summary string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context, category string, limit, offset int) ([]db_models.WinningProduct, error) {
	var products []db_models.WinningProduct
	q := r.db.WithContext(ctx).Order("trend_score DESC").Limit(limit).Offset(offset)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepository) Count(ctx context.Context, category string) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&db_models.WinningProduct{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.WinningProduct, error) {
	var product db_models.WinningProduct
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Insert(ctx context.Context, product *db_models.WinningProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&db_models.WinningProduct{}, "id = ?", id)
	return tx.RowsAffected, tx.Error
}

func (r *productRepository) ListUnenriched(ctx context.Context, limit int) ([]db_models.WinningProduct, error) {
	var products []db_models.WinningProduct
	err := r.db.WithContext(ctx).
		Where("ai_summary IS NULL").
		Order("trend_score DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepository) SetSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.WinningProduct{}).
		Where("id = ?", id).
		Update("ai_summary", summary).Error
}
