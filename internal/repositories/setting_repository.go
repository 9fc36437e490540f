package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"influhub/internal/models/db_models"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*db_models.Setting, error)
	List(ctx context.Context) ([]db_models.Setting, error)
	UpsertMany(ctx context.Context, values map[string]string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*db_models.Setting, error) {
	var setting db_models.Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) List(ctx context.Context) ([]db_models.Setting, error) {
	var settings []db_models.Setting
	err := r.db.WithContext(ctx).Find(&settings).Error
	return settings, err
}

func (r *settingRepository) UpsertMany(ctx context.Context, values map[string]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			setting := db_models.Setting{Key: key, Value: value}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"value": value}),
			}).Create(&setting).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
