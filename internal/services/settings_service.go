package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"influhub/internal/repositories"
	"influhub/pkg/logging"
	"influhub/pkg/utils"
)

type SettingsServiceInterface interface {
	// Float reads a numeric setting, falling back when the row is absent
	// or unparsable.
	Float(ctx context.Context, key string, fallback float64) float64
	All(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, values map[string]string) error
}

type SettingsService struct {
	settingRepo repositories.SettingRepository
}

func NewSettingsService(settingRepo repositories.SettingRepository) SettingsServiceInterface {
	return &SettingsService{
		settingRepo: settingRepo,
	}
}

func (s *SettingsService) Float(ctx context.Context, key string, fallback float64) float64 {
	setting, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		logging.L().Warn("settings lookup failed, using fallback",
			zap.String("key", key), logging.Err(err))
		return fallback
	}
	if setting == nil {
		return fallback
	}
	value, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		logging.L().Warn("setting is not numeric, using fallback",
			zap.String("key", key), zap.String("value", setting.Value))
		return fallback
	}
	return value
}

func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	settings, err := s.settingRepo.List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}
	return out, nil
}

func (s *SettingsService) Update(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	if err := s.settingRepo.UpsertMany(ctx, values); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
