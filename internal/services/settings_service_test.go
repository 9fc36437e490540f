package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influhub/internal/models/db_models"
)

func TestSettingsFloatFallbacks(t *testing.T) {
	repo := newFakeSettingRepo()
	service := NewSettingsService(repo)
	ctx := context.Background()

	assert.Equal(t, 20.0, service.Float(ctx, db_models.SettingCommissionRate, 20))

	repo.values[db_models.SettingCommissionRate] = "35.5"
	assert.Equal(t, 35.5, service.Float(ctx, db_models.SettingCommissionRate, 20))

	repo.values[db_models.SettingCommissionRate] = "lots"
	assert.Equal(t, 20.0, service.Float(ctx, db_models.SettingCommissionRate, 20))
}

func TestSettingsUpdateAndAll(t *testing.T) {
	repo := newFakeSettingRepo()
	service := NewSettingsService(repo)
	ctx := context.Background()

	require.NoError(t, service.Update(ctx, map[string]string{
		db_models.SettingMinimumPayout: "250",
	}))

	all, err := service.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "250", all[db_models.SettingMinimumPayout])
	assert.Equal(t, 250.0, service.Float(ctx, db_models.SettingMinimumPayout, 100))
}
