package settings_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"influhub/internal/repositories"
	"influhub/internal/services"
)

var Module = fx.Provide(
	provideSettingRepo, provideSettingsService)

func provideSettingRepo(db *gorm.DB) repositories.SettingRepository {
	return repositories.NewSettingRepository(db)
}

func provideSettingsService(settingRepo repositories.SettingRepository) services.SettingsServiceInterface {
	return services.NewSettingsService(settingRepo)
}
