package webhook_fx

import (
	"go.uber.org/fx"

	"influhub/internal/repositories"
	"influhub/internal/services"
)

var Module = fx.Provide(provideWebhookService)

func provideWebhookService(
	userRepo repositories.UserRepository,
	txnRepo repositories.TransactionRepository,
	commissionRepo repositories.CommissionRepository,
	courseRepo repositories.CourseRepository,
	settings services.SettingsServiceInterface,
) services.WebhookServiceInterface {
	return services.NewWebhookService(userRepo, txnRepo, commissionRepo, courseRepo, settings)
}
