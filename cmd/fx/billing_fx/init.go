package billing_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"influhub/internal/infra"
	"influhub/internal/payments"
	"influhub/internal/repositories"
	"influhub/internal/services"
)

var Module = fx.Provide(
	provideTransactionRepo, providePaymentsClient, provideBillingService)

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func providePaymentsClient(cfg infra.Config) *payments.Client {
	return payments.NewClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey)
}

func provideBillingService(
	client *payments.Client,
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	txnRepo repositories.TransactionRepository,
	settings services.SettingsServiceInterface,
) services.BillingServiceInterface {
	return services.NewBillingService(client, userRepo, courseRepo, txnRepo, settings)
}
