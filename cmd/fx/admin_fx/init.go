package admin_fx

import (
	"go.uber.org/fx"

	"influhub/internal/payments"
	"influhub/internal/repositories"
	"influhub/internal/services"
)

var Module = fx.Provide(provideAdminService)

func provideAdminService(
	userRepo repositories.UserRepository,
	txnRepo repositories.TransactionRepository,
	commissionRepo repositories.CommissionRepository,
	payoutRepo repositories.PayoutRepository,
	courseRepo repositories.CourseRepository,
	productRepo repositories.ProductRepository,
	settings services.SettingsServiceInterface,
	client *payments.Client,
) services.AdminServiceInterface {
	return services.NewAdminService(userRepo, txnRepo, commissionRepo, payoutRepo, courseRepo, productRepo, settings, client)
}
