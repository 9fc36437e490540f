package affiliate_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"influhub/internal/infra"
	"influhub/internal/repositories"
	"influhub/internal/services"
)

var Module = fx.Provide(
	provideCommissionRepo, providePayoutRepo, provideAffiliateService)

func provideCommissionRepo(db *gorm.DB) repositories.CommissionRepository {
	return repositories.NewCommissionRepository(db)
}

func providePayoutRepo(db *gorm.DB) repositories.PayoutRepository {
	return repositories.NewPayoutRepository(db)
}

func provideAffiliateService(
	userRepo repositories.UserRepository,
	txnRepo repositories.TransactionRepository,
	commissionRepo repositories.CommissionRepository,
	payoutRepo repositories.PayoutRepository,
	settings services.SettingsServiceInterface,
	cfg infra.Config,
) services.AffiliateServiceInterface {
	return services.NewAffiliateService(userRepo, txnRepo, commissionRepo, payoutRepo, settings, cfg.AppBaseURL)
}
