package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"influhub/internal/repositories"
	"influhub/internal/services"
)

var Module = fx.Provide(
	provideUserRepo, provideAccountService)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAccountService(
	userRepo repositories.UserRepository,
	txnRepo repositories.TransactionRepository,
	courseRepo repositories.CourseRepository,
	productRepo repositories.ProductRepository,
) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, txnRepo, courseRepo, productRepo)
}
