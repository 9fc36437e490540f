package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"influhub/internal/models/db_models"
	"influhub/pkg/logging"
)

func InitPostgresql(cfg Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		logging.L().Fatal("error connecting to database", logging.Err(err))
	}

	if err := db.AutoMigrate(
		&db_models.User{},
		&db_models.Transaction{},
		&db_models.Commission{},
		&db_models.PayoutRequest{},
		&db_models.Setting{},
		&db_models.VideoCourse{},
		&db_models.Section{},
		&db_models.Video{},
		&db_models.VideoProgress{},
		&db_models.CoursePurchase{},
		&db_models.WinningProduct{},
	); err != nil {
		logging.L().Fatal("error migrating schema", logging.Err(err))
	}

	return db
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logging.L().Error("error getting database instance", logging.Err(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logging.L().Error("error closing database connection", logging.Err(err))
	}
}
