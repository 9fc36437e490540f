package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"influhub/internal/infra"
)

var Module = fx.Options(
	fx.Provide(infra.LoadConfig, infra.InitPostgresql),
	fx.Invoke(registerClose),
)

func registerClose(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
}
