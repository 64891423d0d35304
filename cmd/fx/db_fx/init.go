package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"jobboard/internal/config"
	"jobboard/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg.Database, cfg.Debug)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.CloseDatabase(db)
			return nil
		},
	})
	return db, nil
}
