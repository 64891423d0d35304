package job_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"jobboard/internal/repositories"
	"jobboard/internal/services"
)

var Module = fx.Provide(
	provideJobRepo, provideFavoriteRepo, services.NewJobService,
)

func provideJobRepo(db *gorm.DB) repositories.JobRepository {
	return repositories.NewJobRepository(db)
}

func provideFavoriteRepo(db *gorm.DB) repositories.FavoriteRepository {
	return repositories.NewFavoriteRepository(db)
}
