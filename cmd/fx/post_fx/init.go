package post_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"jobboard/internal/repositories"
	"jobboard/internal/services"
)

var Module = fx.Provide(
	providePostRepo, services.NewPostService,
)

func providePostRepo(db *gorm.DB) repositories.PostRepository {
	return repositories.NewPostRepository(db)
}
