package ingestion_fx

import (
	"net/http"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"jobboard/internal/config"
	"jobboard/internal/repositories"
	"jobboard/internal/services"
	"jobboard/internal/sources"
)

var Module = fx.Provide(
	provideRegistry, provideFilter, provideSavedSearchRepo, services.NewIngestionService,
)

func provideRegistry(cfg config.IngestionConfig) *sources.Registry {
	client := &http.Client{Timeout: cfg.Timeout}
	return sources.NewRegistry(
		sources.NewGitHubAdapter(cfg.GitHubEndpoint, client),
		sources.NewMuseAdapter(cfg.MuseEndpoint, client),
	)
}

func provideFilter(cfg config.IngestionConfig) *sources.Filter {
	return sources.NewFilter(cfg.TargetYear, cfg.RedFlags)
}

func provideSavedSearchRepo(db *gorm.DB) repositories.SavedSearchRepository {
	return repositories.NewSavedSearchRepository(db)
}
