package analysis_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"jobboard/internal/repositories"
	"jobboard/internal/services"
)

var Module = fx.Provide(
	provideAnalysisRepo, provideAnalysisService,
)

func provideAnalysisRepo(db *gorm.DB) repositories.AnalysisRepository {
	return repositories.NewAnalysisRepository(db)
}

func provideAnalysisService(analysisRepo repositories.AnalysisRepository) services.AnalysisService {
	return services.NewAnalysisService(analysisRepo)
}
