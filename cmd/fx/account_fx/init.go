package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"jobboard/internal/config"
	"jobboard/internal/repositories"
	"jobboard/internal/services"
	mem "jobboard/pkg/memcache"
	"jobboard/pkg/middleware"
	"jobboard/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideUserRepo, provideTokenManager, provideAuthenticator)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideTokenManager(cfg config.AuthConfig) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL, cfg.ResetTTL, cfg.RegistrationTTL)
}

func provideAuthenticator(tokens *utils.TokenManager, sessions mem.SessionStore, cfg config.AuthConfig) *middleware.Authenticator {
	return middleware.NewAuthenticator(tokens, sessions, cfg.CookieName)
}

func provideAccountService(
	users repositories.UserRepository,
	tokens *utils.TokenManager,
	sessions mem.SessionStore,
	mailService services.IMailService,
	server config.ServerConfig,
) services.AccountServiceInterface {
	return services.NewAccountService(users, tokens, sessions, mailService, server.BaseURL, server.UploadDir)
}
