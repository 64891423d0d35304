package config_fx

import (
	"go.uber.org/fx"

	"jobboard/internal/config"
)

var Module = fx.Provide(
	config.Load,
	func(cfg *config.Config) config.ServerConfig { return cfg.Server },
	func(cfg *config.Config) config.DatabaseConfig { return cfg.Database },
	func(cfg *config.Config) config.RedisConfig { return cfg.Redis },
	func(cfg *config.Config) config.AuthConfig { return cfg.Auth },
	func(cfg *config.Config) config.IngestionConfig { return cfg.Ingestion },
	func(cfg *config.Config) config.PaymentConfig { return cfg.Payment },
	func(cfg *config.Config) config.SMTPConfig { return cfg.SMTP },
	func(cfg *config.Config) config.RateLimitConfig { return cfg.RateLimit },
)
