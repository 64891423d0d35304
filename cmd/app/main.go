package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"jobboard/cmd/fx/account_fx"
	"jobboard/cmd/fx/analysis_fx"
	"jobboard/cmd/fx/config_fx"
	"jobboard/cmd/fx/controllers_fx"
	"jobboard/cmd/fx/db_fx"
	"jobboard/cmd/fx/ingestion_fx"
	"jobboard/cmd/fx/job_fx"
	"jobboard/cmd/fx/mail_fx"
	"jobboard/cmd/fx/memcache_fx"
	"jobboard/cmd/fx/payment_service_fx"
	"jobboard/cmd/fx/post_fx"
	"jobboard/cmd/fx/scheduler_fx"
	"jobboard/internal/api"
	"jobboard/internal/api/controllers"
	"jobboard/internal/config"
	"jobboard/internal/services"
	"jobboard/pkg/logger"
	"jobboard/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.Invoke(initLogger),

		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		job_fx.Module,
		post_fx.Module,
		analysis_fx.Module,
		ingestion_fx.Module,
		payment_service_fx.Module,
		controllers_fx.Module,
		scheduler_fx.Module,

		fx.Invoke(controllers.SetupValidation),
		fx.Invoke(seedAdmin),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func initLogger(cfg *config.Config) {
	logger.Init("jobboard", cfg.Debug)
}

func seedAdmin(accounts services.AccountServiceInterface, cfg config.AuthConfig) error {
	if cfg.AdminUsername == "" || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return accounts.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.ServerConfig) {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info().Int("port", cfg.Port).Msg("Starting HTTP server")
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("HTTP server stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

type routerParams struct {
	fx.In

	Config   *config.Config
	Auth     *middleware.Authenticator
	Redis    *redis.Client
	Account  *controllers.AccountController
	Jobs     *controllers.JobController
	Posts    *controllers.PostController
	Payments *controllers.PaymentController
	Admin    *controllers.AdminController
	Pages    *controllers.PagesController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if !p.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = p.Config.Server.Origins
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", middleware.TraceHeader}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(p.Auth.LoadSession())
	r.Static("/static/profile_pics", p.Config.Server.UploadDir)

	limit := middleware.RateLimit(p.Redis, p.Config.RateLimit.Requests, p.Config.RateLimit.Window)
	api.RegisterRoutes(r, api.Handlers{
		Account:  p.Account,
		Jobs:     p.Jobs,
		Posts:    p.Posts,
		Payments: p.Payments,
		Admin:    p.Admin,
		Pages:    p.Pages,
	}, limit)

	return r
}
