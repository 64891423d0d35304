package payment_service_fx

import (
	"context"
	"net/http"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"jobboard/internal/api/controllers"
	"jobboard/internal/config"
	"jobboard/internal/repositories"
	"jobboard/internal/services"
	"jobboard/pkg/logger"
	"jobboard/pkg/utils"
)

var Module = fx.Provide(
	providePaymentService, providePaymentController,
)

func providePaymentService(
	lc fx.Lifecycle,
	db *gorm.DB,
	users repositories.UserRepository,
	tokens *utils.TokenManager,
	cfg config.PaymentConfig,
	server config.ServerConfig,
) (services.PaymentService, error) {
	audit, file, err := logger.NewFileLogger(cfg.AuditLog)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return file.Close()
		},
	})

	verifier := services.NewIPNVerifier(cfg.VerifyURL, &http.Client{Timeout: cfg.Timeout})
	return services.NewPaymentService(
		verifier,
		repositories.NewPaymentRepository(db),
		users,
		tokens,
		cfg,
		server.BaseURL,
		audit,
	), nil
}

func providePaymentController(paymentService services.PaymentService) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}
