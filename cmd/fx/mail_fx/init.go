package mail_fx

import (
	"go.uber.org/fx"

	"jobboard/internal/services"
)

var Module = fx.Provide(services.NewMailService)
