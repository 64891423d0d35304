package controllers_fx

import (
	"go.uber.org/fx"

	"jobboard/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewJobController),
	fx.Provide(controllers.NewPostController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewPagesController))
