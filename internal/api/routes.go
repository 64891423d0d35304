package api

import (
	"github.com/gin-gonic/gin"

	"jobboard/internal/api/controllers"
	"jobboard/internal/models/db_models"
	"jobboard/pkg/middleware"
)

type Handlers struct {
	Account  *controllers.AccountController
	Jobs     *controllers.JobController
	Posts    *controllers.PostController
	Payments *controllers.PaymentController
	Admin    *controllers.AdminController
	Pages    *controllers.PagesController
}

// RegisterRoutes mounts every page and API route. limit guards the
// credential POSTs.
func RegisterRoutes(r *gin.Engine, h Handlers, limit gin.HandlerFunc) {
	requireUser := middleware.RequireRole(db_models.RoleUser)
	guest := middleware.RedirectIfAuthenticated("/")

	r.GET("/", h.Pages.Home)
	r.GET("/about", h.Pages.About)
	r.GET("/health", h.Pages.Health)
	r.GET("/analysis", requireUser, h.Pages.Analysis)

	r.GET("/register", guest, h.Account.RegisterForm)
	r.POST("/register", guest, h.Account.Register)
	r.GET("/login", guest, h.Account.LoginForm)
	r.POST("/login", guest, limit, h.Account.Login)
	r.GET("/logout", h.Account.Logout)
	r.GET("/account", requireUser, h.Account.Account)
	r.POST("/account", requireUser, h.Account.UpdateAccount)

	reset := r.Group("/reset_password", guest)
	{
		reset.POST("", limit, h.Account.RequestReset)
		reset.GET("/:token", h.Account.ResetForm)
		reset.POST("/:token", limit, h.Account.ResetPassword)
	}

	r.GET("/jobs", requireUser, h.Jobs.Board)
	r.POST("/jobs", requireUser, h.Jobs.Search)
	r.GET("/savedjobs", requireUser, h.Jobs.Saved)
	r.GET("/blogs", requireUser, h.Posts.ListPosts)

	r.GET("/purchase", h.Payments.Purchase)
	r.GET("/success", h.Payments.Success)
	r.POST("/payment-notify", h.Payments.Notify)
	r.POST("/ipn/", h.Payments.Notify)

	admin := r.Group("/admin", middleware.RequireRole(db_models.RoleAdmin))
	{
		admin.GET("", h.Admin.Dashboard)
		admin.POST("/github", h.Admin.IngestGitHub)
		admin.POST("/muse", h.Admin.IngestMuse)

		admin.GET("/jobs", h.Jobs.AdminList)
		admin.GET("/jobs/export", h.Jobs.AdminExport)
		admin.PATCH("/jobs/:id", h.Jobs.AdminUpdate)

		admin.GET("/users", h.Account.ListUsers)

		admin.GET("/posts", h.Posts.ListPosts)
		admin.POST("/posts", h.Posts.CreatePost)

		admin.GET("/searches", h.Admin.ListSearches)
		admin.POST("/searches", h.Admin.CreateSearch)
		admin.DELETE("/searches/:id", h.Admin.DeleteSearch)
	}
}
