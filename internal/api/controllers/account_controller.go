package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/config"
	"jobboard/internal/models/request_models"
	"jobboard/internal/models/response_models"
	"jobboard/internal/services"
	"jobboard/pkg/middleware"
	"jobboard/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
	cookie         config.AuthConfig
}

func NewAccountController(accountService services.AccountServiceInterface, auth config.AuthConfig) *AccountController {
	return &AccountController{
		accountService: accountService,
		cookie:         auth,
	}
}

func (a *AccountController) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookie.CookieName, token, maxAge, "/", "", a.cookie.CookieSecure, true)
}

// RegisterForm godoc
// @Summary Registration form options
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /register [get]
func (a *AccountController) RegisterForm(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"genders":       []string{"Male", "Female", "Undecided"},
		"visa_statuses": []string{"F-1", "J-1"},
	}, "Register")
}

// Register godoc
// @Summary Register a new account
// @Description Creates a User and hands back the purchase redirect
// @Tags Accounts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body request_models.RegisterRequest true "Account registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	resp, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	redirectOrJSON(c, resp.Redirect, resp, "Your account has been created! You are now able to log in")
}

// LoginForm godoc
// @Summary Login page
// @Tags Accounts
// @Produce json
// @Param next query string false "Local path to return to"
// @Success 200 {object} utils.APIResponse
// @Router /login [get]
func (a *AccountController) LoginForm(c *gin.Context) {
	next, _ := middleware.SafeNext(c.Query("next"))
	utils.RespondSuccess(c, gin.H{"next": next}, "Login")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticates by email and password and sets the session cookie
// @Tags Accounts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Param next query string false "Local path to return to"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	result, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	maxAge := 0
	if req.Remember {
		maxAge = int(a.cookie.SessionTTL.Seconds())
	}
	a.setSessionCookie(c, result.Token, maxAge)

	target := "/jobs"
	if result.User.IsAdmin() {
		target = "/admin"
	}
	if next, ok := middleware.SafeNext(c.Query("next")); ok {
		target = next
	} else if next, ok := middleware.SafeNext(c.PostForm("next")); ok {
		target = next
	}

	redirectOrJSON(c, target, response_models.LoginResponse{
		Token:    result.Token,
		Role:     string(result.User.Role),
		Redirect: target,
	}, "Login successful")
}

// Logout godoc
// @Summary Logout
// @Description Revokes the current session and clears the cookie
// @Tags Accounts
// @Success 302
// @Router /logout [get]
func (a *AccountController) Logout(c *gin.Context) {
	if err := a.accountService.Logout(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	a.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/")
}

// Account godoc
// @Summary Current account
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.AccountResponse}
// @Router /account [get]
func (a *AccountController) Account(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	user, err := a.accountService.Profile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.NewAccountResponse(user), "Account")
}

// UpdateAccount godoc
// @Summary Update username, email and picture
// @Tags Accounts
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param picture formData file false "jpg or png"
// @Success 200 {object} utils.APIResponse{data=response_models.AccountResponse}
// @Failure 422 {object} utils.APIResponse
// @Router /account [post]
func (a *AccountController) UpdateAccount(c *gin.Context) {
	var req request_models.UpdateAccountRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	picture, err := c.FormFile("picture")
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid picture upload")
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	user, err := a.accountService.UpdateAccount(c.Request.Context(), userID, req, picture, c.SaveUploadedFile)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.NewAccountResponse(user), "Your account has been updated!")
}

// RequestReset godoc
// @Summary Request a password reset
// @Description Emails a reset link to a registered address
// @Tags Accounts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body request_models.RequestResetRequest true "Reset request payload"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /reset_password [post]
func (a *AccountController) RequestReset(c *gin.Context) {
	var req request_models.RequestResetRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.accountService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	redirectOrJSON(c, "/login", nil, "An email has been sent with instructions to reset your password.")
}

// ResetForm godoc
// @Summary Check a reset token
// @Tags Accounts
// @Produce json
// @Param token path string true "Reset token"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /reset_password/{token} [get]
func (a *AccountController) ResetForm(c *gin.Context) {
	user, err := a.accountService.VerifyResetToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if user == nil {
		utils.HandleServiceError(c, utils.ErrInvalidToken)
		return
	}
	utils.RespondSuccess(c, gin.H{"username": user.Username}, "Reset Password")
}

// ResetPassword godoc
// @Summary Set a new password
// @Tags Accounts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param token path string true "Reset token"
// @Param request body request_models.ResetPasswordRequest true "New password"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /reset_password/{token} [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	if err := a.accountService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	redirectOrJSON(c, "/login", nil, "Your password has been updated! You are now able to log in")
}

// ListUsers godoc
// @Summary List accounts
// @Tags Admin
// @Produce json
// @Param search query string false "Username contains"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /admin/users [get]
func (a *AccountController) ListUsers(c *gin.Context) {
	page, pageSize, err := utils.Paging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	users, err := a.accountService.ListUsers(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, users, "Users")
}
