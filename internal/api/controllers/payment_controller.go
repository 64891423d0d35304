package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/services"
	"jobboard/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// Purchase godoc
// @Summary Checkout form for a new registration
// @Description Returns the hosted-checkout fields; custom carries the username
// @Tags Payments
// @Produce json
// @Param token query string true "Registration token from /register"
// @Success 200 {object} utils.APIResponse{data=response_models.CheckoutResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /purchase [get]
func (p *PaymentController) Purchase(c *gin.Context) {
	checkout, err := p.paymentService.Checkout(c.Request.Context(), c.Query("token"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, checkout, "Purchase")
}

// Success godoc
// @Summary Post-checkout landing
// @Description Reports the current entitlement. It only changes once the payment notification is verified.
// @Tags Payments
// @Produce json
// @Param token query string true "Registration token"
// @Success 200 {object} utils.APIResponse{data=response_models.EntitlementResponse}
// @Router /success [get]
func (p *PaymentController) Success(c *gin.Context) {
	ent, err := p.paymentService.Entitlement(c.Request.Context(), c.Query("token"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, ent, "Success")
}

// Notify godoc
// @Summary Payment notification callback
// @Description Echoes the payload back to the provider for verification and records verified payments
// @Tags Payments
// @Accept x-www-form-urlencoded
// @Produce plain
// @Success 200 {string} string "VERIFIED or INVALID"
// @Router /payment-notify [post]
func (p *PaymentController) Notify(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "")
		return
	}
	// the provider retries on anything but 200
	c.String(http.StatusOK, p.paymentService.HandleNotification(c.Request.Context(), body))
}
