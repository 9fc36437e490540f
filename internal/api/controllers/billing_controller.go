package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"influhub/internal/models/request_models"
	"influhub/internal/services"
	"influhub/pkg/utils"
)

type BillingController struct {
	billingService services.BillingServiceInterface
}

func NewBillingController(billingService services.BillingServiceInterface) *BillingController {
	return &BillingController{
		billingService: billingService,
	}
}

// CreateSubscription godoc
// @Summary Start a membership subscription
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body request_models.CreateSubscriptionRequest true "Subscription payload"
// @Success 200 {object} utils.APIResponse
// @Router /payment/subscription [post]
func (b *BillingController) CreateSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := b.billingService.CreateSubscription(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Subscription created")
}

func (b *BillingController) CancelSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := b.billingService.CancelSubscription(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Subscription will cancel at period end")
}

func (b *BillingController) ReactivateSubscription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := b.billingService.ReactivateSubscription(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Subscription reactivated")
}

func (b *BillingController) ListPlans(c *gin.Context) {
	currency := c.DefaultQuery("currency", "eur")

	plans, err := b.billingService.ListPlans(c.Request.Context(), currency)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "")
}

// CreateCourseIntent godoc
// @Summary Create a payment intent for a course purchase
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body request_models.CourseIntentRequest true "Course intent payload"
// @Success 200 {object} utils.APIResponse
// @Router /payment/course-intent [post]
func (b *BillingController) CreateCourseIntent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CourseIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := b.billingService.CreateCourseIntent(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}
