package controllers

import (
	"github.com/gin-gonic/gin"

	"influhub/internal/services"
	"influhub/pkg/utils"
)

type AffiliateController struct {
	affiliateService services.AffiliateServiceInterface
}

func NewAffiliateController(affiliateService services.AffiliateServiceInterface) *AffiliateController {
	return &AffiliateController{
		affiliateService: affiliateService,
	}
}

// Dashboard godoc
// @Summary Affiliate dashboard
// @Description Referral link, stats and referred users for the caller
// @Tags Affiliate
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /affiliate/dashboard [get]
func (a *AffiliateController) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := a.affiliateService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, dashboard, "")
}

func (a *AffiliateController) ListPayouts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payouts, err := a.affiliateService.ListPayouts(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, payouts, "")
}

// RequestPayout godoc
// @Summary Request a payout of unpaid commissions
// @Tags Affiliate
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /affiliate/request-payout [post]
func (a *AffiliateController) RequestPayout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payout, err := a.affiliateService.RequestPayout(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, payout, "Payout requested")
}
