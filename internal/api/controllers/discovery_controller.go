package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"influhub/internal/services"
	"influhub/pkg/utils"
)

type DiscoveryController struct {
	discoveryService services.DiscoveryServiceInterface
}

func NewDiscoveryController(discoveryService services.DiscoveryServiceInterface) *DiscoveryController {
	return &DiscoveryController{
		discoveryService: discoveryService,
	}
}

// ListProducts godoc
// @Summary Browse winning products
// @Tags Discovery
// @Produce json
// @Param category query string false "Filter by category"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} utils.APIResponse
// @Router /products [get]
func (d *DiscoveryController) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	products, err := d.discoveryService.ListProducts(c.Request.Context(), c.Query("category"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, products, "")
}
