package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"influhub/internal/models/request_models"
	"influhub/internal/services"
	"influhub/pkg/utils"
)

type AdminController struct {
	adminService     services.AdminServiceInterface
	discoveryService services.DiscoveryServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface, discoveryService services.DiscoveryServiceInterface) *AdminController {
	return &AdminController{
		adminService:     adminService,
		discoveryService: discoveryService,
	}
}

// Leaderboard godoc
// @Summary Top affiliates by commission earned
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /admin/affiliates/leaderboard [get]
func (a *AdminController) Leaderboard(c *gin.Context) {
	entries, err := a.adminService.Leaderboard(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, entries, "")
}

func (a *AdminController) ListPayouts(c *gin.Context) {
	payouts, err := a.adminService.ListPayouts(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, payouts, "")
}

func (a *AdminController) UpdatePayoutStatus(c *gin.Context) {
	var req request_models.UpdatePayoutStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	payout, err := a.adminService.UpdatePayoutStatus(c.Request.Context(), c.Param("payoutId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, payout, "Payout status updated")
}

func (a *AdminController) Stats(c *gin.Context) {
	stats, err := a.adminService.Stats(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stats, "")
}

func (a *AdminController) Settings(c *gin.Context) {
	settings, err := a.adminService.Settings(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, settings, "")
}

func (a *AdminController) UpdateSettings(c *gin.Context) {
	var req request_models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.adminService.UpdateSettings(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Settings updated")
}

func (a *AdminController) CreateCourse(c *gin.Context) {
	var req request_models.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	course, err := a.adminService.CreateCourse(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": course.ID}, "Course created")
}

func (a *AdminController) UpdateCourse(c *gin.Context) {
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}
	var req request_models.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	course, err := a.adminService.UpdateCourse(c.Request.Context(), courseID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": course.ID}, "Course updated")
}

func (a *AdminController) DeleteCourse(c *gin.Context) {
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	if err := a.adminService.DeleteCourse(c.Request.Context(), courseID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Course deleted")
}

func (a *AdminController) CreateSection(c *gin.Context) {
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}
	var req request_models.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	section, err := a.adminService.CreateSection(c.Request.Context(), courseID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": section.ID}, "Section created")
}

func (a *AdminController) UpdateSection(c *gin.Context) {
	sectionID, ok := pathUUID(c, "sectionId")
	if !ok {
		return
	}
	var req request_models.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	section, err := a.adminService.UpdateSection(c.Request.Context(), sectionID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": section.ID}, "Section updated")
}

func (a *AdminController) DeleteSection(c *gin.Context) {
	sectionID, ok := pathUUID(c, "sectionId")
	if !ok {
		return
	}

	if err := a.adminService.DeleteSection(c.Request.Context(), sectionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Section deleted")
}

func (a *AdminController) CreateVideo(c *gin.Context) {
	sectionID, ok := pathUUID(c, "sectionId")
	if !ok {
		return
	}
	var req request_models.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	video, err := a.adminService.CreateVideo(c.Request.Context(), sectionID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": video.ID}, "Video created")
}

func (a *AdminController) UpdateVideo(c *gin.Context) {
	videoID, ok := pathUUID(c, "videoId")
	if !ok {
		return
	}
	var req request_models.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	video, err := a.adminService.UpdateVideo(c.Request.Context(), videoID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": video.ID}, "Video updated")
}

func (a *AdminController) DeleteVideo(c *gin.Context) {
	videoID, ok := pathUUID(c, "videoId")
	if !ok {
		return
	}

	if err := a.adminService.DeleteVideo(c.Request.Context(), videoID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Video deleted")
}

func (a *AdminController) ReorderVideos(c *gin.Context) {
	sectionID, ok := pathUUID(c, "sectionId")
	if !ok {
		return
	}
	var req request_models.VideoOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.adminService.ReorderVideos(c.Request.Context(), sectionID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Videos reordered")
}

func (a *AdminController) CreateProduct(c *gin.Context) {
	var req request_models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := a.discoveryService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"id": product.ID}, "Product created")
}

func (a *AdminController) DeleteProduct(c *gin.Context) {
	productID, ok := pathUUID(c, "productId")
	if !ok {
		return
	}

	if err := a.discoveryService.DeleteProduct(c.Request.Context(), productID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Product deleted")
}
