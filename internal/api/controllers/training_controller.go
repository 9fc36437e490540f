package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"influhub/internal/models/request_models"
	"influhub/internal/services"
	"influhub/pkg/utils"
)

type TrainingController struct {
	trainingService services.TrainingServiceInterface
}

func NewTrainingController(trainingService services.TrainingServiceInterface) *TrainingController {
	return &TrainingController{
		trainingService: trainingService,
	}
}

func (t *TrainingController) ListCourses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	courses, err := t.trainingService.ListCourses(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, courses, "")
}

func (t *TrainingController) CourseDetail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	courseID, ok := pathUUID(c, "courseId")
	if !ok {
		return
	}

	detail, err := t.trainingService.CourseDetail(c.Request.Context(), userID, courseID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, detail, "")
}

func (t *TrainingController) SetVideoProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID, ok := pathUUID(c, "videoId")
	if !ok {
		return
	}

	var req request_models.VideoProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := t.trainingService.SetVideoProgress(c.Request.Context(), userID, videoID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Progress saved")
}
