package request_models

type VideoProgressRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}
