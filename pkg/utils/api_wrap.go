package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"influhub/pkg/logging"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinel errors onto HTTP responses.
// Anything unrecognized is logged server-side and surfaced as a generic 500
// so internal detail never reaches the caller.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		RespondError(c, http.StatusNotFound, "User not found.")
	case errors.Is(err, ErrCourseNotFound):
		RespondError(c, http.StatusNotFound, "Course not found.")
	case errors.Is(err, ErrSectionNotFound):
		RespondError(c, http.StatusNotFound, "Section not found.")
	case errors.Is(err, ErrVideoNotFound):
		RespondError(c, http.StatusNotFound, "Video not found.")
	case errors.Is(err, ErrProductNotFound):
		RespondError(c, http.StatusNotFound, "Product not found.")
	case errors.Is(err, ErrPayoutNotFound):
		RespondError(c, http.StatusNotFound, "Payout request not found.")
	case errors.Is(err, ErrCustomerNotFound):
		RespondError(c, http.StatusNotFound, "Payment customer not found.")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "User with this email already exists.")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, ErrAffiliateLocked):
		RespondError(c, http.StatusForbidden, "Affiliate features are unlocked after your first successful payment.")
	case errors.Is(err, ErrInvalidReferrer):
		RespondError(c, http.StatusBadRequest, "Invalid referral code.")
	case errors.Is(err, ErrInvalidPayoutStatus):
		RespondError(c, http.StatusBadRequest, "Invalid status provided.")
	case errors.Is(err, ErrPendingPayoutExists):
		RespondError(c, http.StatusBadRequest, "You already have a pending payout request.")
	case errors.Is(err, ErrPayoutBelowThreshold):
		RespondError(c, http.StatusBadRequest, "Unpaid commissions are below the minimum payout amount.")
	case errors.Is(err, ErrNoUnpaidCommissions):
		RespondError(c, http.StatusBadRequest, "No unpaid commissions to pay out.")
	case errors.Is(err, ErrNoSubscription):
		RespondError(c, http.StatusBadRequest, "No subscription found for this user.")
	case errors.Is(err, ErrCourseNotPurchasable):
		RespondError(c, http.StatusBadRequest, "Course is not available for purchase in this currency.")
	default:
		logging.L().Error("unhandled service error", logging.Err(err))
		RespondError(c, http.StatusInternalServerError, "An internal server error occurred.")
	}
}
