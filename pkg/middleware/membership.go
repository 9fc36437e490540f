package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"influhub/pkg/utils"
)

// MembershipChecker reports whether a user currently holds an active or
// trialing subscription.
type MembershipChecker interface {
	HasActiveMembership(ctx context.Context, userID string) (bool, error)
}

func RequireMembership(checker MembershipChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		ok, err := checker.HasActiveMembership(c.Request.Context(), userID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, "An internal server error occurred.")
			c.Abort()
			return
		}
		if !ok {
			utils.RespondError(c, http.StatusForbidden, "An active membership is required.")
			c.Abort()
			return
		}
		c.Next()
	}
}
