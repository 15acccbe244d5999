package users

import (
	"net/http"

	"parking-app/internal/app/http/middleware"
	"parking-app/internal/apperr"

	"github.com/gin-gonic/gin"
)

// GET /me
func GetCurrentUser(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubject)
	if subject == "" {
		apperr.Respond(c, apperr.Unauthorized("Unauthorized"))
		return
	}

	policy := middleware.PolicyFrom(c)

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:     subject,
			Email:  stringPtrIfNotEmpty(c.GetString(middleware.CtxEmail)),
			UnitID: stringPtrIfNotEmpty(policy.UnitID),
		},
		Access: BuildAccessDTO(policy),
	})
}
