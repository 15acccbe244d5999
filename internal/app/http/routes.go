package routes

import (
	adminapi "parking-app/internal/api/admin"
	associationsapi "parking-app/internal/api/associations"
	permitsapi "parking-app/internal/api/permits"
	unitsapi "parking-app/internal/api/units"
	"parking-app/internal/api/users"
	"parking-app/internal/app/http/middleware"
	"parking-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, verifier middleware.TokenVerifier) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(verifier), middleware.SanitizeInput())
	auth.GET("/me", users.GetCurrentUser)

	auth.GET("/units", middleware.RequirePermission(access.UnitsRead), unitsapi.ListUnits)
	auth.GET("/units/:id", middleware.RequirePermission(access.UnitsRead), unitsapi.GetUnit)

	auth.GET("/units/:id/permit-caps", middleware.RequirePermission(access.PermitsRead), permitsapi.GetUnitCaps)
	auth.GET("/units/:id/permits", middleware.RequirePermission(access.PermitsRead), permitsapi.ListUnitPermits)
	auth.POST("/units/:id/permits", middleware.RequirePermission(access.PermitsIssue), permitsapi.IssuePermit)

	auth.GET("/permits/:id", middleware.RequirePermission(access.PermitsRead), permitsapi.GetPermit)
	auth.POST("/permits/:id/revoke", middleware.RequirePermission(access.PermitsRevoke), permitsapi.RevokePermit)
	auth.POST("/permits/:id/expire", middleware.RequirePermission(access.PermitsExpire), permitsapi.ExpirePermit)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(verifier), middleware.SanitizeInput())
	admin.GET("/stats", middleware.RequirePermission(access.AssociationsRead), adminapi.GetAdminStats)
	admin.POST("/units", middleware.RequirePermission(access.UnitsWrite), unitsapi.CreateUnit)
	admin.GET("/associations", middleware.RequirePermission(access.AssociationsRead), associationsapi.ListAssociations)
	admin.POST("/associations", middleware.RequirePermission(access.AssociationsWrite), associationsapi.CreateAssociation)
	admin.PUT("/associations/:id/policy", middleware.RequirePermission(access.AssociationsWrite), associationsapi.UpdatePolicy)
	admin.POST("/sweep-expired", middleware.RequirePermission(access.SweepRun), adminapi.SweepExpired)
}
