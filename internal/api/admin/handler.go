package admin

import (
	"net/http"
	"time"

	"parking-app/database"
	"parking-app/internal/apperr"
	"parking-app/internal/domain/associations"
	"parking-app/internal/domain/permits"
	"parking-app/internal/domain/units"
	"parking-app/internal/jobs"

	"github.com/gin-gonic/gin"
)

// clock is swapped in tests.
var clock = time.Now

type AdminStats struct {
	TotalAssociations int            `json:"total_associations"`
	TotalUnits        int            `json:"total_units"`
	TotalPermits      int            `json:"total_permits"`
	PermitsPerStatus  map[string]int `json:"permits_per_status"`
	PermitsPerType    map[string]int `json:"permits_per_type"`
}

// GET /admin/stats
// Counts use the stored status; run the sweep first for an up-to-date picture.
func GetAdminStats(c *gin.Context) {
	db := database.DB.WithContext(c.Request.Context())

	var totalAssociations, totalUnits, totalPermits int64
	if err := db.Model(&associations.Association{}).Count(&totalAssociations).Error; err != nil {
		apperr.Respond(c, apperr.Upstream("Failed to count associations", err))
		return
	}
	if err := db.Model(&units.Unit{}).Count(&totalUnits).Error; err != nil {
		apperr.Respond(c, apperr.Upstream("Failed to count units", err))
		return
	}
	if err := db.Model(&permits.Permit{}).Count(&totalPermits).Error; err != nil {
		apperr.Respond(c, apperr.Upstream("Failed to count permits", err))
		return
	}

	type groupCount struct {
		GroupKey string
		Count    int
	}

	var byStatus []groupCount
	if err := db.Model(&permits.Permit{}).
		Select("status AS group_key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		apperr.Respond(c, apperr.Upstream("Failed to group permits", err))
		return
	}

	var byType []groupCount
	if err := db.Model(&permits.Permit{}).
		Select("type AS group_key, COUNT(*) AS count").
		Group("type").
		Scan(&byType).Error; err != nil {
		apperr.Respond(c, apperr.Upstream("Failed to group permits", err))
		return
	}

	stats := AdminStats{
		TotalAssociations: int(totalAssociations),
		TotalUnits:        int(totalUnits),
		TotalPermits:      int(totalPermits),
		PermitsPerStatus:  map[string]int{},
		PermitsPerType:    map[string]int{},
	}
	for _, g := range byStatus {
		stats.PermitsPerStatus[g.GroupKey] = g.Count
	}
	for _, g := range byType {
		stats.PermitsPerType[g.GroupKey] = g.Count
	}

	c.JSON(http.StatusOK, stats)
}

// POST /admin/sweep-expired
func SweepExpired(c *gin.Context) {
	n, err := jobs.NewExpirySweep(database.DB, clock).Run(c.Request.Context())
	if err != nil {
		apperr.Respond(c, apperr.Upstream("Expiry sweep failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": n})
}
