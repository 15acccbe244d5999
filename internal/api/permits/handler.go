package permits

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"parking-app/database"
	"parking-app/internal/app/http/middleware"
	"parking-app/internal/apperr"
	"parking-app/internal/domain/permits"
	"parking-app/internal/infra/logging"
	"parking-app/internal/store"

	"github.com/gin-gonic/gin"
)

// clock is swapped in tests.
var clock = time.Now

func mustAccessUnit(c *gin.Context, unitID string) bool {
	if !middleware.PolicyFrom(c).CanAccessUnit(unitID) {
		apperr.Respond(c, apperr.Forbidden("Access to this unit is denied"))
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		apperr.Respond(c, apperr.NotFound("Not found"))
	case errors.Is(err, permits.ErrCapReached):
		apperr.Respond(c, apperr.Conflict("permit_cap_reached", "Permit cap reached for this unit", err))
	case errors.Is(err, permits.ErrPermitRevoked):
		apperr.Respond(c, apperr.Conflict("permit_revoked", "Permit is revoked", err))
	case errors.Is(err, permits.ErrInvalidTransition):
		apperr.Respond(c, apperr.Conflict("invalid_transition", "Permit cannot change to that status", err))
	case errors.Is(err, permits.ErrInvalidType), errors.Is(err, permits.ErrExpiryNotInFuture):
		apperr.Respond(c, apperr.Validation(err.Error(), err))
	default:
		apperr.Respond(c, apperr.Upstream("Permit store failure", err))
	}
}

// ------------------------------
// GET /units/:id/permit-caps
// ------------------------------
func GetUnitCaps(c *gin.Context) {
	unitID := c.Param("id")
	if !mustAccessUnit(c, unitID) {
		return
	}

	caps, err := store.UnitCaps(c.Request.Context(), database.DB, unitID, clock())
	if err != nil {
		respondError(c, err)
		return
	}
	if caps.ResidentOverCap() || caps.VisitorOverCap() {
		logging.Logger.WithField("unit_id", unitID).Warn("Unit holds more active permits than its policy allows")
	}

	c.JSON(http.StatusOK, BuildCapsDTO(caps))
}

// ------------------------------
// GET /units/:id/permits?status=all|active|expired|revoked
// ------------------------------
func ListUnitPermits(c *gin.Context) {
	unitID := c.Param("id")
	if !mustAccessUnit(c, unitID) {
		return
	}

	ctx := c.Request.Context()
	if _, err := store.GetUnit(ctx, database.DB, unitID); err != nil {
		respondError(c, err)
		return
	}

	list, err := store.ListPermits(ctx, database.DB, unitID)
	if err != nil {
		respondError(c, err)
		return
	}

	now := clock()
	filter := strings.ToLower(c.DefaultQuery("status", permits.FilterAll))
	c.JSON(http.StatusOK, BuildPermitListDTO(filter, permits.FilterByStatus(list, filter, now), now))
}

// ------------------------------
// POST /units/:id/permits
// ------------------------------
func IssuePermit(c *gin.Context) {
	unitID := c.Param("id")
	if !mustAccessUnit(c, unitID) {
		return
	}

	var req IssuePermitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation(err.Error(), err))
		return
	}
	if req.permitType() == "" {
		apperr.Respond(c, apperr.Validation("type is required", nil))
		return
	}

	now := clock()
	p, caps, err := store.IssuePermit(c.Request.Context(), database.DB, unitID, store.IssueRequest{
		Type:               permits.NormalizeType(req.permitType()),
		ExpiresAt:          req.ExpiresAt,
		Plate:              strings.ToUpper(strings.TrimSpace(req.Plate)),
		VehicleDescription: strings.TrimSpace(req.VehicleDescription),
		HolderName:         strings.TrimSpace(req.HolderName),
		IssuedBy:           c.GetString(middleware.CtxSubject),
	}, now)
	if err != nil {
		respondError(c, err)
		return
	}

	logging.Logger.WithFields(map[string]interface{}{
		"unit_id":   unitID,
		"permit_id": p.ID,
		"type":      p.Type,
	}).Info("Permit issued")

	c.JSON(http.StatusCreated, IssuePermitResponse{
		Permit: BuildPermitDTO(*p, now),
		Caps:   BuildCapsDTO(caps),
	})
}

// ------------------------------
// GET /permits/:id
// ------------------------------
func GetPermit(c *gin.Context) {
	p, ok := loadAccessiblePermit(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, BuildPermitDTO(*p, clock()))
}

// ------------------------------
// POST /permits/:id/revoke
// ------------------------------
func RevokePermit(c *gin.Context) {
	// The body is optional.
	var req RevokePermitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apperr.Respond(c, apperr.Validation(err.Error(), err))
		return
	}

	p, ok := loadAccessiblePermit(c)
	if !ok {
		return
	}

	now := clock()
	revoked, err := store.RevokePermit(c.Request.Context(), database.DB, p.ID, c.GetString(middleware.CtxSubject), strings.TrimSpace(req.Reason), now)
	if err != nil {
		respondError(c, err)
		return
	}

	logging.Logger.WithField("permit_id", p.ID).Info("Permit revoked")
	c.JSON(http.StatusOK, BuildPermitDTO(*revoked, now))
}

// ------------------------------
// POST /permits/:id/expire
// ------------------------------
func ExpirePermit(c *gin.Context) {
	p, ok := loadAccessiblePermit(c)
	if !ok {
		return
	}

	expired, changed, err := store.ExpirePermit(c.Request.Context(), database.DB, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if changed {
		logging.Logger.WithField("permit_id", p.ID).Info("Permit expired")
	}

	c.JSON(http.StatusOK, BuildPermitDTO(*expired, clock()))
}

func loadAccessiblePermit(c *gin.Context) (*permits.Permit, bool) {
	p, err := store.GetPermit(c.Request.Context(), database.DB, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if !mustAccessUnit(c, p.UnitID) {
		return nil, false
	}
	return p, true
}
