package units

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"parking-app/database"
	"parking-app/internal/app/http/middleware"
	"parking-app/internal/apperr"
	"parking-app/internal/domain/access"
	"parking-app/internal/domain/units"
	"parking-app/internal/store"

	"github.com/gin-gonic/gin"
)

type UnitDTO struct {
	ID            string    `json:"id"`
	AssociationID string    `json:"association_id"`
	UnitNumber    string    `json:"unit_number"`
	Bedrooms      *int      `json:"bedrooms"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateUnitRequest struct {
	AssociationID string `json:"association_id" binding:"required"`
	UnitNumber    string `json:"unit_number" binding:"required,max=32"`
	Bedrooms      *int   `json:"bedrooms" binding:"omitempty,gte=0,lte=50"`
}

func toUnitDTO(u units.Unit) UnitDTO {
	return UnitDTO{
		ID:            u.ID,
		AssociationID: u.AssociationID,
		UnitNumber:    u.UnitNumber,
		Bedrooms:      u.Bedrooms,
		CreatedAt:     u.CreatedAt,
	}
}

// GET /units?association_id=
// Callers bound to a unit only ever see that unit.
func ListUnits(c *gin.Context) {
	policy := middleware.PolicyFrom(c)
	ctx := c.Request.Context()

	if !policy.Can(access.PermitsAnyUnit) {
		out := []UnitDTO{}
		if policy.UnitID != "" {
			u, err := store.GetUnit(ctx, database.DB, policy.UnitID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				apperr.Respond(c, apperr.Upstream("Failed to load units", err))
				return
			}
			if u != nil {
				out = append(out, toUnitDTO(*u))
			}
		}
		c.JSON(http.StatusOK, out)
		return
	}

	list, err := store.ListUnits(ctx, database.DB, c.Query("association_id"))
	if err != nil {
		apperr.Respond(c, apperr.Upstream("Failed to load units", err))
		return
	}

	out := make([]UnitDTO, 0, len(list))
	for _, u := range list {
		out = append(out, toUnitDTO(u))
	}
	c.JSON(http.StatusOK, out)
}

// GET /units/:id
func GetUnit(c *gin.Context) {
	id := c.Param("id")
	if !middleware.PolicyFrom(c).CanAccessUnit(id) {
		apperr.Respond(c, apperr.Forbidden("Access to this unit is denied"))
		return
	}

	u, err := store.GetUnit(c.Request.Context(), database.DB, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apperr.Respond(c, apperr.NotFound("Unit not found"))
			return
		}
		apperr.Respond(c, apperr.Upstream("Failed to load unit", err))
		return
	}
	c.JSON(http.StatusOK, toUnitDTO(*u))
}

// POST /admin/units
func CreateUnit(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation(err.Error(), err))
		return
	}

	u := units.Unit{
		AssociationID: req.AssociationID,
		UnitNumber:    strings.TrimSpace(req.UnitNumber),
		Bedrooms:      req.Bedrooms,
	}
	if err := store.CreateUnit(c.Request.Context(), database.DB, &u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apperr.Respond(c, apperr.Validation("Association does not exist", err))
			return
		}
		apperr.Respond(c, apperr.Upstream("Failed to create unit", err))
		return
	}
	c.JSON(http.StatusCreated, toUnitDTO(u))
}
