package associations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"parking-app/database"
	"parking-app/internal/apperr"
	"parking-app/internal/domain/associations"
	"parking-app/internal/store"

	"github.com/gin-gonic/gin"
)

type PolicyRequest struct {
	PermitRuleType         *string `json:"permit_rule_type"`
	PermitsPerCount        *int    `json:"permits_per_count"`
	MaxPermitsPerUnit      *int    `json:"max_permits_per_unit"`
	AllowAdditionalPermits *bool   `json:"allow_additional_permits"`
	MaxVisitorPermits      *int    `json:"max_visitor_permits"`
}

type CreateAssociationRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	PolicyRequest
}

type AssociationDTO struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	PermitRuleType         *string   `json:"permit_rule_type"`
	PermitsPerCount        *int      `json:"permits_per_count"`
	MaxPermitsPerUnit      *int      `json:"max_permits_per_unit"`
	AllowAdditionalPermits *bool     `json:"allow_additional_permits"`
	MaxVisitorPermits      *int      `json:"max_visitor_permits"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (r PolicyRequest) policy() associations.Policy {
	var rule *string
	if r.PermitRuleType != nil {
		v := strings.ToLower(strings.TrimSpace(*r.PermitRuleType))
		rule = &v
	}
	return associations.Policy{
		PermitRuleType:         rule,
		PermitsPerCount:        r.PermitsPerCount,
		MaxPermitsPerUnit:      r.MaxPermitsPerUnit,
		AllowAdditionalPermits: r.AllowAdditionalPermits,
		MaxVisitorPermits:      r.MaxVisitorPermits,
	}
}

func toAssociationDTO(a associations.Association) AssociationDTO {
	return AssociationDTO{
		ID:                     a.ID,
		Name:                   a.Name,
		PermitRuleType:         a.PermitRuleType,
		PermitsPerCount:        a.PermitsPerCount,
		MaxPermitsPerUnit:      a.MaxPermitsPerUnit,
		AllowAdditionalPermits: a.AllowAdditionalPermits,
		MaxVisitorPermits:      a.MaxVisitorPermits,
		UpdatedAt:              a.UpdatedAt,
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, associations.ErrInvalidPolicy):
		apperr.Respond(c, apperr.Validation(err.Error(), err))
	case errors.Is(err, store.ErrNotFound):
		apperr.Respond(c, apperr.NotFound("Association not found"))
	default:
		apperr.Respond(c, apperr.Upstream("Association store failure", err))
	}
}

// GET /admin/associations
func ListAssociations(c *gin.Context) {
	list, err := store.ListAssociations(c.Request.Context(), database.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]AssociationDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toAssociationDTO(a))
	}
	c.JSON(http.StatusOK, out)
}

// POST /admin/associations
func CreateAssociation(c *gin.Context) {
	var req CreateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation(err.Error(), err))
		return
	}

	p := req.policy()
	a := associations.Association{
		Name:                   strings.TrimSpace(req.Name),
		PermitRuleType:         p.PermitRuleType,
		PermitsPerCount:        p.PermitsPerCount,
		MaxPermitsPerUnit:      p.MaxPermitsPerUnit,
		AllowAdditionalPermits: p.AllowAdditionalPermits,
		MaxVisitorPermits:      p.MaxVisitorPermits,
	}
	if err := store.CreateAssociation(c.Request.Context(), database.DB, &a); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAssociationDTO(a))
}

// PUT /admin/associations/:id/policy
func UpdatePolicy(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.Validation(err.Error(), err))
		return
	}

	a, err := store.UpdateAssociationPolicy(c.Request.Context(), database.DB, c.Param("id"), req.policy())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAssociationDTO(*a))
}
