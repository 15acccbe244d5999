package associations

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rule types (how the baseline resident allocation is computed)
const (
	RulePerUnit    = "per_unit"
	RulePerBedroom = "per_bedroom"
)

// Association owns the parking policy for every unit that belongs to it.
// All policy columns are nullable: a missing value falls back to the
// documented default instead of failing.
type Association struct {
	ID   string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	PermitRuleType         *string `gorm:"column:permit_rule_type;type:varchar(20)" json:"permit_rule_type"`
	PermitsPerCount        *int    `gorm:"column:permits_per_count" json:"permits_per_count"`
	MaxPermitsPerUnit      *int    `gorm:"column:max_permits_per_unit" json:"max_permits_per_unit"`
	AllowAdditionalPermits *bool   `gorm:"column:allow_additional_permits" json:"allow_additional_permits"`
	MaxVisitorPermits      *int    `gorm:"column:max_visitor_permits" json:"max_visitor_permits"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Association) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Policy is the read-only view of an association used by the capacity calculator.
type Policy struct {
	PermitRuleType         *string
	PermitsPerCount        *int
	MaxPermitsPerUnit      *int
	AllowAdditionalPermits *bool
	MaxVisitorPermits      *int
}

// PolicyOf returns the policy of a. A nil association yields the zero policy
// (per_unit, 0 baseline, everything unbounded).
func PolicyOf(a *Association) Policy {
	if a == nil {
		return Policy{}
	}
	return Policy{
		PermitRuleType:         a.PermitRuleType,
		PermitsPerCount:        a.PermitsPerCount,
		MaxPermitsPerUnit:      a.MaxPermitsPerUnit,
		AllowAdditionalPermits: a.AllowAdditionalPermits,
		MaxVisitorPermits:      a.MaxVisitorPermits,
	}
}
