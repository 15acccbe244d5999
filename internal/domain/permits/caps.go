package permits

import (
	"time"

	"parking-app/internal/domain/associations"
	"parking-app/internal/domain/units"
)

// Category is the cap accounting for one permit category. A nil Max means
// the category is unbounded.
type Category struct {
	Count int
	Max   *int
}

func (c Category) CanIssue() bool {
	return c.Max == nil || c.Count < *c.Max
}

// Remaining is nil for an unbounded category. It never goes below zero, even
// when the unit is already over its cap.
func (c Category) Remaining() *int {
	if c.Max == nil {
		return nil
	}
	r := *c.Max - c.Count
	if r < 0 {
		r = 0
	}
	return &r
}

func (c Category) OverCap() bool {
	return c.Max != nil && c.Count > *c.Max
}

type CapsResult struct {
	BaselineResident int
	Resident         Category
	Visitor          Category
}

func (r CapsResult) CanIssue(t Type) bool {
	if t == TypeVisitor {
		return r.Visitor.CanIssue()
	}
	return r.Resident.CanIssue()
}

func (r CapsResult) ResidentOverCap() bool { return r.Resident.OverCap() }
func (r CapsResult) VisitorOverCap() bool  { return r.Visitor.OverCap() }

// BaselineResident is the resident allocation before any ceiling is applied.
func BaselineResident(p associations.Policy, bedrooms *int) int {
	perCount := 0
	if p.PermitsPerCount != nil {
		perCount = *p.PermitsPerCount
	}
	if p.PermitRuleType != nil && *p.PermitRuleType == associations.RulePerBedroom {
		return perCount * units.EffectiveBedrooms(bedrooms)
	}
	return perCount
}

// MaxResident is the resident ceiling: the explicit per-unit maximum when set,
// the baseline when additional permits are explicitly disallowed, otherwise
// unbounded (nil).
func MaxResident(p associations.Policy, baseline int) *int {
	if p.MaxPermitsPerUnit != nil && *p.MaxPermitsPerUnit > 0 {
		m := *p.MaxPermitsPerUnit
		return &m
	}
	if p.AllowAdditionalPermits != nil && !*p.AllowAdditionalPermits {
		b := baseline
		return &b
	}
	return nil
}

func MaxVisitor(p associations.Policy) *int {
	if p.MaxVisitorPermits == nil {
		return nil
	}
	m := *p.MaxVisitorPermits
	if m < 0 {
		m = 0
	}
	return &m
}

// ComputeCaps computes the caps for one unit. active must already hold only
// the unit's effectively active permits; use ComputeCapsFromRaw otherwise.
func ComputeCaps(p associations.Policy, bedrooms *int, active []Permit) CapsResult {
	baseline := BaselineResident(p, bedrooms)

	res := CapsResult{
		BaselineResident: baseline,
		Resident:         Category{Max: MaxResident(p, baseline)},
		Visitor:          Category{Max: MaxVisitor(p)},
	}
	for i := range active {
		t := NormalizeType(string(active[i].Type))
		switch {
		case t.CountsAsResident():
			res.Resident.Count++
		case t == TypeVisitor:
			res.Visitor.Count++
		}
	}
	return res
}

// ComputeCapsFromRaw accepts any permits of the unit, in any status, and
// counts only those effectively active at now.
func ComputeCapsFromRaw(p associations.Policy, bedrooms *int, all []Permit, now time.Time) CapsResult {
	normalized := make([]Permit, len(all))
	for i := range all {
		normalized[i] = all[i]
		normalized[i].Status = NormalizeStatus(string(all[i].Status))
	}
	return ComputeCaps(p, bedrooms, FilterByStatus(normalized, FilterActive, now))
}
