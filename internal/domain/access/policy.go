package access

// Policy is what a caller may do, derived from their token.
type Policy struct {
	Role        Role
	Permissions []string
	// UnitID is the unit a resident is bound to; empty for staff.
	UnitID string
}

func ComputePolicy(role, unitID string) Policy {
	r := ParseRole(role)
	return Policy{
		Role:        r,
		Permissions: PermissionsFor(r),
		UnitID:      unitID,
	}
}

func (p Policy) Can(perm Permission) bool {
	return Has(p.Role, perm)
}

// CanAccessUnit reports whether the caller may touch permits of unitID.
// Staff roles reach every unit; everyone else only their own.
func (p Policy) CanAccessUnit(unitID string) bool {
	if p.Can(PermitsAnyUnit) {
		return true
	}
	return p.UnitID != "" && p.UnitID == unitID
}
