package access

import (
	"sort"
	"strings"
)

type permissionSet map[Permission]struct{}

func setOf(perms ...Permission) permissionSet {
	s := make(permissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Keep in sync with the route table in internal/app/http/routes.go.
var rolePermissions = map[Role]permissionSet{
	RoleAdmin: setOf(
		PermitsRead, PermitsIssue, PermitsRevoke, PermitsExpire, PermitsAnyUnit,
		UnitsRead, UnitsWrite,
		AssociationsRead, AssociationsWrite,
		SweepRun,
	),
	RoleManager: setOf(
		PermitsRead, PermitsIssue, PermitsRevoke, PermitsExpire, PermitsAnyUnit,
		UnitsRead, UnitsWrite,
		AssociationsRead,
	),
	RoleResident: setOf(
		PermitsRead, PermitsIssue,
		UnitsRead,
	),
}

// ParseRole maps a token claim onto a known role. Unknown roles come back
// as-is and simply hold no permissions.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

func Has(role Role, perm Permission) bool {
	_, ok := rolePermissions[role][perm]
	return ok
}

// PermissionsFor lists the permissions of role in a stable order.
func PermissionsFor(role Role) []string {
	set := rolePermissions[role]
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
