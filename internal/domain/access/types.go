package access

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleResident Role = "resident"
)

type Permission string

const (
	PermitsRead       Permission = "permits:read"
	PermitsIssue      Permission = "permits:issue"
	PermitsRevoke     Permission = "permits:revoke"
	PermitsExpire     Permission = "permits:expire"
	PermitsAnyUnit    Permission = "permits:any_unit"
	UnitsRead         Permission = "units:read"
	UnitsWrite        Permission = "units:write"
	AssociationsRead  Permission = "associations:read"
	AssociationsWrite Permission = "associations:write"
	SweepRun          Permission = "sweep:run"
)
