package users

type MeResponse struct {
	User   UserDTO   `json:"user"`
	Access AccessDTO `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID     string  `json:"id"`
	Email  *string `json:"email"`
	UnitID *string `json:"unit_id"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	Role        string   `json:"role"` // admin|manager|resident
	Permissions []string `json:"permissions"`
	AnyUnit     bool     `json:"any_unit"`
}
