package permits

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
	StatusRevoked Status = "REVOKED"

	// StatusUnknown is only ever returned by DisplayStatus for a nil permit.
	StatusUnknown Status = "UNKNOWN"
)

type Type string

const (
	TypeResident   Type = "resident"
	TypeVisitor    Type = "visitor"
	TypeAdditional Type = "additional"
)

type Permit struct {
	ID     string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UnitID string `gorm:"type:varchar(36);not null;index:idx_permits_unit_status,priority:1" json:"unit_id"`

	Type      Type       `gorm:"type:varchar(20);not null" json:"type"`
	Status    Status     `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_permits_unit_status,priority:2" json:"status"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index" json:"expires_at"`

	Plate              string `json:"plate"`
	VehicleDescription string `json:"vehicle_description"`
	HolderName         string `json:"holder_name"`
	IssuedBy           string `json:"issued_by"`

	RevokedAt    *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	RevokedBy    *string    `gorm:"column:revoked_by" json:"revoked_by,omitempty"`
	RevokeReason *string    `gorm:"column:revoke_reason" json:"revoke_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Permit) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return nil
}

func (p *Permit) BeforeSave(tx *gorm.DB) error {
	if p.Status != "" {
		p.Status = NormalizeStatus(string(p.Status))
	}
	if p.Type != "" {
		p.Type = NormalizeType(string(p.Type))
	}
	return nil
}

// NormalizeStatus upper-cases a stored or client-supplied status. Older rows
// and some clients use lower-case "active"; everything past the boundary is
// compared against the upper-case constants.
func NormalizeStatus(s string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(s)))
}

func NormalizeType(s string) Type {
	return Type(strings.ToLower(strings.TrimSpace(s)))
}

func (t Type) Valid() bool {
	switch t {
	case TypeResident, TypeVisitor, TypeAdditional:
		return true
	}
	return false
}

// CountsAsResident reports whether t is charged against the resident cap.
func (t Type) CountsAsResident() bool {
	return t == TypeResident || t == TypeAdditional
}
