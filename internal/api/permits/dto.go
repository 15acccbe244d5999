package permits

import "time"

// ---------- requests

type IssuePermitRequest struct {
	Type string `json:"type"`
	// PermitType is accepted as an alias of Type for older clients.
	PermitType         string     `json:"permit_type"`
	ExpiresAt          *time.Time `json:"expires_at"`
	Plate              string     `json:"plate" binding:"max=16"`
	VehicleDescription string     `json:"vehicle_description" binding:"max=200"`
	HolderName         string     `json:"holder_name" binding:"max=200"`
}

func (r IssuePermitRequest) permitType() string {
	if r.Type != "" {
		return r.Type
	}
	return r.PermitType
}

type RevokePermitRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ---------- responses

// CapsDTO is consumed by the client as-is; keep field names and nullability.
type CapsDTO struct {
	BaselineResident int             `json:"baseline_resident"`
	MaxResident      *int            `json:"max_resident"`
	MaxVisitor       *int            `json:"max_visitor"`
	Current          CurrentDTO      `json:"current"`
	Availability     AvailabilityDTO `json:"availability"`
}

type CurrentDTO struct {
	Resident int `json:"resident"`
	Visitor  int `json:"visitor"`
	Total    int `json:"total"`
}

type AvailabilityDTO struct {
	CanIssueResident  bool `json:"can_issue_resident"`
	CanIssueVisitor   bool `json:"can_issue_visitor"`
	ResidentRemaining *int `json:"resident_remaining"`
	VisitorRemaining  *int `json:"visitor_remaining"`
}

type PermitDTO struct {
	ID                 string     `json:"id"`
	UnitID             string     `json:"unit_id"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	DisplayStatus      string     `json:"display_status"`
	ExpiresAt          *time.Time `json:"expires_at"`
	Plate              string     `json:"plate"`
	VehicleDescription string     `json:"vehicle_description"`
	HolderName         string     `json:"holder_name"`
	IssuedBy           string     `json:"issued_by"`
	RevokedAt          *time.Time `json:"revoked_at,omitempty"`
	RevokedBy          *string    `json:"revoked_by,omitempty"`
	RevokeReason       *string    `json:"revoke_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type PermitListDTO struct {
	Filter  string      `json:"filter"`
	Permits []PermitDTO `json:"permits"`
}

type IssuePermitResponse struct {
	Permit PermitDTO `json:"permit"`
	Caps   CapsDTO   `json:"caps"`
}
