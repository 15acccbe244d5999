package permits

import (
	"time"

	"parking-app/internal/domain/permits"
)

func BuildCapsDTO(r permits.CapsResult) CapsDTO {
	return CapsDTO{
		BaselineResident: r.BaselineResident,
		MaxResident:      r.Resident.Max,
		MaxVisitor:       r.Visitor.Max,
		Current: CurrentDTO{
			Resident: r.Resident.Count,
			Visitor:  r.Visitor.Count,
			Total:    r.Resident.Count + r.Visitor.Count,
		},
		Availability: AvailabilityDTO{
			CanIssueResident:  r.Resident.CanIssue(),
			CanIssueVisitor:   r.Visitor.CanIssue(),
			ResidentRemaining: r.Resident.Remaining(),
			VisitorRemaining:  r.Visitor.Remaining(),
		},
	}
}

func BuildPermitDTO(p permits.Permit, now time.Time) PermitDTO {
	return PermitDTO{
		ID:                 p.ID,
		UnitID:             p.UnitID,
		Type:               string(p.Type),
		Status:             string(p.Status),
		DisplayStatus:      string(permits.DisplayStatus(&p, now)),
		ExpiresAt:          p.ExpiresAt,
		Plate:              p.Plate,
		VehicleDescription: p.VehicleDescription,
		HolderName:         p.HolderName,
		IssuedBy:           p.IssuedBy,
		RevokedAt:          p.RevokedAt,
		RevokedBy:          p.RevokedBy,
		RevokeReason:       p.RevokeReason,
		CreatedAt:          p.CreatedAt,
	}
}

func BuildPermitListDTO(filter string, list []permits.Permit, now time.Time) PermitListDTO {
	out := PermitListDTO{Filter: filter, Permits: make([]PermitDTO, 0, len(list))}
	for _, p := range list {
		out.Permits = append(out.Permits, BuildPermitDTO(p, now))
	}
	return out
}
