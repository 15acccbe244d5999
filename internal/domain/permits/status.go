package permits

import "time"

// Filter values accepted by FilterByStatus.
const (
	FilterAll     = "all"
	FilterActive  = "active"
	FilterExpired = "expired"
	FilterRevoked = "revoked"
)

// IsActive reports whether p is effectively active at now. A permit whose
// expiry equals now is already expired.
func IsActive(p *Permit, now time.Time) bool {
	if p == nil || p.Status != StatusActive {
		return false
	}
	if p.ExpiresAt == nil {
		return true
	}
	return p.ExpiresAt.After(now)
}

// IsExpired reports whether p is expired, either by an explicit status write
// or because an ACTIVE permit has reached its expiry. Revoked permits are
// never reported as expired.
func IsExpired(p *Permit, now time.Time) bool {
	if p == nil {
		return false
	}
	if p.Status == StatusExpired {
		return true
	}
	if p.Status == StatusActive && p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return true
	}
	return false
}

// DisplayStatus resolves the status shown to users. Revocation wins over
// expiry, expiry over the stored ACTIVE flag; anything unrecognised is passed
// through as stored.
func DisplayStatus(p *Permit, now time.Time) Status {
	switch {
	case p == nil:
		return StatusUnknown
	case p.Status == StatusRevoked:
		return StatusRevoked
	case IsExpired(p, now):
		return StatusExpired
	case IsActive(p, now):
		return StatusActive
	default:
		return p.Status
	}
}

// FilterByStatus keeps the permits matching filter at now. Unknown filters
// return the input unchanged.
func FilterByStatus(list []Permit, filter string, now time.Time) []Permit {
	var keep func(p *Permit) bool
	switch filter {
	case FilterActive:
		keep = func(p *Permit) bool { return IsActive(p, now) }
	case FilterExpired:
		keep = func(p *Permit) bool { return IsExpired(p, now) }
	case FilterRevoked:
		keep = func(p *Permit) bool { return p.Status == StatusRevoked }
	default:
		return list
	}

	out := make([]Permit, 0, len(list))
	for i := range list {
		if keep(&list[i]) {
			out = append(out, list[i])
		}
	}
	return out
}
