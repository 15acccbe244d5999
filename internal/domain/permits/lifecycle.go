package permits

import (
	"errors"
	"fmt"
)

var (
	ErrCapReached        = errors.New("permit cap reached")
	ErrPermitRevoked     = errors.New("permit is revoked")
	ErrInvalidTransition = errors.New("invalid permit status transition")
	ErrInvalidType       = errors.New("invalid permit type")
	ErrExpiryNotInFuture = errors.New("permit expiry must be in the future")
)

// Transition validates moving a stored status to target. changed is false
// when the write would be a no-op (expiring an already expired permit).
//
//	ACTIVE  -> EXPIRED | REVOKED
//	EXPIRED -> REVOKED (EXPIRED again is a no-op)
//	REVOKED -> nothing
func Transition(from, to Status) (changed bool, err error) {
	from = NormalizeStatus(string(from))
	to = NormalizeStatus(string(to))

	if from == StatusRevoked {
		return false, ErrPermitRevoked
	}
	if from != StatusActive && from != StatusExpired {
		return false, fmt.Errorf("%w: unknown stored status %q", ErrInvalidTransition, from)
	}

	switch to {
	case StatusExpired:
		return from == StatusActive, nil
	case StatusRevoked:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
}
