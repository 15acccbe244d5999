package store

import (
	"context"
	"fmt"
	"time"

	"parking-app/internal/domain/associations"
	"parking-app/internal/domain/permits"
	"parking-app/internal/domain/units"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IssueRequest struct {
	Type               permits.Type
	ExpiresAt          *time.Time
	Plate              string
	VehicleDescription string
	HolderName         string
	IssuedBy           string
}

func GetPermit(ctx context.Context, db *gorm.DB, id string) (*permits.Permit, error) {
	var p permits.Permit
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListPermits returns every permit of a unit, newest first.
func ListPermits(ctx context.Context, db *gorm.DB, unitID string) ([]permits.Permit, error) {
	var list []permits.Permit
	if err := unitPermitsQuery(db.WithContext(ctx), unitID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListActivePermits returns the permits of a unit that are effectively
// active at now.
func ListActivePermits(ctx context.Context, db *gorm.DB, unitID string, now time.Time) ([]permits.Permit, error) {
	var list []permits.Permit
	if err := storedActiveQuery(db.WithContext(ctx), unitID).Find(&list).Error; err != nil {
		return nil, err
	}
	return permits.FilterByStatus(list, permits.FilterActive, now), nil
}

// UnitCaps loads a unit, its association and active permits and computes the
// caps at now.
func UnitCaps(ctx context.Context, db *gorm.DB, unitID string, now time.Time) (permits.CapsResult, error) {
	u, err := GetUnit(ctx, db, unitID)
	if err != nil {
		return permits.CapsResult{}, err
	}
	return capsForUnit(ctx, db, u, now)
}

func capsForUnit(ctx context.Context, db *gorm.DB, u *units.Unit, now time.Time) (permits.CapsResult, error) {
	a, err := GetAssociation(ctx, db, u.AssociationID)
	if err != nil {
		return permits.CapsResult{}, fmt.Errorf("association %s: %w", u.AssociationID, err)
	}
	active, err := ListActivePermits(ctx, db, u.ID, now)
	if err != nil {
		return permits.CapsResult{}, err
	}
	return permits.ComputeCaps(associations.PolicyOf(a), u.Bedrooms, active), nil
}

// IssuePermit creates an ACTIVE permit for unitID if the unit's caps allow
// it. The unit row is locked for the duration of the check-and-insert so two
// concurrent issuances cannot both pass the same under-cap count.
func IssuePermit(ctx context.Context, db *gorm.DB, unitID string, req IssueRequest, now time.Time) (*permits.Permit, permits.CapsResult, error) {
	t := permits.NormalizeType(string(req.Type))
	if !t.Valid() {
		return nil, permits.CapsResult{}, fmt.Errorf("%w: %q", permits.ErrInvalidType, req.Type)
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		return nil, permits.CapsResult{}, permits.ErrExpiryNotInFuture
	}

	var (
		created permits.Permit
		caps    permits.CapsResult
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u units.Unit
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, "id = ?", unitID).Error; err != nil {
			return notFound(err)
		}

		var err error
		caps, err = capsForUnit(ctx, tx, &u, now)
		if err != nil {
			return err
		}
		if !caps.CanIssue(t) {
			return permits.ErrCapReached
		}

		created = permits.Permit{
			UnitID:             u.ID,
			Type:               t,
			Status:             permits.StatusActive,
			ExpiresAt:          utcPtr(req.ExpiresAt),
			Plate:              req.Plate,
			VehicleDescription: req.VehicleDescription,
			HolderName:         req.HolderName,
			IssuedBy:           req.IssuedBy,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("create permit: %w", err)
		}

		if t == permits.TypeVisitor {
			caps.Visitor.Count++
		} else {
			caps.Resident.Count++
		}
		return nil
	})
	if err != nil {
		return nil, caps, err
	}
	return &created, caps, nil
}

// RevokePermit moves a permit to REVOKED. Revoking twice is an error.
func RevokePermit(ctx context.Context, db *gorm.DB, id, by, reason string, now time.Time) (*permits.Permit, error) {
	var out *permits.Permit
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPermit(tx, id)
		if err != nil {
			return err
		}
		if _, err := permits.Transition(p.Status, permits.StatusRevoked); err != nil {
			return err
		}

		revokedAt := now.UTC()
		updates := map[string]interface{}{
			"status":        permits.StatusRevoked,
			"revoked_at":    &revokedAt,
			"revoked_by":    nullable(by),
			"revoke_reason": nullable(reason),
		}
		if err := tx.Model(p).Where("status = ?", p.Status).Updates(updates).Error; err != nil {
			return fmt.Errorf("revoke permit: %w", err)
		}
		out, err = GetPermit(ctx, tx, id)
		return err
	})
	return out, err
}

// ExpirePermit writes EXPIRED for an ACTIVE permit. changed is false when the
// permit was already expired.
func ExpirePermit(ctx context.Context, db *gorm.DB, id string) (*permits.Permit, bool, error) {
	var (
		out     *permits.Permit
		changed bool
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPermit(tx, id)
		if err != nil {
			return err
		}
		changed, err = permits.Transition(p.Status, permits.StatusExpired)
		if err != nil {
			return err
		}
		if !changed {
			out = p
			return nil
		}
		if err := tx.Model(p).Where("status = ?", permits.StatusActive).
			Update("status", permits.StatusExpired).Error; err != nil {
			return fmt.Errorf("expire permit: %w", err)
		}
		out, err = GetPermit(ctx, tx, id)
		return err
	})
	return out, changed, err
}

// ExpireDuePermits flips every ACTIVE permit whose expiry has passed to
// EXPIRED. Running it again with the same now changes nothing.
func ExpireDuePermits(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Model(&permits.Permit{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", permits.StatusActive, now.UTC()).
		Update("status", permits.StatusExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("expire due permits: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func lockPermit(tx *gorm.DB, id string) (*permits.Permit, error) {
	var p permits.Permit
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
