package store

import (
	"parking-app/internal/domain/permits"

	"gorm.io/gorm"
)

func unitPermitsQuery(db *gorm.DB, unitID string) *gorm.DB {
	return db.Model(&permits.Permit{}).
		Where("unit_id = ?", unitID)
}

// storedActiveQuery narrows to rows whose stored flag is ACTIVE; callers still
// run the status resolver because the flag may be stale.
func storedActiveQuery(db *gorm.DB, unitID string) *gorm.DB {
	return unitPermitsQuery(db, unitID).
		Where("status = ?", permits.StatusActive)
}
