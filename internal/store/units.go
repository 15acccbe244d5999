package store

import (
	"context"
	"fmt"

	"parking-app/internal/domain/units"

	"gorm.io/gorm"
)

func GetUnit(ctx context.Context, db *gorm.DB, id string) (*units.Unit, error) {
	var u units.Unit
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func ListUnits(ctx context.Context, db *gorm.DB, associationID string) ([]units.Unit, error) {
	q := db.WithContext(ctx).Model(&units.Unit{})
	if associationID != "" {
		q = q.Where("association_id = ?", associationID)
	}

	var list []units.Unit
	if err := q.Order("unit_number ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// CreateUnit inserts u after checking its association exists.
func CreateUnit(ctx context.Context, db *gorm.DB, u *units.Unit) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := GetAssociation(ctx, tx, u.AssociationID); err != nil {
			return err
		}
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("create unit: %w", err)
		}
		return nil
	})
}
