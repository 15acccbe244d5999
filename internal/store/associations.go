package store

import (
	"context"
	"fmt"

	"parking-app/internal/domain/associations"

	"gorm.io/gorm"
)

func GetAssociation(ctx context.Context, db *gorm.DB, id string) (*associations.Association, error) {
	var a associations.Association
	if err := db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func ListAssociations(ctx context.Context, db *gorm.DB) ([]associations.Association, error) {
	var list []associations.Association
	if err := db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func CreateAssociation(ctx context.Context, db *gorm.DB, a *associations.Association) error {
	if err := associations.ValidatePolicy(associations.PolicyOf(a)); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create association: %w", err)
	}
	return nil
}

// UpdateAssociationPolicy replaces every policy column, so a nil field in p
// clears the stored value back to its default.
func UpdateAssociationPolicy(ctx context.Context, db *gorm.DB, id string, p associations.Policy) (*associations.Association, error) {
	if err := associations.ValidatePolicy(p); err != nil {
		return nil, err
	}

	var out *associations.Association
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := GetAssociation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(a).Updates(map[string]interface{}{
			"permit_rule_type":         p.PermitRuleType,
			"permits_per_count":        p.PermitsPerCount,
			"max_permits_per_unit":     p.MaxPermitsPerUnit,
			"allow_additional_permits": p.AllowAdditionalPermits,
			"max_visitor_permits":      p.MaxVisitorPermits,
		}).Error; err != nil {
			return fmt.Errorf("update association policy: %w", err)
		}
		out, err = GetAssociation(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
