package units

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Unit struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	AssociationID string `gorm:"type:varchar(36);not null;index" json:"association_id"`
	UnitNumber    string `gorm:"not null" json:"unit_number"`
	Bedrooms      *int   `gorm:"column:bedrooms" json:"bedrooms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// EffectiveBedrooms floors the bedroom count at 1 so a per-bedroom policy
// never yields a zero allocation by accident.
func EffectiveBedrooms(bedrooms *int) int {
	if bedrooms == nil || *bedrooms < 1 {
		return 1
	}
	return *bedrooms
}
