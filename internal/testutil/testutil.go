// Package testutil holds fixtures shared by package tests: an in-memory
// database, seeded rows and signed bearer tokens.
package testutil

import (
	"testing"
	"time"

	"parking-app/database"
	"parking-app/internal/domain/associations"
	"parking-app/internal/domain/permits"
	"parking-app/internal/domain/units"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const JWTSecret = "test-secret"

// NewTestDB creates a migrated in-memory SQLite database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", "file::memory:")
	require.NoError(t, err, "failed to create test database")
	require.NoError(t, database.Migrate(db), "failed to run migrations")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func IntPtr(v int) *int              { return &v }
func BoolPtr(v bool) *bool           { return &v }
func StrPtr(v string) *string        { return &v }
func TimePtr(v time.Time) *time.Time { return &v }

func SeedAssociation(t *testing.T, db *gorm.DB, a associations.Association) *associations.Association {
	t.Helper()
	if a.Name == "" {
		a.Name = "Maple Court HOA"
	}
	require.NoError(t, db.Create(&a).Error)
	return &a
}

func SeedUnit(t *testing.T, db *gorm.DB, associationID, number string, bedrooms *int) *units.Unit {
	t.Helper()
	u := units.Unit{AssociationID: associationID, UnitNumber: number, Bedrooms: bedrooms}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func SeedPermit(t *testing.T, db *gorm.DB, p permits.Permit) *permits.Permit {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return &p
}

// Token signs an HMAC bearer token the way the auth provider would.
func Token(t *testing.T, subject, role, unitID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": subject + "@example.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if unitID != "" {
		claims["unit_id"] = unitID
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(JWTSecret))
	require.NoError(t, err)
	return signed
}
