package jobs

import (
	"context"
	"testing"
	"time"

	"parking-app/internal/domain/associations"
	"parking-app/internal/domain/permits"
	"parking-app/internal/store"
	"parking-app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpirySweep_Run(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	a := testutil.SeedAssociation(t, db, associations.Association{})
	u := testutil.SeedUnit(t, db, a.ID, "2B", nil)

	clock := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	p := testutil.SeedPermit(t, db, permits.Permit{
		UnitID:    u.ID,
		Type:      permits.TypeVisitor,
		ExpiresAt: testutil.TimePtr(clock.Add(30 * time.Minute)),
	})

	sweep := NewExpirySweep(db, func() time.Time { return clock })

	n, err := sweep.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	clock = clock.Add(time.Hour)
	n, err = sweep.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = sweep.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	got, err := store.GetPermit(ctx, db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, permits.StatusExpired, got.Status)
}

func TestSchedule(t *testing.T) {
	db := testutil.NewTestDB(t)
	sweep := NewExpirySweep(db, nil)

	c, err := Schedule("@every 15m", sweep)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = Schedule("not a schedule", sweep)
	assert.Error(t, err)
}
