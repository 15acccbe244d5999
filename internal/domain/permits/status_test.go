package permits_test

import (
	"testing"
	"time"

	"parking-app/internal/domain/permits"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func permit(status permits.Status, expires *time.Time) *permits.Permit {
	return &permits.Permit{ID: "p", Type: permits.TypeResident, Status: status, ExpiresAt: expires}
}

func TestIsActive(t *testing.T) {
	cases := []struct {
		name string
		p    *permits.Permit
		want bool
	}{
		{"nil permit", nil, false},
		{"active without expiry", permit(permits.StatusActive, nil), true},
		{"active expiring later", permit(permits.StatusActive, at(time.Second)), true},
		{"active expiring exactly now", permit(permits.StatusActive, at(0)), false},
		{"active expired a tick ago", permit(permits.StatusActive, at(-time.Nanosecond)), false},
		{"stored expired", permit(permits.StatusExpired, at(time.Hour)), false},
		{"revoked without expiry", permit(permits.StatusRevoked, nil), false},
		{"lower-case stored status", permit("active", nil), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, permits.IsActive(tc.p, now))
		})
	}
}

func TestIsExpired(t *testing.T) {
	cases := []struct {
		name string
		p    *permits.Permit
		want bool
	}{
		{"nil permit", nil, false},
		{"stored expired without expiry", permit(permits.StatusExpired, nil), true},
		{"stored expired with future expiry", permit(permits.StatusExpired, at(time.Hour)), true},
		{"active expiring exactly now", permit(permits.StatusActive, at(0)), true},
		{"active expired in the past", permit(permits.StatusActive, at(-time.Second)), true},
		{"active expiring later", permit(permits.StatusActive, at(time.Second)), false},
		{"active without expiry", permit(permits.StatusActive, nil), false},
		{"revoked past expiry", permit(permits.StatusRevoked, at(-time.Hour)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, permits.IsExpired(tc.p, now))
		})
	}
}

func TestDisplayStatus(t *testing.T) {
	cases := []struct {
		name string
		p    *permits.Permit
		want permits.Status
	}{
		{"nil permit", nil, permits.StatusUnknown},
		{"active", permit(permits.StatusActive, at(time.Hour)), permits.StatusActive},
		{"active one second past expiry", permit(permits.StatusActive, at(-time.Second)), permits.StatusExpired},
		{"revoked past expiry", permit(permits.StatusRevoked, at(-time.Second)), permits.StatusRevoked},
		{"revoked before expiry", permit(permits.StatusRevoked, at(time.Hour)), permits.StatusRevoked},
		{"stored expired", permit(permits.StatusExpired, nil), permits.StatusExpired},
		{"unrecognised status passes through", permit("SUSPENDED", nil), permits.Status("SUSPENDED")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, permits.DisplayStatus(tc.p, now))
		})
	}
}

func TestDisplayStatus_ExpiryObservedLater(t *testing.T) {
	expires := now
	p := permit(permits.StatusActive, &expires)
	later := expires.Add(time.Second)

	require.Equal(t, permits.StatusExpired, permits.DisplayStatus(p, later))

	p.Status = permits.StatusRevoked
	require.Equal(t, permits.StatusRevoked, permits.DisplayStatus(p, later))
}

func fixture() []permits.Permit {
	return []permits.Permit{
		{ID: "active", Status: permits.StatusActive},
		{ID: "active-future", Status: permits.StatusActive, ExpiresAt: at(time.Hour)},
		{ID: "active-lapsed", Status: permits.StatusActive, ExpiresAt: at(-time.Hour)},
		{ID: "expired", Status: permits.StatusExpired},
		{ID: "revoked", Status: permits.StatusRevoked, ExpiresAt: at(-time.Hour)},
	}
}

func ids(list []permits.Permit) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterByStatus(t *testing.T) {
	all := fixture()

	cases := []struct {
		filter string
		want   []string
	}{
		{permits.FilterAll, []string{"active", "active-future", "active-lapsed", "expired", "revoked"}},
		{permits.FilterActive, []string{"active", "active-future"}},
		{permits.FilterExpired, []string{"active-lapsed", "expired"}},
		{permits.FilterRevoked, []string{"revoked"}},
		{"bogus", []string{"active", "active-future", "active-lapsed", "expired", "revoked"}},
		{"", []string{"active", "active-future", "active-lapsed", "expired", "revoked"}},
	}
	for _, tc := range cases {
		t.Run("filter="+tc.filter, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(permits.FilterByStatus(all, tc.filter, now)))
		})
	}
}

func TestFilterByStatus_Idempotent(t *testing.T) {
	once := permits.FilterByStatus(fixture(), permits.FilterActive, now)
	twice := permits.FilterByStatus(once, permits.FilterActive, now)
	assert.Equal(t, once, twice)
}

func TestFilterByStatus_DoesNotMutateInput(t *testing.T) {
	all := fixture()
	_ = permits.FilterByStatus(all, permits.FilterExpired, now)
	assert.Equal(t, fixture(), all)
}
