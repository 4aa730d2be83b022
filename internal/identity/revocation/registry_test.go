package revocation

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, *time.Time) {
	t.Helper()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	r := NewRegistry(slog.Default(), time.Minute)
	r.Now = func() time.Time { return now }
	return r, &now
}

func TestRevokeAndIsRevoked(t *testing.T) {
	t.Parallel()

	r, now := newTestRegistry(t)

	r.Revoke("tok-a", now.Add(15*time.Minute))
	require.True(t, r.IsRevoked("tok-a"))
	require.False(t, r.IsRevoked("tok-never-seen"))

	// Revoking again just overwrites.
	r.Revoke("tok-a", now.Add(20*time.Minute))
	require.True(t, r.IsRevoked("tok-a"))
}

func TestIsRevokedExpiresLazily(t *testing.T) {
	t.Parallel()

	r, now := newTestRegistry(t)
	r.Revoke("tok-a", now.Add(15*time.Minute))

	*now = now.Add(15 * time.Minute) // exactly at expiry: no longer revoked
	require.False(t, r.IsRevoked("tok-a"))
	require.Zero(t, r.Len())

	// The lazy delete means a later lookup misses entirely.
	require.False(t, r.IsRevoked("tok-a"))
}

func TestSweepRemovesOnlyExpiredEntries(t *testing.T) {
	t.Parallel()

	r, now := newTestRegistry(t)
	r.Revoke("expired-1", now.Add(time.Minute))
	r.Revoke("expired-2", now.Add(2*time.Minute))
	r.Revoke("live", now.Add(time.Hour))

	*now = now.Add(5 * time.Minute)
	r.Sweep()

	require.Equal(t, 1, r.Len())
	require.True(t, r.IsRevoked("live"))
}

func TestStartStopLifecycle(t *testing.T) {
	t.Parallel()

	r := NewRegistry(slog.Default(), 10*time.Millisecond)
	r.Start()
	r.Revoke("tok", time.Now().Add(time.Hour))
	r.Stop()

	require.True(t, r.IsRevoked("tok"))
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRegistry(slog.Default(), time.Minute)
	expiry := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.Revoke(string(rune('a'+n))+"-token", expiry)
			}
		}(i)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				r.IsRevoked(string(rune('a'+n)) + "-token")
				r.Sweep()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 8, r.Len())
}
