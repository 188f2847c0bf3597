package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-pos-inventory/internal/auth"
	"go-pos-inventory/internal/models"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newGuard(t *testing.T, clock *fakeClock, opts ...auth.Option) *auth.Guard {
	t.Helper()
	admin, err := auth.NewUser("admin", "admin123", models.RoleAdmin, bcrypt.MinCost)
	require.NoError(t, err)
	sales, err := auth.NewUser("user", "user123", models.RoleSales, bcrypt.MinCost)
	require.NoError(t, err)

	opts = append([]auth.Option{auth.WithDelay(0), auth.WithClock(clock.Now)}, opts...)
	return auth.NewGuard([]models.User{admin, sales}, opts...)
}

func TestGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("Authenticate_SucceedsWithCorrectPassword", func(t *testing.T) {
		g := newGuard(t, &fakeClock{now: time.Now()})

		p, err := g.Authenticate(ctx, "user", "user123")
		require.NoError(t, err)
		require.Equal(t, models.Principal{Username: "user", Role: models.RoleSales}, p)
	})

	t.Run("Authenticate_UnknownUserKeepsNoState", func(t *testing.T) {
		g := newGuard(t, &fakeClock{now: time.Now()})

		for i := 0; i < 5; i++ {
			_, err := g.Authenticate(ctx, "ghost", "x")
			require.ErrorIs(t, err, auth.ErrInvalidCredentials)
			require.NotErrorIs(t, err, auth.ErrAccountLockedNow)
		}
		_, _, ok := g.State("ghost")
		require.False(t, ok)
	})

	t.Run("Authenticate_ReportsAttemptsRemaining", func(t *testing.T) {
		g := newGuard(t, &fakeClock{now: time.Now()})

		_, err := g.Authenticate(ctx, "admin", "wrong")
		var invalid *auth.InvalidCredentialsError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, 2, invalid.AttemptsRemaining)
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)

		_, err = g.Authenticate(ctx, "admin", "wrong")
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, 1, invalid.AttemptsRemaining)
	})

	t.Run("Authenticate_LocksAfterThreeFailuresForConfiguredDuration", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)}
		g := newGuard(t, clock)

		for i := 0; i < 2; i++ {
			_, err := g.Authenticate(ctx, "admin", "wrong")
			require.ErrorIs(t, err, auth.ErrInvalidCredentials)
		}
		_, err := g.Authenticate(ctx, "admin", "wrong")
		require.ErrorIs(t, err, auth.ErrAccountLockedNow)

		attempts, until, _ := g.State("admin")
		require.Equal(t, 3, attempts)
		require.Equal(t, clock.now.Add(2*time.Minute), until)

		// a fourth attempt during the lockout is refused and not counted, even with the right password
		clock.Advance(30 * time.Second)
		_, err = g.Authenticate(ctx, "admin", "admin123")
		var locked *auth.AccountLockedError
		require.ErrorAs(t, err, &locked)
		require.Equal(t, 90, locked.RemainingSeconds())
		require.ErrorIs(t, err, auth.ErrAccountLocked)

		attempts, _, _ = g.State("admin")
		require.Equal(t, 3, attempts)

		// one instant before expiry still locked
		clock.Advance(90*time.Second - time.Millisecond)
		_, err = g.Authenticate(ctx, "admin", "admin123")
		require.ErrorAs(t, err, &locked)
		require.Equal(t, 1, locked.RemainingSeconds())

		clock.Advance(time.Millisecond)
		p, err := g.Authenticate(ctx, "admin", "admin123")
		require.NoError(t, err)
		require.Equal(t, models.RoleAdmin, p.Role)

		attempts, until, _ = g.State("admin")
		require.Zero(t, attempts)
		require.True(t, until.IsZero())
	})

	t.Run("Authenticate_LockoutIsPerUser", func(t *testing.T) {
		g := newGuard(t, &fakeClock{now: time.Now()}, auth.WithMaxAttempts(1))

		_, err := g.Authenticate(ctx, "admin", "wrong")
		require.ErrorIs(t, err, auth.ErrAccountLockedNow)

		_, err = g.Authenticate(ctx, "user", "user123")
		require.NoError(t, err)
	})

	t.Run("Authenticate_SuccessResetsCounter", func(t *testing.T) {
		g := newGuard(t, &fakeClock{now: time.Now()})

		_, _ = g.Authenticate(ctx, "user", "bad")
		_, _ = g.Authenticate(ctx, "user", "bad")
		_, err := g.Authenticate(ctx, "user", "user123")
		require.NoError(t, err)

		attempts, _, _ := g.State("user")
		require.Zero(t, attempts)
	})

	t.Run("Authenticate_CancelledDuringDelayLeavesStateUntouched", func(t *testing.T) {
		g := newGuard(t, &fakeClock{now: time.Now()}, auth.WithDelay(time.Hour))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := g.Authenticate(cancelled, "user", "bad")
		require.True(t, errors.Is(err, context.Canceled))

		attempts, _, _ := g.State("user")
		require.Zero(t, attempts)
	})

	t.Run("Authenticate_WaitsForDelay", func(t *testing.T) {
		g := newGuard(t, &fakeClock{now: time.Now()}, auth.WithDelay(20*time.Millisecond))

		start := time.Now()
		_, err := g.Authenticate(ctx, "user", "user123")
		require.NoError(t, err)
		require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("Authenticate_DelayDoesNotBlockOtherAccounts", func(t *testing.T) {
		delay := 300 * time.Millisecond
		g := newGuard(t, &fakeClock{now: time.Now()}, auth.WithDelay(delay))

		var wg sync.WaitGroup
		errs := make([]error, 2)
		start := time.Now()
		for i, creds := range [][2]string{{"user", "bad"}, {"admin", "admin123"}} {
			wg.Add(1)
			go func(i int, username, password string) {
				defer wg.Done()
				_, errs[i] = g.Authenticate(ctx, username, password)
			}(i, creds[0], creds[1])
		}
		wg.Wait()

		require.Less(t, time.Since(start), 2*delay)
		require.Error(t, errs[0])
		require.NoError(t, errs[1])
	})

	t.Run("Authenticate_SameAccountAttemptsAreSerialized", func(t *testing.T) {
		delay := 50 * time.Millisecond
		g := newGuard(t, &fakeClock{now: time.Now()}, auth.WithDelay(delay))

		var wg sync.WaitGroup
		start := time.Now()
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = g.Authenticate(ctx, "user", "bad")
			}()
		}
		wg.Wait()

		require.GreaterOrEqual(t, time.Since(start), 2*delay)
		attempts, _, _ := g.State("user")
		require.Equal(t, 2, attempts)
	})
}

func TestTokenIssuer(t *testing.T) {
	t.Run("GenerateToken_RoundTrips", func(t *testing.T) {
		issuer := auth.NewTokenIssuer("test-secret", time.Hour)

		token, err := issuer.GenerateToken(models.Principal{Username: "admin", Role: models.RoleAdmin})
		require.NoError(t, err)

		claims, err := issuer.ValidateToken(token)
		require.NoError(t, err)
		require.Equal(t, "admin", claims.Username)
		require.Equal(t, models.RoleAdmin, claims.Role)
	})

	t.Run("ValidateToken_RejectsForeignSignature", func(t *testing.T) {
		token, err := auth.NewTokenIssuer("one", time.Hour).GenerateToken(models.Principal{Username: "admin", Role: models.RoleAdmin})
		require.NoError(t, err)

		_, err = auth.NewTokenIssuer("two", time.Hour).ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("ValidateToken_RejectsExpired", func(t *testing.T) {
		issuer := auth.NewTokenIssuer("secret", -time.Minute)
		token, err := issuer.GenerateToken(models.Principal{Username: "user", Role: models.RoleSales})
		require.NoError(t, err)

		_, err = issuer.ValidateToken(token)
		require.Error(t, err)
	})
}
