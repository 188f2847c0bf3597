package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"go-pos-inventory/internal/models"
)

const (
	DefaultMaxAttempts     = 3
	DefaultLockoutDuration = 2 * time.Minute
	DefaultLoginDelay      = 500 * time.Millisecond
)

type account struct {
	mu           sync.Mutex
	user         models.User
	attempts     int
	lockoutUntil time.Time
}

// Guard counts failed logins per user and locks an account for a while once
// the limit is reached. Lockouts expire lazily on the next attempt.
// The account set is fixed at construction; each account carries its own lock.
type Guard struct {
	accounts    map[string]*account
	maxAttempts int
	lockout     time.Duration
	delay       time.Duration
	now         func() time.Time
}

// Option tweaks a Guard.
type Option func(*Guard)

func WithMaxAttempts(n int) Option          { return func(g *Guard) { g.maxAttempts = n } }
func WithLockout(d time.Duration) Option    { return func(g *Guard) { g.lockout = d } }
func WithDelay(d time.Duration) Option      { return func(g *Guard) { g.delay = d } }
func WithClock(now func() time.Time) Option { return func(g *Guard) { g.now = now } }

// NewGuard starts every configured user unlocked with zero attempts.
func NewGuard(users []models.User, opts ...Option) *Guard {
	g := &Guard{
		accounts:    make(map[string]*account, len(users)),
		maxAttempts: DefaultMaxAttempts,
		lockout:     DefaultLockoutDuration,
		delay:       DefaultLoginDelay,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, u := range users {
		g.accounts[u.Username] = &account{user: u}
	}
	return g
}

// Authenticate checks a username/password pair. The result is held back for
// the configured delay. Attempts on the same account are serialized through
// the delay; other accounts are not held up. A context that ends during the
// delay leaves state untouched.
func (g *Guard) Authenticate(ctx context.Context, username, password string) (models.Principal, error) {
	acc, ok := g.accounts[username]
	if ok {
		acc.mu.Lock()
		defer acc.mu.Unlock()
	}

	if err := g.wait(ctx); err != nil {
		return models.Principal{}, err
	}
	if !ok {
		return models.Principal{}, ErrInvalidCredentials
	}

	now := g.now()
	if !acc.lockoutUntil.IsZero() && now.Before(acc.lockoutUntil) {
		return models.Principal{}, &AccountLockedError{Remaining: acc.lockoutUntil.Sub(now)}
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.user.PasswordHash), []byte(password)) == nil {
		acc.attempts = 0
		acc.lockoutUntil = time.Time{}
		return models.Principal{Username: acc.user.Username, Role: acc.user.Role}, nil
	}

	acc.attempts++
	if acc.attempts >= g.maxAttempts {
		acc.lockoutUntil = now.Add(g.lockout)
		return models.Principal{}, &AccountLockedNowError{Duration: g.lockout}
	}
	return models.Principal{}, &InvalidCredentialsError{AttemptsRemaining: g.maxAttempts - acc.attempts}
}

func (g *Guard) wait(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(g.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// State reports a user's attempt counter and lockout deadline (zero when none).
func (g *Guard) State(username string) (attempts int, lockoutUntil time.Time, ok bool) {
	acc, ok := g.accounts[username]
	if !ok {
		return 0, time.Time{}, false
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	return acc.attempts, acc.lockoutUntil, true
}
