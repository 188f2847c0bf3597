package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"go-pos-inventory/internal/auth"
	"go-pos-inventory/internal/catalog"
	"go-pos-inventory/internal/config"
	"go-pos-inventory/internal/database"
	"go-pos-inventory/internal/ledger"
	"go-pos-inventory/internal/models"
)

const moduleName = "service"

// Shop owns the catalog and the ledger and writes a full snapshot through
// the store after every change.
type Shop struct {
	mu      sync.Mutex
	catalog *catalog.Store
	ledger  *ledger.Ledger
	guard   *auth.Guard
	store   database.Store
	log     logrus.FieldLogger
}

// New restores the last saved state. When nothing is stored, or the stored
// state cannot be read, the shop starts from the seed catalog and an empty
// ledger.
func New(ctx context.Context, store database.Store, guard *auth.Guard, log logrus.FieldLogger) *Shop {
	s := &Shop{
		guard: guard,
		store: store,
		log:   log,
	}

	snap, err := store.Load(ctx)
	switch {
	case err != nil:
		config.LogError(log, moduleName, "New", "stored state unreadable, starting from seed catalog", nil, err)
		snap = nil
	case snap == nil:
		log.Info("no stored state, starting from seed catalog")
	}

	if snap == nil {
		s.catalog = catalog.NewStore(catalog.SeedProducts())
		s.ledger = ledger.New(nil)
		return s
	}

	s.catalog = catalog.NewStore(snap.Products)
	s.ledger = ledger.New(snap.Invoices)
	log.WithFields(logrus.Fields{
		"products": len(snap.Products),
		"invoices": len(snap.Invoices),
	}).Info("restored stored state")
	return s
}

// Snapshot returns the complete current state.
func (s *Shop) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Counts reports how many products and invoices are held.
func (s *Shop) Counts() (products, invoices int) {
	return s.catalog.Len(), s.ledger.Len()
}

func (s *Shop) snapshot() models.Snapshot {
	return models.Snapshot{
		Products: s.catalog.List(),
		Invoices: s.ledger.List(),
	}
}

// persist saves the current state. Caller holds mu. Failures are logged and
// the in-memory state stays authoritative.
func (s *Shop) persist(ctx context.Context, funcName string) {
	if err := s.store.Save(context.WithoutCancel(ctx), s.snapshot()); err != nil {
		StorageErrors.Inc()
		config.LogError(s.log, moduleName, funcName, "failed to save snapshot", nil, err)
	}
}

// Login checks credentials through the guard and updates the remembered
// username on success.
func (s *Shop) Login(ctx context.Context, username, password string, remember bool) (models.Principal, error) {
	principal, err := s.guard.Authenticate(ctx, username, password)
	if err != nil {
		LoginAttempts.WithLabelValues(loginResult(err)).Inc()
		return models.Principal{}, err
	}
	LoginAttempts.WithLabelValues("success").Inc()

	if remember {
		err = s.store.RememberUser(ctx, principal.Username)
	} else {
		err = s.store.ForgetUser(ctx)
	}
	if err != nil {
		config.LogError(s.log, moduleName, "Login", "failed to update remembered user", principal.Username, err)
	}
	return principal, nil
}

// RememberedUser returns the username stored by the last "remember me" login.
func (s *Shop) RememberedUser(ctx context.Context) (string, error) {
	return s.store.RememberedUser(ctx)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, auth.ErrAccountLockedNow):
		return "locked_now"
	case errors.Is(err, auth.ErrAccountLocked):
		return "locked"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid"
	default:
		return "error"
	}
}

func notFound(barcode string) error {
	return fmt.Errorf("%w: %s", models.ErrProductNotFound, barcode)
}
