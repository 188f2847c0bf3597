package service

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"go-pos-inventory/internal/files"
)

// ExportDatabase writes the whole-database document.
func (s *Shop) ExportDatabase(w io.Writer) error {
	return files.WriteDatabase(w, s.Snapshot())
}

// ImportDatabase replaces the catalog and the ledger with a database
// document. A document that fails to decode leaves the current state as is.
func (s *Shop) ImportDatabase(ctx context.Context, r io.Reader) error {
	snap, err := files.ReadDatabase(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog.Replace(snap.Products)
	s.ledger.Replace(snap.Invoices)
	s.persist(ctx, "ImportDatabase")

	s.log.WithFields(logrus.Fields{
		"products": len(snap.Products),
		"invoices": len(snap.Invoices),
	}).Info("database imported")
	return nil
}
