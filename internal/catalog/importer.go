package catalog

import (
	"fmt"

	"go-pos-inventory/internal/models"
)

// ImportMany merges a parsed batch into the catalog. Unlike Upsert, an import
// is an authoritative snapshot of those items: every field is replaced,
// stock included, and a barcode repeated in the batch takes its last value.
// The batch is all-or-nothing: one invalid record rejects it.
func (s *Store) ImportMany(candidates []models.Product) error {
	batch := make([]models.Product, 0, len(candidates))
	for i, c := range candidates {
		c = normalize(c)
		if err := c.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		batch = append(batch, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range batch {
		s.put(c)
	}
	return nil
}
