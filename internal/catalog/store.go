package catalog

import (
	"strings"
	"sync"

	"go-pos-inventory/internal/models"
)

// Store is the in-memory catalog keyed by barcode. Products keep their
// insertion order; a barcode appears at most once.
type Store struct {
	mu       sync.Mutex
	products []models.Product
	index    map[string]int
}

// NewStore builds a store from an initial product list (later duplicates win).
func NewStore(products []models.Product) *Store {
	s := &Store{}
	s.reset(products)
	return s
}

// Upsert adds a product or, when the barcode is already known, overwrites its
// details and adds the candidate's stock to what is on the shelf.
func (s *Store) Upsert(candidate models.Product) (models.Product, error) {
	candidate = normalize(candidate)
	if err := candidate.Validate(); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[candidate.Barcode]
	if !ok {
		s.index[candidate.Barcode] = len(s.products)
		s.products = append(s.products, candidate)
		return candidate, nil
	}

	existing := s.products[i]
	existing.Name = candidate.Name
	existing.Price = candidate.Price
	existing.Units = candidate.Units
	existing.Category = candidate.Category
	existing.Stock += candidate.Stock
	s.products[i] = existing
	return existing, nil
}

// Remove deletes a product. Unknown barcodes are ignored.
func (s *Store) Remove(barcode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[barcode]
	if !ok {
		return
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	s.reindex()
}

// Find looks a product up by exact barcode.
func (s *Store) Find(barcode string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[barcode]
	if !ok {
		return models.Product{}, false
	}
	return s.products[i], true
}

// List returns a copy of the catalog in insertion order.
func (s *Store) List() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len reports how many products are in the catalog.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

// Replace swaps the whole catalog, used when a database backup is restored.
func (s *Store) Replace(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(products)
}

func (s *Store) reset(products []models.Product) {
	s.products = make([]models.Product, 0, len(products))
	s.index = make(map[string]int, len(products))
	for _, p := range products {
		s.put(normalize(p))
	}
}

// put inserts or fully replaces by barcode. Caller holds mu.
func (s *Store) put(p models.Product) {
	if i, ok := s.index[p.Barcode]; ok {
		s.products[i] = p
		return
	}
	s.index[p.Barcode] = len(s.products)
	s.products = append(s.products, p)
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.products))
	for i, p := range s.products {
		s.index[p.Barcode] = i
	}
}

func normalize(p models.Product) models.Product {
	p.Barcode = strings.TrimSpace(p.Barcode)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = models.ParseCategory(string(p.Category))
	return p
}
