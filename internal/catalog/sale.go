package catalog

import (
	"fmt"

	"go-pos-inventory/internal/models"
)

// ApplySale takes a cart's quantities off the shelf. The whole cart is checked
// against current stock under the lock before anything is decremented, so a
// sale either applies completely or not at all and stock never goes negative.
func (s *Store) ApplySale(lines []models.SaleLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: cart is empty", models.ErrValidation)
	}

	wanted := make(map[string]int, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity for %s must be positive", models.ErrValidation, line.Barcode)
		}
		if _, seen := wanted[line.Barcode]; !seen {
			order = append(order, line.Barcode)
		}
		wanted[line.Barcode] += line.Quantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, barcode := range order {
		i, ok := s.index[barcode]
		if !ok {
			return fmt.Errorf("%w: %s", models.ErrProductNotFound, barcode)
		}
		if p := s.products[i]; p.Stock < wanted[barcode] {
			return fmt.Errorf("%w: %s has %d, requested %d", models.ErrInsufficientStock, p.Name, p.Stock, wanted[barcode])
		}
	}
	for _, barcode := range order {
		s.products[s.index[barcode]].Stock -= wanted[barcode]
	}
	return nil
}
