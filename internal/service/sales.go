package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-pos-inventory/internal/ledger"
	"go-pos-inventory/internal/models"
)

// DefaultCustomerName is used when a checkout does not name the customer.
const DefaultCustomerName = "Walk-in Customer"

// CompleteSale takes the cart off the shelf and records the invoice for it.
// Either both happen or neither does.
func (s *Shop) CompleteSale(ctx context.Context, customerName string, lines []models.SaleLine) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(customerName) == "" {
		customerName = DefaultCustomerName
	}
	inv := models.Invoice{CustomerName: customerName}

	for _, line := range lines {
		line.Barcode = strings.TrimSpace(line.Barcode)
		p, ok := s.catalog.Find(line.Barcode)
		if !ok {
			SalesRejected.WithLabelValues("not_found").Inc()
			return models.Invoice{}, notFound(line.Barcode)
		}
		inv.Items = append(inv.Items, models.InvoiceItem{
			ProductName: p.Name,
			Quantity:    line.Quantity,
			Price:       p.Price,
		})
	}

	if err := s.catalog.ApplySale(trimmed(lines)); err != nil {
		SalesRejected.WithLabelValues(rejectReason(err)).Inc()
		return models.Invoice{}, err
	}

	saved, err := s.ledger.Append(inv)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("record invoice after sale: %w", err)
	}
	s.persist(ctx, "CompleteSale")

	SalesTotal.Inc()
	SalesRevenue.Add(saved.Total.InexactFloat64())
	s.log.WithField("invoice", saved.InvoiceNumber).Infof("sale completed, total %s", saved.Total.StringFixed(2))
	return saved, nil
}

// SaveInvoice records a manually written invoice. Stock is not touched.
func (s *Shop) SaveInvoice(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.ledger.Append(inv)
	if err != nil {
		return models.Invoice{}, err
	}
	s.persist(ctx, "SaveInvoice")
	return saved, nil
}

func (s *Shop) Invoices() []models.Invoice {
	return s.ledger.List()
}

func (s *Shop) NextInvoiceNumber() string {
	return s.ledger.NextInvoiceNumber()
}

// SalesSummary totals invoices dated within [from, to]. Empty bounds are open.
func (s *Shop) SalesSummary(from, to string) (ledger.SalesSummary, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return ledger.SalesSummary{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", models.ErrValidation, d)
		}
	}
	if from != "" && to != "" && from > to {
		return ledger.SalesSummary{}, fmt.Errorf("%w: from is after to", models.ErrValidation)
	}
	return s.ledger.Summary(from, to), nil
}

func trimmed(lines []models.SaleLine) []models.SaleLine {
	out := make([]models.SaleLine, len(lines))
	for i, line := range lines {
		out[i] = models.SaleLine{Barcode: strings.TrimSpace(line.Barcode), Quantity: line.Quantity}
	}
	return out
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, models.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, models.ErrProductNotFound):
		return "not_found"
	default:
		return "invalid"
	}
}
