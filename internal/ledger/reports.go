package ledger

import (
	"github.com/shopspring/decimal"
)

// SalesSummary holds revenue figures for a date range
type SalesSummary struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCount   int             `json:"total_count"`
}

// Summary totals the invoices dated between from and to, both inclusive.
// Dates are YYYY-MM-DD so they compare as strings; an empty bound is open.
func (l *Ledger) Summary(from, to string) SalesSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := SalesSummary{From: from, To: to, TotalRevenue: decimal.Zero}
	for _, inv := range l.invoices {
		if from != "" && inv.Date < from {
			continue
		}
		if to != "" && inv.Date > to {
			continue
		}
		result.TotalRevenue = result.TotalRevenue.Add(inv.Total)
		result.TotalCount++
	}
	return result
}
