package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-pos-inventory/internal/models"
)

const dateLayout = "2006-01-02"

// Ledger is the append-only list of saved invoices.
type Ledger struct {
	mu       sync.Mutex
	invoices []models.Invoice
	now      func() time.Time
}

// New creates a ledger holding the given invoices in order.
func New(invoices []models.Invoice) *Ledger {
	l := &Ledger{now: time.Now}
	l.invoices = cloneAll(invoices)
	return l
}

// NextInvoiceNumber derives the next number from the invoices already saved:
// one more than the largest numeric invoice number, "1" for an empty ledger.
func (l *Ledger) NextInvoiceNumber() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextNumber()
}

func (l *Ledger) nextNumber() string {
	if len(l.invoices) == 0 {
		return "1"
	}
	highest := 0
	for _, inv := range l.invoices {
		if n := leadingInt(inv.InvoiceNumber); n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// Append validates and stores an invoice. Blank lines (no product name or a
// non-positive quantity) are dropped; at least one line and a customer name
// are required. The total is recomputed from the lines.
func (l *Ledger) Append(inv models.Invoice) (models.Invoice, error) {
	inv, err := prepare(inv)
	if err != nil {
		return models.Invoice{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if inv.ID == "" {
		inv.ID = "INV-" + uuid.NewString()
	}
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		inv.InvoiceNumber = l.nextNumber()
	}
	if inv.Date == "" {
		inv.Date = l.now().Format(dateLayout)
	}

	l.invoices = append(l.invoices, clone(inv))
	return clone(inv), nil
}

func prepare(inv models.Invoice) (models.Invoice, error) {
	inv.CustomerName = strings.TrimSpace(inv.CustomerName)
	if inv.CustomerName == "" {
		return models.Invoice{}, fmt.Errorf("%w: customer name is required", models.ErrValidation)
	}
	if inv.Date != "" {
		if _, err := time.Parse(dateLayout, inv.Date); err != nil {
			return models.Invoice{}, fmt.Errorf("%w: date must be YYYY-MM-DD", models.ErrValidation)
		}
	}

	items := make([]models.InvoiceItem, 0, len(inv.Items))
	total := decimal.Zero
	for _, item := range inv.Items {
		if strings.TrimSpace(item.ProductName) == "" || item.Quantity <= 0 {
			continue
		}
		if item.Price.IsNegative() {
			return models.Invoice{}, fmt.Errorf("%w: price of %s cannot be negative", models.ErrValidation, item.ProductName)
		}
		if item.ID == "" {
			item.ID = "item-" + uuid.NewString()
		}
		items = append(items, item)
		total = total.Add(item.LineTotal())
	}
	if len(items) == 0 {
		return models.Invoice{}, fmt.Errorf("%w: invoice needs at least one item", models.ErrValidation)
	}

	inv.Items = items
	inv.Total = total
	return inv, nil
}

// List returns the invoices in the order they were saved.
func (l *Ledger) List() []models.Invoice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneAll(l.invoices)
}

// Len reports how many invoices are stored.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.invoices)
}

// Replace swaps the whole ledger, used when a database backup is restored.
func (l *Ledger) Replace(invoices []models.Invoice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.invoices = cloneAll(invoices)
}

// leadingInt mirrors a lenient integer parse: optional sign and leading
// digits, anything unparsable counts as zero.
func leadingInt(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func clone(inv models.Invoice) models.Invoice {
	inv.Items = append([]models.InvoiceItem(nil), inv.Items...)
	return inv
}

func cloneAll(invoices []models.Invoice) []models.Invoice {
	out := make([]models.Invoice, len(invoices))
	for i, inv := range invoices {
		out[i] = clone(inv)
	}
	return out
}
