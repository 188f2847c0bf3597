package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"go-pos-inventory/internal/models"
)

func numbered(numbers ...string) []models.Invoice {
	out := make([]models.Invoice, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, models.Invoice{InvoiceNumber: n, CustomerName: "c"})
	}
	return out
}

func item(name string, qty int, price string) models.InvoiceItem {
	return models.InvoiceItem{ProductName: name, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func TestNextInvoiceNumber(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"Empty", nil, "1"},
		{"MaxPlusOne", []string{"3", "1", "7"}, "8"},
		{"NonNumericCountsAsZero", []string{"abc"}, "1"},
		{"LeadingDigitsParse", []string{"12abc", "4"}, "13"},
		{"MixedWithGaps", []string{"2", "x", "10"}, "11"},
	}
	for _, tc := range cases {
		t.Run("NextInvoiceNumber_"+tc.name, func(t *testing.T) {
			l := New(numbered(tc.existing...))
			require.Equal(t, tc.want, l.NextInvoiceNumber())
		})
	}
}

func TestAppend(t *testing.T) {
	fixed := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

	t.Run("Append_ComputesTotalAndFillsDefaults", func(t *testing.T) {
		l := New(nil)
		l.now = func() time.Time { return fixed }

		saved, err := l.Append(models.Invoice{
			CustomerName: "  Salma ",
			Items:        []models.InvoiceItem{item("Milk", 3, "5.00"), item("Bread", 2, "2.25")},
		})
		require.NoError(t, err)
		require.Equal(t, "Salma", saved.CustomerName)
		require.Equal(t, "1", saved.InvoiceNumber)
		require.Equal(t, "2026-10-18", saved.Date)
		require.NotEmpty(t, saved.ID)
		require.True(t, saved.Total.Equal(decimal.RequireFromString("19.50")), saved.Total.String())
		for _, it := range saved.Items {
			require.NotEmpty(t, it.ID)
		}

		next, err := l.Append(models.Invoice{CustomerName: "Omar", Items: []models.InvoiceItem{item("Salt", 1, "5")}})
		require.NoError(t, err)
		require.Equal(t, "2", next.InvoiceNumber)
		require.Equal(t, 2, l.Len())
	})

	t.Run("Append_DropsBlankLines", func(t *testing.T) {
		l := New(nil)

		saved, err := l.Append(models.Invoice{
			CustomerName: "Salma",
			Items: []models.InvoiceItem{
				item("", 1, "3"),
				item("Milk", 0, "5"),
				item("Cheese", 2, "45"),
			},
		})
		require.NoError(t, err)
		require.Len(t, saved.Items, 1)
		require.Equal(t, "Cheese", saved.Items[0].ProductName)
		require.True(t, saved.Total.Equal(decimal.NewFromInt(90)))
	})

	t.Run("Append_RejectsMissingCustomer", func(t *testing.T) {
		l := New(nil)
		_, err := l.Append(models.Invoice{CustomerName: "   ", Items: []models.InvoiceItem{item("Milk", 1, "5")}})
		require.ErrorIs(t, err, models.ErrValidation)
		require.Zero(t, l.Len())
	})

	t.Run("Append_RejectsInvoiceWithoutValidItems", func(t *testing.T) {
		l := New(nil)
		_, err := l.Append(models.Invoice{CustomerName: "Salma", Items: []models.InvoiceItem{item(" ", 2, "5"), item("Milk", -1, "5")}})
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("Append_RejectsNegativePriceAndBadDate", func(t *testing.T) {
		l := New(nil)
		_, err := l.Append(models.Invoice{CustomerName: "Salma", Items: []models.InvoiceItem{item("Milk", 1, "-5")}})
		require.ErrorIs(t, err, models.ErrValidation)

		_, err = l.Append(models.Invoice{CustomerName: "Salma", Date: "18/10/2026", Items: []models.InvoiceItem{item("Milk", 1, "5")}})
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("Append_KeepsExplicitNumberAndOrder", func(t *testing.T) {
		l := New(numbered("7"))

		_, err := l.Append(models.Invoice{InvoiceNumber: "3", CustomerName: "A", Items: []models.InvoiceItem{item("Milk", 1, "5")}})
		require.NoError(t, err)

		list := l.List()
		require.Equal(t, "7", list[0].InvoiceNumber)
		require.Equal(t, "3", list[1].InvoiceNumber)
		require.Equal(t, "8", l.NextInvoiceNumber())
	})

	t.Run("Append_StoredInvoicesCannotBeMutatedByCaller", func(t *testing.T) {
		l := New(nil)
		saved, err := l.Append(models.Invoice{CustomerName: "A", Items: []models.InvoiceItem{item("Milk", 1, "5")}})
		require.NoError(t, err)

		saved.Items[0].ProductName = "Changed"
		list := l.List()
		list[0].Items[0].Quantity = 99

		stored := l.List()[0]
		require.Equal(t, "Milk", stored.Items[0].ProductName)
		require.Equal(t, 1, stored.Items[0].Quantity)
	})
}

func TestSummary(t *testing.T) {
	l := New([]models.Invoice{
		{InvoiceNumber: "1", CustomerName: "a", Date: "2026-10-01", Total: decimal.RequireFromString("10.50")},
		{InvoiceNumber: "2", CustomerName: "b", Date: "2026-10-15", Total: decimal.RequireFromString("4.50")},
		{InvoiceNumber: "3", CustomerName: "c", Date: "2026-11-02", Total: decimal.RequireFromString("100")},
	})

	t.Run("Summary_InclusiveRange", func(t *testing.T) {
		got := l.Summary("2026-10-01", "2026-10-15")
		require.Equal(t, 2, got.TotalCount)
		require.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(15)))
	})

	t.Run("Summary_OpenBounds", func(t *testing.T) {
		got := l.Summary("", "")
		require.Equal(t, 3, got.TotalCount)
		require.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(115)))
	})
}
