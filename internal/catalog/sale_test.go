package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-pos-inventory/internal/catalog"
	"go-pos-inventory/internal/models"
)

func TestApplySale(t *testing.T) {
	newStore := func() *catalog.Store {
		return catalog.NewStore([]models.Product{
			product("A1", "Milk", "5.00", 1, 10, models.CategoryDairy),
			product("B1", "Bread", "2.00", 1, 4, models.CategoryBakery),
		})
	}

	t.Run("ApplySale_DecrementsEveryLine", func(t *testing.T) {
		store := newStore()

		err := store.ApplySale([]models.SaleLine{{Barcode: "A1", Quantity: 3}, {Barcode: "B1", Quantity: 4}})
		require.NoError(t, err)

		a, _ := store.Find("A1")
		b, _ := store.Find("B1")
		require.Equal(t, 7, a.Stock)
		require.Equal(t, 0, b.Stock)
	})

	t.Run("ApplySale_RejectsOversellWithoutChangingStock", func(t *testing.T) {
		store := newStore()

		err := store.ApplySale([]models.SaleLine{{Barcode: "A1", Quantity: 2}, {Barcode: "B1", Quantity: 5}})
		require.ErrorIs(t, err, models.ErrInsufficientStock)

		a, _ := store.Find("A1")
		b, _ := store.Find("B1")
		require.Equal(t, 10, a.Stock)
		require.Equal(t, 4, b.Stock)
	})

	t.Run("ApplySale_SameCartTwiceCannotGoNegative", func(t *testing.T) {
		store := newStore()
		cart := []models.SaleLine{{Barcode: "A1", Quantity: 6}}

		require.NoError(t, store.ApplySale(cart))
		require.ErrorIs(t, store.ApplySale(cart), models.ErrInsufficientStock)

		a, _ := store.Find("A1")
		require.Equal(t, 4, a.Stock)
	})

	t.Run("ApplySale_SumsRepeatedBarcodes", func(t *testing.T) {
		store := newStore()

		err := store.ApplySale([]models.SaleLine{{Barcode: "B1", Quantity: 3}, {Barcode: "B1", Quantity: 2}})
		require.ErrorIs(t, err, models.ErrInsufficientStock)

		require.NoError(t, store.ApplySale([]models.SaleLine{{Barcode: "B1", Quantity: 1}, {Barcode: "B1", Quantity: 2}}))
		b, _ := store.Find("B1")
		require.Equal(t, 1, b.Stock)
	})

	t.Run("ApplySale_UnknownBarcode", func(t *testing.T) {
		store := newStore()
		err := store.ApplySale([]models.SaleLine{{Barcode: "nope", Quantity: 1}})
		require.ErrorIs(t, err, models.ErrProductNotFound)
	})

	t.Run("ApplySale_RejectsEmptyCartAndNonPositiveQuantity", func(t *testing.T) {
		store := newStore()
		require.ErrorIs(t, store.ApplySale(nil), models.ErrValidation)
		require.ErrorIs(t, store.ApplySale([]models.SaleLine{{Barcode: "A1", Quantity: 0}}), models.ErrValidation)
	})
}
