package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-pos-inventory/internal/database"
	"go-pos-inventory/internal/models"
)

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Products: []models.Product{
			{Barcode: "222", Name: "Bread", Price: decimal.RequireFromString("3.25"), Units: 6, Stock: 10, Category: models.CategoryBakery},
			{Barcode: "111", Name: "Milk", Price: decimal.RequireFromString("12.5"), Units: 1, Stock: 0, Category: models.CategoryDairy},
		},
		Invoices: []models.Invoice{{
			ID:            "INV-1",
			InvoiceNumber: "1",
			CustomerName:  "Walk-in",
			Date:          "2026-03-01",
			Items: []models.InvoiceItem{
				{ID: "a", ProductName: "Milk", Quantity: 2, Price: decimal.RequireFromString("12.5")},
				{ID: "b", ProductName: "Bread", Quantity: 1, Price: decimal.RequireFromString("3.25"), Notes: "sliced"},
			},
			Total: decimal.RequireFromString("28.25"),
		}},
	}
}

func newFileStore(t *testing.T) database.Store {
	g, err := database.NewFileGateway(t.TempDir())
	require.NoError(t, err)
	return g
}

func newGormStore(t *testing.T) database.Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	g, err := database.NewGormGateway(db)
	require.NoError(t, err)
	return g
}

func newRedisStore(t *testing.T) database.Store {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return database.NewRedisGateway(client, "appState")
}

func TestStores(t *testing.T) {
	drivers := map[string]func(*testing.T) database.Store{
		"file":  newFileStore,
		"gorm":  newGormStore,
		"redis": newRedisStore,
	}

	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("Load_EmptyReturnsNil", func(t *testing.T) {
				store := open(t)
				snap, err := store.Load(ctx)
				require.NoError(t, err)
				require.Nil(t, snap)
			})

			t.Run("Save_ThenLoad", func(t *testing.T) {
				store := open(t)
				want := sampleSnapshot()
				require.NoError(t, store.Save(ctx, want))

				got, err := store.Load(ctx)
				require.NoError(t, err)
				require.NotNil(t, got)
				require.Len(t, got.Products, 2)
				require.Equal(t, "222", got.Products[0].Barcode)
				require.Equal(t, "111", got.Products[1].Barcode)
				require.True(t, got.Products[0].Price.Equal(want.Products[0].Price))
				require.Equal(t, models.CategoryBakery, got.Products[0].Category)

				require.Len(t, got.Invoices, 1)
				inv := got.Invoices[0]
				require.Equal(t, "INV-1", inv.ID)
				require.Equal(t, "Walk-in", inv.CustomerName)
				require.True(t, inv.Total.Equal(want.Invoices[0].Total))
				require.Len(t, inv.Items, 2)
				require.Equal(t, "Milk", inv.Items[0].ProductName)
				require.Equal(t, "sliced", inv.Items[1].Notes)
			})

			t.Run("Save_ReplacesPreviousState", func(t *testing.T) {
				store := open(t)
				require.NoError(t, store.Save(ctx, sampleSnapshot()))
				require.NoError(t, store.Save(ctx, models.Snapshot{}))

				got, err := store.Load(ctx)
				require.NoError(t, err)
				require.NotNil(t, got)
				require.Empty(t, got.Products)
				require.Empty(t, got.Invoices)
			})

			t.Run("RememberedUser_Lifecycle", func(t *testing.T) {
				store := open(t)

				name, err := store.RememberedUser(ctx)
				require.NoError(t, err)
				require.Empty(t, name)

				require.NoError(t, store.RememberUser(ctx, "admin"))
				require.NoError(t, store.RememberUser(ctx, "user"))
				name, err = store.RememberedUser(ctx)
				require.NoError(t, err)
				require.Equal(t, "user", name)

				require.NoError(t, store.ForgetUser(ctx))
				require.NoError(t, store.ForgetUser(ctx))
				name, err = store.RememberedUser(ctx)
				require.NoError(t, err)
				require.Empty(t, name)
			})
		})
	}
}

func TestFileGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("Load_CorruptStateIsParseError", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "appState.json"), []byte("{not json"), 0o644))

		g, err := database.NewFileGateway(dir)
		require.NoError(t, err)

		snap, err := g.Load(ctx)
		require.ErrorIs(t, err, models.ErrParse)
		require.Nil(t, snap)
	})

	t.Run("Save_LeavesNoTempFiles", func(t *testing.T) {
		dir := t.TempDir()
		g, err := database.NewFileGateway(dir)
		require.NoError(t, err)
		require.NoError(t, g.Save(ctx, sampleSnapshot()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, "appState.json", entries[0].Name())
	})
}

func TestRedisGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("Load_CorruptValueIsParseError", func(t *testing.T) {
		mr := miniredis.RunT(t)
		require.NoError(t, mr.Set("appState", `{"products": "nope"}`))
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		_, err := database.NewRedisGateway(client, "appState").Load(ctx)
		require.ErrorIs(t, err, models.ErrParse)
	})

	t.Run("Save_FailsWhileLockHeld", func(t *testing.T) {
		mr := miniredis.RunT(t)
		require.NoError(t, mr.Set("appState:lock", "someone-else"))
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		err := database.NewRedisGateway(client, "appState").Save(ctx, sampleSnapshot())
		require.ErrorIs(t, err, models.ErrStorage)
		require.False(t, mr.Exists("appState"))
	})
}
