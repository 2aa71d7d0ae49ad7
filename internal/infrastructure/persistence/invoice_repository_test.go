package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/invoiceapp/backend/internal/infrastructure/persistence/models"
	"github.com/invoiceapp/backend/internal/infrastructure/persistence/ownership"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInvoiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.InvoiceModel{}, &models.InvoiceItemModel{})
	require.NoError(t, err)

	return db
}

func newTestInvoice(t *testing.T, ownerID uuid.UUID, status billing.InvoiceStatus, items []billing.ItemInput) *billing.Invoice {
	t.Helper()
	inv, err := billing.NewInvoice(ownerID, uuid.New(), status,
		time.Now().AddDate(0, 1, 0), "USD", false, "", items)
	require.NoError(t, err)
	return inv
}

func TestGormInvoiceRepository_CreateAndFind(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(ownership.NewOwnedDB(db))
	ctx := context.Background()

	ownerID := uuid.New()
	inv := newTestInvoice(t, ownerID, billing.InvoiceStatusDraft, []billing.ItemInput{
		{ProductID: uuid.New(), Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromFloat(9.5)},
	})

	require.NoError(t, repo.Create(ctx, inv))

	found, err := repo.FindByIDForOwner(ctx, ownerID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, found.ID)
	assert.Len(t, found.Items, 2)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(519)),
		"expected 519, got %s", found.TotalAmount)
}

func TestGormInvoiceRepository_FindByIDForOwner_CrossOwner(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(ownership.NewOwnedDB(db))
	ctx := context.Background()

	ownerID := uuid.New()
	inv := newTestInvoice(t, ownerID, billing.InvoiceStatusDraft, nil)
	require.NoError(t, repo.Create(ctx, inv))

	// Another account sees nothing, not a permission error
	found, err := repo.FindByIDForOwner(ctx, uuid.New(), inv.ID)
	assert.Nil(t, found)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormInvoiceRepository_ListForOwner(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(ownership.NewOwnedDB(db))
	ctx := context.Background()

	ownerID := uuid.New()
	otherID := uuid.New()

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.Create(ctx, newTestInvoice(t, ownerID, billing.InvoiceStatusDraft, nil)))
	}
	require.NoError(t, repo.Create(ctx, newTestInvoice(t, ownerID, billing.InvoiceStatusPaid, nil)))
	require.NoError(t, repo.Create(ctx, newTestInvoice(t, otherID, billing.InvoiceStatusSent, nil)))

	t.Run("status filter narrows the page but not the chips", func(t *testing.T) {
		invoices, meta, err := repo.ListForOwner(ctx, ownerID, shared.ListQuery{
			Limit:    10,
			Category: "draft",
		})

		require.NoError(t, err)
		assert.Len(t, invoices, 2)
		assert.Equal(t, int64(2), meta.Total)
		assert.Equal(t, int64(3), meta.Filters["all_count"])
		assert.Equal(t, int64(2), meta.Filters["draft_count"])
		assert.Equal(t, int64(1), meta.Filters["paid_count"])
		assert.Equal(t, int64(0), meta.Filters["sent_count"])
		assert.Equal(t, int64(0), meta.Filters["cancelled_count"])
	})

	t.Run("unknown status yields empty page and zero total", func(t *testing.T) {
		invoices, meta, err := repo.ListForOwner(ctx, ownerID, shared.ListQuery{
			Limit:    10,
			Category: "overdue",
		})

		require.NoError(t, err)
		assert.Empty(t, invoices)
		assert.Equal(t, int64(0), meta.Total)
		assert.Equal(t, int64(3), meta.Filters["all_count"])
	})

	t.Run("other owner's invoices never leak", func(t *testing.T) {
		invoices, meta, err := repo.ListForOwner(ctx, otherID, shared.ListQuery{Limit: 10})

		require.NoError(t, err)
		assert.Len(t, invoices, 1)
		assert.Equal(t, int64(1), meta.Filters["all_count"])
	})
}

func TestGormInvoiceRepository_Update_ReplaceItems(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(ownership.NewOwnedDB(db))
	ctx := context.Background()

	ownerID := uuid.New()
	inv := newTestInvoice(t, ownerID, billing.InvoiceStatusDraft, []billing.ItemInput{
		{ProductID: uuid.New(), Quantity: 5, UnitPrice: decimal.NewFromInt(100)},
	})
	require.NoError(t, repo.Create(ctx, inv))
	oldItemID := inv.Items[0].ID

	require.NoError(t, inv.ReplaceItems([]billing.ItemInput{
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
	}))
	require.NoError(t, repo.Update(ctx, inv, true))

	found, err := repo.FindByIDForOwner(ctx, ownerID, inv.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.NotEqual(t, oldItemID, found.Items[0].ID)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(100)))

	// No orphaned rows survive the swap
	var itemCount int64
	require.NoError(t, db.Model(&models.InvoiceItemModel{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestGormInvoiceRepository_Update_ScalarsOnly(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(ownership.NewOwnedDB(db))
	ctx := context.Background()

	ownerID := uuid.New()
	inv := newTestInvoice(t, ownerID, billing.InvoiceStatusDraft, []billing.ItemInput{
		{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
	})
	require.NoError(t, repo.Create(ctx, inv))

	status := billing.InvoiceStatusPaid
	require.NoError(t, inv.Apply(billing.InvoicePatch{Status: &status}))
	require.NoError(t, repo.Update(ctx, inv, false))

	found, err := repo.FindByIDForOwner(ctx, ownerID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusPaid, found.Status)
	assert.Len(t, found.Items, 1)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(30)))
}

func TestGormInvoiceRepository_DeleteForOwner(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(ownership.NewOwnedDB(db))
	ctx := context.Background()

	ownerID := uuid.New()

	t.Run("removes invoice and its items", func(t *testing.T) {
		inv := newTestInvoice(t, ownerID, billing.InvoiceStatusDraft, []billing.ItemInput{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(42)},
		})
		require.NoError(t, repo.Create(ctx, inv))

		require.NoError(t, repo.DeleteForOwner(ctx, ownerID, inv.ID))

		_, err := repo.FindByIDForOwner(ctx, ownerID, inv.ID)
		assert.Equal(t, shared.ErrNotFound, err)

		var itemCount int64
		require.NoError(t, db.Model(&models.InvoiceItemModel{}).
			Where("invoice_id = ?", inv.ID).Count(&itemCount).Error)
		assert.Equal(t, int64(0), itemCount)
	})

	t.Run("cross-owner delete reports not found and leaves the row", func(t *testing.T) {
		inv := newTestInvoice(t, ownerID, billing.InvoiceStatusDraft, nil)
		require.NoError(t, repo.Create(ctx, inv))

		err := repo.DeleteForOwner(ctx, uuid.New(), inv.ID)
		assert.Equal(t, shared.ErrNotFound, err)

		_, err = repo.FindByIDForOwner(ctx, ownerID, inv.ID)
		assert.NoError(t, err)
	})
}

func TestGormInvoiceRepository_StatusCountsForOwner(t *testing.T) {
	db := setupInvoiceTestDB(t)
	repo := NewGormInvoiceRepository(ownership.NewOwnedDB(db))
	ctx := context.Background()

	ownerID := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestInvoice(t, ownerID, billing.InvoiceStatusSent, nil)))

	counts, err := repo.StatusCountsForOwner(ctx, ownerID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["sent"])
	assert.Equal(t, int64(0), counts["draft"])
	assert.Equal(t, int64(0), counts["paid"])
	assert.Equal(t, int64(0), counts["cancelled"])
}
