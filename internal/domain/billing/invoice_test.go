package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice(t *testing.T) {
	userID := uuid.New()
	clientID := uuid.New()
	due := time.Now().AddDate(0, 1, 0)

	t.Run("computes total from items", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", []ItemInput{
			{ProductID: uuid.New(), Quantity: 5, UnitPrice: decimal.NewFromFloat(100.00)},
		})

		require.NoError(t, err)
		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromFloat(500.00)))
		assert.Len(t, inv.Items, 1)
		assert.Equal(t, userID, inv.UserID)
		assert.Equal(t, inv.ID, inv.Items[0].InvoiceID)
	})

	t.Run("sums across multiple items", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", []ItemInput{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromFloat(19.99)},
			{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.NewFromFloat(0.01)},
		})

		require.NoError(t, err)
		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromFloat(40.01)))
	})

	t.Run("allows an empty item list with zero total", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", nil)

		require.NoError(t, err)
		assert.True(t, inv.TotalAmount.IsZero())
		assert.Empty(t, inv.Items)
	})

	t.Run("defaults status and currency", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, "", due, "", false, "", nil)

		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.Equal(t, "USD", inv.Currency)
	})

	t.Run("fails with empty client", func(t *testing.T) {
		inv, err := NewInvoice(userID, uuid.Nil, InvoiceStatusDraft, due, "USD", false, "", nil)

		assert.Error(t, err)
		assert.Nil(t, inv)
	})

	t.Run("fails with unknown status", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, "overdue", due, "USD", false, "", nil)

		assert.Error(t, err)
		assert.Nil(t, inv)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", []ItemInput{
			{ProductID: uuid.New(), Quantity: 0, UnitPrice: decimal.NewFromFloat(10)},
		})

		assert.Error(t, err)
		assert.Nil(t, inv)
	})

	t.Run("fails with negative unit price", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", []ItemInput{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromFloat(-1)},
		})

		assert.Error(t, err)
		assert.Nil(t, inv)
	})
}

func TestInvoice_ReplaceItems(t *testing.T) {
	userID := uuid.New()
	clientID := uuid.New()
	due := time.Now().AddDate(0, 1, 0)

	t.Run("replaces item set and recomputes total", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", []ItemInput{
			{ProductID: uuid.New(), Quantity: 5, UnitPrice: decimal.NewFromFloat(100.00)},
		})
		require.NoError(t, err)
		oldItemID := inv.Items[0].ID

		err = inv.ReplaceItems([]ItemInput{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromFloat(50.00)},
		})

		require.NoError(t, err)
		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromFloat(100.00)))
		assert.Len(t, inv.Items, 1)
		assert.NotEqual(t, oldItemID, inv.Items[0].ID)
	})

	t.Run("replacing with empty set zeroes the total", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", []ItemInput{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromFloat(10)},
		})
		require.NoError(t, err)

		err = inv.ReplaceItems(nil)

		require.NoError(t, err)
		assert.True(t, inv.TotalAmount.IsZero())
		assert.Empty(t, inv.Items)
	})

	t.Run("invalid replacement leaves nothing half-applied", func(t *testing.T) {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", []ItemInput{
			{ProductID: uuid.New(), Quantity: 5, UnitPrice: decimal.NewFromFloat(100.00)},
		})
		require.NoError(t, err)

		err = inv.ReplaceItems([]ItemInput{
			{ProductID: uuid.New(), Quantity: -1, UnitPrice: decimal.NewFromFloat(50.00)},
		})

		assert.Error(t, err)
		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromFloat(500.00)))
		assert.Len(t, inv.Items, 1)
	})
}

func TestInvoice_Apply(t *testing.T) {
	userID := uuid.New()
	clientID := uuid.New()
	due := time.Now().AddDate(0, 1, 0)

	newInvoice := func(t *testing.T) *Invoice {
		inv, err := NewInvoice(userID, clientID, InvoiceStatusDraft, due, "USD", false, "", []ItemInput{
			{ProductID: uuid.New(), Quantity: 5, UnitPrice: decimal.NewFromFloat(100.00)},
		})
		require.NoError(t, err)
		return inv
	}

	t.Run("scalar-only patch leaves items and total untouched", func(t *testing.T) {
		inv := newInvoice(t)
		sent := InvoiceStatusSent

		err := inv.Apply(InvoicePatch{Status: &sent})

		require.NoError(t, err)
		assert.Equal(t, InvoiceStatusSent, inv.Status)
		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromFloat(500.00)))
		assert.Len(t, inv.Items, 1)
	})

	t.Run("any status may follow any other", func(t *testing.T) {
		inv := newInvoice(t)

		for _, status := range []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusDraft, InvoiceStatusCancelled, InvoiceStatusSent} {
			s := status
			require.NoError(t, inv.Apply(InvoicePatch{Status: &s}))
			assert.Equal(t, status, inv.Status)
		}
	})

	t.Run("items patch replaces set and recomputes total", func(t *testing.T) {
		inv := newInvoice(t)
		items := []ItemInput{{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromFloat(50.00)}}

		err := inv.Apply(InvoicePatch{Items: &items})

		require.NoError(t, err)
		assert.True(t, inv.TotalAmount.Equal(decimal.NewFromFloat(100.00)))
	})

	t.Run("absent fields stay unchanged", func(t *testing.T) {
		inv := newInvoice(t)
		recurring := true

		err := inv.Apply(InvoicePatch{IsRecurring: &recurring})

		require.NoError(t, err)
		assert.True(t, inv.IsRecurring)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		assert.Equal(t, "USD", inv.Currency)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		inv := newInvoice(t)
		bad := InvoiceStatus("archived")

		err := inv.Apply(InvoicePatch{Status: &bad})

		assert.Error(t, err)
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
	})
}
