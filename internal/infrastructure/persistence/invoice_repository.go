package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/invoiceapp/backend/internal/infrastructure/persistence/models"
	"github.com/invoiceapp/backend/internal/infrastructure/persistence/ownership"
	"gorm.io/gorm"
)

var invoiceListSpec = ListSpec{
	SearchColumns:  []string{"status", "currency"},
	CategoryColumn: "status",
}

// GormInvoiceRepository implements InvoiceRepository using GORM. Invoice
// and its items are written as one transactional unit: an invoice row never
// exists with a stale or partial item set.
type GormInvoiceRepository struct {
	db *ownership.OwnedDB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *ownership.OwnedDB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) scoped(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithOwner(ownerID).
		WithContext(ctx).
		Model(&models.InvoiceModel{})
}

// FindByIDForOwner finds an invoice with its items within the owner's scope
func (r *GormInvoiceRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.scoped(ctx, ownerID).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForOwner returns one page of the owner's invoices with count metadata.
// The filters map carries per-status counts under the owner scope only, so
// the chips stay stable while a status filter or search is active.
func (r *GormInvoiceRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID, query shared.ListQuery) ([]billing.Invoice, shared.PageMeta, error) {
	base := func() *gorm.DB { return r.scoped(ctx, ownerID).Preload("Items") }

	res, err := ResolveList[models.InvoiceModel](base, invoiceListSpec, query)
	if err != nil {
		return nil, shared.PageMeta{}, err
	}

	invoices := make([]billing.Invoice, len(res.Items))
	for i, model := range res.Items {
		invoices[i] = *model.ToDomain()
	}

	statusCounts, err := r.StatusCountsForOwner(ctx, ownerID)
	if err != nil {
		return nil, shared.PageMeta{}, err
	}

	filters := map[string]int64{"all_count": res.UnfilteredTotal}
	for status, count := range statusCounts {
		filters[status+"_count"] = count
	}
	return invoices, shared.NewPageMeta(query, res.FilteredTotal, filters), nil
}

// CountForOwner counts the owner's invoices
func (r *GormInvoiceRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.scoped(ctx, ownerID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StatusCountsForOwner counts the owner's invoices per status. Statuses
// with no invoices are present with a zero count.
func (r *GormInvoiceRepository) StatusCountsForOwner(ctx context.Context, ownerID uuid.UUID) (map[string]int64, error) {
	recognized := make([]string, len(billing.AllInvoiceStatuses))
	for i, s := range billing.AllInvoiceStatuses {
		recognized[i] = s.String()
	}
	base := func() *gorm.DB { return r.scoped(ctx, ownerID) }
	return CategoryCounts(base, "status", recognized)
}

// Create inserts the invoice and all its items in one transaction
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.Transaction(ctx, invoice.UserID, func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(model).Error; err != nil {
			return err
		}
		for i := range model.Items {
			model.Items[i].InvoiceID = model.ID
			if err := tx.Create(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update writes the invoice row and, when replaceItems is set, swaps the
// entire item set for the invoice's current items. Both run in one
// transaction so readers never see a parent with a half-replaced set.
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice, replaceItems bool) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.Transaction(ctx, invoice.UserID, func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		if !replaceItems {
			return nil
		}
		if err := tx.Where("invoice_id = ?", model.ID).
			Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		for i := range model.Items {
			model.Items[i].InvoiceID = model.ID
			if err := tx.Create(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteForOwner deletes an invoice and its items within the owner's scope.
// Items are removed before the parent in the same transaction. The scoped
// parent lookup is what enforces ownership; item rows carry no user_id.
func (r *GormInvoiceRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.Transaction(ctx, ownerID, func(tx *gorm.DB) error {
		var model models.InvoiceModel
		if err := tx.Scopes(ownership.Scope(ownerID)).
			First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Where("invoice_id = ?", id).
			Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InvoiceModel{}, "id = ?", id).Error
	})
}
