package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice. There is no enforced
// transition graph: any status may be set at any time.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// AllInvoiceStatuses lists every recognized status, in display order
var AllInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPaid,
	InvoiceStatusCancelled,
}

// IsValid checks if the status is a recognized InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// InvoiceItem is a line item owned exclusively by one invoice. It never
// exists without its parent; replacing or deleting the parent's item set
// removes it.
type InvoiceItem struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// ItemInput describes one line item in a create or replace request
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// Invoice is the aggregate root for billing documents. Its stored
// TotalAmount always equals the sum of Quantity * UnitPrice over its
// current items after any successful write.
type Invoice struct {
	shared.OwnedEntity
	ClientID          uuid.UUID
	Status            InvoiceStatus
	DueDate           time.Time
	Currency          string
	IsRecurring       bool
	RecurringInterval string
	TotalAmount       decimal.Decimal
	Items             []InvoiceItem
}

// NewInvoice creates an invoice with its items and a computed total.
// An empty item list is legal and yields a zero total.
func NewInvoice(userID, clientID uuid.UUID, status InvoiceStatus, dueDate time.Time, currency string, isRecurring bool, recurringInterval string, items []ItemInput) (*Invoice, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID cannot be empty")
	}
	if status == "" {
		status = InvoiceStatusDraft
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown invoice status")
	}
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter code")
	}

	inv := &Invoice{
		OwnedEntity:       shared.NewOwnedEntity(userID),
		ClientID:          clientID,
		Status:            status,
		DueDate:           dueDate,
		Currency:          currency,
		IsRecurring:       isRecurring,
		RecurringInterval: recurringInterval,
	}
	if err := inv.ReplaceItems(items); err != nil {
		return nil, err
	}
	return inv, nil
}

// ReplaceItems swaps the entire item set for a new one and recomputes the
// total. The persistence layer must write the swap as one atomic unit.
func (inv *Invoice) ReplaceItems(items []ItemInput) error {
	built := make([]InvoiceItem, 0, len(items))
	total := decimal.Zero
	for _, in := range items {
		if in.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Item product ID cannot be empty")
		}
		if in.Quantity <= 0 {
			return shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
		}
		if in.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Item unit price cannot be negative")
		}
		amount := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		total = total.Add(amount)
		built = append(built, InvoiceItem{
			ID:        uuid.New(),
			InvoiceID: inv.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
		})
	}
	inv.Items = built
	inv.TotalAmount = total
	inv.UpdatedAt = time.Now()
	return nil
}

// Apply merges a patch into the invoice. Scalar fields merge field-by-field;
// a present Items sequence replaces the whole item set and recomputes the
// total, an absent one leaves items and total untouched.
func (inv *Invoice) Apply(patch InvoicePatch) error {
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", "Unknown invoice status")
		}
		inv.Status = *patch.Status
	}
	if patch.DueDate != nil {
		inv.DueDate = *patch.DueDate
	}
	if patch.Currency != nil {
		if len(*patch.Currency) != 3 {
			return shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter code")
		}
		inv.Currency = *patch.Currency
	}
	if patch.IsRecurring != nil {
		inv.IsRecurring = *patch.IsRecurring
	}
	if patch.RecurringInterval != nil {
		inv.RecurringInterval = *patch.RecurringInterval
	}
	if patch.Items != nil {
		if err := inv.ReplaceItems(*patch.Items); err != nil {
			return err
		}
	}
	inv.UpdatedAt = time.Now()
	return nil
}

// InvoicePatch is a sparse update; nil fields mean "leave unchanged".
// Items is a pointer to distinguish "replace with empty set" from "absent".
type InvoicePatch struct {
	Status            *InvoiceStatus
	DueDate           *time.Time
	Currency          *string
	IsRecurring       *bool
	RecurringInterval *string
	Items             *[]ItemInput
}

// HasItems reports whether the patch carries a replacement item set
func (p InvoicePatch) HasItems() bool {
	return p.Items != nil
}

// InvoiceRepository defines persistence operations for the invoice
// aggregate. Create, Update and Delete must write parent and items as one
// transactional unit.
type InvoiceRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, query shared.ListQuery) ([]Invoice, shared.PageMeta, error)
	CountForOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	StatusCountsForOwner(ctx context.Context, ownerID uuid.UUID) (map[string]int64, error)
	Create(ctx context.Context, invoice *Invoice) error
	Update(ctx context.Context, invoice *Invoice, replaceItems bool) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
