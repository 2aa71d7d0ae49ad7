package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateClientRequest represents a client update request; nil fields are
// left untouched
type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email   *string `json:"email" binding:"omitempty,email,max=255"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to a response DTO
func ToClientResponse(c *billing.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToClientResponseList converts a slice of domain clients to response DTOs
func ToClientResponseList(clients []billing.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = *ToClientResponse(&clients[i])
	}
	return responses
}

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
}

// UpdateProductRequest represents a product update request; nil fields are
// left untouched
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency" binding:"omitempty,len=3"`
}

// ProductResponse represents a product in API responses. Money leaves the
// API as a plain JSON number.
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *billing.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Currency:    p.Currency,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponseList converts a slice of domain products to response DTOs
func ToProductResponseList(products []billing.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}
	return responses
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// InvoiceItemRequest describes one line item in a create or replace request
type InvoiceItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest represents an invoice creation request. The total
// is never accepted from the caller; it is always computed from the items.
type CreateInvoiceRequest struct {
	ClientID          uuid.UUID            `json:"client_id" binding:"required"`
	Status            string               `json:"status" binding:"omitempty,oneof=draft sent paid cancelled"`
	DueDate           time.Time            `json:"due_date" binding:"required"`
	Currency          string               `json:"currency" binding:"omitempty,len=3"`
	IsRecurring       bool                 `json:"is_recurring"`
	RecurringInterval string               `json:"recurring_interval" binding:"omitempty,max=20"`
	Items             []InvoiceItemRequest `json:"items"`
}

// UpdateInvoiceRequest represents an invoice update request. A present
// items list replaces the whole item set; an absent one leaves items and
// total untouched.
type UpdateInvoiceRequest struct {
	Status            *string               `json:"status" binding:"omitempty,oneof=draft sent paid cancelled"`
	DueDate           *time.Time            `json:"due_date"`
	Currency          *string               `json:"currency" binding:"omitempty,len=3"`
	IsRecurring       *bool                 `json:"is_recurring"`
	RecurringInterval *string               `json:"recurring_interval" binding:"omitempty,max=20"`
	Items             *[]InvoiceItemRequest `json:"items"`
}

// InvoiceItemResponse represents an invoice line item in API responses
type InvoiceItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

// InvoiceResponse represents an invoice with its items in API responses
type InvoiceResponse struct {
	ID                uuid.UUID             `json:"id"`
	UserID            uuid.UUID             `json:"user_id"`
	ClientID          uuid.UUID             `json:"client_id"`
	Status            string                `json:"status"`
	DueDate           time.Time             `json:"due_date"`
	Currency          string                `json:"currency"`
	IsRecurring       bool                  `json:"is_recurring"`
	RecurringInterval string                `json:"recurring_interval"`
	TotalAmount       float64               `json:"total_amount"`
	Items             []InvoiceItemResponse `json:"items"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.InexactFloat64(),
		}
	}
	return &InvoiceResponse{
		ID:                inv.ID,
		UserID:            inv.UserID,
		ClientID:          inv.ClientID,
		Status:            inv.Status.String(),
		DueDate:           inv.DueDate,
		Currency:          inv.Currency,
		IsRecurring:       inv.IsRecurring,
		RecurringInterval: inv.RecurringInterval,
		TotalAmount:       inv.TotalAmount.InexactFloat64(),
		Items:             items,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

// ToInvoiceResponseList converts a slice of domain invoices to response DTOs
func ToInvoiceResponseList(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// toItemInputs converts request line items into domain item inputs
func toItemInputs(items []InvoiceItemRequest) []billing.ItemInput {
	inputs := make([]billing.ItemInput, len(items))
	for i, item := range items {
		inputs[i] = billing.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return inputs
}

// =============================================================================
// List Filters
// =============================================================================

// ListFilter represents common query parameters for listing owned resources
type ListFilter struct {
	Skip   int    `form:"skip,default=0"`
	Limit  int    `form:"limit,default=100"`
	Search string `form:"search"`
}

// ToListQuery converts the filter into a domain list query
func (f ListFilter) ToListQuery() shared.ListQuery {
	return shared.ListQuery{
		Skip:   f.Skip,
		Limit:  f.Limit,
		Search: f.Search,
	}
}

// InvoiceListFilter represents query parameters for listing invoices
type InvoiceListFilter struct {
	Skip   int    `form:"skip,default=0"`
	Limit  int    `form:"limit,default=10"`
	Search string `form:"search"`
	Status string `form:"status"`
}

// ToListQuery converts the filter into a domain list query. The status
// filter becomes the category so repositories can treat it uniformly.
func (f InvoiceListFilter) ToListQuery() shared.ListQuery {
	return shared.ListQuery{
		Skip:     f.Skip,
		Limit:    f.Limit,
		Search:   f.Search,
		Category: f.Status,
	}
}

// =============================================================================
// Stats DTOs
// =============================================================================

// StatsResponse represents the dashboard overview for one account
type StatsResponse struct {
	TotalUsers       int64            `json:"total_users"`
	TotalClients     int64            `json:"total_clients"`
	TotalProducts    int64            `json:"total_products"`
	TotalInvoices    int64            `json:"total_invoices"`
	InvoicesByStatus map[string]int64 `json:"invoices_by_status"`
}
