package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for the Client entity.
type ClientModel struct {
	OwnedModel
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(255);not null"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *billing.Client {
	return &billing.Client{
		OwnedEntity: m.ToDomainOwned(),
		Name:        m.Name,
		Email:       m.Email,
		Address:     m.Address,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *billing.Client) {
	m.FromDomainOwnedEntity(c.OwnedEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Address = c.Address
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *billing.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	OwnedModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *billing.Product {
	return &billing.Product{
		OwnedEntity: m.ToDomainOwned(),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Currency:    m.Currency,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *billing.Product) {
	m.FromDomainOwnedEntity(p.OwnedEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Currency = p.Currency
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *billing.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	OwnedModel
	ClientID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status            billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	DueDate           time.Time             `gorm:"not null"`
	Currency          string                `gorm:"type:varchar(3);not null;default:'USD'"`
	IsRecurring       bool                  `gorm:"not null;default:false"`
	RecurringInterval string                `gorm:"type:varchar(20)"`
	TotalAmount       decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Items             []InvoiceItemModel    `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		OwnedEntity:       m.ToDomainOwned(),
		ClientID:          m.ClientID,
		Status:            m.Status,
		DueDate:           m.DueDate,
		Currency:          m.Currency,
		IsRecurring:       m.IsRecurring,
		RecurringInterval: m.RecurringInterval,
		TotalAmount:       m.TotalAmount,
		Items:             make([]billing.InvoiceItem, len(m.Items)),
	}
	for i, item := range m.Items {
		inv.Items[i] = *item.ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainOwnedEntity(inv.OwnedEntity)
	m.ClientID = inv.ClientID
	m.Status = inv.Status
	m.DueDate = inv.DueDate
	m.Currency = inv.Currency
	m.IsRecurring = inv.IsRecurring
	m.RecurringInterval = inv.RecurringInterval
	m.TotalAmount = inv.TotalAmount
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = *InvoiceItemModelFromDomain(&item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for the InvoiceItem entity.
type InvoiceItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem entity.
func (m *InvoiceItemModel) ToDomain() *billing.InvoiceItem {
	return &billing.InvoiceItem{
		ID:        m.ID,
		InvoiceID: m.InvoiceID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
	}
}

// InvoiceItemModelFromDomain creates a new persistence model from a domain InvoiceItem entity.
func InvoiceItemModelFromDomain(item *billing.InvoiceItem) *InvoiceItemModel {
	return &InvoiceItemModel{
		ID:        item.ID,
		InvoiceID: item.InvoiceID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}
