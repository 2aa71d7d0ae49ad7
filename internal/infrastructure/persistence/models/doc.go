// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: Base persistence models (BaseModel, OwnedModel)
// - identity.go: Identity models (User)
// - billing.go: Billing models (Client, Product, Invoice, InvoiceItem)
package models
