// Package ownership provides per-user database scoping for GORM.
//
// Every owned resource row carries a user_id column. This package applies
// automatic WHERE user_id = ? conditions so that repositories can never
// read or mutate rows across account boundaries. A row outside the caller's
// scope is indistinguishable from a row that does not exist.
//
// Usage:
//
//	db := ownership.NewOwnedDB(gormDB)
//	db.WithOwner(userID).Find(&clients) // WHERE user_id = 'xxx' is auto-added
package ownership

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOwnerRequired is returned when an owner ID is required but not provided
var ErrOwnerRequired = errors.New("owner id is required but not found")

// Scope applies owner filtering to GORM queries
func Scope(ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", ownerID)
	}
}

// OwnedDB wraps a GORM DB with automatic owner scoping
type OwnedDB struct {
	db *gorm.DB
}

// NewOwnedDB creates a new OwnedDB
func NewOwnedDB(db *gorm.DB) *OwnedDB {
	return &OwnedDB{db: db}
}

// DB returns the underlying GORM DB without owner scoping.
// Use with caution: this bypasses account isolation.
func (o *OwnedDB) DB() *gorm.DB {
	return o.db
}

// WithOwner returns a GORM DB scoped to a specific owner ID. A nil owner
// yields a DB that errors on any operation.
func (o *OwnedDB) WithOwner(ownerID uuid.UUID) *gorm.DB {
	if ownerID == uuid.Nil {
		// Clone first so the error does not stick to the shared root DB
		db := o.db.Session(&gorm.Session{})
		_ = db.AddError(ErrOwnerRequired)
		return db
	}
	return o.db.Scopes(Scope(ownerID))
}

// Transaction runs fn as one aggregate unit of work for the given owner.
// The tx handed to fn is not pre-scoped: child tables such as invoice
// items carry no user_id column, so each statement opts into Scope where
// its table has the owner column.
func (o *OwnedDB) Transaction(ctx context.Context, ownerID uuid.UUID, fn func(tx *gorm.DB) error) error {
	if ownerID == uuid.Nil {
		return ErrOwnerRequired
	}
	return o.db.WithContext(ctx).Transaction(fn)
}
