package models

import (
	"errors"
	"strings"
	"time"
)

// Errores de validación al construir un producto
var (
	ErrEmptyName     = errors.New("product name is required")
	ErrEmptyCategory = errors.New("product category is required")
	ErrNegativePrice = errors.New("price_cents must be non-negative")
	ErrNegativeStock = errors.New("stock must be non-negative")
)

// Product representa un producto en el catálogo.
// El stock nunca es negativo y la disponibilidad se deriva siempre
// de Stock (ver HasStock), nunca se guarda por separado.
type Product struct {
	ID          int64     `json:"id" bson:"_id"`
	SKU         string    `json:"sku" bson:"sku"`
	Name        string    `json:"name" bson:"name" binding:"required"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category" bson:"category" binding:"required"`
	PriceCents  int64     `json:"price_cents" bson:"price_cents"`
	Currency    string    `json:"currency" bson:"currency"`
	Stock       int64     `json:"stock" bson:"stock"`
	ImageRef    string    `json:"image_ref,omitempty" bson:"image_ref,omitempty"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	IsDeleted   bool      `json:"-" bson:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// NewProduct construye un producto validando sus invariantes.
// El ID lo asigna el repositorio al persistir.
func NewProduct(sku, name, description, category string, priceCents, stock int64, currency, imageRef string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(category) == "" {
		return nil, ErrEmptyCategory
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	if currency == "" {
		currency = "CLP"
	}
	now := time.Now()
	return &Product{
		SKU:         sku,
		Name:        name,
		Description: description,
		Category:    category,
		PriceCents:  priceCents,
		Currency:    currency,
		Stock:       stock,
		ImageRef:    imageRef,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasStock indica si quedan unidades disponibles.
func (p Product) HasStock() bool {
	return p.Stock > 0
}

// Purchasable indica si el producto se puede agregar al carrito.
func (p Product) Purchasable() bool {
	return p.IsActive && !p.IsDeleted
}

// ProductUpdate representa los campos actualizables de un producto
type ProductUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	Stock       *int64  `json:"stock,omitempty"`
	ImageRef    *string `json:"image_ref,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Empty indica si el update no trae ningún campo.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil &&
		u.PriceCents == nil && u.Currency == nil && u.Stock == nil &&
		u.ImageRef == nil && u.IsActive == nil
}
