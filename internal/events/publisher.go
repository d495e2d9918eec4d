// Package events publica los eventos del carrito hacia la cola que
// consume bodega. La publicación es fire-and-forget desde el punto de
// vista del carrito: un error se loguea pero no falla el agregado.
package events

import (
	"context"
	"time"
)

// CartItemAdded se emite por cada unidad agregada con éxito al carrito.
type CartItemAdded struct {
	CartID     string    `json:"cart_id"`
	ProductID  int64     `json:"product_id"`
	SKU        string    `json:"sku"`
	Quantity   int64     `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher entrega eventos del carrito a los consumidores externos.
type Publisher interface {
	PublishCartItemAdded(ctx context.Context, event CartItemAdded) error
	Close() error
}

// NoopPublisher descarta los eventos. Se usa cuando no hay broker
// configurado y en tests.
type NoopPublisher struct{}

func (NoopPublisher) PublishCartItemAdded(context.Context, CartItemAdded) error { return nil }

func (NoopPublisher) Close() error { return nil }
