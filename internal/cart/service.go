// Package cart implementa el servicio de carrito: carritos en memoria,
// validación de stock al agregar y emisión de eventos hacia bodega.
package cart

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"shopfront/internal/events"
	"shopfront/internal/models"
)

// Errores de negocio al agregar ítems.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductInactive   = errors.New("product is not purchasable")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// ProductSource es lo que el carrito necesita saber del catálogo.
// Lo implementa repository.ProductRepository.
type ProductSource interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

// Service coordina el agregado al carrito contra el catálogo y publica
// un evento por cada agregado exitoso.
type Service struct {
	store     Store
	products  ProductSource
	publisher events.Publisher
	logger    *zap.Logger
}

func NewService(store Store, products ProductSource, publisher events.Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		store:     store,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateCart crea un carrito vacío y devuelve su ID.
func (s *Service) CreateCart() string {
	return s.store.Create()
}

// GetCart devuelve el carrito.
func (s *Service) GetCart(cartID string) (*Cart, error) {
	return s.store.Get(cartID)
}

// AddItem agrega unidades de un producto al carrito. Falla con
// ErrInsufficientStock si lo pedido más lo ya agregado supera el stock,
// y con ErrProductInactive si el producto no está a la venta. La
// comparación contra el stock la hace el store bajo su lock, junto con
// la escritura. El evento hacia bodega es fire-and-forget: un error de
// publicación se loguea y no revierte el agregado.
func (s *Service) AddItem(ctx context.Context, cartID string, productID, quantity int64) (*Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Purchasable() {
		return nil, ErrProductInactive
	}

	if err := s.store.AddItem(cartID, productID, quantity, product.Stock); err != nil {
		return nil, err
	}

	event := events.CartItemAdded{
		CartID:     cartID,
		ProductID:  product.ID,
		SKU:        product.SKU,
		Quantity:   quantity,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishCartItemAdded(ctx, event); err != nil {
		s.logger.Warn("failed to publish cart event",
			zap.String("cart_id", cartID),
			zap.Int64("product_id", productID),
			zap.Error(err))
	}

	return s.store.Get(cartID)
}
