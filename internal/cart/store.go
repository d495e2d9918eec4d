package cart

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrCartNotFound se devuelve cuando el carrito no existe.
var ErrCartNotFound = errors.New("cart not found")

// Item es una línea del carrito.
type Item struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// Cart es el carrito de compras de una sesión.
type Cart struct {
	ID        string    `json:"cart_id"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// Quantity devuelve cuántas unidades de un producto ya hay en el carrito.
func (c *Cart) Quantity(productID int64) int64 {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Store define las operaciones de persistencia de carritos.
type Store interface {
	// Create crea un carrito vacío y devuelve su ID.
	Create() string

	// Get devuelve una copia del carrito. ErrCartNotFound si no existe.
	Get(cartID string) (*Cart, error)

	// AddItem agrega unidades de un producto, sumando si la línea ya
	// existe. La validación contra maxStock ocurre bajo el mismo lock
	// que la escritura: dos agregados concurrentes al mismo carrito no
	// pueden superar el stock entre ambos. ErrCartNotFound si el
	// carrito no existe, ErrInsufficientStock si lo pedido más lo ya
	// agregado supera maxStock.
	AddItem(cartID string, productID, quantity, maxStock int64) error
}

// MemoryStore guarda los carritos en memoria. Seguro para uso
// concurrente mediante RWMutex.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*Cart)}
}

func (s *MemoryStore) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.carts[id] = &Cart{
		ID:        id,
		Items:     []Item{},
		CreatedAt: time.Now(),
	}
	return id
}

func (s *MemoryStore) Get(cartID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return copyCart(cart), nil
}

func (s *MemoryStore) AddItem(cartID string, productID, quantity, maxStock int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}

	line := -1
	var current int64
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			line = i
			current = cart.Items[i].Quantity
			break
		}
	}

	if current+quantity > maxStock {
		return ErrInsufficientStock
	}

	if line >= 0 {
		cart.Items[line].Quantity += quantity
		return nil
	}
	cart.Items = append(cart.Items, Item{ProductID: productID, Quantity: quantity})
	return nil
}

// copyCart evita que el llamador mute el estado interno del store.
func copyCart(cart *Cart) *Cart {
	out := *cart
	out.Items = make([]Item, len(cart.Items))
	copy(out.Items, cart.Items)
	return &out
}
