package handlers

// Estructuras para respuestas

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// ProductView es el producto tal como lo consume la pantalla: con la
// disponibilidad derivada y la imagen ya resuelta a URL.
type ProductView struct {
	ID          int64  `json:"id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents"`
	Currency    string `json:"currency"`
	Stock       int64  `json:"stock"`
	HasStock    bool   `json:"has_stock"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `json:"is_active"`
}

type ProductListResponse struct {
	Data  []ProductView `json:"data"`
	Total int           `json:"total"`
}

type CategoryListResponse struct {
	Data []string `json:"data"`
}

// CreateProductRequest es el payload de alta de producto.
type CreateProductRequest struct {
	SKU         string `json:"sku" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
	Currency    string `json:"currency"`
	Stock       int64  `json:"stock" binding:"min=0"`
	ImageRef    string `json:"image_ref"`
}

// AddCartItemRequest es el payload para agregar al carrito.
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"required,gt=0"`
}

type CartCreatedResponse struct {
	CartID string `json:"cart_id"`
}
