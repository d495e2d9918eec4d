package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopfront/internal/cache"
	"shopfront/internal/catalog"
	"shopfront/internal/images"
	"shopfront/internal/models"
	"shopfront/internal/repository"
)

const (
	listCacheTTL    = 2 * time.Minute
	productCacheTTL = 5 * time.Minute
)

// CatalogRepository es lo que los handlers necesitan del repositorio.
type CatalogRepository interface {
	Snapshot(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id int64, update models.ProductUpdate) error
	SoftDelete(ctx context.Context, id int64) error
}

type ProductHandler struct {
	repo   CatalogRepository
	cache  *cache.Cache
	images *images.Resolver
	logger *zap.Logger
}

func NewProductHandler(repo CatalogRepository, c *cache.Cache, resolver *images.Resolver, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{
		repo:   repo,
		cache:  c,
		images: resolver,
		logger: logger,
	}
}

// ListProducts lista el catálogo aplicando el filtro de texto y
// categoría en memoria sobre la foto completa (con caché).
// GET /v1/products?q=&category=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	query := catalog.Query{Text: c.Query("q")}
	if label, ok := c.GetQuery("category"); ok && label != "" {
		query.Category = catalog.Some(label)
	}

	// Encode separa q y categoría sin ambigüedad: dos pares distintos
	// nunca comparten entrada de caché
	cacheKey := "products:list:" + url.Values{
		"q":   {query.Text},
		"cat": {c.Query("category")},
	}.Encode()
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.repo.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load catalog snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list products"})
		return
	}

	visible := catalog.Filter(products, query)
	response := ProductListResponse{
		Data:  h.toViews(visible),
		Total: len(visible),
	}

	h.cache.Set(cacheKey, response, listCacheTTL)
	c.JSON(http.StatusOK, response)
}

// GetCategories devuelve las categorías distintas del catálogo, para
// poblar los chips del filtro.
// GET /v1/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	const cacheKey = "products:categories"
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.repo.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load catalog snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list categories"})
		return
	}

	response := CategoryListResponse{Data: catalog.Categories(products)}
	h.cache.Set(cacheKey, response, listCacheTTL)
	c.JSON(http.StatusOK, response)
}

// GetProduct obtiene un producto por ID (con caché)
// GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	cacheKey := fmt.Sprintf("product:%d", id)
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
			return
		}
		h.logger.Error("failed to get product", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to get product"})
		return
	}

	view := h.toView(*product)
	h.cache.Set(cacheKey, view, productCacheTTL)
	c.JSON(http.StatusOK, view)
}

// CreateProduct crea un nuevo producto
// POST /v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	product, err := models.NewProduct(req.SKU, req.Name, req.Description, req.Category,
		req.PriceCents, req.Stock, req.Currency, req.ImageRef)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.repo.Create(c.Request.Context(), product); err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create product"})
		return
	}

	// Invalidar caché de listados y categorías
	h.cache.DeleteByPrefix("products:")

	c.JSON(http.StatusCreated, h.toView(*product))
}

// UpdateProduct actualiza parcialmente un producto
// PATCH /v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no valid fields to update"})
		return
	}
	if update.Stock != nil && *update.Stock < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.ErrNegativeStock.Error()})
		return
	}
	if update.PriceCents != nil && *update.PriceCents < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.ErrNegativePrice.Error()})
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
			return
		}
		h.logger.Error("failed to update product", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update product"})
		return
	}

	// Invalidar caché relacionado
	h.cache.Delete(fmt.Sprintf("product:%d", id))
	h.cache.DeleteByPrefix("products:")

	c.JSON(http.StatusOK, SuccessResponse{Message: "product updated"})
}

// DeleteProduct realiza un borrado lógico
// DELETE /v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	if err := h.repo.SoftDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
			return
		}
		h.logger.Error("failed to delete product", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete product"})
		return
	}

	// Invalidar caché relacionado
	h.cache.Delete(fmt.Sprintf("product:%d", id))
	h.cache.DeleteByPrefix("products:")

	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

func (h *ProductHandler) toView(p models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		Stock:       p.Stock,
		HasStock:    p.HasStock(),
		ImageURL:    h.images.Resolve(p.ImageRef),
		IsActive:    p.IsActive,
	}
}

func (h *ProductHandler) toViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, h.toView(p))
	}
	return views
}
