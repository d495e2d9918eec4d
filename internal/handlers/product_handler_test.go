package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/cache"
	"shopfront/internal/images"
	"shopfront/internal/models"
	"shopfront/internal/repository"
)

// fakeRepo implementa CatalogRepository en memoria para los tests HTTP.
type fakeRepo struct {
	products []models.Product
	nextID   int64
}

func (f *fakeRepo) Snapshot(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		if !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id && !p.IsDeleted {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRepo) Create(_ context.Context, product *models.Product) error {
	f.nextID++
	product.ID = f.nextID
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, update models.ProductUpdate) error {
	for i := range f.products {
		if f.products[i].ID == id && !f.products[i].IsDeleted {
			if update.Name != nil {
				f.products[i].Name = *update.Name
			}
			if update.Stock != nil {
				f.products[i].Stock = *update.Stock
			}
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) SoftDelete(_ context.Context, id int64) error {
	for i := range f.products {
		if f.products[i].ID == id && !f.products[i].IsDeleted {
			f.products[i].IsDeleted = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestRouter(t *testing.T, repo *fakeRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := cache.New(time.Minute)
	t.Cleanup(c.Stop)

	resolver, err := images.NewResolver("https://cdn.example.com/img", "")
	require.NoError(t, err)

	h := NewProductHandler(repo, c, resolver, nil)

	router := gin.New()
	v1 := router.Group("/v1")
	v1.GET("/products", h.ListProducts)
	v1.GET("/products/:id", h.GetProduct)
	v1.GET("/categories", h.GetCategories)
	v1.POST("/products", h.CreateProduct)
	v1.PATCH("/products/:id", h.UpdateProduct)
	v1.DELETE("/products/:id", h.DeleteProduct)
	return router
}

func seededRepo() *fakeRepo {
	return &fakeRepo{
		nextID: 3,
		products: []models.Product{
			{ID: 1, SKU: "MOU-1", Name: "Mouse", Category: "Periféricos", Stock: 5, IsActive: true, ImageRef: "mouse.png"},
			{ID: 2, SKU: "TEC-1", Name: "Teclado", Category: "Periféricos", Stock: 0, IsActive: true},
			{ID: 3, SKU: "MON-1", Name: "Monitor", Category: "Pantallas", Stock: 2, IsActive: true},
		},
	}
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t, seededRepo())

	t.Run("sin filtro devuelve todo en orden", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/products", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProductListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 3, resp.Total)
		assert.Equal(t, []int64{1, 2, 3}, []int64{resp.Data[0].ID, resp.Data[1].ID, resp.Data[2].ID})
	})

	t.Run("por categoría preserva el orden", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/products?category=Perif%C3%A9ricos", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProductListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 2, resp.Total)
		assert.Equal(t, "Mouse", resp.Data[0].Name)
		assert.Equal(t, "Teclado", resp.Data[1].Name)
		assert.True(t, resp.Data[0].HasStock)
		assert.False(t, resp.Data[1].HasStock)
	})

	t.Run("texto insensible a mayúsculas", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/products?q=MOUSE", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProductListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, int64(1), resp.Data[0].ID)
	})

	t.Run("sin coincidencias devuelve lista vacía, no error", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/products?q=parlante", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProductListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Zero(t, resp.Total)
		assert.Empty(t, resp.Data)
	})
}

func TestListProductsResolvesImages(t *testing.T) {
	router := newTestRouter(t, seededRepo())

	w := doRequest(router, http.MethodGet, "/v1/products?q=mouse", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "https://cdn.example.com/img/mouse.png", resp.Data[0].ImageURL)
}

func TestListProductsImagePlaceholder(t *testing.T) {
	router := newTestRouter(t, seededRepo())

	w := doRequest(router, http.MethodGet, "/v1/products?q=teclado", "")
	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, images.DefaultPlaceholder, resp.Data[0].ImageURL)
}

func TestGetCategories(t *testing.T) {
	router := newTestRouter(t, seededRepo())

	w := doRequest(router, http.MethodGet, "/v1/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CategoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Pantallas", "Periféricos"}, resp.Data)
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t, seededRepo())

	t.Run("encontrado", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/products/1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var view ProductView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "Mouse", view.Name)
		assert.True(t, view.HasStock)
	})

	t.Run("no encontrado", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/products/99", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("id inválido", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/v1/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateProduct(t *testing.T) {
	router := newTestRouter(t, seededRepo())

	t.Run("creado", func(t *testing.T) {
		body := `{"sku":"AUD-1","name":"Audífonos","category":"Audio","price_cents":29990,"stock":10}`
		w := doRequest(router, http.MethodPost, "/v1/products", body)
		require.Equal(t, http.StatusCreated, w.Code)

		var view ProductView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, int64(4), view.ID)
		assert.True(t, view.IsActive)

		// la categoría nueva aparece en el índice
		w = doRequest(router, http.MethodGet, "/v1/categories", "")
		var cats CategoryListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cats))
		assert.Contains(t, cats.Data, "Audio")
	})

	t.Run("payload inválido", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/v1/products", `{"sku":"X"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	router := newTestRouter(t, seededRepo())

	t.Run("actualizado e invalida caché", func(t *testing.T) {
		// calienta el caché del detalle
		doRequest(router, http.MethodGet, "/v1/products/1", "")

		w := doRequest(router, http.MethodPatch, "/v1/products/1", `{"name":"Mouse Gamer"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(router, http.MethodGet, "/v1/products/1", "")
		var view ProductView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "Mouse Gamer", view.Name)
	})

	t.Run("sin campos", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/v1/products/1", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stock negativo", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/v1/products/1", `{"stock":-2}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("precio negativo", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/v1/products/1", `{"price_cents":-100}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no encontrado", func(t *testing.T) {
		w := doRequest(router, http.MethodPatch, "/v1/products/99", `{"name":"X"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	router := newTestRouter(t, seededRepo())

	w := doRequest(router, http.MethodDelete, "/v1/products/2", "")
	require.Equal(t, http.StatusOK, w.Code)

	// desaparece del detalle y del listado
	w = doRequest(router, http.MethodGet, "/v1/products/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/v1/products", "")
	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)

	// borrar de nuevo es 404
	w = doRequest(router, http.MethodDelete, "/v1/products/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCacheSeparatesQueryFromCategory(t *testing.T) {
	repo := seededRepo()
	repo.nextID = 4
	repo.products = append(repo.products, models.Product{
		ID: 4, SKU: "COM-1", Name: "Combo|cat:Promo", Category: "Promo", Stock: 1, IsActive: true,
	})
	router := newTestRouter(t, repo)

	// dos pares (q, categoría) distintos que concatenados se leen igual:
	// cada uno debe tener su propia entrada de caché y su propio resultado
	w := doRequest(router, http.MethodGet,
		"/v1/products?q="+url.QueryEscape("combo|cat:promo"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var first ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	require.Equal(t, 1, first.Total)
	assert.Equal(t, int64(4), first.Data[0].ID)

	w = doRequest(router, http.MethodGet,
		"/v1/products?q=combo&category="+url.QueryEscape("promo|cat:"), "")
	require.Equal(t, http.StatusOK, w.Code)

	var second ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Zero(t, second.Total)
}

func TestListProductsServesFromCache(t *testing.T) {
	repo := seededRepo()
	router := newTestRouter(t, repo)

	w := doRequest(router, http.MethodGet, "/v1/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	// un cambio directo en el repo no se ve hasta invalidar
	repo.products[0].Name = "Otro"
	w = doRequest(router, http.MethodGet, "/v1/products", "")
	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Mouse", resp.Data[0].Name)
}
