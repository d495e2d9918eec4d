package routes

import (
	"github.com/gin-gonic/gin"

	"shopfront/internal/handlers"
)

func RegisterRoutes(router *gin.Engine, products *handlers.ProductHandler, carts *handlers.CartHandler) {
	v1 := router.Group("/v1")
	{
		v1.GET("/products", products.ListProducts)
		v1.GET("/products/:id", products.GetProduct)
		v1.GET("/categories", products.GetCategories)

		v1.POST("/products", products.CreateProduct)
		v1.PATCH("/products/:id", products.UpdateProduct)
		v1.DELETE("/products/:id", products.DeleteProduct)

		v1.POST("/carts", carts.CreateCart)
		v1.GET("/carts/:id", carts.GetCart)
		v1.POST("/carts/:id/items", carts.AddItem)
	}
}
