package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/ports"
	"product-catalog/internal/shared/logger"
)

// ProductHandler adapts HTTP requests to the ProductService.
type ProductHandler struct {
	svc    ports.ProductService
	logger *logger.Logger
}

// NewProductHandler wires an HTTP handler around the ProductService.
func NewProductHandler(svc ports.ProductService, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, logger: logger}
}

// Register mounts the product routes.
func (handler *ProductHandler) Register(r gin.IRouter) {
	r.GET("/products/:productId", handler.get)
	r.POST("/products", handler.create)
	r.PUT("/products/:productId", handler.update)
	r.DELETE("/products/:productId", handler.delete)
}

type createProductRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

type updateProductRequest struct {
	// pointer distinguishes an absent key from an explicit empty string;
	// only the former is a validation failure
	Name *string `json:"name"`
}

func (handler *ProductHandler) get(c *gin.Context) {
	product, err := handler.svc.Get(c.Request.Context(), callerFrom(c), c.Param("productId"))
	if err != nil {
		respondError(c, handler.logger, err, "Could not retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (handler *ProductHandler) create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `"productId" and "name" must be strings`})
		return
	}

	product, err := handler.svc.Create(c.Request.Context(), callerFrom(c), req.ProductID, req.Name)
	if err != nil {
		respondError(c, handler.logger, err, "Could not create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (handler *ProductHandler) update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `"name" must be a string`})
		return
	}

	product, err := handler.svc.UpdateName(c.Request.Context(), callerFrom(c), c.Param("productId"), *req.Name)
	if err != nil {
		respondError(c, handler.logger, err, "Could not update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (handler *ProductHandler) delete(c *gin.Context) {
	if err := handler.svc.Delete(c.Request.Context(), callerFrom(c), c.Param("productId")); err != nil {
		respondError(c, handler.logger, err, "Could not delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
