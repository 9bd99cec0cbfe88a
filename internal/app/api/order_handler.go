package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
	"product-catalog/internal/shared/logger"
)

// OrderHandler adapts HTTP requests to the OrderService.
type OrderHandler struct {
	svc    ports.OrderService
	logger *logger.Logger
}

// NewOrderHandler wires an HTTP handler around the OrderService.
func NewOrderHandler(svc ports.OrderService, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, logger: logger}
}

// Register mounts the order routes.
func (handler *OrderHandler) Register(r gin.IRouter) {
	r.POST("/orders", handler.create)
	r.GET("/orders", handler.list)
	r.GET("/orders/:orderId", handler.get)
	r.PUT("/orders/:orderId/status", handler.updateStatus)
}

type createOrderRequest struct {
	Products []domain.OrderLine `json:"products"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (handler *OrderHandler) create(c *gin.Context) {
	caller := callerFrom(c)
	if caller.Anonymous() {
		// identity precedes body parsing: a bad payload from an anonymous
		// caller is still a 401
		respondError(c, handler.logger, &domain.AuthenticationError{Msg: "Unauthorized - User ID not found"}, "Could not create order")
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Products array is required"})
		return
	}

	order, err := handler.svc.Create(c.Request.Context(), caller, req.Products)
	if err != nil {
		respondError(c, handler.logger, err, "Could not create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (handler *OrderHandler) list(c *gin.Context) {
	orders, err := handler.svc.ListByUser(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, handler.logger, err, "Could not retrieve orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (handler *OrderHandler) get(c *gin.Context) {
	order, err := handler.svc.Get(c.Request.Context(), callerFrom(c), c.Param("orderId"))
	if err != nil {
		respondError(c, handler.logger, err, "Could not retrieve order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (handler *OrderHandler) updateStatus(c *gin.Context) {
	caller := callerFrom(c)
	if caller.Anonymous() {
		respondError(c, handler.logger, &domain.AuthenticationError{Msg: "Unauthorized - User ID not found"}, "Could not update order status")
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	order, err := handler.svc.UpdateStatus(c.Request.Context(), caller, c.Param("orderId"), domain.OrderStatus(req.Status))
	if err != nil {
		respondError(c, handler.logger, err, "Could not update order status")
		return
	}
	c.JSON(http.StatusOK, order)
}
