package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"product-catalog/internal/ports"
	"product-catalog/internal/shared/logger"
)

// NewRouter assembles the gin engine with the shared middleware chain and
// all resource routes mounted.
func NewRouter(products ports.ProductService, orders ports.OrderService, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(RequestID(log))
	r.Use(Identity())

	NewProductHandler(products, log).Register(r)
	NewOrderHandler(orders, log).Register(r)

	return r
}
