package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderService define a interface do use case de pedidos consumida pelos handlers
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*Order, error)
	ListOrders(ctx context.Context, page, limit int) (*OrderPage, error)
}

// CatalogService define a interface do use case de catálogo consumida pelos handlers
type CatalogService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
}

// Handler contém os handlers HTTP
type Handler struct {
	orders  OrderService
	catalog CatalogService
	hub     *EventHub
	logger  *zap.Logger
}

// NewHandler cria uma nova instância de Handler
func NewHandler(orders OrderService, catalog CatalogService, hub *EventHub, logger *zap.Logger) *Handler {
	return &Handler{orders: orders, catalog: catalog, hub: hub, logger: logger}
}

// Routes registra as rotas no router
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/healthz", h.HealthCheck)
	r.GET("/api/events", h.StreamEvents)

	r.POST("/api/orders", h.CreateOrder)
	r.GET("/api/orders", h.ListOrders)
	r.PATCH("/api/orders/:id/status", h.UpdateOrderStatus)

	r.POST("/api/products", h.CreateProduct)
	r.GET("/api/products", h.ListProducts)

	r.POST("/api/customers", h.CreateCustomer)
	r.GET("/api/customers", h.ListCustomers)
}

// statusForKind mapeia a categoria do erro de domínio para o status HTTP
func statusForKind(kind ErrorKind) int {
	switch kind {
	case ErrKindOrderNotFound:
		return http.StatusNotFound
	case ErrKindInvalidRequest, ErrKindProductNotFound, ErrKindInsufficientStock,
		ErrKindInvalidStatus, ErrKindInvalidTransition:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError devolve erros de domínio com categoria estável e esconde o
// detalhe de qualquer erro interno
func (h *Handler) respondError(c *gin.Context, err error) {
	var derr *DomainError
	if errors.As(err, &derr) && !derr.Internal() {
		c.JSON(statusForKind(derr.Kind), gin.H{"kind": string(derr.Kind), "error": derr.Message})
		return
	}
	h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// CreateOrder cria um pedido reservando o estoque dos itens
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidRequest("malformed request body"))
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders retorna os pedidos paginados, mais recentes primeiro
func (h *Handler) ListOrders(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	result, err := h.orders.ListOrders(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateStatusRequest representa o corpo do PATCH de status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus aplica uma transição de status a um pedido
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidRequest("malformed request body"))
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateProduct cria um produto no catálogo
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidRequest("malformed request body"))
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ListProducts retorna todos os produtos
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateCustomer cria um cliente
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidRequest("malformed request body"))
		return
	}

	customer, err := h.catalog.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// ListCustomers retorna todos os clientes
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// StreamEvents mantém uma conexão SSE com o ouvinte e repassa os eventos
// de pedido até ele desconectar
func (h *Handler) StreamEvents(c *gin.Context) {
	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Event, ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// HealthCheck verifica a saúde do serviço
func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
