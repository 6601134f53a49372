package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus valores possíveis do ciclo de vida de um pedido
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusFulfilled = "FULFILLED"
	OrderStatusCancelled = "CANCELLED"
)

// Product representa um produto do catálogo
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SKU       string    `json:"sku" db:"sku"`
	Stock     int       `json:"stock" db:"stock"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(name, sku string, stock int, price float64) *Product {
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		SKU:       sku,
		Stock:     stock,
		Price:     price,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Customer representa um cliente
type Customer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewCustomer cria uma nova instância de Customer
func NewCustomer(name, email, phone string) *Customer {
	return &Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// OrderItem representa um item de um pedido, já resolvido para um produto do catálogo
type OrderItem struct {
	ProductID string   `json:"productId" db:"product_id"`
	Quantity  int      `json:"quantity" db:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Order representa um pedido no sistema
type Order struct {
	ID              string      `json:"id" db:"id"`
	OrderName       string      `json:"orderName,omitempty" db:"order_name"`
	CustomerID      string      `json:"customerId" db:"customer_id"`
	Customer        *Customer   `json:"customer,omitempty"`
	Items           []OrderItem `json:"items"`
	PaymentReceived bool        `json:"paymentReceived" db:"payment_received"`
	Status          string      `json:"status" db:"status"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// NewOrder cria um novo pedido em PENDING com o estoque já reservado pelos itens
func NewOrder(orderName, customerID string, items []OrderItem, paymentReceived bool) *Order {
	return &Order{
		ID:              uuid.New().String(),
		OrderName:       orderName,
		CustomerID:      customerID,
		Items:           items,
		PaymentReceived: paymentReceived,
		Status:          OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// ValidStatus informa se o valor é um dos quatro status reconhecidos
func ValidStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// ErrorKind identifica a categoria estável de um erro de domínio
type ErrorKind string

const (
	ErrKindInvalidRequest      ErrorKind = "InvalidRequest"
	ErrKindProductNotFound     ErrorKind = "ProductNotFound"
	ErrKindInsufficientStock   ErrorKind = "InsufficientStock"
	ErrKindOrderNotFound       ErrorKind = "OrderNotFound"
	ErrKindInvalidStatus       ErrorKind = "InvalidStatus"
	ErrKindInvalidTransition   ErrorKind = "InvalidTransition"
	ErrKindStorageFailure      ErrorKind = "StorageFailure"
	ErrKindLedgerInconsistency ErrorKind = "LedgerInconsistency"
)

// DomainError carrega a categoria e a mensagem visível de um erro de negócio
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Internal informa se o erro deve ser mapeado para 5xx e ter o detalhe omitido do cliente
func (e *DomainError) Internal() bool {
	return e.Kind == ErrKindStorageFailure || e.Kind == ErrKindLedgerInconsistency
}

func errInvalidRequest(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: ErrKindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func errProductNotFound(ref string) *DomainError {
	return &DomainError{Kind: ErrKindProductNotFound, Message: fmt.Sprintf("product '%s' not found", ref)}
}

func errInsufficientStock(productID, productName string, requested, available int) *DomainError {
	return &DomainError{
		Kind: ErrKindInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for product %s (%s): requested %d, available %d",
			productName, productID, requested, available),
	}
}

func errOrderNotFound(id string) *DomainError {
	return &DomainError{Kind: ErrKindOrderNotFound, Message: fmt.Sprintf("order '%s' not found", id)}
}

func errInvalidStatus(status string) *DomainError {
	return &DomainError{Kind: ErrKindInvalidStatus, Message: fmt.Sprintf("'%s' is not a valid order status", status)}
}

func errInvalidTransition(id, current string) *DomainError {
	return &DomainError{
		Kind:    ErrKindInvalidTransition,
		Message: fmt.Sprintf("order '%s' is %s and cannot transition", id, current),
	}
}

func errStorageFailure(op string, cause error) *DomainError {
	return &DomainError{Kind: ErrKindStorageFailure, Message: fmt.Sprintf("%s: %v", op, cause)}
}
