package main

import (
	"errors"
	"testing"
	"time"
)

func TestNewOrder(t *testing.T) {
	// Arrange
	items := []OrderItem{{ProductID: "product-789", Quantity: 2}}

	// Act
	order := NewOrder("weekly restock", "customer-456", items, true)

	// Assert
	if order.ID == "" {
		t.Error("Expected ID to be generated")
	}
	if order.OrderName != "weekly restock" {
		t.Errorf("Expected OrderName 'weekly restock', got %s", order.OrderName)
	}
	if order.CustomerID != "customer-456" {
		t.Errorf("Expected CustomerID customer-456, got %s", order.CustomerID)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Errorf("Expected items to be kept, got %+v", order.Items)
	}
	if !order.PaymentReceived {
		t.Error("Expected PaymentReceived to be true")
	}
	if order.Status != OrderStatusPending {
		t.Errorf("Expected Status %s, got %s", OrderStatusPending, order.Status)
	}
	if order.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
	if order.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}

	now := time.Now()
	if order.CreatedAt.After(now) || order.CreatedAt.Before(now.Add(-time.Second)) {
		t.Error("CreatedAt is not within expected time range")
	}
}

func TestOrderStatus(t *testing.T) {
	// Test that constants are defined correctly
	if OrderStatusPending != "PENDING" {
		t.Errorf("Expected OrderStatusPending to be 'PENDING', got %s", OrderStatusPending)
	}
	if OrderStatusPaid != "PAID" {
		t.Errorf("Expected OrderStatusPaid to be 'PAID', got %s", OrderStatusPaid)
	}
	if OrderStatusFulfilled != "FULFILLED" {
		t.Errorf("Expected OrderStatusFulfilled to be 'FULFILLED', got %s", OrderStatusFulfilled)
	}
	if OrderStatusCancelled != "CANCELLED" {
		t.Errorf("Expected OrderStatusCancelled to be 'CANCELLED', got %s", OrderStatusCancelled)
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{"PENDING", "PAID", "FULFILLED", "CANCELLED"} {
		if !ValidStatus(status) {
			t.Errorf("Expected %s to be valid", status)
		}
	}
	for _, status := range []string{"", "pending", "SHIPPED", "DONE"} {
		if ValidStatus(status) {
			t.Errorf("Expected %s to be invalid", status)
		}
	}
}

func TestDomainError(t *testing.T) {
	err := errInsufficientStock("p1", "Laptop", 5, 3)

	var derr *DomainError
	if !errors.As(err, &derr) {
		t.Fatal("Expected a *DomainError")
	}
	if derr.Kind != ErrKindInsufficientStock {
		t.Errorf("Expected kind %s, got %s", ErrKindInsufficientStock, derr.Kind)
	}
	if derr.Internal() {
		t.Error("Expected InsufficientStock to be client-facing")
	}
	if errStorageFailure("op", errors.New("boom")).Internal() != true {
		t.Error("Expected StorageFailure to be internal")
	}
}
