//go:build integration

package repository

import (
	"errors"
	"testing"

	"github.com/adyen/storefront-e2e/internal/models"
	"github.com/adyen/storefront-e2e/internal/repository/testutil"
)

func TestOrderRepository_CreateOrder_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepository(testDB.DB)

	withLines := newTestOrder()
	withLines.Address = models.Address{Address1: "1 Main St", City: "New York", Postcode: "10001", CountryID: models.CountryUnitedStates, StateID: 32}
	withLines.Lines = append(withLines.Lines, models.OrderLine{ProductID: 5, ProductName: "Mug The best is yet to come", UnitPrice: 1428, Quantity: 2})

	// Beyond the 32-bit range of an INTEGER column
	large := newTestOrder()
	large.Lines[0].UnitPrice = 3_000_000_000
	large.Amount = 3_000_000_000

	tests := []struct {
		name  string
		order *models.Order
	}{
		{name: "single line order", order: newTestOrder()},
		{name: "multi line order with state", order: withLines},
		{name: "amount above int32", order: large},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.CreateOrder(tt.order); err != nil {
				t.Fatalf("CreateOrder() error = %v", err)
			}
			if tt.order.CreatedAt.IsZero() {
				t.Error("CreatedAt should be set")
			}

			retrieved, err := repo.GetOrderByID(tt.order.ID)
			if err != nil {
				t.Fatalf("Failed to retrieve created order: %v", err)
			}
			if retrieved.Reference != tt.order.Reference {
				t.Errorf("Reference mismatch: got %v, want %v", retrieved.Reference, tt.order.Reference)
			}
			if retrieved.Amount != tt.order.Amount {
				t.Errorf("Amount mismatch: got %v, want %v", retrieved.Amount, tt.order.Amount)
			}
			if retrieved.Address != tt.order.Address {
				t.Errorf("Address mismatch: got %+v, want %+v", retrieved.Address, tt.order.Address)
			}
			if len(retrieved.Lines) != len(tt.order.Lines) {
				t.Fatalf("Expected %d lines, got %d", len(tt.order.Lines), len(retrieved.Lines))
			}
			for i := range tt.order.Lines {
				if retrieved.Lines[i] != tt.order.Lines[i] {
					t.Errorf("Line %d mismatch: got %+v, want %+v", i, retrieved.Lines[i], tt.order.Lines[i])
				}
			}
		})
	}
}

func TestOrderRepository_CreateOrder_DuplicateReference_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepository(testDB.DB)

	first := newTestOrder()
	if err := repo.CreateOrder(first); err != nil {
		t.Fatalf("Failed to create first order: %v", err)
	}

	second := newTestOrder()
	second.Reference = first.Reference
	if err := repo.CreateOrder(second); err == nil {
		t.Error("Expected error when creating order with duplicate reference, got nil")
	}

	// The failed transaction must not leave lines behind
	if _, err := repo.GetOrderByID(second.ID); !errors.Is(err, models.ErrOrderNotFound) {
		t.Errorf("Expected second order to be absent, got %v", err)
	}
}

func TestOrderRepository_GetOrderByID_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepository(testDB.DB)

	for _, id := range []string{"unknown", "", "00000000-0000-0000-0000-000000000000"} {
		t.Run(id, func(t *testing.T) {
			if _, err := repo.GetOrderByID(id); !errors.Is(err, models.ErrOrderNotFound) {
				t.Errorf("GetOrderByID(%q) error = %v, want %v", id, err, models.ErrOrderNotFound)
			}
		})
	}
}

func TestOrderRepository_UpdateOrderStatus_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepository(testDB.DB)

	order := newTestOrder()
	if err := repo.CreateOrder(order); err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	tests := []struct {
		name      string
		reference string
		status    models.OrderStatus
		wantErr   error
	}{
		{name: "confirm", reference: order.Reference, status: models.OrderStatusConfirmed},
		{name: "non-existent order", reference: "NOSUCHREF", status: models.OrderStatusConfirmed, wantErr: models.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.UpdateOrderStatus(tt.reference, tt.status)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateOrderStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			retrieved, err := repo.GetOrderByReference(tt.reference)
			if err != nil {
				t.Fatalf("Failed to retrieve updated order: %v", err)
			}
			if retrieved.Status != tt.status {
				t.Errorf("Status mismatch: got %v, want %v", retrieved.Status, tt.status)
			}
			if !retrieved.UpdatedAt.After(retrieved.CreatedAt) {
				t.Error("UpdatedAt should be after CreatedAt")
			}
		})
	}
}

func TestOrderRepository_SchemaIsolation_Integration(t *testing.T) {
	testDB1 := testutil.SetupTestDatabase(t)
	defer testDB1.Teardown(t)
	testDB2 := testutil.SetupTestDatabase(t)
	defer testDB2.Teardown(t)

	repo1 := NewOrderRepository(testDB1.DB)
	repo2 := NewOrderRepository(testDB2.DB)

	order := newTestOrder()
	if err := repo1.CreateOrder(order); err != nil {
		t.Fatalf("Failed to create order in first schema: %v", err)
	}

	if _, err := repo1.GetOrderByReference(order.Reference); err != nil {
		t.Errorf("Order should exist in first schema: %v", err)
	}
	if _, err := repo2.GetOrderByReference(order.Reference); !errors.Is(err, models.ErrOrderNotFound) {
		t.Errorf("Order should not exist in second schema, got %v", err)
	}
}
