package models

import (
	"errors"
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestCart_Add(t *testing.T) {
	catalog := DefaultCatalog()
	shirt, _ := catalog.Find(1)
	mug, _ := catalog.Find(5)

	tests := []struct {
		name      string
		adds      []Product
		wantLines int
		wantItems int
	}{
		{
			name:      "single product",
			adds:      []Product{shirt},
			wantLines: 1,
			wantItems: 1,
		},
		{
			name:      "two distinct products",
			adds:      []Product{shirt, mug},
			wantLines: 2,
			wantItems: 2,
		},
		{
			name:      "same product twice merges",
			adds:      []Product{shirt, shirt},
			wantLines: 1,
			wantItems: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &Cart{}
			for _, p := range tt.adds {
				if err := cart.Add(p, 1); err != nil {
					t.Fatalf("Add() unexpected error = %v", err)
				}
			}

			if len(cart.Lines) != tt.wantLines {
				t.Errorf("Expected %d lines, got %d", tt.wantLines, len(cart.Lines))
			}
			if cart.ItemCount() != tt.wantItems {
				t.Errorf("Expected %d items, got %d", tt.wantItems, cart.ItemCount())
			}
		})
	}
}

func TestCart_AddInvalidQuantity(t *testing.T) {
	cart := &Cart{}
	product, _ := DefaultCatalog().Find(1)

	for _, qty := range []int{0, -1} {
		if err := cart.Add(product, qty); err != ErrInvalidQuantity {
			t.Errorf("Add(%d) error = %v, want %v", qty, err, ErrInvalidQuantity)
		}
	}
	if !cart.IsEmpty() {
		t.Error("Expected cart to stay empty")
	}
}

func TestCart_AddQuantityLimit(t *testing.T) {
	mug, _ := DefaultCatalog().Find(5)

	tests := []struct {
		name    string
		first   int
		second  int
		wantErr error
		wantQty int
	}{
		{name: "merge up to the limit", first: MaxLineQuantity - 1, second: 1, wantQty: MaxLineQuantity},
		{name: "merge past the limit", first: MaxLineQuantity, second: 1, wantErr: ErrQuantityTooLarge, wantQty: MaxLineQuantity},
		{name: "huge merge does not wrap", first: 1, second: math.MaxInt, wantErr: ErrQuantityTooLarge, wantQty: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &Cart{}
			if err := cart.Add(mug, tt.first); err != nil {
				t.Fatalf("Add(%d) unexpected error = %v", tt.first, err)
			}

			err := cart.Add(mug, tt.second)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add(%d) error = %v, want %v", tt.second, err, tt.wantErr)
			}
			if cart.Lines[0].Quantity != tt.wantQty {
				t.Errorf("Expected quantity %d, got %d", tt.wantQty, cart.Lines[0].Quantity)
			}
			if cart.Total() <= 0 {
				t.Errorf("Expected a positive total, got %d", cart.Total())
			}
		})
	}

	cart := &Cart{}
	if err := cart.Add(mug, math.MaxInt); !errors.Is(err, ErrQuantityTooLarge) {
		t.Errorf("Add(MaxInt) error = %v, want %v", err, ErrQuantityTooLarge)
	}
	if !cart.IsEmpty() {
		t.Error("Expected cart to stay empty")
	}
}

func TestCart_SetQuantity(t *testing.T) {
	catalog := DefaultCatalog()
	shirt, _ := catalog.Find(1)
	mug, _ := catalog.Find(5)

	cart := &Cart{}
	_ = cart.Add(shirt, 1)
	_ = cart.Add(mug, 1)

	if !cart.SetQuantity(mug.ID, 3) {
		t.Fatal("Expected mug to be in the cart")
	}
	if got := cart.Lines[1].Quantity; got != 3 {
		t.Errorf("Expected mug quantity 3, got %d", got)
	}

	cart.SetQuantity(mug.ID, math.MaxInt)
	if got := cart.Lines[1].Quantity; got != MaxLineQuantity {
		t.Errorf("Expected mug quantity clamped to %d, got %d", MaxLineQuantity, got)
	}
	cart.SetQuantity(mug.ID, 3)

	if !cart.SetQuantity(shirt.ID, 0) {
		t.Fatal("Expected shirt to be in the cart")
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Product.ID != mug.ID {
		t.Errorf("Expected only the mug to remain, got %+v", cart.Lines)
	}

	if cart.SetQuantity(99, 2) {
		t.Error("Expected unknown product to report false")
	}
	if !cart.Remove(mug.ID) {
		t.Error("Expected Remove to report true for the mug")
	}
	if !cart.IsEmpty() {
		t.Error("Expected cart to be empty")
	}
}

func TestCart_Total(t *testing.T) {
	catalog := DefaultCatalog()
	shirt, _ := catalog.Find(1)
	mug, _ := catalog.Find(5)

	cart := &Cart{}
	_ = cart.Add(shirt, 2)
	_ = cart.Add(mug, 1)

	want := int64(2*2390 + 1428)
	if cart.Total() != want {
		t.Errorf("Total() = %d, want %d", cart.Total(), want)
	}
	if FormatEuro(cart.Total()) != "€62.08" {
		t.Errorf("FormatEuro() = %s, want €62.08", FormatEuro(cart.Total()))
	}

	cart.Clear()
	if cart.Total() != 0 {
		t.Errorf("Expected empty cart total 0, got %d", cart.Total())
	}
}

func TestCart_AddProperties(t *testing.T) {
	catalog := DefaultCatalog()

	rapid.Check(t, func(t *rapid.T) {
		picks := rapid.SliceOfN(rapid.SampledFrom([]Product(catalog)), 1, 20).Draw(t, "picks")

		cart := &Cart{}
		distinct := map[int]int{}
		for _, p := range picks {
			if err := cart.Add(p, 1); err != nil {
				t.Fatalf("Add() unexpected error = %v", err)
			}
			distinct[p.ID]++
		}

		if len(cart.Lines) != len(distinct) {
			t.Fatalf("Expected %d lines for distinct products, got %d", len(distinct), len(cart.Lines))
		}
		for _, l := range cart.Lines {
			if l.Quantity != distinct[l.Product.ID] {
				t.Fatalf("Expected quantity %d for %s, got %d", distinct[l.Product.ID], l.Product.Name, l.Quantity)
			}
		}
		if cart.ItemCount() != len(picks) {
			t.Fatalf("Expected %d items, got %d", len(picks), cart.ItemCount())
		}
	})
}

func TestFormatEuro(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "€0.00"},
		{5, "€0.05"},
		{1428, "€14.28"},
		{2390, "€23.90"},
	}

	for _, tt := range tests {
		if got := FormatEuro(tt.cents); got != tt.want {
			t.Errorf("FormatEuro(%d) = %s, want %s", tt.cents, got, tt.want)
		}
	}
}
