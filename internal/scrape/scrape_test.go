package scrape

import (
	"fmt"
	"regexp"
	"testing"

	"pgregory.net/rapid"
)

func TestExtractors(t *testing.T) {
	tests := []struct {
		name     string
		extract  func(string) string
		text     string
		expected string
	}{
		{name: "cart badge", extract: CartBadge, text: "Cart (2)", expected: "2"},
		{name: "cart badge empty cart", extract: CartBadge, text: "Cart (0)", expected: "0"},
		{name: "cart badge missing", extract: CartBadge, text: "Cart", expected: Zero},
		{name: "digits from icon", extract: Digits, text: "shopping_cart 3", expected: "3"},
		{name: "digits missing", extract: Digits, text: "shopping_cart", expected: Zero},
		{name: "modal summary singular", extract: ItemCount, text: "There is 1 item in your cart.", expected: "1"},
		{name: "modal summary plural", extract: ItemCount, text: "There are 5 items in your cart.", expected: "5"},
		{name: "cart summary", extract: ItemCount, text: "2 items", expected: "2"},
		{name: "item count missing", extract: ItemCount, text: "Your cart is empty", expected: Zero},
		{name: "total", extract: EuroAmount, text: "Total: €45.00", expected: "45.00"},
		{name: "total with tax label", extract: EuroAmount, text: "Total (tax incl.) €38.18", expected: "38.18"},
		{name: "total missing", extract: EuroAmount, text: "Total: $45.00", expected: Zero},
		{name: "order reference", extract: OrderReference, text: "Order reference: #XKBKNABJK", expected: "XKBKNABJK"},
		{name: "order reference missing", extract: OrderReference, text: "Order reference:", expected: Empty},
		{name: "order reference lowercase ignored", extract: OrderReference, text: "Order reference: #abc", expected: Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.extract(tt.text); got != tt.expected {
				t.Errorf("extract(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestFirst_NoCaptureGroupFallsBack(t *testing.T) {
	re := regexp.MustCompile(`\d+`)
	if got := First(re, "123", "fallback"); got != "fallback" {
		t.Errorf("First() = %q, want fallback", got)
	}
}

func TestEuroAmount_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		euros := rapid.IntRange(0, 99999).Draw(t, "euros")
		cents := rapid.IntRange(0, 99).Draw(t, "cents")
		prefix := rapid.StringMatching(`[A-Za-z :()]{0,20}`).Draw(t, "prefix")

		amount := fmt.Sprintf("%d.%02d", euros, cents)
		if got := EuroAmount(prefix + "€" + amount); got != amount {
			t.Fatalf("expected %q, got %q", amount, got)
		}
		if got := EuroAmount(prefix + amount); got != Zero {
			t.Fatalf("expected sentinel without currency symbol, got %q", got)
		}
	})
}

func TestOrderReference_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ref := rapid.StringMatching(`[A-Z0-9]{1,12}`).Draw(t, "reference")
		got := OrderReference("Order reference: #" + ref)
		if got != ref {
			t.Fatalf("expected %q, got %q", ref, got)
		}
	})
}

func TestCartBadge_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 999).Draw(t, "count")
		if got := CartBadge(fmt.Sprintf("Cart (%d)", n)); got != fmt.Sprint(n) {
			t.Fatalf("expected %d, got %q", n, got)
		}
	})
}
