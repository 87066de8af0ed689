package testdata

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestNewCustomer_FieldsPopulated(t *testing.T) {
	c := NewCustomer(CustomerDetails{})

	fields := map[string]string{
		"FirstName": c.FirstName,
		"LastName":  c.LastName,
		"Email":     c.Email,
		"Address":   c.Address,
		"City":      c.City,
		"ZipCode":   c.ZipCode,
	}
	for name, value := range fields {
		if value == "" {
			t.Errorf("%s should not be empty", name)
		}
	}
	if c.State != "" {
		t.Errorf("Expected no state for a random customer, got %s", c.State)
	}
	if !strings.Contains(c.Email, "@") {
		t.Errorf("Expected email address, got %s", c.Email)
	}
}

func TestRegionalCustomers(t *testing.T) {
	tests := []struct {
		name      string
		customer  CustomerDetails
		wantCity  string
		wantZip   string
		wantState string
	}{
		{
			name:      "US customer",
			customer:  USCustomer(),
			wantCity:  "New York",
			wantZip:   "10001",
			wantState: "New York",
		},
		{
			name:     "French customer",
			customer: FrenchCustomer(),
			wantCity: "Lyon",
			wantZip:  "69001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.customer.City != tt.wantCity {
				t.Errorf("Expected city %s, got %s", tt.wantCity, tt.customer.City)
			}
			if tt.customer.ZipCode != tt.wantZip {
				t.Errorf("Expected zip %s, got %s", tt.wantZip, tt.customer.ZipCode)
			}
			if tt.customer.State != tt.wantState {
				t.Errorf("Expected state %q, got %q", tt.wantState, tt.customer.State)
			}
			if tt.customer.FirstName == "" || tt.customer.Email == "" {
				t.Error("Expected random personal fields to be filled")
			}
		})
	}
}

func TestGenerator_SeededIsDeterministic(t *testing.T) {
	a := NewGenerator(42).Customer(CustomerDetails{})
	b := NewGenerator(42).Customer(CustomerDetails{})
	if a != b {
		t.Errorf("Expected identical customers for the same seed, got %+v and %+v", a, b)
	}
}

func TestTestEmail(t *testing.T) {
	if email := TestEmail(); !strings.Contains(email, "@") {
		t.Errorf("Expected email address, got %s", email)
	}
}

func TestCustomer_OverridesWin_Properties(t *testing.T) {
	gen := NewGenerator(7)
	field := rapid.StringMatching(`[A-Za-z0-9 ]{0,12}`)

	rapid.Check(t, func(t *rapid.T) {
		overrides := CustomerDetails{
			FirstName: field.Draw(t, "first_name"),
			LastName:  field.Draw(t, "last_name"),
			City:      field.Draw(t, "city"),
			ZipCode:   field.Draw(t, "zip"),
			State:     field.Draw(t, "state"),
		}

		got := gen.Customer(overrides)

		check := func(name, override, value string) {
			if override != "" && value != override {
				t.Fatalf("%s: expected override %q, got %q", name, override, value)
			}
			if override == "" && name != "State" && value == "" {
				t.Fatalf("%s: expected generated value when no override given", name)
			}
		}
		check("FirstName", overrides.FirstName, got.FirstName)
		check("LastName", overrides.LastName, got.LastName)
		check("City", overrides.City, got.City)
		check("ZipCode", overrides.ZipCode, got.ZipCode)
		check("State", overrides.State, got.State)
	})
}
