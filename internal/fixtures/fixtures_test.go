package fixtures

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	testhelpers "github.com/servery/servery/internal/test"
)

const sampleYAML = `
accounts:
  - username: alice
    password: secret1
    first_name: Alice
    last_name: Smith
    address: 123 Main St
    card_number: "4111111111111111"
    card_expiry: 12/30
    card_code: "123"
  - username: bob
    password: secret2
    first_name: Bob
    last_name: Jones
restaurants:
  - name: Bistro
    owner: bob
    employees:
      - alice
    menu:
      - name: Soup
        price: "3.45"
      - name: Bread
        price: "$1.00"
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	data, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Accounts) != 2 || len(data.Restaurants) != 1 {
		t.Fatalf("unexpected data: %+v", data)
	}
	if data.Restaurants[0].Menu[1].Price != "$1.00" {
		t.Fatalf("unexpected menu: %+v", data.Restaurants[0].Menu)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApply(t *testing.T) {
	data, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := testhelpers.NewStoreStub()
	if err := Apply(context.Background(), data, store, testhelpers.HasherStub{}, discardLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	alice := store.AccountRows["alice"]
	if alice == nil || alice.PasswordHash != "hash:secret1" {
		t.Fatalf("unexpected account: %+v", alice)
	}
	if !alice.BillingComplete() {
		t.Fatal("expected alice seeded with complete billing")
	}
	if bob := store.AccountRows["bob"]; bob == nil || bob.BillingComplete() {
		t.Fatalf("expected bob without billing, got %+v", bob)
	}

	if len(store.RestaurantRows) != 1 {
		t.Fatalf("expected one restaurant, got %d", len(store.RestaurantRows))
	}
	var restaurantID int64
	for id, restaurant := range store.RestaurantRows {
		if restaurant.Name != "Bistro" || restaurant.Owner != "bob" {
			t.Fatalf("unexpected restaurant: %+v", restaurant)
		}
		restaurantID = id
	}
	if !store.EmployeeRows[restaurantID]["bob"] || !store.EmployeeRows[restaurantID]["alice"] {
		t.Fatalf("expected owner and alice enrolled, got %+v", store.EmployeeRows[restaurantID])
	}
	if len(store.MenuItemRows) != 2 {
		t.Fatalf("expected two menu items, got %d", len(store.MenuItemRows))
	}
	for _, item := range store.MenuItemRows {
		if item.Name == "Bread" && item.PriceCents != 100 {
			t.Fatalf("unexpected price: %+v", item)
		}
		if item.Name == "Soup" && item.PriceCents != 345 {
			t.Fatalf("unexpected price: %+v", item)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	data, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := testhelpers.NewStoreStub()
	for i := 0; i < 2; i++ {
		if err := Apply(context.Background(), data, store, testhelpers.HasherStub{}, discardLogger()); err != nil {
			t.Fatalf("apply %d: unexpected error: %v", i, err)
		}
	}

	if len(store.AccountRows) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(store.AccountRows))
	}
	if len(store.RestaurantRows) != 1 {
		t.Fatalf("expected 1 restaurant, got %d", len(store.RestaurantRows))
	}
	if len(store.MenuItemRows) != 2 {
		t.Fatalf("expected 2 menu items, got %d", len(store.MenuItemRows))
	}
}

func TestApplyBadPrice(t *testing.T) {
	data := &Data{
		Accounts:    []Account{{Username: "bob", Password: "secret"}},
		Restaurants: []Restaurant{{Name: "Bistro", Owner: "bob", Menu: []MenuItem{{Name: "Soup", Price: "free"}}}},
	}

	store := testhelpers.NewStoreStub()
	if err := Apply(context.Background(), data, store, testhelpers.HasherStub{}, discardLogger()); err == nil {
		t.Fatal("expected error for unparseable price")
	}
}
