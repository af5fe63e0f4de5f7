package instacart

import (
	"context"
	"math"
	"testing"

	"larder/internal/grocery"
)

func TestSearchItem(t *testing.T) {
	c := NewClient()
	products, err := c.SearchItem(context.Background(), "whole milk")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}
	p := products[0]
	if p.Name != "whole milk" || !p.Available || p.ID == "" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestAddToCart(t *testing.T) {
	c := NewClient()
	cart, err := c.AddToCart(context.Background(), []grocery.GroceryItem{
		{Name: "Milk", Quantity: 2},
		{Name: "Pasta", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if cart.ID == "" || len(cart.Items) != 2 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("quantity not carried over: %+v", cart.Items[0])
	}
	if math.Abs(cart.TotalPrice-2*5.99) > 1e-9 {
		t.Fatalf("unexpected total: %v", cart.TotalPrice)
	}
}
