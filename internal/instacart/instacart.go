// Package instacart is a stub for grocery-delivery integration. It mirrors
// the shapes a partner API would return but fabricates the data locally; no
// network calls are made.
package instacart

import (
	"context"

	"github.com/google/uuid"

	"larder/internal/grocery"
)

// itemPrice is the flat per-item price the stub quotes.
const itemPrice = 5.99

type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type Cart struct {
	ID         string     `json:"id"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// SearchItem echoes the query back as a single available product.
// TODO: call the partner search endpoint once credentials exist.
func (c *Client) SearchItem(_ context.Context, query string) ([]Product, error) {
	return []Product{
		{
			ID:        "product-" + uuid.NewString(),
			Name:      query,
			Price:     itemPrice,
			Available: true,
		},
	}, nil
}

// AddToCart builds a cart from grocery items, one product per line.
func (c *Client) AddToCart(_ context.Context, items []grocery.GroceryItem) (*Cart, error) {
	cartItems := make([]CartItem, 0, len(items))
	for _, item := range items {
		cartItems = append(cartItems, CartItem{
			ProductID: "product-" + uuid.NewString(),
			Quantity:  item.Quantity,
		})
	}
	return &Cart{
		ID:         "cart-" + uuid.NewString(),
		Items:      cartItems,
		TotalPrice: float64(len(items)) * itemPrice,
	}, nil
}
