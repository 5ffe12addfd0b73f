package models

import "time"

// Session is the server-side state behind a session cookie. It lives in
// Redis, never in a table, and carries the cart so that cart mutations
// stay scoped to one authenticated session.
type Session struct {
	UserID    uint         `json:"user_id"`
	Username  string       `json:"username"`
	Role      string       `json:"role"`
	Cart      map[uint]int `json:"cart"` // product id -> quantity
	CreatedAt time.Time    `json:"created_at"`
}

// CartLine is a cart entry joined against the catalog for display.
type CartLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}
