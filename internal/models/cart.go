package models

type CartItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"` // unit price in rupees
	Quantity    int     `json:"quantity"`
}
