package models

type ShippingOption struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"` // rupees
	EstimatedDays int     `json:"estimated_days"`
}

type ShippingCalculation struct {
	Options       []ShippingOption `json:"options"`
	FreeThreshold float64          `json:"free_threshold"`
	CartTotal     float64          `json:"cart_total"`
	IsFree        bool             `json:"is_free"`
}

// TimelineStep is one milestone on the track-order page.
type TimelineStep struct {
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
