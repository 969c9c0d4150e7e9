package model

// SellOrder is one listing from the warframe.market order book. Orders are
// fetched per estimate and never persisted.
type SellOrder struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Platinum float64   `json:"platinum"`
	Quantity int       `json:"quantity"`
	Visible  *bool     `json:"visible,omitempty"`
	User     OrderUser `json:"user"`
}

type OrderUser struct {
	IngameName string     `json:"ingameName"`
	Status     UserStatus `json:"status"`
	Reputation *float64   `json:"reputation,omitempty"`
	Platform   string     `json:"platform,omitempty"`
	Crossplay  *bool      `json:"crossplay,omitempty"`
}

// OrderBook is the classified result of one order-book fetch. All transport
// failures are folded into it rather than returned as errors: NotFound
// marks an authoritative 404, Failed marks any other transport or envelope
// failure (timeout, rate limit, malformed body, upstream-reported error).
// A successful fetch with zero listings has both flags false.
type OrderBook struct {
	Orders   []SellOrder
	NotFound bool
	Failed   bool
}
