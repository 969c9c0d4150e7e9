package model

import "time"

// UserStatus is the seller presence status reported by warframe.market,
// ranked for preference by the estimator (most responsive first).
type UserStatus string

const (
	StatusInGame    UserStatus = "ingame"
	StatusOnline    UserStatus = "online"
	StatusOffline   UserStatus = "offline"
	StatusInvisible UserStatus = "invisible"
)

// UnavailableReason classifies why a requested item produced no price.
type UnavailableReason string

const (
	ReasonNotFound     UnavailableReason = "not_found"
	ReasonNoSellOrders UnavailableReason = "no_sell_orders"
	ReasonUpstream     UnavailableReason = "upstream_error"
)

type EstimateItemInput struct {
	Slug     string `json:"slug"`
	Quantity int    `json:"quantity"`
}

type EstimateRequest struct {
	Items     []EstimateItemInput `json:"items"`
	Crossplay *bool               `json:"crossplay,omitempty"`
}

type Seller struct {
	OrderID    string     `json:"orderId"`
	IngameName string     `json:"ingameName"`
	Status     UserStatus `json:"status"`
	Reputation *float64   `json:"reputation"`
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
}

// EstimatedItem is one line of the estimate. The price fields are
// all-or-nothing: either unit price, subtotal and seller are all set, or
// all are null and a matching UnavailableItem entry exists.
type EstimatedItem struct {
	Slug               string   `json:"slug"`
	Quantity           int      `json:"quantity"`
	EstimatedUnitPrice *float64 `json:"estimatedUnitPrice"`
	Subtotal           *float64 `json:"subtotal"`
	Seller             *Seller  `json:"seller"`
}

type UnavailableItem struct {
	Slug   string            `json:"slug"`
	Reason UnavailableReason `json:"reason"`
}

type EstimateResponse struct {
	Platform    string            `json:"platform"`
	Crossplay   bool              `json:"crossplay"`
	Currency    string            `json:"currency"`
	Total       float64           `json:"total"`
	Items       []EstimatedItem   `json:"items"`
	Unavailable []UnavailableItem `json:"unavailable"`
	GeneratedAt time.Time         `json:"generatedAt"`
}
