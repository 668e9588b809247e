package models

import "time"

// Product is a catalog item auctions are created from.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	ImageURL       string            `json:"image_url,omitempty"`
	MarketPrice    int               `json:"market_price"`
	Category       string            `json:"category,omitempty"`
	Brand          string            `json:"brand,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	IsActive       bool              `json:"is_active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Banner is a promotional banner shown on the home screen carousel.
type Banner struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Gradient    string `json:"gradient,omitempty"`
	Accent      string `json:"accent,omitempty"`
	ButtonText  string `json:"button_text,omitempty"`
	ButtonLink  string `json:"button_link,omitempty"`
	IsActive    bool   `json:"is_active"`
	OrderIndex  int    `json:"order_index"`
}

// CoinPackage is a purchasable bundle of wallet coins.
type CoinPackage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Coins    int    `json:"coins"`
	Bonus    int    `json:"bonus,omitempty"`
	PriceUSD int    `json:"price_cents"`
}

// PaymentIntent is the handle for a simulated top-up purchase. The flow is
// create-intent, then confirm, then a local coin credit once the backend
// acknowledges the confirmation.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret,omitempty"`
	Amount       int    `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Payment is one row of the user's payment history.
type Payment struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	Coins     int       `json:"coins"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
