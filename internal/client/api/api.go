// Package api is the HTTP transport layer of the client. It exposes one
// operation per backend capability and returns decoded domain models; callers
// never see envelopes, status codes or raw JSON.
package api

import (
	"context"

	"github.com/soukbid/soukbid-cli/internal/client/models"
)

// ListAuctionsParams are the filters supported by the auction list endpoint.
// Zero values are omitted from the query string.
type ListAuctionsParams struct {
	Status   models.Status
	Category string
	Page     int
	Limit    int
}

// ListProductsParams are the filters supported by the product list endpoint.
type ListProductsParams struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// BannerInput is the body for banner create and update calls.
type BannerInput struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Gradient    string `json:"gradient,omitempty"`
	Accent      string `json:"accent,omitempty"`
	ButtonText  string `json:"button_text,omitempty"`
	ButtonLink  string `json:"button_link,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
	OrderIndex  *int   `json:"order_index,omitempty"`
}

// Client defines the backend operations the store and the CLI depend on.
// Tests substitute a fake; production wires an HTTPClient.
//
// All methods honor context cancellation. Authoritative values (bid
// acceptance, wallet balance, winners) come only from these calls.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, name, email, password, phone string) (*models.AuthResult, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	RefreshTokens(ctx context.Context) (*models.AuthTokens, error)
	Logout(ctx context.Context) error

	ListAuctions(ctx context.Context, p ListAuctionsParams) ([]*models.Auction, error)
	GetAuction(ctx context.Context, id string) (*models.Auction, error)
	JoinAuction(ctx context.Context, id string) error
	PlaceBid(ctx context.Context, id string, amount int) error
	ListBids(ctx context.Context, id string) ([]*models.Bid, error)

	ListProducts(ctx context.Context, p ListProductsParams) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)

	ListBanners(ctx context.Context) ([]*models.Banner, error)
	CreateBanner(ctx context.Context, in BannerInput) (*models.Banner, error)
	UpdateBanner(ctx context.Context, id string, in BannerInput) (*models.Banner, error)
	DeleteBanner(ctx context.Context, id string) error

	CreatePaymentIntent(ctx context.Context, amount int, currency string) (*models.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, intentID string) (*models.Payment, error)
	ListCoinPackages(ctx context.Context) ([]*models.CoinPackage, error)
	PaymentHistory(ctx context.Context, page, limit int) ([]*models.Payment, error)

	Health(ctx context.Context) error
}

// TokenStore persists the bearer token pair between runs. Implemented by the
// session repository; the HTTP client reads it before every call and replaces
// it after login, register and refresh.
type TokenStore interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	Save(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}
