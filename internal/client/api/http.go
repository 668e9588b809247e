package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/soukbid/soukbid-cli/internal/client/models"
	"github.com/soukbid/soukbid-cli/internal/logging"
)

// envelope is the uniform response wrapper every endpoint uses:
// {success, data?, error?, message?}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// HTTPClient implements Client against the REST backend. A bearer token is
// attached to every request from the TokenStore; on an expired-token 401 the
// client refreshes once and replays the request, mirroring the token pair
// back into the store.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given base URL. No default request
// timeout is set; callers bound calls through the context.
func NewHTTPClient(baseURL string, tokens TokenStore, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

// do issues one request and decodes the envelope's data field into out
// (when out is non-nil). It retries exactly once after a successful token
// refresh on 401.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	err := c.doOnce(ctx, method, path, query, body, out, true)
	return err
}

func (c *HTTPClient) doOnce(ctx context.Context, method, path string, query url.Values, body, out any, allowRefresh bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var buf *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		buf = bytes.NewReader(data)
	} else {
		buf = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	access, _, err := c.tokens.Tokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tokens: %w", err)
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: malformed response", ErrServer)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if allowRefresh {
			if rerr := c.refresh(ctx); rerr == nil {
				return c.doOnce(ctx, method, path, query, body, out, false)
			}
		}
		if env.Error != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, env.Error)
		}
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: %s", ErrServer, msg)
		case msg != "":
			return fmt.Errorf("%s", msg)
		default:
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// refresh exchanges the stored refresh token for a new pair and saves it.
func (c *HTTPClient) refresh(ctx context.Context) error {
	_, refreshToken, err := c.tokens.Tokens(ctx)
	if err != nil {
		return err
	}
	if refreshToken == "" {
		return ErrUnauthorized
	}

	var tokens models.AuthTokens
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.doOnce(ctx, http.MethodPost, "/api/auth/refresh", nil, body, &tokens, false); err != nil {
		return err
	}
	c.log.Info(ctx, "access token refreshed")
	return c.tokens.Save(ctx, tokens.AccessToken, tokens.RefreshToken)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var result models.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &result); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(ctx, result.Tokens.AccessToken, result.Tokens.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password, phone string) (*models.AuthResult, error) {
	var result models.AuthResult
	body := map[string]string{"name": name, "email": email, "password": password}
	if phone != "" {
		body["phone"] = phone
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &result); err != nil {
		return nil, err
	}
	if err := c.tokens.Save(ctx, result.Tokens.AccessToken, result.Tokens.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) RefreshTokens(ctx context.Context) (*models.AuthTokens, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	access, refreshToken, err := c.tokens.Tokens(ctx)
	if err != nil {
		return nil, err
	}
	return &models.AuthTokens{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout tells the server to revoke the session, then drops the stored token
// pair regardless of the call's outcome.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	if cerr := c.tokens.Clear(ctx); cerr != nil {
		return fmt.Errorf("failed to clear tokens: %w", cerr)
	}
	return err
}

func (c *HTTPClient) ListAuctions(ctx context.Context, p ListAuctionsParams) ([]*models.Auction, error) {
	q := url.Values{}
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	var auctions []*models.Auction
	if err := c.do(ctx, http.MethodGet, "/api/auctions", q, nil, &auctions); err != nil {
		return nil, err
	}
	return auctions, nil
}

func (c *HTTPClient) GetAuction(ctx context.Context, id string) (*models.Auction, error) {
	var auction models.Auction
	if err := c.do(ctx, http.MethodGet, "/api/auctions/"+url.PathEscape(id), nil, nil, &auction); err != nil {
		return nil, err
	}
	return &auction, nil
}

func (c *HTTPClient) JoinAuction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/auctions/"+url.PathEscape(id)+"/join", nil, nil, nil)
}

func (c *HTTPClient) PlaceBid(ctx context.Context, id string, amount int) error {
	body := map[string]int{"amount": amount}
	return c.do(ctx, http.MethodPost, "/api/auctions/"+url.PathEscape(id)+"/bid", nil, body, nil)
}

func (c *HTTPClient) ListBids(ctx context.Context, id string) ([]*models.Bid, error) {
	var bids []*models.Bid
	if err := c.do(ctx, http.MethodGet, "/api/auctions/"+url.PathEscape(id)+"/bids", nil, nil, &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, p ListProductsParams) ([]*models.Product, error) {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	var products []*models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", q, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/api/products/categories/list", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *HTTPClient) ListBanners(ctx context.Context) ([]*models.Banner, error) {
	var banners []*models.Banner
	if err := c.do(ctx, http.MethodGet, "/api/banners", nil, nil, &banners); err != nil {
		return nil, err
	}
	return banners, nil
}

func (c *HTTPClient) CreateBanner(ctx context.Context, in BannerInput) (*models.Banner, error) {
	var banner models.Banner
	if err := c.do(ctx, http.MethodPost, "/api/banners", nil, in, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (c *HTTPClient) UpdateBanner(ctx context.Context, id string, in BannerInput) (*models.Banner, error) {
	var banner models.Banner
	if err := c.do(ctx, http.MethodPut, "/api/banners/"+url.PathEscape(id), nil, in, &banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (c *HTTPClient) DeleteBanner(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/banners/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) CreatePaymentIntent(ctx context.Context, amount int, currency string) (*models.PaymentIntent, error) {
	if currency == "" {
		currency = "usd"
	}
	var intent models.PaymentIntent
	body := map[string]any{"amount": amount, "currency": currency}
	if err := c.do(ctx, http.MethodPost, "/api/payments/create-intent", nil, body, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *HTTPClient) ConfirmPayment(ctx context.Context, intentID string) (*models.Payment, error) {
	var payment models.Payment
	body := map[string]string{"payment_intent_id": intentID}
	if err := c.do(ctx, http.MethodPost, "/api/payments/confirm", nil, body, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *HTTPClient) ListCoinPackages(ctx context.Context) ([]*models.CoinPackage, error) {
	var packages []*models.CoinPackage
	if err := c.do(ctx, http.MethodGet, "/api/payments/packages", nil, nil, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (c *HTTPClient) PaymentHistory(ctx context.Context, page, limit int) ([]*models.Payment, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var history []*models.Payment
	if err := c.do(ctx, http.MethodGet, "/api/payments/history", q, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}
