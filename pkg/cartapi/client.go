// Package cartapi is the HTTP client for the scancart cart API.
package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

const (
	defaultBaseURL             = "http://localhost:3001"
	defaultTimeout             = 10 * time.Second
	errorBodyReadLimit   int64 = 1024
	TokenHeader                = "X-Scancart-Token"
	IdempotencyKeyHeader       = "Idempotency-Key"
)

var errAPIKeyRequired = errors.New("api key is required for cart reads")

// Client talks to the cart API on behalf of one shopper.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	mu    sync.RWMutex
	token string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithAPIKey sets the shared key used by GetCart.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(apiKey)
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a client; with no options it targets a local API.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return client
}

// Product is a catalog row as returned by the API.
type Product struct {
	ProductID   string      `json:"Product_id"`
	ProductName string      `json:"Product_name"`
	Price       types.Money `json:"Price"`
	Discount    types.Money `json:"Discount"`
	Category    string      `json:"Category,omitempty"`
}

// CartLine is one row of a stored cart.
type CartLine struct {
	ProductID   string      `json:"Product_id"`
	ProductName string      `json:"Product_name"`
	Price       types.Money `json:"Price"`
	Discount    types.Money `json:"Discount"`
	Quantity    int         `json:"Quantity"`
}

// Product returns the catalog part of the line.
func (l CartLine) Product() Product {
	return Product{
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Price:       l.Price,
		Discount:    l.Discount,
	}
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	UserID    string `json:"Userid"`
	Password  string `json:"Password"`
	Name      string `json:"Name,omitempty"`
	Birthdate string `json:"Birthdate,omitempty"`
	Gender    string `json:"Gender,omitempty"`
	PhoneNum  string `json:"Phone_num,omitempty"`
	Email     string `json:"Email,omitempty"`
}

// Token returns the access token captured by the last successful Login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login authenticates the shopper. A token returned by the server is kept and
// sent as a bearer credential on later calls.
func (c *Client) Login(ctx context.Context, userID, password string) error {
	if strings.TrimSpace(userID) == "" || password == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and password are required")
	}
	body := map[string]string{"Userid": userID, "password": password}
	resp, err := c.do(ctx, "login", http.MethodPost, "api/login", body, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if token := strings.TrimSpace(resp.Header.Get(TokenHeader)); token != "" {
		c.mu.Lock()
		c.token = token
		c.mu.Unlock()
	}
	return nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := c.do(ctx, "register", http.MethodPost, "api/register", req, nil)
	if err != nil {
		return err
	}
	return drain(resp)
}

// GetCart lists the stored cart of userID. An empty cart is reported by the
// server as 404; callers use IsNotFound to tell it apart from failures.
func (c *Client) GetCart(ctx context.Context, userID string) ([]CartLine, error) {
	if c.apiKey == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errAPIKeyRequired, "get cart")
	}
	path := fmt.Sprintf("api/cart/%s/%s", url.PathEscape(c.apiKey), url.PathEscape(userID))
	resp, err := c.do(ctx, "get cart", http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var lines []CartLine
	if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart response")
	}
	return lines, nil
}

// GetProduct resolves a scanned code to its product.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	resp, err := c.do(ctx, "get product", http.MethodGet, "api/products/"+url.PathEscape(trimmed), nil, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product response")
	}
	return &product, nil
}

// AddCartItem inserts a new line and returns its id. idempotencyKey may be
// empty; when set the server replays the first response for retries.
func (c *Client) AddCartItem(ctx context.Context, userID, productID string, quantity int, idempotencyKey string) (int64, error) {
	body := map[string]any{"Product_id": productID, "User_id": userID, "Quantity": quantity}
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[IdempotencyKeyHeader] = idempotencyKey
	}
	resp, err := c.do(ctx, "add cart item", http.MethodPost, "api/cart-item", body, headers)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	var payload types.MessageBody
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode add cart item response")
	}
	if payload.CartItemID == nil {
		return 0, nil
	}
	return *payload.CartItemID, nil
}

// UpdateCartItem sets the stored quantity of productID, creating the cart
// and the line when missing.
func (c *Client) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) error {
	body := map[string]any{"Product_id": productID, "Userid": userID, "Quantity": quantity}
	resp, err := c.do(ctx, "update cart item", http.MethodPost, "api/cart/update", body, nil)
	if err != nil {
		return err
	}
	return drain(resp)
}

// DeleteCartItem removes productID from the cart of userID.
func (c *Client) DeleteCartItem(ctx context.Context, userID, productID string) error {
	path := fmt.Sprintf("api/cart-item/%s/%s", url.PathEscape(userID), url.PathEscape(productID))
	resp, err := c.do(ctx, "delete cart item", http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	return drain(resp)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, headers map[string]string) (*http.Response, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart api client not configured")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal "+op+" request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+op+" request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+op+" request")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		statusErr := readStatusError(resp)
		return nil, pkgerrors.Wrap(codeForStatus(resp.StatusCode), statusErr, op+" request failed")
	}
	return resp, nil
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}

func drain(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()
	_, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response body")
	}
	return nil
}
