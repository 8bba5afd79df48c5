// Package homebox is a minimal client for the Homebox inventory API,
// covering exactly what label printing needs: session tokens and item
// lookup by asset ID.
package homebox

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labelsmith/labelsmith/pkg/errors"
	"github.com/labelsmith/labelsmith/pkg/httputil"
)

const httpTimeout = 10 * time.Second

// Client talks to one Homebox instance. It handles auth headers, response
// caching, and automatic retries on transient failures.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	cache   *httputil.Cache
	refresh bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the session token sent on authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithCache enables response caching. The client namespaces its entries,
// so one cache can be shared across servers and clients.
func WithCache(cache *httputil.Cache) ClientOption {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache.Namespace("item:")
		}
	}
}

// WithRefresh bypasses the cache on reads. Fresh responses are still
// written back.
func WithRefresh() ClientOption {
	return func(c *Client) { c.refresh = true }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client for the Homebox instance at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if err := errors.ValidateServerURL(baseURL); err != nil {
		return nil, err
	}
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized server URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Login exchanges credentials for a session token. The returned token is
// not retained; pass it back via [WithToken] or store it in a session.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	form := url.Values{
		"username":     {username},
		"password":     {password},
		"stayLoggedIn": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/users/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "building login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connecting to %s", c.baseURL)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.New(errors.ErrCodeUnauthorized, "invalid username or password")
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "login failed with status %d", resp.StatusCode)
	}

	var grant LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "decoding login response")
	}
	return &grant, nil
}

// Logout invalidates the client's session token on the server. A missing
// or already-expired token is not an error.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/users/logout", nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "building logout request")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "connecting to %s", c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return errors.New(errors.ErrCodeNetwork, "logout failed with status %d", resp.StatusCode)
	}
	return nil
}

// ItemByAssetID looks up the item carrying the given asset ID. Summary data
// comes from the assets endpoint; custom fields need a second lookup on the
// item itself, and that enrichment degrades silently when it fails.
func (c *Client) ItemByAssetID(ctx context.Context, assetID string) (*Item, error) {
	var item Item
	err := c.cached(ctx, assetID, &item, func() error {
		return c.fetchByAssetID(ctx, assetID, &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) fetchByAssetID(ctx context.Context, assetID string, item *Item) error {
	var page itemPage
	if err := c.getJSON(ctx, "/api/v1/assets/"+url.PathEscape(assetID), &page); err != nil {
		return err
	}
	if len(page.Items) == 0 {
		return errors.New(errors.ErrCodeAssetNotFound, "no item with asset id %s", assetID)
	}
	*item = page.Items[0]

	// The summary lacks custom fields. A label without them still prints,
	// so a failed detail fetch only loses the extras.
	var detail Item
	if err := c.getJSON(ctx, "/api/v1/items/"+item.ID.String(), &detail); err == nil {
		item.Fields = detail.Fields
		if detail.Description != "" {
			item.Description = detail.Description
		}
	}
	return nil
}

// cached reads v from the cache or runs fetch with retries and stores the
// result. With no cache configured every call fetches.
func (c *Client) cached(ctx context.Context, key string, v any, fetch func() error) error {
	if c.cache != nil && !c.refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Set(key, v)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "building request")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "connecting to %s", c.baseURL),
		}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeAssetNotFound, "not found")
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "session rejected, log in again")
	case code >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "server error, status %d", code),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "unexpected status %d", code)
	}
}
