package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bookingflow/models"
)

const maxResponseBytes = 1 << 20

// APIError is a non-2xx answer from the booking backend. Message is the
// backend's "error" field, empty when it sent none.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s failed: %d", e.Method, e.Path, e.Status)
}

// Client calls the public booking endpoints under a base path such as
// "http://localhost:5000/api".
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client. A nil httpClient uses http.DefaultClient,
// which has no timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// GetConfig fetches the booking configuration, identifying the business by
// client email when known and by domain otherwise.
func (c *Client) GetConfig(ctx context.Context, id models.Identifier) (*models.BookingConfig, error) {
	q := url.Values{}
	switch {
	case id.ClientEmail != "":
		q.Set("clientEmail", id.ClientEmail)
	case id.Domain != "":
		q.Set("domain", id.Domain)
	}

	var resp struct {
		Config *models.BookingConfig `json:"config"`
	}
	if err := c.do(ctx, http.MethodGet, "/public/bookings/config", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Config, nil
}

func (c *Client) GetAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResponse, error) {
	q := url.Values{}
	setIfPresent(q, "date", req.Date)
	setIfPresent(q, "resourceId", req.ResourceID)
	setIfPresent(q, "domain", req.Identifier.Domain)
	setIfPresent(q, "clientEmail", req.Identifier.ClientEmail)

	var resp models.AvailabilityResponse
	err := c.do(ctx, http.MethodGet, "/public/bookings/availability", q, nil, &resp)
	return resp, err
}

func (c *Client) CreateBooking(ctx context.Context, payload models.BookingPayload) (models.Response, error) {
	var resp models.Response
	err := c.do(ctx, http.MethodPost, "/public/bookings", nil, payload, &resp)
	return resp, err
}

func (c *Client) LookupBooking(ctx context.Context, token string) (models.BookingLookup, error) {
	var resp models.BookingLookup
	err := c.do(ctx, http.MethodGet, "/public/bookings/lookup/"+url.PathEscape(token), nil, nil, &resp)
	return resp, err
}

func (c *Client) CancelBooking(ctx context.Context, token string, reason *string) (models.Response, error) {
	var resp models.Response
	err := c.do(ctx, http.MethodPost, "/public/bookings/cancel/"+url.PathEscape(token), nil, models.CancelRequest{Reason: reason}, &resp)
	return resp, err
}

// GetClientTheme fetches the branding of a client. A nil theme means the
// backend answered without one.
func (c *Client) GetClientTheme(ctx context.Context, email string) (*models.Theme, error) {
	var theme *models.Theme
	if err := c.do(ctx, http.MethodGet, "/themes/client/email/"+url.PathEscape(email), nil, nil, &theme); err != nil {
		return nil, err
	}
	return theme, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: res.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
