// Package clicksend talks to the ClickSend REST API: the SMS send endpoint
// and the number listings used to authorize senders.
package clicksend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-sms-dispatch/internal/domain"
	"golang-sms-dispatch/internal/ports"
)

// maxErrorBody caps how much of a failed response is kept in errors.
const maxErrorBody = 4 << 10

// Config holds the provider credentials and endpoint.
type Config struct {
	APIKey   string
	Username string
	BaseURL  string
	Version  string
	// Timeout bounds each outbound call. Zero means no bound.
	Timeout time.Duration
}

// Client implements ports.SMSProvider and ports.SenderDirectory against the
// ClickSend API. It is safe for concurrent use.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// New validates cfg and returns a Client. Failures wrap domain.ErrProviderClient.
func New(cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.Username == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: username and api key are required", domain.ErrProviderClient)
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("%w: api version is required", domain.ErrProviderClient)
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base url %q", domain.ErrProviderClient, cfg.BaseURL)
	}

	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.Version, "/"),
		httpClient: &http.Client{},
		log:        log,
	}, nil
}

type sendMessage struct {
	Body   string `json:"body"`
	To     string `json:"to"`
	From   string `json:"from"`
	Source string `json:"source"`
}

type sendRequest struct {
	Messages []sendMessage `json:"messages"`
}

// Send posts a single message to {base}/{version}/sms/send.
func (c *Client) Send(ctx context.Context, sms ports.OutboundSMS) error {
	payload := sendRequest{Messages: []sendMessage{{
		Body:   sms.Body,
		To:     sms.To,
		From:   sms.From,
		Source: "api",
	}}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal send request: %v", domain.ErrSerialization, err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodPost, "sms/send", bytes.NewReader(body))
	if err != nil {
		return &domain.SendFailedError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.SendFailedError{StatusCode: resp.StatusCode, Body: readBody(resp.Body)}
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

// do issues an authenticated request against an API endpoint.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

func readBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return "Unknown error"
	}
	return string(b)
}
