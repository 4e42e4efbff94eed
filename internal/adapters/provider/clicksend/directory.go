package clicksend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang-sms-dispatch/internal/domain"
)

// ownNumbersResponse is the envelope returned by GET /own-numbers.
type ownNumbersResponse struct {
	Data []struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"data"`
}

// numbersResponse is the envelope returned by GET /numbers. The records sit
// one level deeper than in ownNumbersResponse.
type numbersResponse struct {
	Data struct {
		Total int `json:"total"`
		Data  []struct {
			DedicatedNumber string `json:"dedicated_number"`
		} `json:"data"`
	} `json:"data"`
}

// VerifiedNumbers lists the account's verified own numbers.
func (c *Client) VerifiedNumbers(ctx context.Context) (domain.StringSet, error) {
	var out ownNumbersResponse
	if err := c.getJSON(ctx, "own-numbers", &out); err != nil {
		return nil, err
	}

	set := make(domain.StringSet, len(out.Data))
	for _, n := range out.Data {
		set[n.PhoneNumber] = struct{}{}
	}
	c.log.Debug("fetched own numbers", "count", len(set))
	return set, nil
}

// DedicatedNumbers lists the numbers purchased on the account.
func (c *Client) DedicatedNumbers(ctx context.Context) (domain.StringSet, error) {
	var out numbersResponse
	if err := c.getJSON(ctx, "numbers", &out); err != nil {
		return nil, err
	}

	set := make(domain.StringSet, len(out.Data.Data))
	for _, n := range out.Data.Data {
		set[n.DedicatedNumber] = struct{}{}
	}
	c.log.Debug("fetched dedicated numbers", "count", len(set))
	return set, nil
}

// AlphaTags always returns an empty set; the API exposes no listing for them.
func (c *Client) AlphaTags(ctx context.Context) (domain.StringSet, error) {
	return domain.StringSet{}, nil
}

// getJSON fetches endpoint and decodes it into v. Every failure, including
// an undecodable body, wraps domain.ErrDirectoryUnavailable so callers can
// tell "could not read" from "read and empty".
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDirectoryUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s: status %d: %s",
			domain.ErrDirectoryUnavailable, endpoint, resp.StatusCode, readBody(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", domain.ErrDirectoryUnavailable, endpoint, err)
	}
	return nil
}
