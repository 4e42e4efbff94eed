package clicksend

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang-sms-dispatch/internal/domain"
	"golang-sms-dispatch/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		APIKey:   "secret-key",
		Username: "user",
		BaseURL:  srv.URL,
		Version:  "v3",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadConfig(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, cfg := range []Config{
		{Username: "", APIKey: "k", BaseURL: "https://rest.clicksend.com", Version: "v3"},
		{Username: "u", APIKey: "", BaseURL: "https://rest.clicksend.com", Version: "v3"},
		{Username: "u", APIKey: "k", BaseURL: "rest.clicksend.com", Version: "v3"},
		{Username: "u", APIKey: "k", BaseURL: "https://rest.clicksend.com", Version: ""},
	} {
		_, err := New(cfg, log)
		assert.ErrorIs(t, err, domain.ErrProviderClient)
	}
}

func TestSend_PostsMessagesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/sms/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		// base64("user:secret-key")
		assert.Equal(t, "Basic dXNlcjpzZWNyZXQta2V5", r.Header.Get("Authorization"))

		var got map[string][]map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, map[string][]map[string]string{
			"messages": {{"body": "hello", "to": "+123456789", "from": "+1234567890", "source": "api"}},
		}, got)

		w.WriteHeader(http.StatusOK)
	})

	err := c.Send(context.Background(), ports.OutboundSMS{To: "+123456789", From: "+1234567890", Body: "hello"})
	assert.NoError(t, err)
}

func TestSend_Non2xxCarriesStatusAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "bad number")
	})

	err := c.Send(context.Background(), ports.OutboundSMS{To: "+123456789", From: "MYBUSINESS", Body: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMessageSendFailed)

	var sendErr *domain.SendFailedError
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, http.StatusBadRequest, sendErr.StatusCode)
	assert.Equal(t, "bad number", sendErr.Body)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "bad number")
}

func TestSend_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(Config{APIKey: "k", Username: "u", BaseURL: url, Version: "v3"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	err = c.Send(context.Background(), ports.OutboundSMS{To: "+123456789", From: "MYBUSINESS", Body: "hi"})
	var sendErr *domain.SendFailedError
	require.ErrorAs(t, err, &sendErr)
	assert.Zero(t, sendErr.StatusCode)
	assert.Error(t, sendErr.Err)
}

func TestSend_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := New(Config{APIKey: "k", Username: "u", BaseURL: srv.URL, Version: "v3", Timeout: 50 * time.Millisecond},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	err = c.Send(context.Background(), ports.OutboundSMS{To: "+123456789", From: "MYBUSINESS", Body: "hi"})
	assert.ErrorIs(t, err, domain.ErrMessageSendFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestVerifiedNumbers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/own-numbers", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = io.WriteString(w, `{"http_code":200,"data":[{"phone_number":"+1234567890"},{"phone_number":"+1987654321"}]}`)
	})

	set, err := c.VerifiedNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NewStringSet("+1234567890", "+1987654321"), set)
}

func TestDedicatedNumbers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/numbers", r.URL.Path)
		_, _ = io.WriteString(w, `{"http_code":200,"data":{"total":1,"data":[{"dedicated_number":"+11234567890"}]}}`)
	})

	set, err := c.DedicatedNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.NewStringSet("+11234567890"), set)
}

func TestDirectory_EmptyListIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[]}`)
	})

	set, err := c.VerifiedNumbers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestDirectory_UndecodableBodyIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>maintenance</html>`)
	})

	_, err := c.VerifiedNumbers(context.Background())
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)

	_, err = c.DedicatedNumbers(context.Background())
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
}

func TestDirectory_Non2xxIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "invalid credentials")
	})

	_, err := c.DedicatedNumbers(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryUnavailable)
	assert.Contains(t, err.Error(), "401")
}

func TestAlphaTags_NoEndpoint(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	set, err := c.AlphaTags(context.Background())
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Zero(t, calls.Load())
}
