package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"golang-sms-dispatch/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queued struct {
	destination string
	body        string
}

type fakeQueue struct {
	mu    sync.Mutex
	items []queued
	err   error
}

func (q *fakeQueue) Enqueue(ctx context.Context, destination, body string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, queued{destination, body})
	return q.err
}

const goodKey = "k3yk3yk3yk3yk3yk3yk3yk3yk3yk3yk3"

func newTestApp(q *fakeQueue) *fiber.App {
	app := fiber.New()
	h := NewHandler(q, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.Register(app, middleware.BearerAuth(map[string]struct{}{goodKey: {}}, nil))
	return app
}

func doSend(t *testing.T, app *fiber.App, token, body string) (int, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestSend_QueuesOnce(t *testing.T) {
	q := &fakeQueue{}
	status, resp := doSend(t, newTestApp(q), goodKey, `{"phone_number":"+123456789","message":"hello"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, apiResponse{Status: 200, Message: "Message queued"}, resp)
	assert.Equal(t, []queued{{"+123456789", "hello"}}, q.items)
}

func TestSend_Unauthorized(t *testing.T) {
	for _, token := range []string{"", "wrong"} {
		q := &fakeQueue{}
		status, _ := doSend(t, newTestApp(q), token, `{"phone_number":"+123456789","message":"hello"}`)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Empty(t, q.items)
	}
}

func TestSend_UnauthorizedBeforeBodyParsing(t *testing.T) {
	q := &fakeQueue{}
	status, _ := doSend(t, newTestApp(q), "wrong", `{not json`)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestSend_MalformedBody(t *testing.T) {
	for _, body := range []string{`{not json`, ``, `[]`} {
		q := &fakeQueue{}
		status, resp := doSend(t, newTestApp(q), goodKey, body)

		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, "Malformed request", resp.Message)
		assert.Empty(t, q.items)
	}
}

func TestSend_InvalidFields(t *testing.T) {
	for _, body := range []string{
		`{"phone_number":"notanumber","message":"hello"}`,
		`{"message":"hello"}`,
		`{"phone_number":"+123456789","message":""}`,
	} {
		q := &fakeQueue{}
		status, resp := doSend(t, newTestApp(q), goodKey, body)

		assert.Equal(t, http.StatusBadRequest, status, body)
		assert.Equal(t, 400, resp.Status)
		assert.Empty(t, q.items)
	}
}

func TestSend_QueueFailure(t *testing.T) {
	q := &fakeQueue{err: errors.New("channel closed")}
	status, resp := doSend(t, newTestApp(q), goodKey, `{"phone_number":"+123456789","message":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apiResponse{Status: 500, Message: "Failed to queue the message"}, resp)
	assert.Len(t, q.items, 1)
}

func TestSendSMS_LegacyRoute(t *testing.T) {
	q := &fakeQueue{}
	app := newTestApp(q)

	req := httptest.NewRequest(http.MethodPost, "/send_sms", strings.NewReader(`{"phone_number":"+123456789","message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+goodKey)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, q.items, 1)
}
