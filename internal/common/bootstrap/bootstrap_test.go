package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/messenger/backend/internal/common/clock"
	"github.com/AlibekovAA/messenger/backend/internal/common/config"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
)

var epoch = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type client struct {
	t       *testing.T
	handler http.Handler
}

func newClient(t *testing.T) (*client, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(epoch)
	cfg := config.Config{
		SecretKey:        "0123456789abcdef0123456789abcdef",
		BcryptWorkFactor: 4,
		RequestTimeout:   5 * time.Second,
		MaxRequestSize:   1 << 20,
	}
	app := NewInMemory(cfg, logger.Nop(), clk)
	return &client{t: t, handler: app.Handler()}, clk
}

func (c *client) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (c *client) register(username, password string) string {
	c.t.Helper()
	status, body := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username":   username,
		"password":   password,
		"first_name": "A",
		"last_name":  "B",
		"phone":      "555",
	})
	require.Equal(c.t, http.StatusCreated, status, body)
	tok, _ := body["token"].(string)
	require.NotEmpty(c.t, tok)
	return tok
}

func TestEndToEnd_MessageFlow(t *testing.T) {
	c, clk := newClient(t)

	u1 := c.register("u1", "p1")
	u2 := c.register("u2", "p2")

	clk.Advance(time.Minute)
	status, body := c.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "u1", "password": "p1"})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, body = c.do(http.MethodGet, "/users/u1", u1, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "u1", user["username"])
	assert.Equal(t, "555", user["phone"])
	assert.Equal(t, epoch.Add(time.Minute).Format(time.RFC3339), user["last_login_at"])
	assert.Equal(t, epoch.Format(time.RFC3339), user["join_at"])
	assert.NotContains(t, user, "password")

	status, body = c.do(http.MethodPost, "/messages", u1, map[string]string{"to_username": "u2", "body": "hi"})
	require.Equal(t, http.StatusCreated, status, body)
	created := body["message"].(map[string]any)
	assert.Equal(t, "u1", created["from_username"])
	assert.Equal(t, "u2", created["to_username"])
	id := int(created["id"].(float64))
	msgPath := "/messages/" + strconv.Itoa(id)

	status, body = c.do(http.MethodGet, msgPath, u2, nil)
	require.Equal(t, http.StatusOK, status)
	msg := body["message"].(map[string]any)
	assert.Nil(t, msg["read_at"])
	assert.Equal(t, "u1", msg["from_user"].(map[string]any)["username"])
	assert.Equal(t, "u2", msg["to_user"].(map[string]any)["username"])

	status, body = c.do(http.MethodPost, msgPath+"/read", u1, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	clk.Advance(time.Minute)
	status, body = c.do(http.MethodPost, msgPath+"/read", u2, nil)
	require.Equal(t, http.StatusOK, status)
	firstRead := body["message"].(map[string]any)["read_at"]
	assert.Equal(t, epoch.Add(2*time.Minute).Format(time.RFC3339), firstRead)

	clk.Advance(time.Minute)
	status, body = c.do(http.MethodPost, msgPath+"/read", u2, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, firstRead, body["message"].(map[string]any)["read_at"])

	status, body = c.do(http.MethodGet, "/users/u2/to", u2, nil)
	require.Equal(t, http.StatusOK, status)
	received := body["messages"].([]any)
	require.Len(t, received, 1)
	assert.Equal(t, "u1", received[0].(map[string]any)["from_user"].(map[string]any)["username"])

	status, body = c.do(http.MethodGet, "/users/u1/from", u1, nil)
	require.Equal(t, http.StatusOK, status)
	sent := body["messages"].([]any)
	require.Len(t, sent, 1)
	assert.Equal(t, "u2", sent[0].(map[string]any)["to_user"].(map[string]any)["username"])

	status, body = c.do(http.MethodGet, "/users/u2/from", u2, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["messages"])
}

func TestEndToEnd_AccessControl(t *testing.T) {
	c, _ := newClient(t)
	alice := c.register("alice", "pw")
	bob := c.register("bob", "pw")
	carol := c.register("carol", "pw")

	status, _ := c.do(http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = c.do(http.MethodGet, "/users", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := c.do(http.MethodGet, "/users", alice, nil)
	require.Equal(t, http.StatusOK, status)
	users := body["users"].([]any)
	require.Len(t, users, 3)
	assert.NotContains(t, users[0].(map[string]any), "phone")

	status, _ = c.do(http.MethodGet, "/users/bob", alice, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = c.do(http.MethodGet, "/users/bob/to", alice, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = c.do(http.MethodPost, "/messages", alice, map[string]string{"to_username": "bob", "body": "secret"})
	require.Equal(t, http.StatusCreated, status)
	msgPath := "/messages/" + strconv.Itoa(int(body["message"].(map[string]any)["id"].(float64)))

	status, _ = c.do(http.MethodGet, msgPath, carol, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = c.do(http.MethodGet, msgPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = c.do(http.MethodGet, msgPath, bob, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = c.do(http.MethodPost, "/messages", "", map[string]string{"to_username": "bob", "body": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = c.do(http.MethodPost, "/messages", alice, map[string]string{"to_username": "ghost", "body": "x"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", body["code"])

	status, _ = c.do(http.MethodGet, "/messages/999", alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = c.do(http.MethodGet, "/messages/abc", alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEndToEnd_AuthErrors(t *testing.T) {
	c, _ := newClient(t)
	c.register("alice", "pw")

	status, body := c.do(http.MethodPost, "/auth/register", "", map[string]string{
		"username": "alice", "password": "other", "first_name": "A", "last_name": "B", "phone": "1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_USER", body["code"])

	status, body = c.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "other"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	status, body = c.do(http.MethodPost, "/auth/login", "", map[string]string{"username": "ghost", "password": "pw"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	status, body = c.do(http.MethodPost, "/auth/register", "", map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
}

func TestHealth(t *testing.T) {
	c, _ := newClient(t)
	status, body := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
