package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Betaniacelis/tiendaonline/internal/config"
)

type fakeGateway struct {
	tokenCalls    atomic.Int64
	createCalls   atomic.Int64
	captureCalls  atomic.Int64
	captureStatus string
	captureAmount string
	createStatus  int
	lastCreate    map[string]interface{}

	server *httptest.Server
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()

	g := &fakeGateway{
		captureStatus: "COMPLETED",
		captureAmount: "49.99",
		createStatus:  http.StatusCreated,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "test-client" || pass != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "fake-bearer",
			"token_type":   "Bearer",
			"expires_in":   32400,
		})
	})
	mux.HandleFunc("POST /v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		g.createCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fake-bearer" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewDecoder(r.Body).Decode(&g.lastCreate)
		w.WriteHeader(g.createStatus)
		if g.createStatus >= 300 {
			w.Write([]byte(`{"name":"INVALID_REQUEST"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "EXT-1", "status": "CREATED"})
	})
	mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
		g.captureCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     r.PathValue("id"),
			"status": g.captureStatus,
			"purchase_units": []map[string]interface{}{
				{
					"payments": map[string]interface{}{
						"captures": []map[string]interface{}{
							{
								"id":     "CAP-1",
								"status": g.captureStatus,
								"amount": map[string]string{
									"currency_code": "USD",
									"value":         g.captureAmount,
								},
							},
						},
					},
				},
			},
		})
	})

	g.server = httptest.NewServer(mux)
	t.Cleanup(g.server.Close)
	return g
}

func (g *fakeGateway) client() PaypalClient {
	return NewPaypalClient(&config.Paypal{
		BaseApiURL:   g.server.URL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	})
}

func TestCreateOrder_FormatsAmount(t *testing.T) {
	g := newFakeGateway(t)
	c := g.client()

	orderID, err := c.CreateOrder(context.Background(), 49.99)

	require.NoError(t, err)
	assert.Equal(t, "EXT-1", orderID)

	units := g.lastCreate["purchase_units"].([]interface{})
	amount := units[0].(map[string]interface{})["amount"].(map[string]interface{})
	assert.Equal(t, "49.99", amount["value"])
	assert.Equal(t, "USD", amount["currency_code"])
	assert.Equal(t, "CAPTURE", g.lastCreate["intent"])
}

func TestCreateOrder_RejectsNonPositiveTotal(t *testing.T) {
	g := newFakeGateway(t)
	c := g.client()

	for _, total := range []float64{0, -1, -49.99} {
		_, err := c.CreateOrder(context.Background(), total)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	// validation happens before any network traffic
	assert.Zero(t, g.tokenCalls.Load())
	assert.Zero(t, g.createCalls.Load())
}

func TestCreateOrder_UpstreamRejected(t *testing.T) {
	g := newFakeGateway(t)
	g.createStatus = http.StatusUnprocessableEntity
	c := g.client()

	_, err := c.CreateOrder(context.Background(), 10)

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "create-order", gerr.Op)
	assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode)
	assert.Contains(t, gerr.Body, "INVALID_REQUEST")
}

func TestCreateOrder_MissingCredentials(t *testing.T) {
	g := newFakeGateway(t)
	c := NewPaypalClient(&config.Paypal{BaseApiURL: g.server.URL})

	_, err := c.CreateOrder(context.Background(), 10)

	assert.ErrorIs(t, err, ErrCredentialsMissing)
	assert.Zero(t, g.tokenCalls.Load())
}

func TestCaptureOrder_Completed(t *testing.T) {
	g := newFakeGateway(t)
	c := g.client()

	res, err := c.CaptureOrder(context.Background(), "EXT-1")

	require.NoError(t, err)
	assert.True(t, res.Captured)
	assert.Equal(t, "49.99", res.Amount)
}

func TestCaptureOrder_PendingIsNotAnError(t *testing.T) {
	g := newFakeGateway(t)
	g.captureStatus = "PENDING"
	c := g.client()

	res, err := c.CaptureOrder(context.Background(), "EXT-1")

	require.NoError(t, err)
	assert.False(t, res.Captured)
	assert.Empty(t, res.Amount)
}

func TestCaptureOrder_UpstreamRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/token") {
			json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "x", "expires_in": 100})
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"ORDER_ALREADY_CAPTURED"}`))
	}))
	defer srv.Close()

	c := NewPaypalClient(&config.Paypal{
		BaseApiURL:   srv.URL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	})

	_, err := c.CaptureOrder(context.Background(), "EXT-1")

	var gerr *GatewayError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "capture", gerr.Op)
	assert.Contains(t, gerr.Body, "ORDER_ALREADY_CAPTURED")
}

func TestAccessToken_CachedAcrossCalls(t *testing.T) {
	g := newFakeGateway(t)
	c := g.client()

	_, err := c.CreateOrder(context.Background(), 10)
	require.NoError(t, err)
	_, err = c.CaptureOrder(context.Background(), "EXT-1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), g.tokenCalls.Load())
}
