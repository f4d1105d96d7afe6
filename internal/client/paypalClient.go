package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Betaniacelis/tiendaonline/internal/config"
	"github.com/Betaniacelis/tiendaonline/internal/model"
)

// ErrCredentialsMissing is returned before any network call when the
// PayPal client id or secret is not configured.
var ErrCredentialsMissing = errors.New("paypal credentials not configured")

// ErrInvalidAmount is returned by CreateOrder for totals <= 0.
var ErrInvalidAmount = errors.New("order total must be greater than zero")

// GatewayError is a non-2xx answer from PayPal, raw body included.
type GatewayError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("paypal %s failed: status=%d body=%s", e.Op, e.StatusCode, e.Body)
}

// CaptureResult reports how a capture call ended. Amount is the
// gateway-formatted value actually captured (e.g. "49.99"); it is empty
// when the capture did not complete.
type CaptureResult struct {
	Captured bool
	Amount   string
}

type PaypalClient interface {
	CreateOrder(ctx context.Context, total float64) (string, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

type paypalClientImpl struct {
	httpClient         *http.Client
	baseApiURL         string
	paypalClientID     string
	paypalClientSecret string

	mu          sync.Mutex
	cachedToken string
	tokenExpiry time.Time
}

func NewPaypalClient(paypalCfg *config.Paypal) PaypalClient {
	return &paypalClientImpl{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseApiURL:         paypalCfg.BaseApiURL,
		paypalClientID:     paypalCfg.ClientID,
		paypalClientSecret: paypalCfg.ClientSecret,
	}
}

func (c *paypalClientImpl) getAccessToken(ctx context.Context) (string, error) {
	if c.paypalClientID == "" || c.paypalClientSecret == "" {
		return "", ErrCredentialsMissing
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cachedToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.cachedToken, nil
	}

	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.paypalClientID + ":" + c.paypalClientSecret),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/oauth2/token",
		bytes.NewBufferString("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", &GatewayError{Op: "token", StatusCode: resp.StatusCode, Body: string(b)}
	}

	var res model.PaypalTokenResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	c.cachedToken = res.AccessToken
	// refresh a minute before PayPal expires the token
	c.tokenExpiry = time.Now().Add(time.Duration(res.ExpiresIn)*time.Second - time.Minute)

	return res.AccessToken, nil
}

func (c *paypalClientImpl) CreateOrder(ctx context.Context, total float64) (string, error) {
	if total <= 0 {
		return "", ErrInvalidAmount
	}

	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("get paypal access token: %w", err)
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]string{
					"currency_code": "USD",
					"value":         decimal.NewFromFloat(total).StringFixed(2),
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal req payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v2/checkout/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal create order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", &GatewayError{Op: "create-order", StatusCode: resp.StatusCode, Body: string(b)}
	}

	var result model.PaypalOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode paypal response: %w", err)
	}

	return result.ID, nil
}

// CaptureOrder finalizes payment on an approved order. Captured is true
// only when PayPal reports the order COMPLETED; any other status on a
// 2xx answer means the payment did not go through, not that the call
// failed.
func (c *paypalClientImpl) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get paypal access token: %w", err)
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseApiURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url,
		bytes.NewBufferString("{}"))
	if err != nil {
		return nil, fmt.Errorf("create capture request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal capture request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, &GatewayError{Op: "capture", StatusCode: resp.StatusCode, Body: string(b)}
	}

	var result model.PaypalOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode capture response: %w", err)
	}

	if result.Status != model.PaypalOrderStatusCompleted {
		return &CaptureResult{}, nil
	}

	return &CaptureResult{
		Captured: true,
		Amount:   capturedAmount(result.PurchaseUnits),
	}, nil
}

// capturedAmount pulls the completed capture's value out of the capture
// response.
func capturedAmount(units []model.PaypalPurchaseUnit) string {
	for _, unit := range units {
		for _, capture := range unit.Payments.Captures {
			if capture.Status == model.PaypalOrderStatusCompleted {
				return capture.Amount.Value
			}
		}
	}
	return ""
}
