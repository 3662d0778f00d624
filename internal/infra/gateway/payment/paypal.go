// Package payment integrates PayPal's Orders and Payments v2 REST APIs. The
// client approves an order in the frontend; the backend only finalizes
// (captures), reads back, refunds, and charges vaulted payment methods.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"coach-booking-api/internal/domain/appointment"
	"coach-booking-api/internal/pkg/clock"
	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/pkg/errs"
	"coach-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

// tokenSafety renews the cached OAuth token this long before it expires.
const tokenSafety = 60 * time.Second

type PayPalGateway struct {
	httpClient *http.Client
	cfg        config.PayPalConfig
	clock      clock.Clock

	mu           sync.Mutex
	token        string
	tokenExpires time.Time
}

func NewPayPalGateway(cfg config.PayPalConfig, clk clock.Clock) *PayPalGateway {
	return &PayPalGateway{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cfg:        cfg,
		clock:      clk,
	}
}

func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderRef string) (*commands.CaptureResult, error) {
	path := fmt.Sprintf("/v2/checkout/orders/%s/capture", url.PathEscape(orderRef))
	body, err := g.post(ctx, path, nil, uuid.NewString())
	if err != nil {
		return nil, err
	}

	var resp captureOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errs.Wrap(err, "failed to decode capture response")
	}
	capture := resp.firstCapture()
	if capture == nil {
		return nil, errs.New("capture response carries no capture")
	}

	result := &commands.CaptureResult{
		OrderRef:   resp.ID,
		CaptureRef: capture.ID,
		Status:     resp.Status,
		PayerEmail: resp.Payer.EmailAddress,
	}
	if vaultID := resp.PaymentSource.PayPal.Attributes.Vault.ID; vaultID != "" {
		result.StoredMethodRef = &vaultID
	}
	return result, nil
}

func (g *PayPalGateway) GetOrder(ctx context.Context, orderRef string) (*commands.OrderDetails, error) {
	body, err := g.get(ctx, "/v2/checkout/orders/"+url.PathEscape(orderRef))
	if err != nil {
		return nil, err
	}

	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errs.Wrap(err, "failed to decode order response")
	}
	if len(resp.PurchaseUnits) == 0 {
		return nil, errs.New("order response carries no purchase unit")
	}

	amount := resp.PurchaseUnits[0].Amount
	cents, err := parseAmountCents(amount.Value)
	if err != nil {
		return nil, err
	}
	return &commands.OrderDetails{
		OrderRef:    resp.ID,
		Status:      resp.Status,
		AmountCents: cents,
		Currency:    amount.CurrencyCode,
	}, nil
}

// RefundCapture refunds a capture, fully when amount is nil.
func (g *PayPalGateway) RefundCapture(ctx context.Context, captureRef string, amount *appointment.Money) (string, error) {
	var payload any
	if amount != nil {
		payload = map[string]any{
			"amount": moneyBody(*amount),
		}
	}

	path := fmt.Sprintf("/v2/payments/captures/%s/refund", url.PathEscape(captureRef))
	body, err := g.post(ctx, path, payload, uuid.NewString())
	if err != nil {
		return "", err
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errs.Wrap(err, "failed to decode refund response")
	}
	return resp.ID, nil
}

// ChargeStoredMethod charges a vaulted payment method without buyer presence,
// used for late-cancellation fees. A vaulted order captures immediately.
func (g *PayPalGateway) ChargeStoredMethod(ctx context.Context, methodRef string, amount appointment.Money, description string) (string, error) {
	payload := vaultChargeBody(methodRef, amount, description, g.cfg.BrandName)

	body, err := g.post(ctx, "/v2/checkout/orders", payload, uuid.NewString())
	if err != nil {
		return "", err
	}

	var resp captureOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errs.Wrap(err, "failed to decode vault charge response")
	}
	if resp.Status != "COMPLETED" {
		return "", errs.New("vault charge finished with status " + resp.Status)
	}
	capture := resp.firstCapture()
	if capture == nil {
		return "", errs.New("vault charge response carries no capture")
	}
	return capture.ID, nil
}

func (g *PayPalGateway) get(ctx context.Context, path string) ([]byte, error) {
	return g.do(ctx, http.MethodGet, path, nil, "")
}

func (g *PayPalGateway) post(ctx context.Context, path string, payload any, requestID string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errs.Wrap(err, "failed to encode request payload")
		}
		body = bytes.NewReader(raw)
	} else {
		body = strings.NewReader("{}")
	}
	return g.do(ctx, http.MethodPost, path, body, requestID)
}

func (g *PayPalGateway) do(ctx context.Context, method, path string, body io.Reader, requestID string) ([]byte, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL()+path, body)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if requestID != "" {
		req.Header.Set("PayPal-Request-Id", requestID)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "payment request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read payment response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.New(fmt.Sprintf("payment API returned %d: %s", resp.StatusCode, truncate(raw, 512)))
	}
	return raw, nil
}

// accessToken returns a cached client-credentials token, renewing it shortly
// before expiry.
func (g *PayPalGateway) accessToken(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if g.token != "" && now.Before(g.tokenExpires.Add(-tokenSafety)) {
		return g.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL()+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", errs.Wrap(err, "failed to build token request")
	}
	req.SetBasicAuth(g.cfg.ClientID, g.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", errs.Wrap(err, "token request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.Wrap(err, "failed to read token response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errs.New(fmt.Sprintf("token endpoint returned %d", resp.StatusCode))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(raw, &tokenResp); err != nil {
		return "", errs.Wrap(err, "failed to decode token response")
	}
	if tokenResp.AccessToken == "" {
		return "", errs.New("token response carries no access token")
	}

	g.token = tokenResp.AccessToken
	g.tokenExpires = now.Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return g.token, nil
}

type captureOrderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
	Payer struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
	PaymentSource struct {
		PayPal struct {
			Attributes struct {
				Vault struct {
					ID string `json:"id"`
				} `json:"vault"`
			} `json:"attributes"`
		} `json:"paypal"`
	} `json:"payment_source"`
}

func (r *captureOrderResponse) firstCapture() *struct {
	ID     string `json:"id"`
	Status string `json:"status"`
} {
	for i := range r.PurchaseUnits {
		captures := r.PurchaseUnits[i].Payments.Captures
		if len(captures) > 0 {
			return &captures[0]
		}
	}
	return nil
}

type orderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Amount struct {
			CurrencyCode string `json:"currency_code"`
			Value        string `json:"value"`
		} `json:"amount"`
	} `json:"purchase_units"`
}

func vaultChargeBody(methodRef string, amount appointment.Money, description, brandName string) map[string]any {
	source := map[string]any{
		"vault_id": methodRef,
	}
	if brandName != "" {
		source["experience_context"] = map[string]any{
			"brand_name": brandName,
		}
	}
	return map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"amount":      moneyBody(amount),
				"description": description,
			},
		},
		"payment_source": map[string]any{
			"paypal": source,
		},
	}
}

func moneyBody(m appointment.Money) map[string]string {
	return map[string]string{
		"currency_code": m.Currency(),
		"value":         m.Value(),
	}
}

// parseAmountCents converts the API's decimal string, e.g. "150.00", into
// cents without going through floats.
func parseAmountCents(value string) (int64, error) {
	whole, frac, _ := strings.Cut(value, ".")
	cents, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, errs.Wrap(err, "invalid amount value")
	}
	cents *= 100
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		sub, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, errs.Wrap(err, "invalid amount fraction")
		}
		cents += sub
	}
	return cents, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
