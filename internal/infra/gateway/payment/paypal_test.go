//go:build unit

package payment

import (
	"encoding/json"
	"testing"

	"coach-booking-api/internal/domain/appointment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountCents(t *testing.T) {
	testCases := []struct {
		name    string
		value   string
		want    int64
		wantErr bool
	}{
		{name: "whole dollars", value: "150.00", want: 15000},
		{name: "no fraction", value: "150", want: 15000},
		{name: "single fraction digit", value: "150.5", want: 15050},
		{name: "extra precision is truncated", value: "150.005", want: 15000},
		{name: "cents only", value: "0.05", want: 5},
		{name: "not a number", value: "abc", wantErr: true},
		{name: "bad fraction", value: "150.x", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseAmountCents(tc.value)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMoneyBody(t *testing.T) {
	m, err := appointment.NewMoney(7500, "USD")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"currency_code": "USD", "value": "75.00"}, moneyBody(m))
}

func TestVaultChargeBody(t *testing.T) {
	m, err := appointment.NewMoney(7500, "USD")
	require.NoError(t, err)

	t.Run("brand name flows into the experience context", func(t *testing.T) {
		body := vaultChargeBody("vault-1", m, "Late cancellation fee", "WIMD Coaching")

		assert.Equal(t, "CAPTURE", body["intent"])
		units := body["purchase_units"].([]map[string]any)
		require.Len(t, units, 1)
		assert.Equal(t, "Late cancellation fee", units[0]["description"])
		source := body["payment_source"].(map[string]any)["paypal"].(map[string]any)
		assert.Equal(t, "vault-1", source["vault_id"])
		assert.Equal(t, map[string]any{"brand_name": "WIMD Coaching"}, source["experience_context"])
	})

	t.Run("no experience context without a brand name", func(t *testing.T) {
		body := vaultChargeBody("vault-1", m, "Late cancellation fee", "")

		source := body["payment_source"].(map[string]any)["paypal"].(map[string]any)
		assert.NotContains(t, source, "experience_context")
	})
}

func TestCaptureOrderResponseParsing(t *testing.T) {
	raw := []byte(`{
		"id": "5O190127TN364715T",
		"status": "COMPLETED",
		"purchase_units": [{
			"payments": {
				"captures": [{"id": "3C679366HH908993F", "status": "COMPLETED"}]
			}
		}],
		"payer": {"email_address": "client@example.com"},
		"payment_source": {
			"paypal": {"attributes": {"vault": {"id": "v1a2u3l4t5"}}}
		}
	}`)

	var resp captureOrderResponse
	require.NoError(t, json.Unmarshal(raw, &resp))

	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "client@example.com", resp.Payer.EmailAddress)
	assert.Equal(t, "v1a2u3l4t5", resp.PaymentSource.PayPal.Attributes.Vault.ID)

	capture := resp.firstCapture()
	require.NotNil(t, capture)
	assert.Equal(t, "3C679366HH908993F", capture.ID)

	t.Run("no captures", func(t *testing.T) {
		var empty captureOrderResponse
		require.NoError(t, json.Unmarshal([]byte(`{"id":"x","status":"PENDING"}`), &empty))
		assert.Nil(t, empty.firstCapture())
	})
}
