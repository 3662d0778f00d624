package payment

import (
	"context"
	"log/slog"

	"coach-booking-api/internal/domain/appointment"
	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

// NullGateway stands in when no payment credentials are configured. Every
// capture completes and every refund succeeds, so full booking flows can run
// locally without touching the payment provider.
type NullGateway struct {
	cfg config.BookingConfig
}

func NewNullGateway(cfg config.BookingConfig) *NullGateway {
	slog.Warn("payment credentials not configured, using null payment gateway")
	return &NullGateway{cfg: cfg}
}

func (g *NullGateway) CaptureOrder(_ context.Context, orderRef string) (*commands.CaptureResult, error) {
	methodRef := "mock-vault-" + uuid.NewString()
	result := &commands.CaptureResult{
		OrderRef:        orderRef,
		CaptureRef:      "mock-capture-" + uuid.NewString(),
		Status:          "COMPLETED",
		PayerEmail:      "mock-payer@example.com",
		StoredMethodRef: &methodRef,
	}
	slog.Info("null payment: order captured", "order_ref", orderRef, "capture_ref", result.CaptureRef)
	return result, nil
}

func (g *NullGateway) GetOrder(_ context.Context, orderRef string) (*commands.OrderDetails, error) {
	currency := "USD"
	if len(g.cfg.Currencies) > 0 {
		currency = g.cfg.Currencies[0]
	}
	return &commands.OrderDetails{
		OrderRef:    orderRef,
		Status:      "COMPLETED",
		AmountCents: g.cfg.SingleSessionPriceCents,
		Currency:    currency,
	}, nil
}

func (g *NullGateway) RefundCapture(_ context.Context, captureRef string, _ *appointment.Money) (string, error) {
	refundRef := "mock-refund-" + uuid.NewString()
	slog.Info("null payment: capture refunded", "capture_ref", captureRef, "refund_ref", refundRef)
	return refundRef, nil
}

func (g *NullGateway) ChargeStoredMethod(_ context.Context, methodRef string, amount appointment.Money, description string) (string, error) {
	chargeRef := "mock-charge-" + uuid.NewString()
	slog.Info("null payment: stored method charged",
		"method_ref", methodRef, "amount", amount.Value(), "description", description)
	return chargeRef, nil
}
