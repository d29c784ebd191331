package service

import (
	"context"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/store"
	"storefront/internal/timer"

	"go.uber.org/zap"
)

// Timer key of the delayed book cart clear after a payment
const PaymentClearKey = "payment.clear"

// PaymentForm is the simulated card form of the book cart
type PaymentForm struct {
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required,cardnumber"`
	Expiry string `json:"expiry" validate:"required"`
	CVV    string `json:"cvv" validate:"required"`
}

// PaymentResult describes an accepted payment
type PaymentResult struct {
	Message    string `json:"message"`
	Amount     string `json:"amount"`
	Items      int    `json:"items"`
	ClearsInMS int64  `json:"clears_in_ms"`
}

// PaymentService simulates paying for the book cart
type PaymentService struct {
	delay   time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewPaymentService creates a PaymentService that clears the cart delay after
// an accepted payment
func NewPaymentService(delay time.Duration, m *metrics.Metrics, logger *zap.Logger) *PaymentService {
	return &PaymentService{delay: delay, metrics: m, logger: logger}
}

// Pay validates form against a non-empty cart and schedules the cart clear.
// No money moves.
func (s *PaymentService) Pay(ctx context.Context, cart *store.Store, scheduler *timer.Scheduler, form PaymentForm) (PaymentResult, error) {
	snapshot := cart.Snapshot()
	if snapshot.IsEmpty() {
		s.record("empty_cart")
		return PaymentResult{}, ErrEmptyCart
	}
	if err := validate.StructCtx(ctx, form); err != nil {
		s.record("invalid")
		return PaymentResult{}, err
	}

	// books added after paying survive the delayed clear
	scheduler.Schedule(PaymentClearKey, s.delay, func() { cart.ClearIfVersion(snapshot.Version) })
	s.record("accepted")

	s.logger.Info("Payment accepted",
		zap.Int("items", snapshot.TotalItemCount()),
		zap.String("amount", snapshot.TotalPrice().StringFixed(2)),
	)

	return PaymentResult{
		Message:    "Payment processed successfully. Thank you for your purchase.",
		Amount:     snapshot.TotalPrice().StringFixed(2),
		Items:      snapshot.TotalItemCount(),
		ClearsInMS: s.delay.Milliseconds(),
	}, nil
}

func (s *PaymentService) record(outcome string) {
	if s.metrics != nil {
		s.metrics.Payments.WithLabelValues(outcome).Inc()
	}
}
