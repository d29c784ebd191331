package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/messaging"
	"storefront/internal/metrics"
	"storefront/internal/store"
	"storefront/internal/timer"

	"go.uber.org/zap"
)

// CheckoutState is the position of a session in the checkout flow
type CheckoutState string

const (
	CheckoutIdle        CheckoutState = "idle"
	CheckoutFormValid   CheckoutState = "form_valid"
	CheckoutFormInvalid CheckoutState = "form_invalid"
	CheckoutSubmitting  CheckoutState = "submitting"
	CheckoutConfirmed   CheckoutState = "confirmed"
)

// Timer key of the delayed cart clear after confirmation
const CheckoutClearKey = "checkout.clear"

// CheckoutRedirect is where the client goes once an order is confirmed
const CheckoutRedirect = "/cafeteria"

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrCheckoutInProgress    = errors.New("checkout already in progress")
	ErrOrderAlreadyConfirmed = errors.New("order already confirmed")
)

// CheckoutForm is the customer-facing order form
type CheckoutForm struct {
	CustomerName string              `json:"customer_name"`
	DeliveryMode domain.DeliveryMode `json:"delivery_mode"`
	TableNumber  *int                `json:"table_number"`
}

// checkoutInput is the validated shape of a form. A zero TableNumber means
// no table was given.
type checkoutInput struct {
	CustomerName string `json:"customer_name" validate:"required,min=3"`
	DeliveryMode string `json:"delivery_mode" validate:"required,oneof=table counter"`
	TableNumber  int    `json:"table_number" validate:"required_if=DeliveryMode table,gte=0,max=50"`
}

// checkoutFields lists every form field; all of them count as touched once
// the form has been validated.
var checkoutFields = []string{"customer_name", "delivery_mode", "table_number"}

// normalize applies the default mode and drops the table number outside
// table mode.
func (f CheckoutForm) normalize() CheckoutForm {
	if f.DeliveryMode == "" {
		f.DeliveryMode = domain.DeliveryCounter
	}
	if f.DeliveryMode != domain.DeliveryTable {
		f.TableNumber = nil
	}
	return f
}

func (f CheckoutForm) input() checkoutInput {
	in := checkoutInput{
		CustomerName: f.CustomerName,
		DeliveryMode: string(f.DeliveryMode),
	}
	if f.TableNumber != nil {
		in.TableNumber = *f.TableNumber
	}
	return in
}

// TableRequired reports whether the table number is mandatory for mode
func TableRequired(mode domain.DeliveryMode) bool {
	return mode == domain.DeliveryTable
}

// FormReport is the outcome of validating a checkout form
type FormReport struct {
	State         CheckoutState `json:"state"`
	Valid         bool          `json:"valid"`
	TableRequired bool          `json:"table_required"`
	Touched       []string      `json:"touched"`
	Err           error         `json:"-"`
}

// CheckoutView is what the checkout page renders
type CheckoutView struct {
	State         CheckoutState `json:"state"`
	Cart          store.State   `json:"cart"`
	TableRequired bool          `json:"table_required"`
	LastOrder     *domain.Order `json:"last_order,omitempty"`
}

// ConfirmResult carries the confirmed order and where to go next
type ConfirmResult struct {
	Order      domain.Order `json:"order"`
	Redirect   string       `json:"redirect"`
	ClearsInMS int64        `json:"clears_in_ms"`
}

// CheckoutOptions configures a Checkout
type CheckoutOptions struct {
	Topic        string
	ConfirmDelay time.Duration
	Metrics      *metrics.Metrics
}

// Checkout drives one session's cafeteria order from form to confirmation
type Checkout struct {
	mu        sync.Mutex
	state     CheckoutState
	lastOrder *domain.Order

	cart      *store.Store
	scheduler *timer.Scheduler
	publisher messaging.Publisher
	opts      CheckoutOptions
	logger    *zap.Logger
}

// NewCheckout creates an idle checkout bound to a cart and a scheduler
func NewCheckout(
	cart *store.Store,
	scheduler *timer.Scheduler,
	publisher messaging.Publisher,
	opts CheckoutOptions,
	logger *zap.Logger,
) *Checkout {
	return &Checkout{
		state:     CheckoutIdle,
		cart:      cart,
		scheduler: scheduler,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
	}
}

// State returns the current checkout state
func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Begin enters the checkout page. An empty cart refuses entry.
func (c *Checkout) Begin() (CheckoutView, error) {
	snapshot := c.cart.Snapshot()
	if snapshot.TotalItemCount() == 0 {
		return CheckoutView{}, ErrEmptyCart
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return CheckoutView{
		State:         c.state,
		Cart:          snapshot,
		TableRequired: TableRequired(snapshot.Mode),
		LastOrder:     c.lastOrder,
	}, nil
}

// Validate checks form without touching the cart
func (c *Checkout) Validate(form CheckoutForm) FormReport {
	report := validateCheckoutForm(form)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != CheckoutSubmitting && c.state != CheckoutConfirmed {
		c.state = report.State
	}
	report.State = c.state
	return report
}

func validateCheckoutForm(form CheckoutForm) FormReport {
	form = form.normalize()
	report := FormReport{
		State:         CheckoutFormValid,
		Valid:         true,
		TableRequired: TableRequired(form.DeliveryMode),
		Touched:       checkoutFields,
	}
	if err := validate.Struct(form.input()); err != nil {
		report.State = CheckoutFormInvalid
		report.Valid = false
		report.Err = err
	}
	return report
}

// Confirm validates form, generates the order and schedules the cart clear.
// An invalid form leaves the cart untouched and returns the report error.
func (c *Checkout) Confirm(ctx context.Context, form CheckoutForm) (ConfirmResult, FormReport, error) {
	if c.cart.TotalItemCount() == 0 {
		return ConfirmResult{}, FormReport{}, ErrEmptyCart
	}

	c.mu.Lock()
	switch c.state {
	case CheckoutSubmitting:
		c.mu.Unlock()
		return ConfirmResult{}, FormReport{}, ErrCheckoutInProgress
	case CheckoutConfirmed:
		c.mu.Unlock()
		return ConfirmResult{}, FormReport{}, ErrOrderAlreadyConfirmed
	}

	report := validateCheckoutForm(form)
	if !report.Valid {
		c.state = CheckoutFormInvalid
		c.mu.Unlock()
		return ConfirmResult{}, report, report.Err
	}
	c.state = CheckoutSubmitting
	c.mu.Unlock()

	form = form.normalize()
	c.cart.SetDeliveryMode(form.DeliveryMode)
	c.cart.SetTableNumber(form.TableNumber)
	order, version := c.cart.GenerateVersionedOrder(form.CustomerName)

	c.publish(ctx, order)
	if c.opts.Metrics != nil {
		c.opts.Metrics.OrdersConfirmed.Inc()
		c.opts.Metrics.OrderTotal.Observe(order.Total.InexactFloat64())
	}

	c.mu.Lock()
	c.state = CheckoutConfirmed
	c.lastOrder = &order
	c.mu.Unlock()

	c.scheduler.Schedule(CheckoutClearKey, c.opts.ConfirmDelay, func() { c.finish(version) })

	c.logger.Info("Order confirmed",
		zap.Int64("order_id", order.ID),
		zap.String("delivery_mode", string(order.Mode)),
		zap.String("total", order.Total.StringFixed(2)),
	)

	report.State = CheckoutConfirmed
	return ConfirmResult{
		Order:      order,
		Redirect:   CheckoutRedirect,
		ClearsInMS: c.opts.ConfirmDelay.Milliseconds(),
	}, report, nil
}

// finish clears the cart unless it changed after the order was taken, and
// returns the flow to idle
func (c *Checkout) finish(version uint64) {
	if !c.cart.ClearIfVersion(version) {
		c.logger.Debug("Order changed after confirmation, keeping it")
	}

	c.mu.Lock()
	c.state = CheckoutIdle
	c.mu.Unlock()
}

// Reset cancels a pending clear and returns to idle
func (c *Checkout) Reset() {
	c.scheduler.Cancel(CheckoutClearKey)

	c.mu.Lock()
	c.state = CheckoutIdle
	c.mu.Unlock()
}

func (c *Checkout) publish(ctx context.Context, order domain.Order) {
	if c.publisher == nil {
		return
	}
	event := messaging.Envelope{
		Type:       messaging.EventOrderConfirmed,
		OccurredAt: order.CreatedAt.UTC().Format(time.RFC3339),
		Payload:    order,
	}
	key := strconv.FormatInt(order.ID, 10)
	if err := c.publisher.PublishEvent(ctx, c.opts.Topic, key, event); err != nil {
		c.logger.Error("Failed to publish order",
			zap.Int64("order_id", order.ID),
			zap.Error(fmt.Errorf("publish %s: %w", messaging.EventOrderConfirmed, err)),
		)
	}
}
