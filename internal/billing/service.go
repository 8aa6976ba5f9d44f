package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sanctify-api/internal/logger"
	"sanctify-api/internal/metrics"
	"sanctify-api/internal/models"
	"sanctify-api/internal/store"
)

var (
	// ErrPaymentNotCompleted means the provider capture did not come
	// back COMPLETED; the account was not upgraded.
	ErrPaymentNotCompleted = errors.New("billing: payment not completed")

	// ErrSimulationDisabled means simulated payments are not enabled
	// in this deployment.
	ErrSimulationDisabled = errors.New("billing: simulated payments are disabled")
)

// CheckoutOrder is returned to the client to drive the approval step.
type CheckoutOrder struct {
	OrderID     string `json:"order_id"`
	ApprovalURL string `json:"approval_url"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
}

// Service runs the order-create / capture sequence and flips the
// premium flag on success.
type Service struct {
	payments      PaymentClient
	orders        OrderLog
	profiles      store.ProfileStore
	price         string
	currency      string
	allowSimulate bool
	now           func() time.Time
}

func NewService(payments PaymentClient, orders OrderLog, profiles store.ProfileStore, price string, allowSimulate bool) *Service {
	return &Service{
		payments:      payments,
		orders:        orders,
		profiles:      profiles,
		price:         price,
		currency:      "USD",
		allowSimulate: allowSimulate,
		now:           time.Now,
	}
}

// CreateOrder creates a provider order for the premium upgrade and
// records it. The order row is audit data; a logging failure does not
// abort a checkout the provider has already accepted.
func (s *Service) CreateOrder(ctx context.Context, uid string) (*CheckoutOrder, error) {
	orderID, approvalURL, err := s.payments.CreateOrder(ctx, s.price, s.currency, "Sanctify Plus Premium Access")
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	row := models.Order{
		OrderID:   orderID,
		UserID:    uid,
		Reference: uuid.NewString(),
		Amount:    s.price,
		Currency:  s.currency,
		Status:    models.OrderStatusCreated,
	}
	if err := s.orders.Record(ctx, row); err != nil {
		logger.Warn("order row not recorded", "order_id", orderID, "uid", uid, "error", err)
	}

	return &CheckoutOrder{
		OrderID:     orderID,
		ApprovalURL: approvalURL,
		Amount:      s.price,
		Currency:    s.currency,
	}, nil
}

// CaptureOrder captures an approved order. A COMPLETED capture flips
// isPremium on the profile; any other status returns
// ErrPaymentNotCompleted with the provider status.
func (s *Service) CaptureOrder(ctx context.Context, uid, orderID string) (string, error) {
	status, err := s.payments.CaptureOrder(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if status != models.OrderStatusCompleted {
		return status, ErrPaymentNotCompleted
	}

	now := s.now()
	// The user has paid at this point. A profile write failure must
	// surface so support can reconcile it against the order row.
	if err := s.profiles.SetPremium(ctx, uid, now); err != nil {
		return status, fmt.Errorf("activate premium for %s: %w", uid, err)
	}
	if err := s.orders.MarkCaptured(ctx, orderID, status, now); err != nil {
		logger.Warn("captured order row not updated", "order_id", orderID, "error", err)
	}
	metrics.OrdersCapturedTotal.Inc()
	logger.Info("premium activated", "uid", uid, "order_id", orderID)
	return status, nil
}

// Simulate grants premium without a provider round-trip. It exists for
// development against incomplete credentials and is disabled unless
// explicitly configured.
func (s *Service) Simulate(ctx context.Context, uid string) error {
	if !s.allowSimulate {
		return ErrSimulationDisabled
	}
	now := s.now()
	if err := s.profiles.SetPremium(ctx, uid, now); err != nil {
		return fmt.Errorf("activate premium for %s: %w", uid, err)
	}
	row := models.Order{
		OrderID:   "SIM-" + uuid.NewString(),
		UserID:    uid,
		Reference: uuid.NewString(),
		Amount:    s.price,
		Currency:  s.currency,
		Status:    models.OrderStatusSimulated,
	}
	if err := s.orders.Record(ctx, row); err != nil {
		logger.Warn("simulated order row not recorded", "uid", uid, "error", err)
	}
	logger.Warn("premium granted via simulated payment", "uid", uid)
	return nil
}

// Orders returns the user's order history, newest first.
func (s *Service) Orders(ctx context.Context, uid string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, uid)
}
