package billing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"sanctify-api/internal/models"
	"sanctify-api/internal/store"
	"sanctify-api/internal/usage"
)

type stubPayments struct {
	orderID       string
	approvalURL   string
	createErr     error
	captureStatus string
	captureErr    error

	capturedID string
}

func (s *stubPayments) CreateOrder(ctx context.Context, amount, currency, description string) (string, string, error) {
	return s.orderID, s.approvalURL, s.createErr
}

func (s *stubPayments) CaptureOrder(ctx context.Context, orderID string) (string, error) {
	s.capturedID = orderID
	return s.captureStatus, s.captureErr
}

type memOrderLog struct {
	mu     sync.Mutex
	rows   map[string]models.Order
	failed bool
}

func newMemOrderLog() *memOrderLog {
	return &memOrderLog{rows: map[string]models.Order{}}
}

func (l *memOrderLog) Record(ctx context.Context, o models.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failed {
		return errors.New("mysql down")
	}
	o.CreatedAt = time.Now()
	l.rows[o.OrderID] = o
	return nil
}

func (l *memOrderLog) MarkCaptured(ctx context.Context, orderID, status string, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failed {
		return errors.New("mysql down")
	}
	o := l.rows[orderID]
	o.Status = status
	o.CapturedAt = &at
	l.rows[orderID] = o
	return nil
}

func (l *memOrderLog) ListByUser(ctx context.Context, uid string) ([]models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []models.Order{}
	for _, o := range l.rows {
		if o.UserID == uid {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestCreateOrder(t *testing.T) {
	payments := &stubPayments{orderID: "5O190127TN364715T", approvalURL: "https://paypal.test/approve"}
	log := newMemOrderLog()
	svc := NewService(payments, log, store.NewMemory(), "9.99", false)

	order, err := svc.CreateOrder(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CreateOrder() error: %v", err)
	}
	if order.OrderID != "5O190127TN364715T" || order.ApprovalURL != "https://paypal.test/approve" {
		t.Fatalf("unexpected checkout order: %+v", order)
	}
	row, ok := log.rows[order.OrderID]
	if !ok {
		t.Fatal("order row should be recorded")
	}
	if row.Status != models.OrderStatusCreated || row.Amount != "9.99" || row.Currency != "USD" {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestCreateOrderSurvivesLedgerFailure(t *testing.T) {
	payments := &stubPayments{orderID: "ORD-1"}
	log := newMemOrderLog()
	log.failed = true
	svc := NewService(payments, log, store.NewMemory(), "9.99", false)

	if _, err := svc.CreateOrder(context.Background(), "u1"); err != nil {
		t.Fatalf("audit logging failure must not abort checkout: %v", err)
	}
}

func TestCaptureCompletedActivatesPremium(t *testing.T) {
	payments := &stubPayments{captureStatus: "COMPLETED"}
	log := newMemOrderLog()
	profiles := store.NewMemory()
	svc := NewService(payments, log, profiles, "9.99", false)
	ctx := context.Background()

	// Exhaust the daily quota first, the way a real upgrade happens.
	day := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	ledger := usage.NewLedger(profiles, usage.WithClock(func() time.Time { return day }))
	for i := 0; i < usage.DefaultLimit; i++ {
		ledger.Authorize(ctx, "u1", models.FeaturePrayer)
	}
	if ledger.Authorize(ctx, "u1", models.FeaturePrayer) {
		t.Fatal("quota should be exhausted before the upgrade")
	}

	status, err := svc.CaptureOrder(ctx, "u1", "ORD-1")
	if err != nil {
		t.Fatalf("CaptureOrder() error: %v", err)
	}
	if status != "COMPLETED" {
		t.Fatalf("status = %q", status)
	}
	if payments.capturedID != "ORD-1" {
		t.Fatalf("captured wrong order: %q", payments.capturedID)
	}

	p, err := profiles.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !p.IsPremium || p.PremiumStartedAt == nil {
		t.Fatalf("premium not activated: %+v", p)
	}

	// Premium bypasses the exhausted counter from now on.
	for i := 0; i < 5; i++ {
		if !ledger.Authorize(ctx, "u1", models.FeaturePrayer) {
			t.Fatal("ledger must always allow a premium user")
		}
	}
}

func TestCaptureNonCompletedStatus(t *testing.T) {
	payments := &stubPayments{captureStatus: "DECLINED"}
	profiles := store.NewMemory()
	svc := NewService(payments, newMemOrderLog(), profiles, "9.99", false)

	status, err := svc.CaptureOrder(context.Background(), "u1", "ORD-1")
	if !errors.Is(err, ErrPaymentNotCompleted) {
		t.Fatalf("err = %v, want ErrPaymentNotCompleted", err)
	}
	if status != "DECLINED" {
		t.Fatalf("status = %q", status)
	}
	if _, err := profiles.GetProfile(context.Background(), "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatal("failed capture must not touch the profile")
	}
}

func TestCaptureProfileWriteFailureSurfaces(t *testing.T) {
	payments := &stubPayments{captureStatus: "COMPLETED"}
	profiles := store.NewMemory()
	profiles.Err = errors.New("firestore unavailable")
	svc := NewService(payments, newMemOrderLog(), profiles, "9.99", false)

	if _, err := svc.CaptureOrder(context.Background(), "u1", "ORD-1"); err == nil {
		t.Fatal("a paid-but-not-activated capture must surface an error")
	}
}

func TestSimulate(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		svc := NewService(&stubPayments{}, newMemOrderLog(), store.NewMemory(), "9.99", false)
		if err := svc.Simulate(context.Background(), "u1"); !errors.Is(err, ErrSimulationDisabled) {
			t.Fatalf("err = %v, want ErrSimulationDisabled", err)
		}
	})
	t.Run("enabled grants premium and records a row", func(t *testing.T) {
		log := newMemOrderLog()
		profiles := store.NewMemory()
		svc := NewService(&stubPayments{}, log, profiles, "9.99", true)

		if err := svc.Simulate(context.Background(), "u1"); err != nil {
			t.Fatalf("Simulate() error: %v", err)
		}
		p, _ := profiles.GetProfile(context.Background(), "u1")
		if p == nil || !p.IsPremium {
			t.Fatal("premium not granted")
		}
		orders, _ := log.ListByUser(context.Background(), "u1")
		if len(orders) != 1 || orders[0].Status != models.OrderStatusSimulated {
			t.Fatalf("unexpected orders: %+v", orders)
		}
	})
}
