package billing

import (
	"context"
	"fmt"

	"github.com/plutov/paypal/v4"
)

// PaymentClient is the narrow payment-provider surface the Service
// needs: create an order, capture an approved order. The token
// exchange is an implementation detail of the provider client.
type PaymentClient interface {
	CreateOrder(ctx context.Context, amount, currency, description string) (orderID, approvalURL string, err error)
	CaptureOrder(ctx context.Context, orderID string) (status string, err error)
}

// PayPal implements PaymentClient against the PayPal Orders v2 API.
type PayPal struct {
	client    *paypal.Client
	brandName string
	returnURL string
	cancelURL string
}

var _ PaymentClient = (*PayPal)(nil)

func NewPayPal(clientID, secret, apiBase string) (*PayPal, error) {
	if clientID == "" || secret == "" {
		return nil, fmt.Errorf("missing PayPal credentials")
	}
	client, err := paypal.NewClient(clientID, secret, apiBase)
	if err != nil {
		return nil, fmt.Errorf("paypal client: %w", err)
	}
	return &PayPal{
		client:    client,
		brandName: "Sanctify Plus",
		returnURL: "https://example.com/success",
		cancelURL: "https://example.com/cancel",
	}, nil
}

func (p *PayPal) CreateOrder(ctx context.Context, amount, currency, description string) (string, string, error) {
	if _, err := p.client.GetAccessToken(ctx); err != nil {
		return "", "", fmt.Errorf("paypal token: %w", err)
	}

	order, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture,
		[]paypal.PurchaseUnitRequest{{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: currency,
				Value:    amount,
			},
			Description: description,
		}},
		nil,
		&paypal.ApplicationContext{
			BrandName:   p.brandName,
			LandingPage: "NO_PREFERENCE",
			UserAction:  paypal.UserActionPayNow,
			ReturnURL:   p.returnURL,
			CancelURL:   p.cancelURL,
		})
	if err != nil {
		return "", "", fmt.Errorf("create order: %w", err)
	}

	approvalURL := ""
	for _, link := range order.Links {
		if link.Rel == "approve" {
			approvalURL = link.Href
			break
		}
	}
	return order.ID, approvalURL, nil
}

func (p *PayPal) CaptureOrder(ctx context.Context, orderID string) (string, error) {
	if _, err := p.client.GetAccessToken(ctx); err != nil {
		return "", fmt.Errorf("paypal token: %w", err)
	}
	capture, err := p.client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		return "", fmt.Errorf("capture order: %w", err)
	}
	return capture.Status, nil
}
