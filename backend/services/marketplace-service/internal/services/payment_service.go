package services

import (
	"context"
	"fmt"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// PaymentOrder is the gateway-side order created at checkout.
type PaymentOrder struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// OrderStatus is the gateway's view of an order, reduced to what the
// booking lifecycle acts on.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusSucceeded OrderStatus = "succeeded"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// PaymentGateway creates, cancels and inspects checkout orders.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*PaymentOrder, error)
	CancelOrder(ctx context.Context, orderID string) error
	GetOrderStatus(ctx context.Context, orderID string) (OrderStatus, error)
}

// StripePaymentService backs PaymentGateway with Stripe PaymentIntents.
type StripePaymentService struct{}

func NewStripePaymentService(secretKey string) *StripePaymentService {
	stripe.Key = secretKey
	return &StripePaymentService{}
}

func (s *StripePaymentService) CreateOrder(
	ctx context.Context,
	amountMinor int64,
	currency string,
	metadata map[string]string,
) (*PaymentOrder, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe create payment intent: %v", utils.ErrExternalServiceFailure, err)
	}
	utils.Logger.WithField("payment_intent", pi.ID).Debugf("Created PaymentIntent for %d %s", amountMinor, currency)

	return &PaymentOrder{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

func (s *StripePaymentService) CancelOrder(ctx context.Context, orderID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := paymentintent.Cancel(orderID, params); err != nil {
		return fmt.Errorf("%w: stripe cancel payment intent %s: %v", utils.ErrExternalServiceFailure, orderID, err)
	}
	return nil
}

func (s *StripePaymentService) GetOrderStatus(ctx context.Context, orderID string) (OrderStatus, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(orderID, params)
	if err != nil {
		return "", fmt.Errorf("%w: stripe get payment intent %s: %v", utils.ErrExternalServiceFailure, orderID, err)
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return OrderStatusSucceeded, nil
	case stripe.PaymentIntentStatusCanceled:
		return OrderStatusCanceled, nil
	default:
		return OrderStatusOpen, nil
	}
}
