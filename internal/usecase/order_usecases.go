package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/checkout-service/internal/domain"
	"go.uber.org/zap"
)

// CreateGatewayOrder — создать платёжный ордер во внешнем шлюзе.
type CreateGatewayOrder struct {
	Gateway domain.PaymentGateway
}

func (uc CreateGatewayOrder) Execute(ctx context.Context, amount float64, currency string) (json.RawMessage, error) {
	if amount <= 0 {
		return nil, domain.ErrValidation
	}
	if currency == "" {
		currency = "INR"
	}
	return uc.Gateway.CreateOrder(ctx, amount, currency)
}

// SaveOrderInput — данные заказа из тела запроса плюс необязательный платёж.
type SaveOrderInput struct {
	Customer domain.Customer
	Items    json.RawMessage
	Subtotal float64
	Shipping float64
	Total    float64
	Payment  *domain.PaymentDetails
}

// SaveOrder — проверить подпись платежа (если она есть), сохранить заказ,
// затем best-effort уведомить продавца и опубликовать событие.
type SaveOrder struct {
	Repo      domain.OrderRepository
	Notifier  domain.Notifier
	Publisher domain.EventPublisher
	KeySecret string
	Logger    *zap.SugaredLogger

	// Now подменяется в тестах; nil означает time.Now.
	Now func() time.Time
}

func (uc SaveOrder) Execute(ctx context.Context, in SaveOrderInput) (string, error) {
	now := time.Now()
	if uc.Now != nil {
		now = uc.Now()
	}

	o := domain.Order{
		OrderID:       domain.NewOrderID(now),
		Customer:      in.Customer,
		Items:         in.Items,
		Subtotal:      in.Subtotal,
		Shipping:      in.Shipping,
		Total:         in.Total,
		PaymentMethod: domain.PaymentMethodCOD,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     now,
	}

	// Известный риск: заказ без подписи классифицируется как наложенный
	// платёж и проверку не проходит вовсе. Клиент, опустивший поле
	// razorpay_signature, минует верификацию. Поведение сохранено намеренно.
	if in.Payment != nil && in.Payment.RazorpaySignature != "" {
		if !domain.VerifySignature(in.Payment.RazorpayOrderID, in.Payment.RazorpayPaymentID, in.Payment.RazorpaySignature, uc.KeySecret) {
			return "", domain.ErrSignatureMismatch
		}
		raw, err := json.Marshal(in.Payment)
		if err != nil {
			return "", err
		}
		o.Payment = raw
		o.PaymentMethod = domain.PaymentMethodOnline
		o.PaymentStatus = domain.PaymentStatusPaid
	}

	raw, err := json.Marshal(o)
	if err != nil {
		return "", err
	}
	if err := uc.Repo.Insert(ctx, o.OrderID, raw); err != nil {
		return "", err
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.Notify(ctx, o); err != nil {
			uc.Logger.Errorw("order notification failed", "orderId", o.OrderID, zap.Error(err))
		}
	}
	if uc.Publisher != nil {
		if err := uc.Publisher.Publish(raw); err != nil {
			uc.Logger.Errorw("order event publish failed", "orderId", o.OrderID, zap.Error(err))
		}
	}

	return o.OrderID, nil
}
