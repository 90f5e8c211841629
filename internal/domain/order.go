package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Customer — данные покупателя, свободный текст без валидации.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// PaymentDetails — идентификаторы платежа, присланные клиентом после оплаты.
type PaymentDetails struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Order — доменная сущность заказа. Создаётся один раз при сохранении,
// не обновляется и не удаляется.
type Order struct {
	OrderID       string          `json:"orderId"`
	Customer      Customer        `json:"customer"`
	Items         json.RawMessage `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	Shipping      float64         `json:"shipping"`
	Total         float64         `json:"total"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	Payment       json.RawMessage `json:"payment,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"

	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

const orderIDPrefix = "ORD"

// NewOrderID формирует идентификатор заказа: префикс + миллисекундная
// метка времени. Уникальность при совпадении миллисекунды не гарантируется.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("%s%d", orderIDPrefix, now.UnixMilli())
}
