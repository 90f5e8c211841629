package domain

import (
	"context"
	"encoding/json"
)

// OrderRepository — порт для операций персистентности заказов.
// Хранилище журнальное: только вставка, без обновлений и удалений.
type OrderRepository interface {
	Insert(ctx context.Context, id string, raw []byte) error
}

// PaymentGateway — порт внешнего платёжного шлюза.
// Тело ответа шлюза возвращается вызывающему как есть.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount float64, currency string) (json.RawMessage, error)
}

// Notifier — порт уведомления продавца о сохранённом заказе.
// Вызов best-effort: ошибка не влияет на результат сохранения.
type Notifier interface {
	Notify(ctx context.Context, o Order) error
}

// EventPublisher — порт публикации события о сохранённом заказе.
// Тот же контракт best-effort, что и у Notifier.
type EventPublisher interface {
	Publish(raw []byte) error
}

// Общие доменные ошибки
var (
	ErrSignatureMismatch = verificationError("invalid payment signature")
	ErrValidation        = validationError("invalid data")
)

type verificationError string

func (e verificationError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }
