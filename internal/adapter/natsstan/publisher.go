package natsstan

import (
	"fmt"
	"time"

	"github.com/example/checkout-service/internal/domain"
	stan "github.com/nats-io/stan.go"
)

// Publisher — долгоживущее соединение со STAN для публикации
// сохранённых заказов. Публикация best-effort, без повторов.
type Publisher struct {
	Subject string
	sc      stan.Conn
}

func Connect(clusterID, clientID, url, subject string) (*Publisher, error) {
	if clientID == "" {
		clientID = fmt.Sprintf("checkout-svc-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(url))
	if err != nil {
		return nil, err
	}
	return &Publisher{Subject: subject, sc: sc}, nil
}

func (p *Publisher) Publish(raw []byte) error {
	return p.sc.Publish(p.Subject, raw)
}

func (p *Publisher) Close() error {
	return p.sc.Close()
}

var _ domain.EventPublisher = (*Publisher)(nil)
