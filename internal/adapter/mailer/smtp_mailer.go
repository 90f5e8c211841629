package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	"github.com/example/checkout-service/internal/domain"
	gomail "gopkg.in/gomail.v2"
)

// SMTPNotifier sends the merchant a plain-text plus HTML rendering of a
// saved order. Delivery is best-effort; callers log and drop the error.
type SMTPNotifier struct {
	Dialer *gomail.Dialer
	From   string
	To     string
}

func NewSMTPNotifier(host string, port int, user, password, merchant string) *SMTPNotifier {
	return &SMTPNotifier{
		Dialer: gomail.NewDialer(host, port, user, password),
		From:   user,
		To:     merchant,
	}
}

// lineItem — свободная форма позиции; незнакомые поля игнорируются.
type lineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type mailData struct {
	Order domain.Order
	Items []lineItem
}

var textBody = template.Must(template.New("text").Parse(`New order {{.Order.OrderID}}

Customer: {{.Order.Customer.Name}} ({{.Order.Customer.Phone}}, {{.Order.Customer.Email}})
Address: {{.Order.Customer.Address}}, {{.Order.Customer.City}}, {{.Order.Customer.State}} {{.Order.Customer.Pincode}}

Items:
{{range .Items}}  - {{.Name}} x{{.Quantity}} @ {{printf "%.2f" .Price}}
{{end}}
Subtotal: {{printf "%.2f" .Order.Subtotal}}
Shipping: {{printf "%.2f" .Order.Shipping}}
Total:    {{printf "%.2f" .Order.Total}}

Payment: {{.Order.PaymentMethod}} ({{.Order.PaymentStatus}})
Placed:  {{.Order.CreatedAt.Format "2006-01-02 15:04:05 MST"}}
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<h2>New order {{.Order.OrderID}}</h2>
<p><b>{{.Order.Customer.Name}}</b><br>
{{.Order.Customer.Phone}} &middot; {{.Order.Customer.Email}}<br>
{{.Order.Customer.Address}}, {{.Order.Customer.City}}, {{.Order.Customer.State}} {{.Order.Customer.Pincode}}</p>
<table border="1" cellpadding="4">
<tr><th>Item</th><th>Qty</th><th>Price</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .Price}}</td></tr>
{{end}}</table>
<p>Subtotal: {{printf "%.2f" .Order.Subtotal}}<br>
Shipping: {{printf "%.2f" .Order.Shipping}}<br>
<b>Total: {{printf "%.2f" .Order.Total}}</b></p>
<p>Payment: {{.Order.PaymentMethod}} ({{.Order.PaymentStatus}})</p>
`))

func (n *SMTPNotifier) Notify(_ context.Context, o domain.Order) error {
	text, html, err := renderBodies(o)
	if err != nil {
		return fmt.Errorf("render order mail: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", n.To)
	m.SetHeader("Subject", fmt.Sprintf("New order %s — %.2f", o.OrderID, o.Total))
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := n.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send order mail: %w", err)
	}
	return nil
}

func renderBodies(o domain.Order) (string, string, error) {
	data := mailData{Order: o}
	// Позиции без схемы: не парсятся — письмо уходит без таблицы позиций.
	_ = json.Unmarshal(o.Items, &data.Items)

	var text, html bytes.Buffer
	if err := textBody.Execute(&text, data); err != nil {
		return "", "", err
	}
	if err := htmlBody.Execute(&html, data); err != nil {
		return "", "", err
	}
	return text.String(), html.String(), nil
}

var _ domain.Notifier = (*SMTPNotifier)(nil)
