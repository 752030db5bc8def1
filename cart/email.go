package cart

import (
	"bytes"
	"errors"
	"html/template"

	"storefront/formatter"
	"storefront/models"

	"gopkg.in/gomail.v2"
)

var summaryTemplate = template.Must(template.New("cart").Parse(`<html>
<body>
<h2>Shopping Cart</h2>
<table>
{{range .Items}}<tr><td><img src="{{.ImageUrl}}" alt="{{.Name}}" width="60"></td><td>{{.Name}}</td><td>{{.PriceFormatted}}</td></tr>
{{end}}</table>
<p><strong>Total: {{.Total}}</strong></p>
</body>
</html>`))

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends cart summaries over SMTP.
type Mailer struct {
	Dialer   dialer
	From     string
	Subject  string
	Currency string
}

func NewMailer(host string, port int, username, password, from, subject, currency string) *Mailer {
	if subject == "" {
		subject = "Your shopping cart"
	}

	return &Mailer{
		Dialer:   gomail.NewDialer(host, port, username, password),
		From:     from,
		Subject:  subject,
		Currency: currency,
	}
}

func (m *Mailer) Send(to string, items []models.CartItem) error {
	if len(items) == 0 {
		return errors.New("cart-empty")
	}

	views := make([]models.CartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.CartItemView{
			CartItem:       item,
			PriceFormatted: formatter.Currency(item.Price, m.Currency),
		})
	}

	total, _ := Total(items).Float64()

	var body bytes.Buffer
	if err := summaryTemplate.Execute(&body, struct {
		Items []models.CartItemView
		Total string
	}{views, formatter.Currency(total, m.Currency)}); err != nil {
		return err
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.From)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", m.Subject)
	mailer.SetBody("text/html", body.String())

	return m.Dialer.DialAndSend(mailer)
}
