package notification

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/orders/backend/internal/domain/order"
)

// Subjects of the outgoing mails
const (
	subjectConfirmToken = "Подтверждение регистрации"
	subjectOrderStatus  = "Обновление статуса заказа"
	subjectNewOrder     = "Новый заказ"
)

// confirmTokenBody renders the registration confirmation mail
func confirmTokenBody(email, key string) string {
	return fmt.Sprintf(
		"Здравствуйте!\n\n"+
			"Для подтверждения регистрации аккаунта %s отправьте этот токен:\n\n"+
			"%s\n\n"+
			"Если вы не регистрировались, просто проигнорируйте это письмо.",
		email, key,
	)
}

// orderStatusBody renders the customer status update mail
func orderStatusBody(o *order.Order) string {
	return fmt.Sprintf(
		"Здравствуйте!\n\n"+
			"Статус вашего заказа №%s изменён: %s.\n\n"+
			"Сумма заказа: %s руб.",
		o.ID, o.State.Label(), o.TotalSum().StringFixed(2),
	)
}

// adminOrderTemplate renders the new-order summary mailed to the
// administrator: the ordered lines, the total and the delivery contact.
var adminOrderTemplate = template.Must(template.New("admin_order").Parse(`<h3>Новый заказ №{{ .Order.ID }}</h3>
<table border="1" cellpadding="4" cellspacing="0">
  <tr>
    <th>Товар</th>
    <th>Магазин</th>
    <th>Количество</th>
    <th>Цена</th>
    <th>Сумма</th>
  </tr>
{{- range .Lines }}
  <tr>
    <td>{{ .Name }}</td>
    <td>{{ .Shop }}</td>
    <td>{{ .Quantity }}</td>
    <td>{{ .Price }}</td>
    <td>{{ .Sum }}</td>
  </tr>
{{- end }}
  <tr>
    <td colspan="4"><b>Итого</b></td>
    <td><b>{{ .Total }}</b></td>
  </tr>
</table>
{{- if .Contact }}
<p><b>Контакты:</b><br>
{{ .Contact.City }}, {{ .Contact.Street }} {{ .Contact.House }}<br>
Телефон: {{ .Contact.Phone }}</p>
{{- end }}
<p>Покупатель: {{ .Email }}</p>
`))

type adminOrderLine struct {
	Name     string
	Shop     string
	Quantity int
	Price    string
	Sum      string
}

// adminOrderBody renders the HTML order summary for the administrator
func adminOrderBody(o *order.Order, buyerEmail string) (string, error) {
	lines := make([]adminOrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		line := adminOrderLine{Quantity: item.Quantity}
		if item.ProductInfo != nil {
			if item.ProductInfo.Product != nil {
				line.Name = item.ProductInfo.Product.Name
			}
			if item.ProductInfo.Shop != nil {
				line.Shop = item.ProductInfo.Shop.Name
			}
			line.Price = item.ProductInfo.Price.StringFixed(2)
			qty := decimal.NewFromInt(int64(item.Quantity))
			line.Sum = item.ProductInfo.Price.Mul(qty).StringFixed(2)
		}
		lines = append(lines, line)
	}

	var buf bytes.Buffer
	err := adminOrderTemplate.Execute(&buf, map[string]any{
		"Order":   o,
		"Lines":   lines,
		"Total":   o.TotalSum().StringFixed(2),
		"Contact": o.Contact,
		"Email":   buyerEmail,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
