package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/order"
	"github.com/orders/backend/internal/domain/shared"
)

func placedOrder() *order.Order {
	o := order.NewBasket(uuid.New())
	o.State = order.StateNew
	o.Contact = &identity.Contact{
		City:   "Москва",
		Street: "Тверская",
		House:  "1",
		Phone:  "+7 900 000-00-00",
	}
	o.Items = []order.OrderItem{
		{
			BaseEntity: shared.NewBaseEntity(),
			Quantity:   2,
			ProductInfo: &catalog.ProductInfo{
				Price:   decimal.NewFromInt(110000),
				Product: &catalog.Product{Name: "Смартфон Apple iPhone XS 512GB (золотистый)"},
				Shop:    &catalog.Shop{Name: "Связной"},
			},
		},
	}
	return o
}

func TestConfirmTokenBody(t *testing.T) {
	body := confirmTokenBody("ivan@example.com", "deadbeef")
	assert.Contains(t, body, "ivan@example.com")
	assert.Contains(t, body, "deadbeef")
}

func TestOrderStatusBody(t *testing.T) {
	o := placedOrder()
	body := orderStatusBody(o)
	assert.Contains(t, body, o.ID.String())
	assert.Contains(t, body, "Новый")
	assert.Contains(t, body, "220000.00")
}

func TestAdminOrderBody(t *testing.T) {
	o := placedOrder()
	html, err := adminOrderBody(o, "ivan@example.com")
	require.NoError(t, err)

	assert.Contains(t, html, "Смартфон Apple iPhone XS 512GB (золотистый)")
	assert.Contains(t, html, "Связной")
	assert.Contains(t, html, "Итого")
	assert.Contains(t, html, "220000.00")
	assert.Contains(t, html, "Москва, Тверская 1")
	assert.Contains(t, html, "ivan@example.com")
}

func TestAdminOrderBodyWithoutContact(t *testing.T) {
	o := placedOrder()
	o.Contact = nil
	html, err := adminOrderBody(o, "ivan@example.com")
	require.NoError(t, err)
	assert.NotContains(t, html, "Контакты")
}
