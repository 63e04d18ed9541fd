package schema

import (
	"strings"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/utils/calc"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const minMpesaCodeLength = 5

type LineItem struct {
	ID       uint            `json:"id" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"gt=0"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity" validate:"gte=1"`
	Category string          `json:"category"`
}

type OrderInsert struct {
	FullName      string          `json:"fullName" validate:"required,min=3,max=255"`
	Phone         string          `json:"phone" validate:"required,min=10,max=32"`
	Address       string          `json:"address" validate:"required"`
	Notes         *string         `json:"notes"`
	Items         []LineItem      `json:"items" validate:"required,min=1,dive"`
	Total         decimal.Decimal `json:"total" validate:"gt=0"`
	Status        string          `json:"status" validate:"omitempty,eq=pending"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=mpesa cod"`
	MpesaCode     *string         `json:"mpesaCode"`
}

func (o *OrderInsert) LineItems() []models.OrderLineItem {
	items := make([]models.OrderLineItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = models.OrderLineItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Quantity: item.Quantity,
			Category: item.Category,
		}
	}
	return items
}

// Model builds the order row. A code sent alongside cash on delivery is
// dropped so the stored row never contradicts its payment method.
func (o *OrderInsert) Model() *models.Order {
	order := &models.Order{
		FullName:      o.FullName,
		Phone:         o.Phone,
		Address:       o.Address,
		Notes:         o.Notes,
		Items:         o.LineItems(),
		Total:         o.Total,
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethod(o.PaymentMethod),
	}
	if order.PaymentMethod == models.PaymentMpesa && o.MpesaCode != nil {
		code := strings.TrimSpace(*o.MpesaCode)
		order.MpesaCode = &code
	}
	return order
}

func orderInsertRules(sl validator.StructLevel) {
	order := sl.Current().Interface().(OrderInsert)

	if models.PaymentMethod(order.PaymentMethod) == models.PaymentMpesa {
		if order.MpesaCode == nil || len(strings.TrimSpace(*order.MpesaCode)) < minMpesaCodeLength {
			sl.ReportError(order.MpesaCode, "mpesaCode", "MpesaCode", "mpesa_required", "")
		}
	}

	if len(order.Items) == 0 || !order.Total.IsPositive() {
		return
	}
	if expected := calc.OrderTotal(order.LineItems()); !order.Total.Equal(expected) {
		sl.ReportError(order.Total, "total", "Total", "total_mismatch", expected.String())
	}
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}
