package fakers

import (
	"math/rand"
	"strings"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/utils/calc"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

const maxLinesPerOrder = 3

// OrderFaker builds a pending demo order for a random customer, drawing up
// to three lines from products. It returns nil when products is empty.
func OrderFaker(products []models.Product) *models.Order {
	if len(products) == 0 {
		return nil
	}

	picked := rand.Perm(len(products))
	lines := rand.Intn(min(maxLinesPerOrder, len(products))) + 1

	items := make([]models.OrderLineItem, 0, lines)
	for _, idx := range picked[:lines] {
		product := products[idx]
		item := models.OrderLineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: rand.Intn(3) + 1,
		}
		if len(product.Images) > 0 {
			item.Image = product.Images[0]
		}
		if product.Category != nil {
			item.Category = product.Category.Name
		}
		items = append(items, item)
	}

	address := faker.GetRealAddress()
	notes := faker.Sentence()
	order := &models.Order{
		FullName:      faker.Name(),
		Phone:         faker.Phonenumber(),
		Address:       address.Address + ", " + address.City,
		Notes:         &notes,
		Items:         items,
		Total:         calc.OrderTotal(items),
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentCOD,
	}
	if rand.Intn(2) == 0 {
		order.PaymentMethod = models.PaymentMpesa
		code := fakeMpesaCode()
		order.MpesaCode = &code
	}
	return order
}

func fakeMpesaCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
