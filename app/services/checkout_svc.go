package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/Rakhulsr/asili-market/app/utils/calc"
	"github.com/rs/zerolog"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderSubmitter places an order with the API. *client.Client satisfies it.
type OrderSubmitter interface {
	PlaceOrder(ctx context.Context, order *schema.OrderInsert) (*models.Order, error)
}

// CustomerDetails is what the checkout form collects besides the cart.
type CustomerDetails struct {
	FullName      string
	Phone         string
	Address       string
	Notes         *string
	PaymentMethod models.PaymentMethod
	MpesaCode     *string
}

type CheckoutService struct {
	cart      *CartService
	orders    OrderSubmitter
	validator *schema.Validator
	log       zerolog.Logger
}

func NewCheckoutService(cart *CartService, orders OrderSubmitter, validator *schema.Validator, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{cart: cart, orders: orders, validator: validator, log: log}
}

// Checkout turns the cart into an order with total = subtotal + shipping.
// The cart is cleared only after the order has been accepted.
func (s *CheckoutService) Checkout(ctx context.Context, details CustomerDetails) (*models.Order, error) {
	lines := s.cart.LineItems()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := submitOrder(ctx, s.orders, s.validator, details, lines)
	if err != nil {
		return nil, err
	}

	if err := s.cart.ClearCart(); err != nil {
		s.log.Warn().Err(err).Uint("order_id", order.ID).Msg("Checkout: order placed but cart not cleared")
	}
	s.log.Info().Uint("order_id", order.ID).Str("reference", order.Reference).Msg("Checkout: order placed")
	return order, nil
}

// AdminOrderService records orders taken by phone or in person.
type AdminOrderService struct {
	orders    OrderSubmitter
	validator *schema.Validator
	log       zerolog.Logger
}

func NewAdminOrderService(orders OrderSubmitter, validator *schema.Validator, log zerolog.Logger) *AdminOrderService {
	return &AdminOrderService{orders: orders, validator: validator, log: log}
}

func (s *AdminOrderService) CreateManualOrder(ctx context.Context, details CustomerDetails, items []models.OrderLineItem) (*models.Order, error) {
	order, err := submitOrder(ctx, s.orders, s.validator, details, items)
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("order_id", order.ID).Str("payment_method", string(order.PaymentMethod)).Msg("CreateManualOrder: order recorded")
	return order, nil
}

// submitOrder validates locally so that the mpesa rule and the field errors
// surface before any request is made.
func submitOrder(ctx context.Context, orders OrderSubmitter, validator *schema.Validator, details CustomerDetails, lines []models.OrderLineItem) (*models.Order, error) {
	insert := &schema.OrderInsert{
		FullName:      details.FullName,
		Phone:         details.Phone,
		Address:       details.Address,
		Notes:         details.Notes,
		Items:         make([]schema.LineItem, len(lines)),
		Total:         calc.OrderTotal(lines),
		Status:        string(models.OrderStatusPending),
		PaymentMethod: string(details.PaymentMethod),
		MpesaCode:     details.MpesaCode,
	}
	for i, line := range lines {
		insert.Items[i] = schema.LineItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Image:    line.Image,
			Quantity: line.Quantity,
			Category: line.Category,
		}
	}

	if err := validator.Validate(insert); err != nil {
		return nil, err
	}

	order, err := orders.PlaceOrder(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return order, nil
}
