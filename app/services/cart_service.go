package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/utils/calc"
	"github.com/Rakhulsr/asili-market/app/utils/localstore"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const CartStorageKey = "asili-cart"

// CartService is the shopper's cart. Only the item list is persisted; the
// panel open flag lives for the session.
type CartService struct {
	mu     sync.RWMutex
	store  localstore.KeyValueStore
	log    zerolog.Logger
	items  []models.CartItem
	isOpen bool
}

// NewCartService rehydrates the cart from store. Unreadable or corrupt data
// yields an empty cart.
func NewCartService(store localstore.KeyValueStore, log zerolog.Logger) *CartService {
	s := &CartService{store: store, log: log}

	raw, ok, err := store.Get(CartStorageKey)
	if err != nil {
		log.Warn().Err(err).Msg("NewCartService: failed to read stored cart")
		return s
	}
	if !ok || raw == "" {
		return s
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Warn().Err(err).Msg("NewCartService: stored cart is corrupt, starting empty")
		return s
	}
	s.items = items
	return s
}

// AddItem adds quantity of product, merging with an existing line for the
// same product id, and opens the cart panel.
func (s *CartService) AddItem(product models.CartItem, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		product.Quantity = quantity
		s.items = append(s.items, product)
	}
	s.isOpen = true

	return s.persist()
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (s *CartService) UpdateQuantity(productID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return s.persist()
	}
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	return s.persist()
}

func (s *CartService) RemoveItem(productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	return s.persist()
}

func (s *CartService) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist()
}

func (s *CartService) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *CartService) Subtotal() decimal.Decimal {
	return calc.Subtotal(s.LineItems())
}

// Items returns a copy of the cart lines in insertion order.
func (s *CartService) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *CartService) LineItems() []models.OrderLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]models.OrderLineItem, len(s.items))
	for i, item := range s.items {
		lines[i] = item.LineItem()
	}
	return lines
}

func (s *CartService) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOpen
}

func (s *CartService) ToggleOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
	return s.isOpen
}

func (s *CartService) removeLocked(productID uint) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

func (s *CartService) persist() error {
	items := s.items
	if items == nil {
		items = []models.CartItem{}
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.store.Set(CartStorageKey, string(encoded)); err != nil {
		s.log.Error().Err(err).Msg("CartService: failed to persist cart")
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
