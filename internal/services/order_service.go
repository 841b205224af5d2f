package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"bookstore/internal/models"
	"bookstore/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CheckoutState names the steps of a checkout attempt, used in logs.
type CheckoutState string

const (
	CheckoutStarted        CheckoutState = "started"
	CheckoutCartValidated  CheckoutState = "cart_validated"
	CheckoutTotalsComputed CheckoutState = "totals_computed"
	CheckoutOrderPersisted CheckoutState = "order_persisted"
	CheckoutCartCleared    CheckoutState = "cart_cleared"
	CheckoutDone           CheckoutState = "done"
	CheckoutFailed         CheckoutState = "failed"
)

// maxOrderNumber bounds the display order number to six digits.
const maxOrderNumber = 1000000

// EventPublisher sends order events to interested consumers.
type EventPublisher interface {
	PublishOrderPlaced(payload interface{}) error
}

// OrderPlacedEvent is published once an order has been committed.
type OrderPlacedEvent struct {
	OrderID     string    `json:"orderId"`
	OrderNumber int       `json:"orderNumber"`
	Username    string    `json:"username"`
	ItemCount   int       `json:"itemCount"`
	Total       float64   `json:"total"`
	PlacedAt    time.Time `json:"placedAt"`
}

// CheckoutInput is a request to turn the user's cart into an order.
type CheckoutInput struct {
	Username        string                 `json:"username" validate:"required"`
	DeliveryDetails models.DeliveryDetails `json:"deliveryDetails"`
}

// OrderView is an order together with its tracking state at read time.
type OrderView struct {
	models.Order
	Tracking models.Tracking `json:"tracking"`
}

// OrderService turns carts into orders and lists past orders.
type OrderService struct {
	tx          repositories.Transactor
	orderRepo   repositories.OrderRepository
	publisher   EventPublisher
	validate    *validator.Validate
	now         func() time.Time
	orderNumber func() int
}

// OrderServiceOption customizes an OrderService.
type OrderServiceOption func(*OrderService)

// WithClock replaces time.Now, for stamping orders and deriving tracking.
func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *OrderService) { s.now = now }
}

// WithOrderNumbers replaces the random order number generator.
func WithOrderNumbers(next func() int) OrderServiceOption {
	return func(s *OrderService) { s.orderNumber = next }
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no events are sent.
func NewOrderService(tx repositories.Transactor, orderRepo repositories.OrderRepository, publisher EventPublisher, opts ...OrderServiceOption) *OrderService {
	s := &OrderService{
		tx:          tx,
		orderRepo:   orderRepo,
		publisher:   publisher,
		validate:    NewValidator(),
		now:         time.Now,
		orderNumber: func() int { return rand.IntN(maxOrderNumber) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout reads the user's current cart, prices it, stores an order holding
// a copy of every line, and removes those lines, all in one transaction.
// Prices always come from the stored cart, never from the client.
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	if err := ValidateStruct(s.validate, input); err != nil {
		return nil, err
	}

	state := CheckoutStarted
	var order *models.Order

	err := s.tx.WithinTransaction(ctx, func(stores repositories.Stores) error {
		lines, err := stores.Carts.ListByUserForUpdate(ctx, input.Username)
		if err != nil {
			return persistence("read cart", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}
		state = s.advance(input.Username, state, CheckoutCartValidated)

		totals := ComputeTotals(lines)
		state = s.advance(input.Username, state, CheckoutTotalsComputed)

		order = &models.Order{
			Username:        input.Username,
			OrderNumber:     s.orderNumber(),
			Items:           snapshotItems(lines),
			Subtotal:        totals.Subtotal,
			Tax:             totals.Tax,
			Total:           totals.Total,
			DeliveryDetails: input.DeliveryDetails,
			PaymentMethod:   models.PaymentMethodCOD,
			Status:          models.OrderStatusPendingConfirmation,
			CreatedAt:       s.now(),
		}
		if err := stores.Orders.Create(ctx, order); err != nil {
			return persistence("create order", err)
		}
		state = s.advance(input.Username, state, CheckoutOrderPersisted)

		// Only the lines priced above go; anything added meanwhile stays.
		ids := make([]string, len(lines))
		for i, l := range lines {
			ids[i] = l.ID
		}
		if _, err := stores.Carts.DeleteByIDs(ctx, ids); err != nil {
			return persistence("clear checked-out lines", err)
		}
		state = s.advance(input.Username, state, CheckoutCartCleared)
		return nil
	})
	if err != nil {
		s.advance(input.Username, state, CheckoutFailed)
		log.Printf("Checkout for %s failed: %v", input.Username, err)
		if !errors.Is(err, ErrEmptyCart) && !errors.Is(err, ErrPersistence) {
			err = persistence("commit checkout", err)
		}
		return nil, err
	}
	s.advance(input.Username, state, CheckoutDone)

	s.publishOrderPlaced(order)
	return order, nil
}

// ListOrders returns the user's orders, newest first, with tracking derived
// from each order's age.
func (s *OrderService) ListOrders(ctx context.Context, username string) ([]OrderView, error) {
	if username == "" {
		return nil, NewValidationError("username", "Username is required")
	}
	orders, err := s.orderRepo.ListByUser(ctx, username)
	if err != nil {
		return nil, persistence("list orders", err)
	}

	now := s.now()
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderView{Order: o, Tracking: o.TrackingAt(now)})
	}
	return views, nil
}

func (s *OrderService) advance(username string, from, to CheckoutState) CheckoutState {
	log.Printf("Checkout for %s: %s -> %s", username, from, to)
	return to
}

func (s *OrderService) publishOrderPlaced(order *models.Order) {
	if s.publisher == nil {
		log.Println("Order event publisher is not configured. Skipping order placed event.")
		return
	}

	count := 0
	for _, it := range order.Items {
		count += it.Quantity
	}
	event := OrderPlacedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Username:    order.Username,
		ItemCount:   count,
		Total:       order.Total,
		PlacedAt:    order.CreatedAt,
	}
	if err := s.publisher.PublishOrderPlaced(event); err != nil {
		log.Printf("Warning: Failed to publish order placed event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order placed event for order %s", order.ID)
}

// HandleOrderPlaced consumes one order placed event from the broker and
// logs the customer notification for it.
func HandleOrderPlaced(body []byte) error {
	var event OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode order placed event: %w", err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("order placed event without order id")
	}
	log.Printf("Notify %s: order #%d (%d items, total %.2f) placed at %s",
		event.Username, event.OrderNumber, event.ItemCount, event.Total, event.PlacedAt.Format(time.RFC3339))
	return nil
}

// snapshotItems copies cart lines by value into order items.
func snapshotItems(lines []models.CartLine) []models.OrderItem {
	items := make([]models.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = models.OrderItem{
			Position: i,
			BookID:   l.BookID,
			Title:    l.Title,
			Author:   l.Author,
			Price:    l.Price,
			CoverURL: l.CoverURL,
			Quantity: l.Quantity,
		}
	}
	return items
}
