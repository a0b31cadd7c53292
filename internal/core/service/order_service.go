package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/sakurakitchen/ordering-system/internal/api/metrics"
	"github.com/sakurakitchen/ordering-system/internal/core/domain"
	"github.com/sakurakitchen/ordering-system/internal/core/ports"
)

// OrderEventPublisher abstracts the event stream (Kafka). Publishing is
// best-effort: failures are logged and never fail the request.
type OrderEventPublisher interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
}

// OrderService implements order creation with server-side price verification
// and admin-gated status transitions.
type OrderService struct {
	orders ports.OrderRepository
	menu   ports.MenuRepository
	users  ports.UserRepository
	events OrderEventPublisher
	logger zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	menu ports.MenuRepository,
	users ports.UserRepository,
	events OrderEventPublisher,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, menu: menu, users: users, events: events, logger: logger}
}

// CreateOrder verifies the submitted cart against authoritative catalog
// prices and persists the order atomically. Line items snapshot the unit
// price in effect right now, so later menu edits never alter this order.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if len(input.Lines) == 0 {
		metrics.OrdersRejectedTotal.WithLabelValues("empty_order").Inc()
		return nil, domain.ErrEmptyOrder
	}

	var serverTotal float64
	items := make([]domain.OrderItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			metrics.OrdersRejectedTotal.WithLabelValues("invalid_quantity").Inc()
			return nil, fmt.Errorf("%w: menu item %d", domain.ErrInvalidQuantity, line.MenuItemID)
		}

		item, err := s.menu.FindByID(ctx, line.MenuItemID)
		if err != nil {
			if errors.Is(err, domain.ErrMenuItemNotFound) {
				metrics.OrdersRejectedTotal.WithLabelValues("unknown_item").Inc()
				return nil, fmt.Errorf("%w: id %d", domain.ErrUnknownMenuItem, line.MenuItemID)
			}
			return nil, err
		}

		serverTotal += item.Price * float64(line.Quantity)
		items = append(items, domain.OrderItem{
			MenuItemID: item.ID,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
		})
	}
	serverTotal = math.Round(serverTotal*100) / 100

	if math.Abs(serverTotal-input.Total) > domain.TotalEpsilon {
		metrics.OrdersRejectedTotal.WithLabelValues("total_mismatch").Inc()
		s.logger.Warn().
			Uint("user_id", input.UserID).
			Float64("expected", serverTotal).
			Float64("submitted", input.Total).
			Msg("order total mismatch")
		return nil, &domain.TotalMismatchError{Expected: serverTotal, Submitted: input.Total}
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID: input.UserID,
		Status: domain.StatusPending,
		Total:  serverTotal,
		Items:  items,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", input.UserID).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().
		Uint("order_id", created.ID).
		Uint("user_id", created.UserID).
		Float64("total", created.Total).
		Msg("order created")

	s.publish(func() error { return s.events.OrderCreated(ctx, created) })
	return created, nil
}

// GetOrder returns the order if the requester owns it or is an admin.
func (s *OrderService) GetOrder(ctx context.Context, id uint, requesterID uint, role domain.Role) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin && order.UserID != requesterID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.ListAll(ctx)
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus applies a state machine transition. Terminal states reject
// every transition; anything outside the allowed edges fails.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, status)
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, status)
	}

	previous := order.Status
	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("order_id", id).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("order status updated")

	s.publish(func() error { return s.events.OrderStatusChanged(ctx, updated, previous) })
	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

func (s *OrderService) publish(fn func() error) {
	if s.events == nil {
		return
	}
	if err := fn(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish order event")
	}
}
