package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "storefront/errors"
	"storefront/logger"
	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService converts carts into orders and serves order history.
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	sessions repository.SessionRepository
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, sessions repository.SessionRepository) *OrderService {
	return &OrderService{products: products, orders: orders, sessions: sessions}
}

// Checkout turns the session's cart into one order with one item per
// distinct product, decrements stock and clears the cart. Either every
// write lands or none does.
//
// Cart entries are walked in ascending product id order. Entries whose
// product no longer exists are skipped; a line whose quantity exceeds
// the live stock aborts the whole checkout. The unit price read during
// validation is frozen into the order item, so later catalog edits
// never change the order record.
func (s *OrderService) Checkout(ctx context.Context, sessionID string, session *models.Session) (*models.Order, *apperrors.Error) {
	if len(session.Cart) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	var (
		items []models.OrderItem
		total float64
		names = map[uint]string{}
	)

	for _, productID := range sortedProductIDs(session.Cart) {
		quantity := session.Cart[productID]
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if quantity > product.Stock {
			return nil, apperrors.WithMessage(apperrors.ErrInsufficientStock,
				fmt.Sprintf("Not enough stock for %s. Only %d available.", product.Name, product.Stock))
		}

		names[product.ID] = product.Name
		total += product.Price * float64(quantity)
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	// A cart holding only vanished products behaves like an empty one.
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	order := &models.Order{
		UserID:      session.UserID,
		OrderDate:   time.Now(),
		TotalAmount: total,
		Items:       items,
	}

	if err := s.orders.PlaceOrder(ctx, order); err != nil {
		var conflict *repository.StockConflictError
		if errors.As(err, &conflict) {
			// Stock moved between validation and commit; nothing was written.
			return nil, apperrors.WithMessage(apperrors.ErrInsufficientStock,
				fmt.Sprintf("Not enough stock for %s.", names[conflict.ProductID]))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.sessions.UpdateCart(ctx, sessionID, func(cart map[uint]int) error {
		for id := range cart {
			delete(cart, id)
		}
		return nil
	}); err != nil {
		// The order is committed; a stale cart is recoverable, losing the
		// order is not.
		logger.Error(ctx, "failed to clear cart after checkout", err,
			zap.Uint("order_id", order.ID))
	}

	return order, nil
}

// GetUserOrders returns the caller's own orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID uint) ([]models.Order, *apperrors.Error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return orders, nil
}
