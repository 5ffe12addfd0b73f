package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	apperrors "storefront/errors"
	"storefront/models"
	"storefront/repository"

	"gorm.io/gorm"
)

// CartService mutates the session-scoped cart against catalog snapshots.
type CartService struct {
	products repository.ProductRepository
	sessions repository.SessionRepository
}

func NewCartService(products repository.ProductRepository, sessions repository.SessionRepository) *CartService {
	return &CartService{products: products, sessions: sessions}
}

// AddToCart merges quantity into the cart entry for the product,
// rejecting without mutation when the requested quantity exceeds the
// current stock snapshot.
func (s *CartService) AddToCart(ctx context.Context, sessionID string, productID uint, quantity int) (*models.Product, *apperrors.Error) {
	if quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Quantity must be a positive number.")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if quantity > product.Stock {
		return nil, apperrors.WithMessage(apperrors.ErrInsufficientStock,
			fmt.Sprintf("Not enough stock. Only %d available.", product.Stock))
	}

	_, err = s.sessions.UpdateCart(ctx, sessionID, func(cart map[uint]int) error {
		cart[productID] += quantity
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return product, nil
}

// RemoveFromCart deletes the entry if present and silently no-ops
// otherwise.
func (s *CartService) RemoveFromCart(ctx context.Context, sessionID string, productID uint) *apperrors.Error {
	_, err := s.sessions.UpdateCart(ctx, sessionID, func(cart map[uint]int) error {
		delete(cart, productID)
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ViewCart joins the cart against the catalog. Entries whose product no
// longer exists are skipped. Lines come back in ascending product id
// order with per-line subtotals and the grand total.
func (s *CartService) ViewCart(ctx context.Context, session *models.Session) ([]models.CartLine, float64, *apperrors.Error) {
	lines := []models.CartLine{}
	var total float64

	for _, productID := range sortedProductIDs(session.Cart) {
		quantity := session.Cart[productID]
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		subtotal := product.Price * float64(quantity)
		total += subtotal
		lines = append(lines, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			Subtotal:  subtotal,
		})
	}

	return lines, total, nil
}

func sortedProductIDs(cart map[uint]int) []uint {
	ids := make([]uint, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
