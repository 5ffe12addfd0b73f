package repository

import (
	"context"
	"fmt"

	"storefront/models"

	"gorm.io/gorm"
)

// StockConflictError reports the first product whose live stock could
// not cover the requested quantity during order placement.
type StockConflictError struct {
	ProductID uint
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

// SalesSummary aggregates the order ledger for the admin dashboard.
type SalesSummary struct {
	TotalItemsSold int64   `json:"total_items_sold"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int64   `json:"total_orders"`
}

// TopProduct is one row of the best-sellers report.
type TopProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	PlaceOrder(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID uint) ([]models.Order, error)
	Summary(ctx context.Context) (*SalesSummary, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// PlaceOrder persists the order with its items and decrements stock for
// every line in a single transaction. The decrement is conditional on
// the live stock still covering the quantity, so two overlapping
// checkouts cannot drive stock negative: the loser sees zero affected
// rows and the whole transaction rolls back.
func (r *GormOrderRepository) PlaceOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &StockConflictError{ProductID: item.ProductID}
			}
		}

		return nil
	})
}

// FindByUserID returns the caller's orders, newest first, with items.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Summary computes the dashboard aggregates. Sums over an empty ledger
// read as zero.
func (r *GormOrderRepository) Summary(ctx context.Context) (*SalesSummary, error) {
	var summary SalesSummary

	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(quantity), 0) FROM order_items").
		Scan(&summary.TotalItemsSold).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Raw("SELECT COALESCE(SUM(total_amount), 0) FROM orders").
		Scan(&summary.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Order{}).
		Count(&summary.TotalOrders).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// TopProducts returns products by cumulative quantity sold, descending,
// product id ascending on ties so the order is stable.
func (r *GormOrderRepository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var top []TopProduct
	err := r.db.WithContext(ctx).
		Raw(`SELECT p.id AS product_id, p.name, SUM(oi.quantity) AS total_sold
			FROM order_items oi
			JOIN products p ON oi.product_id = p.id
			GROUP BY p.id, p.name
			ORDER BY total_sold DESC, p.id ASC
			LIMIT ?`, limit).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	return top, nil
}
