package services

import (
	"context"

	apperrors "storefront/errors"
	"storefront/repository"
)

const topProductsLimit = 5

// DashboardReport is the admin dashboard payload.
type DashboardReport struct {
	TotalItemsSold int64                   `json:"total_items_sold"`
	TotalRevenue   float64                 `json:"total_revenue"`
	TotalOrders    int64                   `json:"total_orders"`
	TopProducts    []repository.TopProduct `json:"top_products"`
}

// ReportService serves read-only sales aggregates.
type ReportService struct {
	orders repository.OrderRepository
}

func NewReportService(orders repository.OrderRepository) *ReportService {
	return &ReportService{orders: orders}
}

func (s *ReportService) Dashboard(ctx context.Context) (*DashboardReport, *apperrors.Error) {
	summary, err := s.orders.Summary(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	top, err := s.orders.TopProducts(ctx, topProductsLimit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &DashboardReport{
		TotalItemsSold: summary.TotalItemsSold,
		TotalRevenue:   summary.TotalRevenue,
		TotalOrders:    summary.TotalOrders,
		TopProducts:    top,
	}, nil
}
