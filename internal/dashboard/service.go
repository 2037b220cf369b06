package dashboard

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
	"github.com/warelinehq/wareline-backend/pkg/enums"
	apperrors "github.com/warelinehq/wareline-backend/pkg/errors"
	"github.com/warelinehq/wareline-backend/pkg/pagination"
)

// StatusCount is one dashboard bucket. Every status appears even when empty.
type StatusCount struct {
	Status enums.OrderStatus `json:"status"`
	Label  string            `json:"label"`
	Count  int64             `json:"count"`
}

// RecentOrder is a listing row with its line item count and state timeline.
type RecentOrder struct {
	Order     models.Order               `json:"order"`
	LineCount int64                      `json:"line_count"`
	History   []models.OrderStateHistory `json:"state_history"`
}

// Service defines the dashboard read operations.
type Service interface {
	StatusCounts(ctx context.Context, filter Filter) ([]StatusCount, error)
	RecentOrders(ctx context.Context, filter Filter, limit int) ([]RecentOrder, error)
}

type service struct {
	repo Repository
}

// NewService builds the dashboard service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	return &service{repo: repo}, nil
}

// StatusCounts buckets orders by pipeline stage. Bucket order and labels come
// from the seeded order_states rows, so every stage appears even when empty.
func (s *service) StatusCounts(ctx context.Context, filter Filter) ([]StatusCount, error) {
	states, err := s.repo.FindOrderStates(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading order states")
	}

	counts, err := s.repo.CountOrdersByStatus(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "counting orders by status")
	}

	out := make([]StatusCount, 0, len(states))
	for _, state := range states {
		status := enums.OrderStatus(state.Name)
		out = append(out, StatusCount{
			Status: status,
			Label:  state.Label,
			Count:  counts[status],
		})
	}
	return out, nil
}

func (s *service) RecentOrders(ctx context.Context, filter Filter, limit int) ([]RecentOrder, error) {
	limit = pagination.NormalizeLimit(limit)

	orders, err := s.repo.FindRecentOrders(ctx, filter, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing recent orders")
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	lineCounts, err := s.repo.CountLineItemsByOrder(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "counting line items")
	}
	timelines, err := s.repo.FindStateHistoryByOrders(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading state timelines")
	}

	out := make([]RecentOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, RecentOrder{
			Order:     o,
			LineCount: lineCounts[o.ID],
			History:   timelines[o.ID],
		})
	}
	return out, nil
}
