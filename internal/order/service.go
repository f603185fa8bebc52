package order

import (
	"context"

	"brewbar-be/internal/logger"

	"go.uber.org/zap"
)

// Service exposes the read/partition side of orders plus the admin status
// advancement that drives live order pushes.
type Service interface {
	ListOrders(ctx context.Context, email string) (*Snapshot, error)
	SnapshotForOrder(ctx context.Context, orderID int64) (string, *Snapshot, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListOrders partitions the customer's full order history: anything not yet
// picked up is current, picked-up orders are receipts.
func (s *service) ListOrders(ctx context.Context, email string) (*Snapshot, error) {
	orders, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Orders:      []*Order{},
		OldReciepts: []*Order{},
	}
	for _, o := range orders {
		if o.Status.Done() {
			snap.OldReciepts = append(snap.OldReciepts, o)
		} else {
			snap.Orders = append(snap.Orders, o)
		}
	}

	return snap, nil
}

// SnapshotForOrder resolves the owning customer of an order and rebuilds that
// customer's full snapshot. Used by the change notifier on order events.
func (s *service) SnapshotForOrder(ctx context.Context, orderID int64) (string, *Snapshot, error) {
	email, err := s.repo.CustomerEmail(ctx, orderID)
	if err != nil {
		return "", nil, err
	}

	snap, err := s.ListOrders(ctx, email)
	if err != nil {
		return "", nil, err
	}

	return email, snap, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID int64, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
	)

	validStatuses := map[Status]bool{
		StatusPending:   true,
		StatusPreparing: true,
		StatusReady:     true,
		StatusPickedUp:  true,
	}
	if !validStatuses[status] {
		return ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	log.Info("order status updated")
	return nil
}
