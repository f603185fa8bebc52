package purchase

import (
	"context"
	"errors"

	"brewbar-be/internal/logger"
	"brewbar-be/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	Purchase(ctx context.Context, itemID int64, quantity int, buyerEmail string, declaredTotal float64) (int64, error)
}

type service struct {
	repo  Repository
	stats *metrics.Store
}

func NewService(repo Repository, stats *metrics.Store) Service {
	return &service{repo: repo, stats: stats}
}

func (s *service) Purchase(
	ctx context.Context,
	itemID int64,
	quantity int,
	buyerEmail string,
	declaredTotal float64,
) (int64, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Purchase"),
		zap.Int64("item_id", itemID),
		zap.Int("quantity", quantity),
		zap.String("buyer", buyerEmail),
	)

	timer := metrics.StartTimer()
	orderID, err := s.repo.Purchase(ctx, itemID, quantity, buyerEmail, declaredTotal)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrInsufficientStock) {
			s.stats.PurchasesRejected.Inc()
			log.Info("purchase rejected", zap.Error(err))
			return 0, err
		}
		log.Error("purchase failed", zap.Error(err))
		return 0, err
	}

	s.stats.PurchasesCommitted.Inc()
	log.Info("purchase completed",
		zap.Int64("order_id", orderID),
		zap.Duration("took", timer.Duration()),
	)

	return orderID, nil
}
