package item

import (
	"context"

	"brewbar-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the catalog.
type Service interface {
	List(ctx context.Context) ([]*Item, error)
	Get(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, p CreateParams) (*Item, error)
	Update(ctx context.Context, id int64, p UpdateParams) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, p CreateParams) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", p.Name),
	)
	log.Info("add item started")

	it, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create item", zap.Error(err))
		return nil, err
	}

	log.Info("add item success", zap.Int64("item_id", it.ID))
	return it, nil
}

func (s *service) Update(ctx context.Context, id int64, p UpdateParams) error {
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.Int64("item_id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warn("failed to delete item", zap.Error(err))
		return err
	}

	log.Info("item deleted")
	return nil
}
