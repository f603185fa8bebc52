package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByEmail(ctx context.Context, email string) ([]*Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) CustomerEmail(ctx context.Context, orderID int64) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID int64, status Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func TestService_ListOrders(t *testing.T) {
	ctx := context.Background()
	email := "jane@example.com"

	t.Run("Partitions current and history", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("ListByEmail", ctx, email).Return([]*Order{
			{ID: 1, Email: email, Status: StatusPending},
			{ID: 2, Email: email, Status: StatusPreparing},
			{ID: 3, Email: email, Status: StatusReady},
			{ID: 4, Email: email, Status: StatusPickedUp},
		}, nil)

		snap, err := svc.ListOrders(ctx, email)
		require.NoError(t, err)

		require.Len(t, snap.Orders, 3)
		require.Len(t, snap.OldReciepts, 1)
		assert.Equal(t, int64(4), snap.OldReciepts[0].ID)
	})

	t.Run("Idempotent reads", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		orders := []*Order{
			{ID: 1, Email: email, Status: StatusPending},
			{ID: 2, Email: email, Status: StatusPickedUp},
		}
		repo.On("ListByEmail", ctx, email).Return(orders, nil).Twice()

		first, err := svc.ListOrders(ctx, email)
		require.NoError(t, err)
		second, err := svc.ListOrders(ctx, email)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Empty history yields empty partitions", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("ListByEmail", ctx, email).Return(([]*Order)(nil), nil)

		snap, err := svc.ListOrders(ctx, email)
		require.NoError(t, err)
		assert.NotNil(t, snap.Orders)
		assert.NotNil(t, snap.OldReciepts)
		assert.Empty(t, snap.Orders)
	})
}

func TestService_SnapshotForOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Status change moves order between partitions", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CustomerEmail", ctx, int64(7)).Return("jane@example.com", nil)
		repo.On("ListByEmail", ctx, "jane@example.com").Return([]*Order{
			{ID: 7, Email: "jane@example.com", Status: StatusPickedUp},
		}, nil)

		email, snap, err := svc.SnapshotForOrder(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", email)
		assert.Empty(t, snap.Orders)
		require.Len(t, snap.OldReciepts, 1)
		assert.Equal(t, int64(7), snap.OldReciepts[0].ID)
	})

	t.Run("Unknown order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("CustomerEmail", ctx, int64(404)).Return("", ErrOrderNotFound)

		_, _, err := svc.SnapshotForOrder(ctx, 404)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid status", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("UpdateStatus", ctx, int64(1), StatusPickedUp).Return(nil)

		assert.NoError(t, svc.UpdateStatus(ctx, 1, StatusPickedUp))
		repo.AssertExpectations(t)
	})

	t.Run("Invalid status rejected before hitting the db", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		err := svc.UpdateStatus(ctx, 1, Status("teleported"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
