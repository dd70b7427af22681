package services

import (
	"context"
	"testing"

	"edu-cart/internal/domain"
	"edu-cart/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	adminUser  = &domain.User{ID: 1, Username: "root", Role: domain.RoleAdmin}
	ownerUser  = &domain.User{ID: 42, Username: "alice", Role: domain.RoleClient}
	otherUser  = &domain.User{ID: 43, Username: "bob", Role: domain.RoleClient}
	orderOwned = func(status domain.OrderStatus) *domain.Order {
		return &domain.Order{ID: 10, UserID: 42, Status: status}
	}
)

func TestOrderService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		current     domain.OrderStatus
		requested   domain.OrderStatus
		actor       *domain.User
		expectedErr error
		wantUpdate  bool
	}{
		{
			name:       "admin advances pending to processing",
			current:    domain.StatusPending,
			requested:  domain.StatusProcessing,
			actor:      adminUser,
			wantUpdate: true,
		},
		{
			name:       "admin skips ahead to shipped",
			current:    domain.StatusPending,
			requested:  domain.StatusShipped,
			actor:      adminUser,
			wantUpdate: true,
		},
		{
			name:       "admin cancels a processing order",
			current:    domain.StatusProcessing,
			requested:  domain.StatusCancelled,
			actor:      adminUser,
			wantUpdate: true,
		},
		{
			name:        "admin cannot move backwards",
			current:     domain.StatusShipped,
			requested:   domain.StatusProcessing,
			actor:       adminUser,
			expectedErr: ErrForbiddenTransition,
		},
		{
			name:       "owner confirms receipt",
			current:    domain.StatusShipped,
			requested:  domain.StatusCompleted,
			actor:      ownerUser,
			wantUpdate: true,
		},
		{
			name:       "owner completes straight from pending",
			current:    domain.StatusPending,
			requested:  domain.StatusCompleted,
			actor:      ownerUser,
			wantUpdate: true,
		},
		{
			name:        "owner cannot set processing",
			current:     domain.StatusPending,
			requested:   domain.StatusProcessing,
			actor:       ownerUser,
			expectedErr: ErrForbiddenTransition,
		},
		{
			name:        "stranger cannot complete someone else's order",
			current:     domain.StatusShipped,
			requested:   domain.StatusCompleted,
			actor:       otherUser,
			expectedErr: ErrForbiddenTransition,
		},
		{
			name:        "completed order is closed",
			current:     domain.StatusCompleted,
			requested:   domain.StatusCancelled,
			actor:       adminUser,
			expectedErr: ErrOrderClosed,
		},
		{
			name:        "cancelled order is closed even for its owner",
			current:     domain.StatusCancelled,
			requested:   domain.StatusCompleted,
			actor:       ownerUser,
			expectedErr: ErrOrderClosed,
		},
		{
			name:        "unknown status is rejected",
			current:     domain.StatusPending,
			requested:   domain.OrderStatus("misplaced"),
			actor:       adminUser,
			expectedErr: ErrForbiddenTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockOrderRepository)
			repo.On("FindByID", mock.Anything, uint64(10)).Return(orderOwned(tt.current), nil).Maybe()
			if tt.wantUpdate {
				repo.On("UpdateStatus", mock.Anything, uint64(10), tt.requested).Return(nil)
			}

			svc := NewOrderService(repo)
			order, err := svc.UpdateStatus(context.Background(), 10, tt.requested, tt.actor)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, order)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.requested, order.Status)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateStatus_OrderMissing(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	repo.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)

	svc := NewOrderService(repo)
	_, err := svc.UpdateStatus(context.Background(), 99, domain.StatusProcessing, adminUser)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_GetOrderByID(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	repo.On("FindByID", mock.Anything, uint64(10)).Return(orderOwned(domain.StatusPending), nil)
	repo.On("FindByID", mock.Anything, uint64(11)).Return(nil, nil)

	svc := NewOrderService(repo)

	order, err := svc.GetOrderByID(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, uint64(10), order.ID)

	_, err = svc.GetOrderByID(context.Background(), 11)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
