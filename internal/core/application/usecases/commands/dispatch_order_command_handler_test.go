package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatchOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchOrderCommand()

	o := testOrder(t, order.Ready, order.PaymentCard, nil)
	eligible := testEligibleCourier(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	orderRepo.On("GetAllReadyUnassigned", ctx).Return([]*order.Order{o}, nil).Once()
	courierRepo.On("GetAllEligible", ctx).Return([]*courier.Courier{eligible}, nil).Once()
	courierRepo.On("Claim", ctx, eligible.ID()).Return(true, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(factory, testDispatcher(t))
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, o.CourierID())
	assert.True(t, o.CourierID().IsEqual(eligible.ID()))
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_NoReadyOrders(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchOrderCommand()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetAllReadyUnassigned", ctx).Return([]*order.Order{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(factory, testDispatcher(t))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoReadyOrders)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_PoolExhausted(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchOrderCommand()

	first := testOrder(t, order.Ready, order.PaymentCard, nil)
	second := testOrder(t, order.Ready, order.PaymentCard, nil)
	eligible := testEligibleCourier(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	orderRepo.On("GetAllReadyUnassigned", ctx).Return([]*order.Order{first, second}, nil).Once()
	// one courier for two orders: second sweep iteration finds an empty pool
	courierRepo.On("GetAllEligible", ctx).Return([]*courier.Courier{eligible}, nil).Once()
	courierRepo.On("GetAllEligible", ctx).Return([]*courier.Courier{}, nil).Once()
	courierRepo.On("Claim", ctx, eligible.ID()).Return(true, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(factory, testDispatcher(t))
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, first.CourierID())
	assert.Nil(t, second.CourierID())
}

func TestDispatchOrderCommandHandler_Handle_LostClaim(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchOrderCommand()

	o := testOrder(t, order.Ready, order.PaymentCard, nil)
	eligible := testEligibleCourier(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	orderRepo.On("GetAllReadyUnassigned", ctx).Return([]*order.Order{o}, nil).Once()
	courierRepo.On("GetAllEligible", ctx).Return([]*courier.Courier{eligible}, nil).Once()
	courierRepo.On("Claim", ctx, eligible.ID()).Return(false, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(factory, testDispatcher(t))
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, o.CourierID())
	deliveryRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_LostClaim_ContinuesSweep(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchOrderCommand()

	first := testOrder(t, order.Ready, order.PaymentCard, nil)
	second := testOrder(t, order.Ready, order.PaymentCard, nil)
	contested := testEligibleCourier(t)
	remaining := testEligibleCourier(t)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	orderRepo.On("GetAllReadyUnassigned", ctx).Return([]*order.Order{first, second}, nil).Once()
	// the first order's courier is lost to a concurrent dispatch; the
	// second order must still be offered to the remaining courier
	courierRepo.On("GetAllEligible", ctx).Return([]*courier.Courier{contested}, nil).Once()
	courierRepo.On("GetAllEligible", ctx).Return([]*courier.Courier{remaining}, nil).Once()
	courierRepo.On("Claim", ctx, contested.ID()).Return(false, nil).Once()
	courierRepo.On("Claim", ctx, remaining.ID()).Return(true, nil).Once()
	orderRepo.On("Update", ctx, second).Return(nil).Once()
	deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(factory, testDispatcher(t))
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, first.CourierID())
	require.NotNil(t, second.CourierID())
	assert.True(t, second.CourierID().IsEqual(remaining.ID()))
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DispatchOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewDispatchOrderCommandHandler(factory, testDispatcher(t))
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrDispatchOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
