package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_NoActiveDelivery(t *testing.T) {
	ctx := t.Context()

	o := testOrder(t, order.Confirmed, order.PaymentCard, nil)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "customer request")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	deliveryRepo.On("GetActiveByOrderID", ctx, o.ID()).Return(nil, errs.ErrObjectNotFound).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	history := o.History()
	assert.Equal(t, "customer request", history[len(history)-1].Note())
}

func TestCancelOrderCommandHandler_Handle_CancelsActiveDelivery(t *testing.T) {
	ctx := t.Context()

	rider := testEligibleCourier(t)
	require.NoError(t, rider.Claim())

	o := testOrder(t, order.Ready, order.PaymentCard, nil)
	require.NoError(t, o.AssignCourier(rider.ID()))
	d := testDelivery(t, o, rider.ID(), delivery.Accepted)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "restaurant closed")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	deliveryRepo.On("GetActiveByOrderID", ctx, o.ID()).Return(d, nil).Once()
	deliveryRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once()
	courierRepo.On("Release", ctx, rider.ID()).Return(nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, delivery.Cancelled, d.Status())
	courierRepo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_CollectedDeliveryBlocksCancellation(t *testing.T) {
	ctx := t.Context()

	rider := testEligibleCourier(t)
	o := testOrder(t, order.Ready, order.PaymentCard, nil)
	require.NoError(t, o.AssignCourier(rider.ID()))
	d := testDelivery(t, o, rider.ID(), delivery.Collected)

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "too late")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	deliveryRepo.On("GetActiveByOrderID", ctx, o.ID()).Return(d, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrInvalidTransition)
	assert.Equal(t, order.Ready, o.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_CompletedOrder(t *testing.T) {
	ctx := t.Context()

	rider := testEligibleCourier(t)
	o := testOrder(t, order.Ready, order.PaymentCard, nil)
	require.NoError(t, o.AssignCourier(rider.ID()))
	require.NoError(t, o.Complete())

	cmd, err := commands.NewCancelOrderCommand(o.ID(), "change of mind")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	deliveryRepo.On("GetActiveByOrderID", ctx, o.ID()).Return(nil, errs.ErrObjectNotFound).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Completed, o.Status())
}
