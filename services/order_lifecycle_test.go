package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionGraph(t *testing.T) {
	cases := []struct {
		from, to string
		wantErr  error
	}{
		{StatusPending, StatusPreparing, nil},
		{StatusPending, StatusCancelled, nil},
		{StatusPreparing, StatusReady, nil},
		{StatusPreparing, StatusCancelled, nil}, // cash order, allowed
		{StatusReady, StatusDelivered, nil},
		{StatusDelivered, StatusCompleted, nil},

		{StatusPending, StatusReady, ErrInvalidTransition},
		{StatusPending, StatusDelivered, ErrInvalidTransition},
		{StatusPreparing, StatusDelivered, ErrInvalidTransition},
		{StatusReady, StatusCancelled, ErrInvalidTransition},
		{StatusReady, StatusCompleted, ErrInvalidTransition},
		{StatusDelivered, StatusCancelled, ErrInvalidTransition},
		{StatusCompleted, StatusPending, ErrInvalidTransition},
		{StatusCompleted, StatusCancelled, ErrInvalidTransition},
		{StatusCancelled, StatusPending, ErrInvalidTransition},
		{StatusCancelled, StatusPreparing, ErrInvalidTransition},
		// no time travel: going back is never valid
		{StatusPreparing, StatusPending, ErrInvalidTransition},
		{StatusDelivered, StatusReady, ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			f := newFixture(t)
			o := f.createOrder(t, f.canteenA.ID, tc.from, 10000)

			updated, _, err := f.lifecycle.Transition(context.Background(), f.staffA(), o.ID, tc.to)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.from, f.orderStatus(t, o.ID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, f.lifecycle.StatusName(updated.OrderStatusID))
			assert.Equal(t, tc.to, f.orderStatus(t, o.ID))
		})
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 5000)

	_, _, err := f.lifecycle.Transition(context.Background(), f.staffA(), o.ID, "Vanished")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionNoOpOnCurrentStatus(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPreparing, 5000)
	f.createPayment(t, o.ID, MethodOnline, PayCompleted, 5000)

	updated, refund, err := f.lifecycle.Transition(context.Background(), f.staffA(), o.ID, StatusPreparing)
	require.NoError(t, err)
	assert.Nil(t, refund)
	assert.Equal(t, StatusPreparing, f.lifecycle.StatusName(updated.OrderStatusID))
	assert.Zero(t, f.gateway.calls, "a no-op must not touch the gateway")
}

func TestTransitionScope(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 5000)

	// staff of another canteen
	otherStaff := Actor{UserID: 200, Role: "staff", CanteenID: f.canteenB.ID}
	_, _, err := f.lifecycle.Transition(context.Background(), otherStaff, o.ID, StatusPreparing)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, StatusPending, f.orderStatus(t, o.ID))

	// customers have no transition capability at all
	_, _, err = f.lifecycle.Transition(context.Background(), Actor{UserID: f.customer.ID, Role: "customer"}, o.ID, StatusCancelled)
	require.ErrorIs(t, err, ErrForbidden)

	// admin is unscoped
	_, _, err = f.lifecycle.Transition(context.Background(), f.admin(), o.ID, StatusPreparing)
	require.NoError(t, err)

	// scope check runs before the structural check
	_, _, err = f.lifecycle.Transition(context.Background(), otherStaff, o.ID, StatusCompleted)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestCancelPendingOnlinePaidRefunds(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 10000)
	f.createPayment(t, o.ID, MethodOnline, PayCompleted, 10000)

	updated, refund, err := f.lifecycle.Transition(context.Background(), f.admin(), o.ID, StatusCancelled)
	require.NoError(t, err)
	require.NotNil(t, refund)

	assert.Equal(t, StatusCancelled, f.lifecycle.StatusName(updated.OrderStatusID))
	assert.Equal(t, int64(10000), refund.Amount)
	assert.False(t, refund.AlreadyRefunded)
	assert.Equal(t, 1, f.gateway.calls)
	assert.Equal(t, f.lifecycle.PayStatus.Refunded, f.paymentStatusID(t, o.ID))
}

func TestCancelPreparingOnlinePaidWindowClosed(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPreparing, 10000)
	f.createPayment(t, o.ID, MethodOnline, PayCompleted, 10000)

	// the stricter rule applies to admins too
	_, _, err := f.lifecycle.Transition(context.Background(), f.admin(), o.ID, StatusCancelled)
	require.ErrorIs(t, err, ErrCancellationWindowClosed)

	assert.Equal(t, StatusPreparing, f.orderStatus(t, o.ID))
	assert.Equal(t, f.lifecycle.PayStatus.Completed, f.paymentStatusID(t, o.ID))
	assert.Zero(t, f.gateway.calls)
}

func TestCancelCashOrderSkipsLedger(t *testing.T) {
	f := newFixture(t)

	// cash payment record present
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 4000)
	f.createPayment(t, o.ID, MethodCash, PayPending, 4000)

	_, refund, err := f.lifecycle.Transition(context.Background(), f.staffA(), o.ID, StatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, refund)
	assert.Zero(t, f.gateway.calls)

	// cash orders may be cancelled even from Preparing
	o2 := f.createOrder(t, f.canteenA.ID, StatusPreparing, 4000)
	f.createPayment(t, o2.ID, MethodCash, PayPending, 4000)

	_, _, err = f.lifecycle.Transition(context.Background(), f.staffA(), o2.ID, StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, f.orderStatus(t, o2.ID))

	// no payment record at all
	o3 := f.createOrder(t, f.canteenA.ID, StatusPending, 4000)
	_, refund, err = f.lifecycle.Transition(context.Background(), f.staffA(), o3.ID, StatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, refund)
	assert.Zero(t, f.gateway.calls)
}

func TestCancelOnlineUncapturedNeedsNoRefund(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 4000)
	f.createPayment(t, o.ID, MethodOnline, PayPending, 4000)

	_, refund, err := f.lifecycle.Transition(context.Background(), f.staffA(), o.ID, StatusCancelled)
	require.NoError(t, err)
	assert.Nil(t, refund)
	assert.Zero(t, f.gateway.calls)
}

func TestRefundFailureLeavesOrderUntouched(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 25000)
	f.createPayment(t, o.ID, MethodOnline, PayCompleted, 25000)

	f.gateway.err = errors.New("gateway unavailable")

	_, _, err := f.lifecycle.Transition(context.Background(), f.admin(), o.ID, StatusCancelled)
	require.ErrorIs(t, err, ErrRefundFailed)

	assert.Equal(t, StatusPending, f.orderStatus(t, o.ID))
	assert.Equal(t, f.lifecycle.PayStatus.Completed, f.paymentStatusID(t, o.ID))

	// the operator retries once the gateway recovers
	f.gateway.err = nil
	updated, refund, err := f.lifecycle.Transition(context.Background(), f.admin(), o.ID, StatusCancelled)
	require.NoError(t, err)
	require.NotNil(t, refund)
	assert.Equal(t, StatusCancelled, f.lifecycle.StatusName(updated.OrderStatusID))
}

func TestCancelledContextAbortsBeforeStatusWrite(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 25000)
	f.createPayment(t, o.ID, MethodOnline, PayCompleted, 25000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := f.lifecycle.Transition(ctx, f.admin(), o.ID, StatusCancelled)
	require.ErrorIs(t, err, ErrRefundFailed)
	assert.Equal(t, StatusPending, f.orderStatus(t, o.ID))
}

func TestConcurrentModificationLosesRace(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 10000)
	f.createPayment(t, o.ID, MethodOnline, PayCompleted, 10000)

	// while the refund is in flight, a staff member accepts the order
	f.gateway.onRefund = func() {
		wrote, err := f.orders.UpdateStatusFromTo(f.db, o.ID,
			f.lifecycle.Status.Pending, f.lifecycle.Status.Preparing)
		require.NoError(t, err)
		require.True(t, wrote)
	}

	_, _, err := f.lifecycle.Transition(context.Background(), f.admin(), o.ID, StatusCancelled)
	require.ErrorIs(t, err, ErrConcurrentModification)

	// the refund really happened, so the ledger shows Refunded while the
	// order moved on; re-running the cancel completes without a second
	// gateway call
	assert.Equal(t, StatusPreparing, f.orderStatus(t, o.ID))
	assert.Equal(t, f.lifecycle.PayStatus.Refunded, f.paymentStatusID(t, o.ID))

	f.gateway.onRefund = nil
	updated, refund, err := f.lifecycle.Transition(context.Background(), f.admin(), o.ID, StatusCancelled)
	require.NoError(t, err)
	require.NotNil(t, refund)
	assert.True(t, refund.AlreadyRefunded)
	assert.Equal(t, 1, f.gateway.calls)
	assert.Equal(t, StatusCancelled, f.lifecycle.StatusName(updated.OrderStatusID))
}

func TestScenarioStaffAcceptsThenAdminCancels(t *testing.T) {
	f := newFixture(t)
	o := f.createOrder(t, f.canteenA.ID, StatusPending, 25000)
	f.createPayment(t, o.ID, MethodOnline, PayCompleted, 25000)

	updated, _, err := f.lifecycle.Transition(context.Background(), f.staffA(), o.ID, StatusPreparing)
	require.NoError(t, err)
	require.Equal(t, StatusPreparing, f.lifecycle.StatusName(updated.OrderStatusID))

	_, _, err = f.lifecycle.Transition(context.Background(), f.admin(), o.ID, StatusCancelled)
	require.ErrorIs(t, err, ErrCancellationWindowClosed)
	assert.Equal(t, f.lifecycle.PayStatus.Completed, f.paymentStatusID(t, o.ID))
}

func TestTransitionNotifiesBoard(t *testing.T) {
	f := newFixture(t)
	n := &recordingNotifier{}
	f.lifecycle.SetNotifier(n)

	o := f.createOrder(t, f.canteenA.ID, StatusPending, 5000)

	_, _, err := f.lifecycle.Transition(context.Background(), f.staffA(), o.ID, StatusPreparing)
	require.NoError(t, err)

	require.Len(t, n.events, 1)
	assert.Equal(t, o.ID, n.events[0].OrderID)
	assert.Equal(t, StatusPreparing, n.events[0].Status)

	// no-ops do not emit events
	_, _, err = f.lifecycle.Transition(context.Background(), f.staffA(), o.ID, StatusPreparing)
	require.NoError(t, err)
	assert.Len(t, n.events, 1)
}
