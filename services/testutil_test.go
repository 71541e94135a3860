package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/SwatiiB/kleCanteen-sub000/configs"
	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique name per test so parallel tests never share a database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, configs.Migrate(db))
	require.NoError(t, configs.SeedLookups(db))
	return db
}

type fakeGateway struct {
	calls    int
	err      error
	onRefund func() // runs inside Refund, before returning
}

func (g *fakeGateway) Refund(ctx context.Context, gatewayRef string, amount int64) (*RefundReceipt, error) {
	g.calls++
	if g.onRefund != nil {
		g.onRefund()
	}
	if g.err != nil {
		return nil, g.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &RefundReceipt{RefundRef: fmt.Sprintf("RFD-%04d", g.calls)}, nil
}

type recordingNotifier struct {
	events []OrderStatusEvent
}

func (n *recordingNotifier) NotifyStatus(canteenID uint, ev OrderStatusEvent) {
	n.events = append(n.events, ev)
}

type fixture struct {
	db         *gorm.DB
	orders     *repository.OrderRepository
	payments   *repository.PaymentRepository
	exams      *repository.ExamRepository
	gateway    *fakeGateway
	reconciler *RefundReconciler
	lifecycle  *LifecycleService

	customer entity.User
	canteenA entity.Canteen
	canteenB entity.Canteen
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		db:       db,
		orders:   repository.NewOrderRepository(db),
		payments: repository.NewPaymentRepository(db),
		exams:    repository.NewExamRepository(db),
		gateway:  &fakeGateway{},
	}
	f.reconciler = NewRefundReconciler(db, f.payments, f.gateway)
	f.lifecycle = NewLifecycleService(db, f.orders, f.payments, f.reconciler)

	f.canteenA = entity.Canteen{Name: "Main Block Canteen", IsAvailable: true}
	require.NoError(t, db.Create(&f.canteenA).Error)
	f.canteenB = entity.Canteen{Name: "Hostel Canteen", IsAvailable: true}
	require.NoError(t, db.Create(&f.canteenB).Error)

	f.customer = entity.User{
		Email: "student@kle.edu", FirstName: "Asha", LastName: "K",
		UniversityID: "01FE23MCA030", Role: "customer",
	}
	require.NoError(t, db.Create(&f.customer).Error)

	return f
}

func (f *fixture) statusID(t *testing.T, name string) uint {
	t.Helper()
	id, err := f.orders.GetStatusIDByName(name)
	require.NoError(t, err)
	return id
}

func (f *fixture) createOrder(t *testing.T, canteenID uint, status string, total int64) entity.Order {
	t.Helper()
	o := entity.Order{
		OrderNumber:    uuid.NewString(),
		Subtotal:       total,
		Total:          total,
		PriorityReason: ReasonNone,
		UserID:         f.customer.ID,
		CanteenID:      canteenID,
		OrderStatusID:  f.statusID(t, status),
	}
	require.NoError(t, f.db.Create(&o).Error)
	return o
}

func (f *fixture) createPayment(t *testing.T, orderID uint, method, status string, amount int64) entity.Payment {
	t.Helper()
	methodID, err := f.payments.GetMethodIDByName(method)
	require.NoError(t, err)
	statusID, err := f.payments.GetStatusIDByName(status)
	require.NoError(t, err)

	p := entity.Payment{
		Amount:          amount,
		OrderID:         orderID,
		GatewayRef:      "PAY-" + uuid.NewString()[:8],
		PaymentMethodID: methodID,
		PaymentStatusID: statusID,
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) orderStatus(t *testing.T, orderID uint) string {
	t.Helper()
	o, err := f.orders.GetOrder(orderID)
	require.NoError(t, err)
	return f.lifecycle.StatusName(o.OrderStatusID)
}

func (f *fixture) paymentStatusID(t *testing.T, orderID uint) uint {
	t.Helper()
	p, err := f.payments.GetByOrderID(orderID)
	require.NoError(t, err)
	return p.PaymentStatusID
}

func (f *fixture) staffA() Actor {
	return Actor{UserID: 100, Role: "staff", CanteenID: f.canteenA.ID}
}

func (f *fixture) admin() Actor {
	return Actor{UserID: 1, Role: "admin"}
}
