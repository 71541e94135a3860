package controllers

import (
	"errors"
	"strconv"

	"github.com/SwatiiB/kleCanteen-sub000/pkg/resp"
	"github.com/SwatiiB/kleCanteen-sub000/services"
	"github.com/SwatiiB/kleCanteen-sub000/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminOrderController mirrors the staff board across all canteens, plus the
// operator tool for retrying a stuck refund.
type AdminOrderController struct {
	Orders     *services.OrderService
	Lifecycle  *services.LifecycleService
	Reconciler *services.RefundReconciler
}

func NewAdminOrderController(orders *services.OrderService, lifecycle *services.LifecycleService, reconciler *services.RefundReconciler) *AdminOrderController {
	return &AdminOrderController{Orders: orders, Lifecycle: lifecycle, Reconciler: reconciler}
}

// GET /admin/orders?canteenId=
func (ctl *AdminOrderController) List(c *gin.Context) {
	canteenID, _ := strconv.Atoi(c.Query("canteenId"))
	if canteenID <= 0 {
		resp.BadRequest(c, "canteenId is required")
		return
	}

	var statusID *uint
	if s := c.Query("statusId"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			tmp := uint(v)
			statusID = &tmp
		}
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := ctl.Orders.ListForCanteen(uint(canteenID), statusID, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/orders/:id
func (ctl *AdminOrderController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := ctl.Orders.Detail(uint(id))
	if err != nil {
		resp.NotFound(c, "order not found")
		return
	}
	resp.OK(c, out)
}

// ---------------- Actions ----------------

func (ctl *AdminOrderController) Accept(c *gin.Context)  { ctl.transition(c, services.StatusPreparing) }
func (ctl *AdminOrderController) Ready(c *gin.Context)   { ctl.transition(c, services.StatusReady) }
func (ctl *AdminOrderController) Deliver(c *gin.Context) { ctl.transition(c, services.StatusDelivered) }
func (ctl *AdminOrderController) Complete(c *gin.Context) {
	ctl.transition(c, services.StatusCompleted)
}
func (ctl *AdminOrderController) Cancel(c *gin.Context) { ctl.transition(c, services.StatusCancelled) }

func (ctl *AdminOrderController) transition(c *gin.Context, target string) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	actor := services.Actor{UserID: utils.CurrentUserID(c), Role: "admin"}

	order, refund, err := ctl.Lifecycle.Transition(c.Request.Context(), actor, uint(orderID), target)
	if err != nil {
		writeLifecycleError(c, err)
		return
	}

	out := gin.H{
		"id":     order.ID,
		"status": ctl.Lifecycle.StatusName(order.OrderStatusID),
	}
	if refund != nil {
		out["refund"] = refund
	}
	resp.OK(c, out)
}

// POST /admin/orders/:id/refund — manual retry after a RefundFailed, safe to
// repeat because the reconciler is idempotent.
func (ctl *AdminOrderController) Refund(c *gin.Context) {
	orderID, _ := strconv.Atoi(c.Param("id"))

	outcome, err := ctl.Reconciler.Reconcile(c.Request.Context(), uint(orderID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "payment not found")
			return
		}
		if errors.Is(err, services.ErrPaymentNotRefundable) {
			resp.Conflict(c, err.Error())
			return
		}
		resp.BadGateway(c, err.Error())
		return
	}
	resp.OK(c, outcome)
}
