package controllers

import (
	"strconv"

	"github.com/SwatiiB/kleCanteen-sub000/pkg/resp"
	"github.com/SwatiiB/kleCanteen-sub000/services"
	"github.com/SwatiiB/kleCanteen-sub000/utils"
	"github.com/gin-gonic/gin"
)

// StaffOrderController exposes the canteen board: listing and the status
// buttons. Every button is a plain call into the lifecycle service; no
// guard logic lives here.
type StaffOrderController struct {
	Orders    *services.OrderService
	Lifecycle *services.LifecycleService
}

func NewStaffOrderController(orders *services.OrderService, lifecycle *services.LifecycleService) *StaffOrderController {
	return &StaffOrderController{Orders: orders, Lifecycle: lifecycle}
}

// GET /staff/orders
func (ctl *StaffOrderController) List(c *gin.Context) {
	canteenID := utils.CurrentCanteenID(c)
	if canteenID == 0 {
		resp.Forbidden(c, "no canteen assigned")
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

	out, err := ctl.Orders.ListForCanteen(canteenID, statusID, page, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /staff/orders/:id
func (ctl *StaffOrderController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := ctl.Orders.Detail(uint(id))
	if err != nil {
		resp.NotFound(c, "order not found")
		return
	}
	if out.CanteenID != utils.CurrentCanteenID(c) {
		resp.Forbidden(c, "forbidden")
		return
	}
	resp.OK(c, out)
}

// ---------------- Actions ----------------

func (ctl *StaffOrderController) Accept(c *gin.Context)  { ctl.transition(c, services.StatusPreparing) }
func (ctl *StaffOrderController) Ready(c *gin.Context)   { ctl.transition(c, services.StatusReady) }
func (ctl *StaffOrderController) Deliver(c *gin.Context) { ctl.transition(c, services.StatusDelivered) }
func (ctl *StaffOrderController) Complete(c *gin.Context) {
	ctl.transition(c, services.StatusCompleted)
}
func (ctl *StaffOrderController) Cancel(c *gin.Context) { ctl.transition(c, services.StatusCancelled) }

func (ctl *StaffOrderController) transition(c *gin.Context, target string) {
	orderID, _ := strconv.Atoi(c.Param("id"))
	actor := services.Actor{
		UserID:    utils.CurrentUserID(c),
		Role:      "staff",
		CanteenID: utils.CurrentCanteenID(c),
	}

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
