package controllers

import (
	"strconv"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/pkg/resp"
	"github.com/SwatiiB/kleCanteen-sub000/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FeedbackController struct{ DB *gorm.DB }

func NewFeedbackController(db *gorm.DB) *FeedbackController { return &FeedbackController{DB: db} }

type feedbackReq struct {
	CanteenID uint   `json:"canteenId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
	OrderID   *uint  `json:"orderId"`
}

// POST /feedback
func (ctl *FeedbackController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req feedbackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if req.OrderID != nil {
		var cnt int64
		ctl.DB.Model(&entity.Order{}).
			Where("id = ? AND user_id = ?", *req.OrderID, uid).Count(&cnt)
		if cnt == 0 {
			resp.BadRequest(c, "order not found")
			return
		}
	}

	fb := entity.Feedback{
		Rating:    req.Rating,
		Comment:   req.Comment,
		UserID:    uid,
		CanteenID: req.CanteenID,
		OrderID:   req.OrderID,
	}
	if err := ctl.DB.Create(&fb).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, fb)
}

// GET /staff/feedback (own canteen) and /admin/feedback?canteenId=
func (ctl *FeedbackController) ListForCanteen(c *gin.Context) {
	var canteenID uint
	if utils.CurrentRole(c) == "staff" {
		canteenID = utils.CurrentCanteenID(c)
	} else {
		id, _ := strconv.Atoi(c.Query("canteenId"))
		canteenID = uint(id)
	}

	q := ctl.DB.Model(&entity.Feedback{}).Order("id DESC").Limit(200)
	if canteenID != 0 {
		q = q.Where("canteen_id = ?", canteenID)
	}
	var items []entity.Feedback
	if err := q.Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}
