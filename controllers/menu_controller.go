package controllers

import (
	"strconv"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/pkg/resp"
	"github.com/SwatiiB/kleCanteen-sub000/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuController struct{ DB *gorm.DB }

func NewMenuController(db *gorm.DB) *MenuController { return &MenuController{DB: db} }

// GET /canteens/:id/menu
func (ctl *MenuController) ListForCanteen(c *gin.Context) {
	canteenID, _ := strconv.Atoi(c.Param("id"))
	var items []entity.MenuItem
	q := ctl.DB.Where("canteen_id = ?", canteenID)
	if c.Query("all") == "" {
		q = q.Where("is_available = ?", true)
	}
	if err := q.Order("category, name").Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type menuItemReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Category    string `json:"category"`
	IsAvailable *bool  `json:"isAvailable"`
}

// staff manage their own canteen's menu; admins pass ?canteenId=
func (ctl *MenuController) targetCanteen(c *gin.Context) (uint, bool) {
	if utils.CurrentRole(c) == "staff" {
		return utils.CurrentCanteenID(c), true
	}
	id, err := strconv.Atoi(c.Query("canteenId"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "canteenId is required")
		return 0, false
	}
	return uint(id), true
}

// POST /staff/menu
func (ctl *MenuController) Create(c *gin.Context) {
	canteenID, ok := ctl.targetCanteen(c)
	if !ok {
		return
	}

	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item := entity.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsAvailable: true,
		CanteenID:   canteenID,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := ctl.DB.Create(&item).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, item)
}

// PATCH /staff/menu/:id
func (ctl *MenuController) Update(c *gin.Context) {
	canteenID, ok := ctl.targetCanteen(c)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	var item entity.MenuItem
	if err := ctl.DB.Where("id = ? AND canteen_id = ?", id, canteenID).First(&item).Error; err != nil {
		resp.NotFound(c, "menu item not found")
		return
	}

	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Category = req.Category
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := ctl.DB.Save(&item).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, item)
}

// DELETE /staff/menu/:id
func (ctl *MenuController) Delete(c *gin.Context) {
	canteenID, ok := ctl.targetCanteen(c)
	if !ok {
		return
	}
	id, _ := strconv.Atoi(c.Param("id"))

	res := ctl.DB.Where("id = ? AND canteen_id = ?", id, canteenID).Delete(&entity.MenuItem{})
	if res.Error != nil {
		resp.ServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		resp.NotFound(c, "menu item not found")
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
