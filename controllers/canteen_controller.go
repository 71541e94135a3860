package controllers

import (
	"errors"
	"strconv"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/pkg/resp"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CanteenController struct{ DB *gorm.DB }

func NewCanteenController(db *gorm.DB) *CanteenController { return &CanteenController{DB: db} }

// GET /canteens
func (ctl *CanteenController) List(c *gin.Context) {
	var canteens []entity.Canteen
	if err := ctl.DB.Order("id").Find(&canteens).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": canteens})
}

// GET /canteens/:id
func (ctl *CanteenController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var canteen entity.Canteen
	if err := ctl.DB.First(&canteen, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "canteen not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, canteen)
}

type canteenReq struct {
	Name          string `json:"name" binding:"required"`
	Location      string `json:"location"`
	ContactNumber string `json:"contactNumber"`
	OpeningTime   string `json:"openingTime"`
	ClosingTime   string `json:"closingTime"`
	IsAvailable   *bool  `json:"isAvailable"`
}

// POST /admin/canteens
func (ctl *CanteenController) Create(c *gin.Context) {
	var req canteenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	canteen := entity.Canteen{
		Name:          req.Name,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
		OpeningTime:   req.OpeningTime,
		ClosingTime:   req.ClosingTime,
		IsAvailable:   true,
	}
	if req.IsAvailable != nil {
		canteen.IsAvailable = *req.IsAvailable
	}

	if err := ctl.DB.Create(&canteen).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, canteen)
}

// PATCH /admin/canteens/:id
func (ctl *CanteenController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var canteen entity.Canteen
	if err := ctl.DB.First(&canteen, id).Error; err != nil {
		resp.NotFound(c, "canteen not found")
		return
	}

	var req canteenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	canteen.Name = req.Name
	canteen.Location = req.Location
	canteen.ContactNumber = req.ContactNumber
	canteen.OpeningTime = req.OpeningTime
	canteen.ClosingTime = req.ClosingTime
	if req.IsAvailable != nil {
		canteen.IsAvailable = *req.IsAvailable
	}

	if err := ctl.DB.Save(&canteen).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, canteen)
}
