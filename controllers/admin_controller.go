package controllers

import (
	"strings"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/pkg/resp"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminController struct{ DB *gorm.DB }

func NewAdminController(db *gorm.DB) *AdminController { return &AdminController{DB: db} }

type createStaffReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	CanteenID uint   `json:"canteenId" binding:"required"`
}

// POST /admin/staff — create a staff account bound to a canteen
func (ctl *AdminController) CreateStaff(c *gin.Context) {
	var req createStaffReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	var cnt int64
	if err := ctl.DB.Model(&entity.Canteen{}).Where("id = ?", req.CanteenID).Count(&cnt).Error; err != nil || cnt == 0 {
		resp.BadRequest(c, "canteen not found")
		return
	}

	var exist entity.User
	if err := ctl.DB.Where("email = ?", strings.ToLower(req.Email)).First(&exist).Error; err == nil {
		resp.BadRequest(c, "email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	staff := entity.User{
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "staff",
		CanteenID: &req.CanteenID,
	}
	if err := ctl.DB.Create(&staff).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, userOut(staff))
}

// GET /admin/staff?canteenId=
func (ctl *AdminController) ListStaff(c *gin.Context) {
	q := ctl.DB.Model(&entity.User{}).Where("role = ?", "staff")
	if id := c.Query("canteenId"); id != "" {
		q = q.Where("canteen_id = ?", id)
	}
	var staff []entity.User
	if err := q.Order("id").Find(&staff).Error; err != nil {
		resp.ServerError(c, err)
		return
	}

	items := make([]gin.H, 0, len(staff))
	for _, u := range staff {
		items = append(items, userOut(u))
	}
	resp.OK(c, gin.H{"items": items})
}
