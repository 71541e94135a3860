package controllers

import (
	"strconv"
	"time"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/pkg/resp"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExamController struct{ DB *gorm.DB }

func NewExamController(db *gorm.DB) *ExamController { return &ExamController{DB: db} }

type examReq struct {
	ExamName          string    `json:"examName" binding:"required"`
	ExamDate          time.Time `json:"examDate" binding:"required"`
	Description       string    `json:"description"`
	StartUniversityID string    `json:"startUniversityId" binding:"required"`
	EndUniversityID   string    `json:"endUniversityId" binding:"required"`
	IsActive          *bool     `json:"isActive"`
}

// GET /admin/exams
func (ctl *ExamController) List(c *gin.Context) {
	var exams []entity.Exam
	q := ctl.DB.Order("exam_date DESC")
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&exams).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": exams})
}

// POST /admin/exams
func (ctl *ExamController) Create(c *gin.Context) {
	var req examReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.StartUniversityID > req.EndUniversityID {
		resp.BadRequest(c, "startUniversityId must not exceed endUniversityId")
		return
	}

	exam := entity.Exam{
		ExamName:          req.ExamName,
		ExamDate:          req.ExamDate,
		Description:       req.Description,
		StartUniversityID: req.StartUniversityID,
		EndUniversityID:   req.EndUniversityID,
		IsActive:          true,
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}

	if err := ctl.DB.Create(&exam).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, exam)
}

// PATCH /admin/exams/:id
func (ctl *ExamController) Update(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var exam entity.Exam
	if err := ctl.DB.First(&exam, id).Error; err != nil {
		resp.NotFound(c, "exam not found")
		return
	}

	var req examReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.StartUniversityID > req.EndUniversityID {
		resp.BadRequest(c, "startUniversityId must not exceed endUniversityId")
		return
	}

	exam.ExamName = req.ExamName
	exam.ExamDate = req.ExamDate
	exam.Description = req.Description
	exam.StartUniversityID = req.StartUniversityID
	exam.EndUniversityID = req.EndUniversityID
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}

	if err := ctl.DB.Save(&exam).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, exam)
}

// DELETE /admin/exams/:id
func (ctl *ExamController) Delete(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	res := ctl.DB.Delete(&entity.Exam{}, id)
	if res.Error != nil {
		resp.ServerError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		resp.NotFound(c, "exam not found")
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
