package repository

import (
	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) ListActive() ([]entity.Exam, error) {
	var exams []entity.Exam
	err := r.DB.Where("is_active = ?", true).Find(&exams).Error
	return exams, err
}
