package entity

import (
	"time"

	"gorm.io/gorm"
)

// Exam window used by the priority classifier. Students whose university ID
// falls inside [StartUniversityID, EndUniversityID] (inclusive, lexicographic)
// qualify for priority while IsActive is set.
type Exam struct {
	gorm.Model
	ExamName          string    `gorm:"size:100;not null" json:"examName"`
	ExamDate          time.Time `json:"examDate"`
	Description       string    `json:"description"`
	StartUniversityID string    `gorm:"size:40;not null" json:"startUniversityId"`
	EndUniversityID   string    `gorm:"size:40;not null" json:"endUniversityId"`
	IsActive          bool      `gorm:"default:true" json:"isActive"`
}
