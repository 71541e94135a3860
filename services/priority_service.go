package services

import (
	"strings"

	"github.com/SwatiiB/kleCanteen-sub000/entity"
	"github.com/SwatiiB/kleCanteen-sub000/repository"
)

// Declared priority reasons.
const (
	ReasonExam    = "exam"
	ReasonFaculty = "faculty"
	ReasonMedical = "medical"
	ReasonNone    = "none"
)

type PriorityResult struct {
	Priority bool   `json:"priority"`
	Reason   string `json:"reason"`
	Fee      int64  `json:"fee"`
}

// PriorityService decides at order creation whether an order skips the queue
// and what surcharge applies. The result is frozen onto the order; the
// lifecycle never re-evaluates it, even if an exam window is deactivated later.
type PriorityService struct {
	Exams *repository.ExamRepository
	Fee   int64 // flat surcharge for every priority order, all reasons
}

func NewPriorityService(exams *repository.ExamRepository, fee int64) *PriorityService {
	return &PriorityService{Exams: exams, Fee: fee}
}

// Classify applies the priority rules against the given exam windows. An exam
// claim must place the student's university ID inside an active window's
// inclusive range; faculty and medical claims are self-attested.
func (s *PriorityService) Classify(universityID, declaredReason string, windows []entity.Exam) PriorityResult {
	switch strings.ToLower(strings.TrimSpace(declaredReason)) {
	case ReasonExam:
		id := normalizeID(universityID)
		for _, w := range windows {
			if !w.IsActive {
				continue
			}
			if id >= normalizeID(w.StartUniversityID) && id <= normalizeID(w.EndUniversityID) {
				return PriorityResult{Priority: true, Reason: ReasonExam, Fee: s.Fee}
			}
		}
	case ReasonFaculty:
		return PriorityResult{Priority: true, Reason: ReasonFaculty, Fee: s.Fee}
	case ReasonMedical:
		return PriorityResult{Priority: true, Reason: ReasonMedical, Fee: s.Fee}
	}
	return PriorityResult{Reason: ReasonNone}
}

// ClassifyCurrent classifies against the currently active exam windows.
func (s *PriorityService) ClassifyCurrent(universityID, declaredReason string) (PriorityResult, error) {
	windows, err := s.Exams.ListActive()
	if err != nil {
		return PriorityResult{}, err
	}
	return s.Classify(universityID, declaredReason, windows), nil
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
