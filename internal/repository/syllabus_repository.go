package repository

import (
	"advising_backend/internal/model"

	"gorm.io/gorm"
)

type SyllabusRepository struct {
	DB *gorm.DB
}

func NewSyllabusRepository(db *gorm.DB) *SyllabusRepository {
	return &SyllabusRepository{DB: db}
}

func (r *SyllabusRepository) Create(syllabus *model.CourseSyllabus) error {
	return r.DB.Create(syllabus).Error
}

// Latest returns the most recently uploaded syllabus for a course.
func (r *SyllabusRepository) Latest(courseID uint) (*model.CourseSyllabus, error) {
	var syllabus model.CourseSyllabus
	err := r.DB.Where("course_id = ?", courseID).Order("uploaded_at desc").First(&syllabus).Error
	if err != nil {
		return nil, err
	}
	return &syllabus, nil
}

func (r *SyllabusRepository) UpdateAnalysis(syllabusID uint, topics model.JSONMap, breakdown model.GradingBreakdown) error {
	return r.DB.Model(&model.CourseSyllabus{}).Where("id = ?", syllabusID).Updates(map[string]interface{}{
		"topics":            topics,
		"grading_breakdown": breakdown,
	}).Error
}
