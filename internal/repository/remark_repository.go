package repository

import (
	"advising_backend/internal/model"

	"gorm.io/gorm"
)

type RemarkRepository struct {
	DB *gorm.DB
}

func NewRemarkRepository(db *gorm.DB) *RemarkRepository {
	return &RemarkRepository{DB: db}
}

func (r *RemarkRepository) Create(remark *model.CourseRemark) error {
	return r.DB.Create(remark).Error
}

func (r *RemarkRepository) Update(remark *model.CourseRemark) error {
	return r.DB.Save(remark).Error
}

func (r *RemarkRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CourseRemark{}, id).Error
}

func (r *RemarkRepository) FindByID(id uint) (*model.CourseRemark, error) {
	var remark model.CourseRemark
	err := r.DB.First(&remark, id).Error
	return &remark, err
}

func (r *RemarkRepository) ListByStudent(studentID uint, courseID *uint) ([]model.CourseRemark, error) {
	var remarks []model.CourseRemark
	query := r.DB.Where("student_id = ?", studentID)
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}
	err := query.Order("created_at desc").Find(&remarks).Error
	return remarks, err
}

// Latest returns the newest remarks for the insight prompt, capped at limit.
func (r *RemarkRepository) Latest(studentID, courseID uint, limit int) ([]model.CourseRemark, error) {
	var remarks []model.CourseRemark
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Order("created_at desc").Limit(limit).Find(&remarks).Error
	return remarks, err
}
