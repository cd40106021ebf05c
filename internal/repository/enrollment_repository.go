package repository

import (
	"advising_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.CourseEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Update(enrollment *model.CourseEnrollment) error {
	return r.DB.Save(enrollment).Error
}

func (r *EnrollmentRepository) FindByStudentAndCourse(studentID, courseID uint) (*model.CourseEnrollment, error) {
	var enrollment model.CourseEnrollment
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) ListByStudent(studentID uint) ([]model.CourseEnrollment, error) {
	var enrollments []model.CourseEnrollment
	err := r.DB.Preload("Course").Where("student_id = ?", studentID).Order("created_at desc").Find(&enrollments).Error
	return enrollments, err
}

// CompletedCourseCodes returns the codes of every course the student has
// finished, the set the prerequisite filter checks against.
func (r *EnrollmentRepository) CompletedCourseCodes(studentID uint) ([]string, error) {
	var codes []string
	err := r.DB.Model(&model.CourseEnrollment{}).
		Joins("JOIN courses ON courses.id = course_enrollments.course_id").
		Where("course_enrollments.student_id = ? AND course_enrollments.status = ?", studentID, model.EnrollmentCompleted).
		Pluck("courses.course_code", &codes).Error
	return codes, err
}

func (r *EnrollmentRepository) ListByCourseSection(courseID uint, section string) ([]model.CourseEnrollment, error) {
	var enrollments []model.CourseEnrollment
	query := r.DB.Where("course_id = ? AND status = ?", courseID, model.EnrollmentEnrolled)
	if section != "" {
		query = query.Where("section = ?", section)
	}
	err := query.Find(&enrollments).Error
	return enrollments, err
}
