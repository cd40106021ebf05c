package repository

import (
	"advising_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByCode(code string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("UPPER(course_code) = UPPER(?)", code).First(&course).Error
	return &course, err
}

func (r *CourseRepository) ListActive() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("is_active = true").Order("level, course_code").Find(&courses).Error
	return courses, err
}

// ListAvailableForStudent returns active courses the student has no
// enrollment row for, in catalog order.
func (r *CourseRepository) ListAvailableForStudent(studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("is_active = true").
		Where("id NOT IN (?)", r.DB.Model(&model.CourseEnrollment{}).
			Select("course_id").Where("student_id = ?", studentID)).
		Order("level, course_code").
		Find(&courses).Error
	return courses, err
}

// Professor course assignment helpers.

func (r *CourseRepository) CreateAssignment(a *model.ProfessorCourseAssignment) error {
	return r.DB.Create(a).Error
}

func (r *CourseRepository) ListAssignments(courseID uint, section string) ([]model.ProfessorCourseAssignment, error) {
	var assignments []model.ProfessorCourseAssignment
	query := r.DB.Where("course_id = ?", courseID)
	if section != "" {
		query = query.Where("section = ?", section)
	}
	err := query.Find(&assignments).Error
	return assignments, err
}

func (r *CourseRepository) ListCoursesForProfessor(professorID uint) ([]model.ProfessorCourseAssignment, error) {
	var assignments []model.ProfessorCourseAssignment
	err := r.DB.Preload("Course").Where("professor_id = ?", professorID).Find(&assignments).Error
	return assignments, err
}
