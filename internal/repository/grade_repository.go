package repository

import (
	"advising_backend/internal/model"

	"gorm.io/gorm"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

// GetOrCreateHeader finds the grade header for (student, course, period),
// creating it on first use.
func (r *GradeRepository) GetOrCreateHeader(studentID, courseID uint, period model.GradePeriod) (*model.CourseGrade, error) {
	var grade model.CourseGrade
	err := r.DB.Where("student_id = ? AND course_id = ? AND period = ?", studentID, courseID, period).First(&grade).Error
	if err == gorm.ErrRecordNotFound {
		grade = model.CourseGrade{StudentID: studentID, CourseID: courseID, Period: period}
		if err := r.DB.Create(&grade).Error; err != nil {
			return nil, err
		}
		return &grade, nil
	}
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *GradeRepository) SaveFinalGrade(gradeID uint, finalGrade *float64) error {
	return r.DB.Model(&model.CourseGrade{}).Where("id = ?", gradeID).Update("final_grade", finalGrade).Error
}

func (r *GradeRepository) CreateComponent(component *model.GradeComponent) error {
	return r.DB.Create(component).Error
}

func (r *GradeRepository) UpdateComponent(component *model.GradeComponent) error {
	return r.DB.Save(component).Error
}

func (r *GradeRepository) DeleteComponent(id uint) error {
	return r.DB.Delete(&model.GradeComponent{}, id).Error
}

func (r *GradeRepository) FindComponentByID(id uint) (*model.GradeComponent, error) {
	var component model.GradeComponent
	err := r.DB.First(&component, id).Error
	return &component, err
}

// ListComponents returns every component the student has recorded for the
// course, in period order.
func (r *GradeRepository) ListComponents(studentID, courseID uint) ([]model.GradeComponent, error) {
	var components []model.GradeComponent
	err := r.DB.
		Joins("JOIN course_grades ON course_grades.id = grade_components.course_grade_id").
		Where("course_grades.student_id = ? AND course_grades.course_id = ?", studentID, courseID).
		Order("FIELD(grade_components.period, 'prelim', 'midterm', 'semi_final', 'final'), grade_components.component_type, grade_components.date_recorded").
		Find(&components).Error
	return components, err
}

func (r *GradeRepository) ListComponentsForPeriod(studentID, courseID uint, period model.GradePeriod) ([]model.GradeComponent, error) {
	var components []model.GradeComponent
	err := r.DB.
		Joins("JOIN course_grades ON course_grades.id = grade_components.course_grade_id").
		Where("course_grades.student_id = ? AND course_grades.course_id = ? AND grade_components.period = ?", studentID, courseID, period).
		Order("grade_components.component_type, grade_components.date_recorded").
		Find(&components).Error
	return components, err
}

func (r *GradeRepository) HeaderForComponent(componentID uint) (*model.CourseGrade, error) {
	var grade model.CourseGrade
	err := r.DB.
		Joins("JOIN grade_components ON grade_components.course_grade_id = course_grades.id").
		Where("grade_components.id = ?", componentID).
		First(&grade).Error
	return &grade, err
}
