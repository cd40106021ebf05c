package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type GradePeriod string

const (
	PeriodPrelim    GradePeriod = "prelim"
	PeriodMidterm   GradePeriod = "midterm"
	PeriodSemiFinal GradePeriod = "semi_final"
	PeriodFinal     GradePeriod = "final"
)

// Periods lists the four grading checkpoints in term order.
func Periods() []GradePeriod {
	return []GradePeriod{PeriodPrelim, PeriodMidterm, PeriodSemiFinal, PeriodFinal}
}

// CourseGrade is the per-period grade header a student's components hang off.
// FinalGrade is nil until at least one component exists for the period.
type CourseGrade struct {
	BaseModel
	StudentID  uint        `gorm:"uniqueIndex:idx_student_course_period;not null" json:"studentId"`
	CourseID   uint        `gorm:"uniqueIndex:idx_student_course_period;not null" json:"courseId"`
	Period     GradePeriod `gorm:"type:varchar(20);uniqueIndex:idx_student_course_period" json:"period"`
	FinalGrade *float64    `gorm:"type:decimal(5,2)" json:"finalGrade"`

	Components []GradeComponent `gorm:"foreignKey:CourseGradeID" json:"components,omitempty"`
}

func (CourseGrade) TableName() string {
	return "course_grades"
}

// GradeComponent is one gradable item (quiz, exam, activity). Invariant
// 0 <= Score <= MaxScore is enforced when the component is written.
type GradeComponent struct {
	BaseModel
	CourseGradeID uint        `gorm:"index;not null" json:"courseGradeId"`
	Period        GradePeriod `gorm:"type:varchar(20);index" json:"period"`
	ComponentType string      `gorm:"size:50;not null" json:"componentType"`
	Name          string      `gorm:"size:255" json:"name"`
	Score         float64     `gorm:"type:decimal(7,2);not null" json:"score"`
	MaxScore      float64     `gorm:"type:decimal(7,2);not null" json:"maxScore"`
	Weight        float64     `gorm:"type:decimal(5,2);default:0" json:"weight"`
	DateRecorded  time.Time   `json:"dateRecorded"`
}

func (GradeComponent) TableName() string {
	return "grade_components"
}

// GradingBreakdown maps period -> component type -> weight percentage.
// Weights per period must sum to 100 at upload time; the aggregator does not
// re-validate.
type GradingBreakdown map[GradePeriod]map[string]float64

func (b GradingBreakdown) Value() (driver.Value, error) {
	if b == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(b)
	return string(raw), err
}

func (b *GradingBreakdown) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	}
	return errors.New("unsupported type for GradingBreakdown")
}

// CourseSyllabus holds the uploaded syllabus file plus the structured data
// extracted from it: weekly topics and the per-period grading breakdown.
type CourseSyllabus struct {
	BaseModel
	CourseID    uint             `gorm:"index;not null" json:"courseId"`
	ProfessorID uint             `gorm:"index" json:"professorId"`
	SchoolYear  string           `gorm:"size:20" json:"schoolYear"`
	Semester    string           `gorm:"size:20" json:"semester"`
	FilePath    string           `gorm:"size:500" json:"filePath"`
	Topics      JSONMap          `gorm:"type:json" json:"topics"`
	Breakdown   GradingBreakdown `gorm:"column:grading_breakdown;type:json" json:"gradingBreakdown"`
	UploadedAt  time.Time        `json:"uploadedAt"`
}

func (CourseSyllabus) TableName() string {
	return "course_syllabi"
}
