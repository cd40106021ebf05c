package model

type RemarkType string

const (
	RemarkGeneral     RemarkType = "general"
	RemarkPerformance RemarkType = "performance"
	RemarkBehavior    RemarkType = "behavior"
	RemarkAttendance  RemarkType = "attendance"
)

// CourseRemark is a professor's free-text note about a student, optionally
// tied to a course. The latest five feed the insight prompt.
type CourseRemark struct {
	BaseModel
	StudentID      uint       `gorm:"index;not null" json:"studentId"`
	ProfessorID    uint       `gorm:"index;not null" json:"professorId"`
	CourseID       *uint      `gorm:"index" json:"courseId"`
	RemarkText     string     `gorm:"type:text;not null" json:"remarkText"`
	RemarkType     RemarkType `gorm:"type:varchar(20);default:'general'" json:"remarkType"`
	ActionRequired bool       `gorm:"default:false" json:"actionRequired"`
}

func (CourseRemark) TableName() string {
	return "course_specific_remarks"
}
