package model

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
	EnrollmentFailed    EnrollmentStatus = "failed"
)

// CourseEnrollment is unique per (student, course); joining a course the
// student dropped before reactivates the existing row instead of duplicating.
type CourseEnrollment struct {
	BaseModel
	StudentID  uint             `gorm:"uniqueIndex:idx_student_course;not null" json:"studentId"`
	CourseID   uint             `gorm:"uniqueIndex:idx_student_course;not null" json:"courseId"`
	Status     EnrollmentStatus `gorm:"type:varchar(20);default:'enrolled'" json:"status"`
	Section    string           `gorm:"size:20" json:"section"`
	Semester   string           `gorm:"size:20" json:"semester"`
	SchoolYear string           `gorm:"size:20" json:"schoolYear"`

	Course Course `gorm:"foreignKey:CourseID" json:"course"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
