package model

type CourseLevel string

const (
	LevelFreshman  CourseLevel = "freshman"
	LevelSophomore CourseLevel = "sophomore"
	LevelJunior    CourseLevel = "junior"
	LevelSenior    CourseLevel = "senior"
	LevelGraduate  CourseLevel = "graduate"
)

// Rank maps a course level onto the 1..5 scale used by the recommendation
// scorer. Unknown levels rank 0 and never match a student level.
func (l CourseLevel) Rank() int {
	switch l {
	case LevelFreshman:
		return 1
	case LevelSophomore:
		return 2
	case LevelJunior:
		return 3
	case LevelSenior:
		return 4
	case LevelGraduate:
		return 5
	}
	return 0
}

type Course struct {
	BaseModel
	CourseCode    string      `gorm:"size:20;uniqueIndex;not null" json:"courseCode"`
	CourseName    string      `gorm:"size:255;not null" json:"courseName"`
	Department    string      `gorm:"size:100" json:"department"`
	Level         CourseLevel `gorm:"type:varchar(20);default:'freshman'" json:"level"`
	Credits       int         `gorm:"default:3" json:"credits"`
	Prerequisites StringList  `gorm:"type:json" json:"prerequisites"`
	Description   string      `gorm:"type:text" json:"description"`
	IsActive      bool        `gorm:"default:true" json:"isActive"`
}

func (Course) TableName() string {
	return "courses"
}

// ProfessorCourseAssignment links a professor to a course section so that
// enrollment can verify who handles the section being joined.
type ProfessorCourseAssignment struct {
	BaseModel
	ProfessorID uint   `gorm:"uniqueIndex:idx_prof_course_section;not null" json:"professorId"`
	CourseID    uint   `gorm:"uniqueIndex:idx_prof_course_section;not null" json:"courseId"`
	Section     string `gorm:"size:20;uniqueIndex:idx_prof_course_section" json:"section"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (ProfessorCourseAssignment) TableName() string {
	return "professor_course_assignments"
}
