package model

type UserRole string

const (
	Student   UserRole = "student"
	Professor UserRole = "professor"
	Admin     UserRole = "admin"
)

type User struct {
	BaseModel
	FirstName string   `gorm:"size:100;not null" json:"firstName"`
	LastName  string   `gorm:"size:100;not null" json:"lastName"`
	Email     string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string   `gorm:"size:255;not null" json:"-"`
	Role      UserRole `gorm:"type:varchar(20);default:'student'" json:"role"`
	IsActive  bool     `gorm:"default:true" json:"isActive"`
}

func (User) TableName() string {
	return "users"
}

type AcademicStanding string

const (
	StandingGood      AcademicStanding = "good"
	StandingProbation AcademicStanding = "probation"
	StandingDismissal AcademicStanding = "dismissal"
)

// StudentProfile carries the academic signals the recommendation scorer reads.
// Students are deactivated via User.IsActive, never deleted.
type StudentProfile struct {
	BaseModel
	UserID           uint             `gorm:"uniqueIndex;not null" json:"userId"`
	Major            string           `gorm:"size:100" json:"major"`
	GPA              float64          `gorm:"type:decimal(3,2);default:0" json:"gpa"`
	CreditsCompleted int              `gorm:"default:0" json:"creditsCompleted"`
	AcademicStanding AcademicStanding `gorm:"type:varchar(20);default:'good'" json:"academicStanding"`
	CurrentSection   string           `gorm:"size:20" json:"currentSection"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
