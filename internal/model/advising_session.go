package model

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

type AdvisingSession struct {
	BaseModel
	StudentID   uint          `gorm:"index;not null" json:"studentId"`
	ProfessorID uint          `gorm:"index;not null" json:"professorId"`
	SessionDate time.Time     `gorm:"not null" json:"sessionDate"`
	Status      SessionStatus `gorm:"type:varchar(20);default:'scheduled'" json:"status"`
	Notes       string        `gorm:"type:text" json:"notes"`
}

func (AdvisingSession) TableName() string {
	return "advising_sessions"
}
