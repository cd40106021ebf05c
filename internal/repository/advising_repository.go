package repository

import (
	"advising_backend/internal/model"

	"gorm.io/gorm"
)

type AdvisingRepository struct {
	DB *gorm.DB
}

func NewAdvisingRepository(db *gorm.DB) *AdvisingRepository {
	return &AdvisingRepository{DB: db}
}

func (r *AdvisingRepository) Create(session *model.AdvisingSession) error {
	return r.DB.Create(session).Error
}

func (r *AdvisingRepository) Update(session *model.AdvisingSession) error {
	return r.DB.Save(session).Error
}

func (r *AdvisingRepository) FindByID(id uint) (*model.AdvisingSession, error) {
	var session model.AdvisingSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *AdvisingRepository) ListByStudent(studentID uint) ([]model.AdvisingSession, error) {
	var sessions []model.AdvisingSession
	err := r.DB.Where("student_id = ?", studentID).Order("session_date desc").Find(&sessions).Error
	return sessions, err
}

func (r *AdvisingRepository) ListByProfessor(professorID uint, status model.SessionStatus) ([]model.AdvisingSession, error) {
	var sessions []model.AdvisingSession
	query := r.DB.Where("professor_id = ?", professorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("session_date").Find(&sessions).Error
	return sessions, err
}
