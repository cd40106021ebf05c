package service

import (
	"time"

	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/internal/util"
)

type AdvisingService struct {
	AdvisingRepo *repository.AdvisingRepository
}

func NewAdvisingService(advisingRepo *repository.AdvisingRepository) *AdvisingService {
	return &AdvisingService{AdvisingRepo: advisingRepo}
}

type ScheduleSessionInput struct {
	ProfessorID uint      `json:"professorId" binding:"required"`
	SessionDate time.Time `json:"sessionDate" binding:"required"`
	Notes       string    `json:"notes"`
}

func (s *AdvisingService) Schedule(studentID uint, input ScheduleSessionInput) (*model.AdvisingSession, error) {
	if !input.SessionDate.After(time.Now()) {
		return nil, util.ErrSessionNotSchedulable
	}

	session := &model.AdvisingSession{
		StudentID:   studentID,
		ProfessorID: input.ProfessorID,
		SessionDate: input.SessionDate,
		Status:      model.SessionScheduled,
		Notes:       input.Notes,
	}
	if err := s.AdvisingRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete marks a scheduled session done; only the advising professor may
// close it, attaching their session notes.
func (s *AdvisingService) Complete(sessionID, professorID uint, notes string) (*model.AdvisingSession, error) {
	session, err := s.AdvisingRepo.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.ProfessorID != professorID {
		return nil, util.ErrPermissionDenied
	}

	session.Status = model.SessionCompleted
	if notes != "" {
		session.Notes = notes
	}
	if err := s.AdvisingRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AdvisingService) Cancel(sessionID, userID uint) (*model.AdvisingSession, error) {
	session, err := s.AdvisingRepo.FindByID(sessionID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	if session.StudentID != userID && session.ProfessorID != userID {
		return nil, util.ErrPermissionDenied
	}

	session.Status = model.SessionCancelled
	if err := s.AdvisingRepo.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AdvisingService) ListForStudent(studentID uint) ([]model.AdvisingSession, error) {
	return s.AdvisingRepo.ListByStudent(studentID)
}

func (s *AdvisingService) ListForProfessor(professorID uint, status model.SessionStatus) ([]model.AdvisingSession, error) {
	return s.AdvisingRepo.ListByProfessor(professorID, status)
}
