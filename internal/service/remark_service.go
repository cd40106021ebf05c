package service

import (
	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/internal/util"
)

type RemarkService struct {
	RemarkRepo *repository.RemarkRepository
}

func NewRemarkService(remarkRepo *repository.RemarkRepository) *RemarkService {
	return &RemarkService{RemarkRepo: remarkRepo}
}

type RemarkInput struct {
	StudentID      uint             `json:"studentId" binding:"required"`
	CourseID       *uint            `json:"courseId"`
	RemarkText     string           `json:"remarkText" binding:"required"`
	RemarkType     model.RemarkType `json:"remarkType"`
	ActionRequired bool             `json:"actionRequired"`
}

func (s *RemarkService) Create(professorID uint, input RemarkInput) (*model.CourseRemark, error) {
	remarkType := input.RemarkType
	if remarkType == "" {
		remarkType = model.RemarkGeneral
	}

	remark := &model.CourseRemark{
		StudentID:      input.StudentID,
		ProfessorID:    professorID,
		CourseID:       input.CourseID,
		RemarkText:     input.RemarkText,
		RemarkType:     remarkType,
		ActionRequired: input.ActionRequired,
	}
	if err := s.RemarkRepo.Create(remark); err != nil {
		return nil, err
	}
	return remark, nil
}

func (s *RemarkService) Update(remarkID, professorID uint, input RemarkInput) (*model.CourseRemark, error) {
	remark, err := s.RemarkRepo.FindByID(remarkID)
	if err != nil {
		return nil, err
	}
	if remark.ProfessorID != professorID {
		return nil, util.ErrPermissionDenied
	}

	remark.RemarkText = input.RemarkText
	if input.RemarkType != "" {
		remark.RemarkType = input.RemarkType
	}
	remark.ActionRequired = input.ActionRequired
	if err := s.RemarkRepo.Update(remark); err != nil {
		return nil, err
	}
	return remark, nil
}

func (s *RemarkService) Delete(remarkID, professorID uint) error {
	remark, err := s.RemarkRepo.FindByID(remarkID)
	if err != nil {
		return err
	}
	if remark.ProfessorID != professorID {
		return util.ErrPermissionDenied
	}
	return s.RemarkRepo.Delete(remarkID)
}

func (s *RemarkService) ListForStudent(studentID uint, courseID *uint) ([]model.CourseRemark, error) {
	return s.RemarkRepo.ListByStudent(studentID, courseID)
}
