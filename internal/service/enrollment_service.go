package service

import (
	"context"
	"fmt"
	"time"

	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	StudentRepo    *repository.StudentRepository
	Recommendation *RecommendationService
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	studentRepo *repository.StudentRepository,
	recommendation *RecommendationService,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		StudentRepo:    studentRepo,
		Recommendation: recommendation,
	}
}

type JoinCourseInput struct {
	CourseCode  string `json:"courseCode" binding:"required"`
	Section     string `json:"section"`
	Semester    string `json:"semester"`
	SchoolYear  string `json:"schoolYear"`
	ProfessorID uint   `json:"professorId"`
}

// CurrentSchoolYear follows the June boundary: from June onward the school
// year is Y-(Y+1), before that (Y-1)-Y.
func CurrentSchoolYear(now time.Time) string {
	year := now.Year()
	if now.Month() >= time.June {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// Join enrolls a student into a course section. A dropped or failed
// enrollment for the same course is reactivated instead of duplicated.
func (s *EnrollmentService) Join(ctx context.Context, studentID uint, input JoinCourseInput) (*model.CourseEnrollment, error) {
	course, err := s.CourseRepo.FindByCode(input.CourseCode)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if !course.IsActive {
		return nil, util.ErrCourseInactive
	}

	section := input.Section
	if section == "" {
		if profile, err := s.StudentRepo.GetProfile(studentID); err == nil {
			section = profile.CurrentSection
		}
	}

	// When professors are assigned to this section, the chosen professor
	// must be one of them.
	assignments, err := s.CourseRepo.ListAssignments(course.ID, section)
	if err != nil {
		return nil, err
	}
	if len(assignments) > 0 {
		valid := false
		for _, a := range assignments {
			if a.ProfessorID == input.ProfessorID {
				valid = true
				break
			}
		}
		if !valid {
			return nil, util.ErrPermissionDenied
		}
	}

	semester := input.Semester
	if semester == "" {
		semester = "Current"
	}
	schoolYear := input.SchoolYear
	if schoolYear == "" {
		schoolYear = CurrentSchoolYear(time.Now())
	}

	existing, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, course.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if existing != nil {
		if existing.Status == model.EnrollmentEnrolled || existing.Status == model.EnrollmentCompleted {
			return nil, util.ErrAlreadyEnrolled
		}
		existing.Status = model.EnrollmentEnrolled
		existing.Section = section
		existing.Semester = semester
		existing.SchoolYear = schoolYear
		if err := s.EnrollmentRepo.Update(existing); err != nil {
			return nil, err
		}
		s.Recommendation.InvalidateCache(ctx, studentID)
		return existing, nil
	}

	enrollment := &model.CourseEnrollment{
		StudentID:  studentID,
		CourseID:   course.ID,
		Status:     model.EnrollmentEnrolled,
		Section:    section,
		Semester:   semester,
		SchoolYear: schoolYear,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	s.Recommendation.InvalidateCache(ctx, studentID)
	return enrollment, nil
}

// UpdateStatus moves an enrollment to completed, dropped or failed.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, studentID, courseID uint, status model.EnrollmentStatus) (*model.CourseEnrollment, error) {
	switch status {
	case model.EnrollmentCompleted, model.EnrollmentDropped, model.EnrollmentFailed, model.EnrollmentEnrolled:
	default:
		return nil, fmt.Errorf("invalid enrollment status: %s", status)
	}

	enrollment, err := s.EnrollmentRepo.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		return nil, util.ErrEnrollmentNotFound
	}

	enrollment.Status = status
	if err := s.EnrollmentRepo.Update(enrollment); err != nil {
		return nil, err
	}

	s.Recommendation.InvalidateCache(ctx, studentID)
	return enrollment, nil
}

func (s *EnrollmentService) ListForStudent(studentID uint) ([]model.CourseEnrollment, error) {
	return s.EnrollmentRepo.ListByStudent(studentID)
}
