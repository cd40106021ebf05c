package controller

import (
	"errors"

	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/internal/service"
	"advising_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseController struct {
	CourseRepo      *repository.CourseRepository
	SyllabusService *service.SyllabusService
}

func NewCourseController(courseRepo *repository.CourseRepository, syllabusService *service.SyllabusService) *CourseController {
	return &CourseController{CourseRepo: courseRepo, SyllabusService: syllabusService}
}

func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseRepo.ListActive()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse returns one course by code, with its latest syllabus when present.
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseRepo.FindByCode(ctx.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	payload := gin.H{"course": course}
	if syllabus, err := c.SyllabusService.Latest(course.ID); err == nil {
		payload["syllabus"] = syllabus
	}

	util.Success(ctx, payload)
}

type CreateCourseRequest struct {
	CourseCode    string            `json:"courseCode" binding:"required"`
	CourseName    string            `json:"courseName" binding:"required"`
	Department    string            `json:"department"`
	Level         model.CourseLevel `json:"level" binding:"required"`
	Credits       int               `json:"credits" binding:"required"`
	Prerequisites []string          `json:"prerequisites"`
	Description   string            `json:"description"`
}

func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Level.Rank() == 0 {
		util.BadRequest(ctx, "invalid course level")
		return
	}

	course := &model.Course{
		CourseCode:    req.CourseCode,
		CourseName:    req.CourseName,
		Department:    req.Department,
		Level:         req.Level,
		Credits:       req.Credits,
		Prerequisites: req.Prerequisites,
		Description:   req.Description,
		IsActive:      true,
	}
	if err := c.CourseRepo.Create(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

type AssignProfessorRequest struct {
	ProfessorID uint   `json:"professorId" binding:"required"`
	Section     string `json:"section" binding:"required"`
}

func (c *CourseController) AssignProfessor(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	if _, err := c.CourseRepo.FindByID(courseID); err != nil {
		util.NotFound(ctx)
		return
	}

	var req AssignProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment := &model.ProfessorCourseAssignment{
		ProfessorID: req.ProfessorID,
		CourseID:    courseID,
		Section:     req.Section,
	}
	if err := c.CourseRepo.CreateAssignment(assignment); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, assignment)
}

// MyCourses lists the courses assigned to the authenticated professor.
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assignments, err := c.CourseRepo.ListCoursesForProfessor(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}
