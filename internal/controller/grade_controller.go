package controller

import (
	"errors"

	"advising_backend/internal/model"
	"advising_backend/internal/service"
	"advising_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

// studentIDForGrades resolves which student's grades a request targets.
// Students always get their own; professors and admins pass ?student_id.
func studentIDForGrades(ctx *gin.Context) uint {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return 0
	}
	if claims.Role != model.Student {
		if param := ctx.Query("student_id"); param != "" {
			return util.MustParseUint(param)
		}
	}
	return claims.UserID
}

// PeriodGrades returns the computed 0-100 grade for each grading period of a
// course. Periods without recorded components come back as null.
func (c *GradeController) PeriodGrades(ctx *gin.Context) {
	studentID := studentIDForGrades(ctx)
	if studentID == 0 {
		util.Unauthorized(ctx)
		return
	}
	courseID := util.MustParseUint(ctx.Param("courseId"))

	grades, err := c.GradeService.PeriodGrades(studentID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}

// Summary returns the per-period score/level buckets and the overall level.
func (c *GradeController) Summary(ctx *gin.Context) {
	studentID := studentIDForGrades(ctx)
	if studentID == 0 {
		util.Unauthorized(ctx)
		return
	}
	courseID := util.MustParseUint(ctx.Param("courseId"))

	summary, err := c.GradeService.Summary(studentID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"periods":      summary,
		"averageScore": summary.AverageScore(),
		"overallLevel": summary.OverallLevel(),
	})
}

// AddComponent records a gradable item for a student in a course. Professors
// record grades; the student is named in the path.
func (c *GradeController) AddComponent(ctx *gin.Context) {
	studentID := util.MustParseUint(ctx.Param("studentId"))
	courseID := util.MustParseUint(ctx.Param("courseId"))

	var input service.GradeComponentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	component, err := c.GradeService.AddComponent(studentID, courseID, input)
	if err != nil {
		if errors.Is(err, util.ErrInvalidScore) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, component)
}

func (c *GradeController) UpdateComponent(ctx *gin.Context) {
	componentID := util.MustParseUint(ctx.Param("id"))

	var input service.GradeComponentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	component, err := c.GradeService.UpdateComponent(componentID, input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidScore):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, component)
}

func (c *GradeController) DeleteComponent(ctx *gin.Context) {
	componentID := util.MustParseUint(ctx.Param("id"))

	if err := c.GradeService.DeleteComponent(componentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": componentID})
}
