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

type InsightController struct {
	InsightService  *service.InsightService
	ResourceService *service.ResourceService
	GradeService    *service.GradeService
	SyllabusRepo    *repository.SyllabusRepository
	InsightRepo     *repository.InsightRepository
}

func NewInsightController(
	insightService *service.InsightService,
	resourceService *service.ResourceService,
	gradeService *service.GradeService,
	syllabusRepo *repository.SyllabusRepository,
	insightRepo *repository.InsightRepository,
) *InsightController {
	return &InsightController{
		InsightService:  insightService,
		ResourceService: resourceService,
		GradeService:    gradeService,
		SyllabusRepo:    syllabusRepo,
		InsightRepo:     insightRepo,
	}
}

func insightStudentID(ctx *gin.Context) uint {
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

// Analyze runs the full insight pipeline for a (student, course) and returns
// the report. The reply always carries a usable report; its source field says
// whether a provider or the rule-based fallback produced it.
func (c *InsightController) Analyze(ctx *gin.Context) {
	studentID := insightStudentID(ctx)
	if studentID == 0 {
		util.Unauthorized(ctx)
		return
	}
	courseID := util.MustParseUint(ctx.Param("courseId"))

	report, err := c.InsightService.AnalyzeStudentPerformance(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, report)
}

// ListInsights returns the persisted insight history, newest first.
func (c *InsightController) ListInsights(ctx *gin.Context) {
	studentID := insightStudentID(ctx)
	if studentID == 0 {
		util.Unauthorized(ctx)
		return
	}

	var courseID *uint
	if param := ctx.Query("course_id"); param != "" {
		id := util.MustParseUint(param)
		courseID = &id
	}
	limit := 20
	if param := ctx.Query("limit"); param != "" {
		if n := int(util.MustParseUint(param)); n > 0 {
			limit = n
		}
	}

	insights, err := c.InsightService.ListInsights(studentID, courseID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, insights)
}

// RiskAlerts lists recent high-risk alerts across students, for professor and
// admin dashboards.
func (c *InsightController) RiskAlerts(ctx *gin.Context) {
	limit := 50
	if param := ctx.Query("limit"); param != "" {
		if n := int(util.MustParseUint(param)); n > 0 {
			limit = n
		}
	}

	alerts, err := c.InsightRepo.ListRiskAlerts(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, alerts)
}

// SuggestResources derives the student's weak syllabus topics for a course and
// returns learning resources for them. The reply is never empty: with no weak
// topics or a failed provider call the curated fallback list is used.
func (c *InsightController) SuggestResources(ctx *gin.Context) {
	studentID := insightStudentID(ctx)
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

	var topics model.JSONMap
	if syllabus, err := c.SyllabusRepo.Latest(courseID); err == nil {
		topics = syllabus.Topics
	}

	weakTopics := service.WeakTopics(summary, topics)
	resources := c.ResourceService.SuggestResources(ctx.Request.Context(), weakTopics, summary.OverallLevel())

	util.Success(ctx, gin.H{
		"weakTopics": weakTopics,
		"resources":  resources,
	})
}
