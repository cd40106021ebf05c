package controller

import (
	"encoding/json"
	"errors"

	"advising_backend/internal/model"
	"advising_backend/internal/service"
	"advising_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SyllabusController struct {
	SyllabusService *service.SyllabusService
}

func NewSyllabusController(syllabusService *service.SyllabusService) *SyllabusController {
	return &SyllabusController{SyllabusService: syllabusService}
}

// Upload stores a syllabus file for a course together with its grading
// breakdown and weekly topics. Breakdown and topics arrive as JSON strings in
// the multipart form alongside the file.
func (c *SyllabusController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID := util.MustParseUint(ctx.Param("courseId"))

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "syllabus file is required")
		return
	}

	var breakdown model.GradingBreakdown
	if raw := ctx.PostForm("breakdown"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &breakdown); err != nil {
			util.BadRequest(ctx, "breakdown must be valid JSON")
			return
		}
	}

	var topics model.JSONMap
	if raw := ctx.PostForm("topics"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &topics); err != nil {
			util.BadRequest(ctx, "topics must be valid JSON")
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	input := service.SyllabusUploadInput{
		CourseID:    courseID,
		ProfessorID: claims.UserID,
		SchoolYear:  ctx.PostForm("schoolYear"),
		Semester:    ctx.PostForm("semester"),
		Filename:    fileHeader.Filename,
		Breakdown:   breakdown,
		Topics:      topics,
	}

	contentType := fileHeader.Header.Get("Content-Type")
	syllabus, err := c.SyllabusService.Upload(ctx.Request.Context(), input, file, fileHeader.Size, contentType)
	if err != nil {
		if errors.Is(err, util.ErrBreakdownWeights) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, syllabus)
}

// Latest returns the most recent syllabus uploaded for a course.
func (c *SyllabusController) Latest(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))

	syllabus, err := c.SyllabusService.Latest(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, syllabus)
}

type AnalyzeSyllabusRequest struct {
	SyllabusText string `json:"syllabusText" binding:"required"`
}

// Analyze extracts weekly topics and the assessment breakdown from raw
// syllabus text and persists them onto the syllabus row.
func (c *SyllabusController) Analyze(ctx *gin.Context) {
	syllabusID := util.MustParseUint(ctx.Param("id"))

	var req AnalyzeSyllabusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topics, breakdown, err := c.SyllabusService.AnalyzeSyllabusText(ctx.Request.Context(), syllabusID, req.SyllabusText)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"topics":    topics,
		"breakdown": breakdown,
	})
}
