package controller

import (
	"errors"

	"advising_backend/internal/model"
	"advising_backend/internal/service"
	"advising_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RemarkController struct {
	RemarkService *service.RemarkService
}

func NewRemarkController(remarkService *service.RemarkService) *RemarkController {
	return &RemarkController{RemarkService: remarkService}
}

func (c *RemarkController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.RemarkInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	remark, err := c.RemarkService.Create(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, remark)
}

func (c *RemarkController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	remarkID := util.MustParseUint(ctx.Param("id"))

	var input service.RemarkInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	remark, err := c.RemarkService.Update(remarkID, claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, remark)
}

func (c *RemarkController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	remarkID := util.MustParseUint(ctx.Param("id"))

	if err := c.RemarkService.Delete(remarkID, claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": remarkID})
}

// ListForStudent returns remarks about a student, optionally filtered to one
// course. Students read their own remarks; professors pass the student id.
func (c *RemarkController) ListForStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID := claims.UserID
	if claims.Role != model.Student {
		if param := ctx.Query("student_id"); param != "" {
			studentID = util.MustParseUint(param)
		}
	}

	var courseID *uint
	if param := ctx.Query("course_id"); param != "" {
		id := util.MustParseUint(param)
		courseID = &id
	}

	remarks, err := c.RemarkService.ListForStudent(studentID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, remarks)
}
