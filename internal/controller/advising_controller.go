package controller

import (
	"errors"

	"advising_backend/internal/model"
	"advising_backend/internal/service"
	"advising_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdvisingController struct {
	AdvisingService *service.AdvisingService
}

func NewAdvisingController(advisingService *service.AdvisingService) *AdvisingController {
	return &AdvisingController{AdvisingService: advisingService}
}

func (c *AdvisingController) Schedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ScheduleSessionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.AdvisingService.Schedule(claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotSchedulable) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

type CompleteSessionRequest struct {
	Notes string `json:"notes"`
}

func (c *AdvisingController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	sessionID := util.MustParseUint(ctx.Param("id"))

	var req CompleteSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.AdvisingService.Complete(sessionID, claims.UserID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}

func (c *AdvisingController) Cancel(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	sessionID := util.MustParseUint(ctx.Param("id"))

	session, err := c.AdvisingService.Cancel(sessionID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}

// MySessions lists the caller's advising sessions, from either side of the
// table.
func (c *AdvisingController) MySessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if claims.Role == model.Student {
		sessions, err := c.AdvisingService.ListForStudent(claims.UserID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, sessions)
		return
	}

	status := model.SessionStatus(ctx.Query("status"))
	sessions, err := c.AdvisingService.ListForProfessor(claims.UserID, status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}
