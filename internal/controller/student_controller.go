package controller

import (
	"errors"

	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StudentController struct {
	UserRepo    *repository.UserRepository
	StudentRepo *repository.StudentRepository
}

func NewStudentController(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository) *StudentController {
	return &StudentController{UserRepo: userRepo, StudentRepo: studentRepo}
}

// Me returns the authenticated user plus, for students, their profile.
func (c *StudentController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	payload := gin.H{"user": user}
	if user.Role == model.Student {
		if profile, err := c.StudentRepo.GetProfile(user.ID); err == nil {
			payload["profile"] = profile
		}
	}

	util.Success(ctx, payload)
}

type UpdateProfileRequest struct {
	Major            string                 `json:"major"`
	GPA              *float64               `json:"gpa"`
	CreditsCompleted *int                   `json:"creditsCompleted"`
	AcademicStanding model.AcademicStanding `json:"academicStanding"`
	CurrentSection   string                 `json:"currentSection"`
}

// UpdateProfile updates a student's academic signals. Students edit their own
// profile; professors and admins edit any student via the path parameter.
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID := claims.UserID
	if param := ctx.Param("id"); param != "" {
		requested := util.MustParseUint(param)
		if requested != studentID && claims.Role == model.Student {
			util.Forbidden(ctx)
			return
		}
		studentID = requested
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.StudentRepo.GetProfile(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if req.Major != "" {
		profile.Major = req.Major
	}
	if req.GPA != nil {
		if *req.GPA < 0 || *req.GPA > 4.0 {
			util.BadRequest(ctx, "gpa must be between 0 and 4.0")
			return
		}
		profile.GPA = *req.GPA
	}
	if req.CreditsCompleted != nil {
		if *req.CreditsCompleted < 0 {
			util.BadRequest(ctx, "creditsCompleted cannot be negative")
			return
		}
		profile.CreditsCompleted = *req.CreditsCompleted
	}
	if req.AcademicStanding != "" {
		profile.AcademicStanding = req.AcademicStanding
	}
	if req.CurrentSection != "" {
		profile.CurrentSection = req.CurrentSection
	}

	if err := c.StudentRepo.UpdateProfile(profile); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// ListStudents returns all student accounts, for professor and admin views.
func (c *StudentController) ListStudents(ctx *gin.Context) {
	users, err := c.UserRepo.ListByRole(model.Student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}
