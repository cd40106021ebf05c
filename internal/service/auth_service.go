package service

import (
	"advising_backend/internal/config"
	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	StudentRepo *repository.StudentRepository
	Config      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, studentRepo *repository.StudentRepository, cfg *config.Config) *AuthService {
	return &AuthService{UserRepo: userRepo, StudentRepo: studentRepo, Config: cfg}
}

type RegisterInput struct {
	FirstName string         `json:"firstName" binding:"required"`
	LastName  string         `json:"lastName" binding:"required"`
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required,min=8"`
	Role      model.UserRole `json:"role"`
	Major     string         `json:"major"`
	Section   string         `json:"section"`
}

// Register creates a user and, for students, the profile the advising core
// reads its academic signals from.
func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	if _, err := s.UserRepo.FindByEmail(input.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.Student
	}

	user := &model.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  string(hashed),
		Role:      role,
		IsActive:  true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	if role == model.Student {
		profile := &model.StudentProfile{
			UserID:           user.ID,
			Major:            input.Major,
			AcademicStanding: model.StandingGood,
			CurrentSection:   input.Section,
		}
		if err := s.StudentRepo.CreateProfile(profile); err != nil {
			return nil, err
		}
	}

	return user, nil
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Login(input LoginInput) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(input.Email)
	if err != nil {
		return "", nil, util.ErrUserNotFound
	}
	if !user.IsActive {
		return "", nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return "", nil, util.ErrPermissionDenied
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
