package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	maxRecommendations     = 10
	degreeCreditBudget     = 120
	recommendationCacheTTL = 10 * time.Minute
	recommendationCachePfx = "recommendations:"
	strongGPAThreshold     = 3.5
)

// ScoredCourse is one ranked recommendation with a human-readable reason.
type ScoredCourse struct {
	Course model.Course `json:"course"`
	Score  int          `json:"score"`
	Reason string       `json:"reason"`
}

type RecommendationService struct {
	StudentRepo    *repository.StudentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	rdb            *redis.Client
}

func NewRecommendationService(
	studentRepo *repository.StudentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	rdb *redis.Client,
) *RecommendationService {
	return &RecommendationService{
		StudentRepo:    studentRepo,
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		rdb:            rdb,
	}
}

// StudentLevel derives the student's year from completed credits: 30 credits
// per level, rounded up, clamped to the freshman..senior range.
func StudentLevel(creditsCompleted int) int {
	level := int(math.Ceil(float64(creditsCompleted) / 30))
	if level < 1 {
		level = 1
	}
	if level > 4 {
		level = 4
	}
	return level
}

// ScoreCourses ranks catalog courses for a student. Courses with unmet
// prerequisites are excluded outright; the rest accumulate independent
// signal scores and are returned in descending order, catalog order
// preserved on ties, capped at ten.
func ScoreCourses(profile *model.StudentProfile, completed []string, catalog []model.Course) []ScoredCourse {
	completedSet := make(map[string]bool, len(completed))
	for _, code := range completed {
		completedSet[strings.ToUpper(code)] = true
	}

	studentLevel := StudentLevel(profile.CreditsCompleted)

	var scored []ScoredCourse
	for _, course := range catalog {
		if completedSet[strings.ToUpper(course.CourseCode)] {
			continue
		}

		prerequisitesMet := true
		for _, prereq := range course.Prerequisites {
			if !completedSet[strings.ToUpper(prereq)] {
				prerequisitesMet = false
				break
			}
		}
		if !prerequisitesMet {
			continue
		}

		score := 0
		reasons := []string{"All prerequisites completed"}

		courseLevel := course.Level.Rank()
		if courseLevel == studentLevel || courseLevel == studentLevel+1 {
			score += 50
			reasons = append(reasons, "Appropriate for your current level")
		}

		if profile.GPA >= strongGPAThreshold && courseLevel >= model.LevelSenior.Rank() {
			score += 30
			reasons = append(reasons, "Your strong GPA qualifies you for advanced courses")
		}

		if course.Department == profile.Major {
			score += 40
			reasons = append(reasons, "Matches your major")
		}

		if degreeCreditBudget-profile.CreditsCompleted >= course.Credits {
			score += 20
			reasons = append(reasons, "Fits your remaining credit load")
		}

		scored = append(scored, ScoredCourse{
			Course: course,
			Score:  score,
			Reason: strings.Join(reasons, "; "),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxRecommendations {
		scored = scored[:maxRecommendations]
	}
	return scored
}

// RecommendForStudent loads the student's profile, completed courses and the
// active catalog, then scores the catalog. Results are cached briefly since
// the inputs only change on enrollment and grade events.
func (s *RecommendationService) RecommendForStudent(ctx context.Context, studentID uint) ([]ScoredCourse, error) {
	cacheKey := fmt.Sprintf("%s%d", recommendationCachePfx, studentID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var recommendations []ScoredCourse
			if err := json.Unmarshal([]byte(cached), &recommendations); err == nil {
				return recommendations, nil
			}
		}
	}

	profile, err := s.StudentRepo.GetProfile(studentID)
	if err != nil {
		return nil, err
	}

	completed, err := s.EnrollmentRepo.CompletedCourseCodes(studentID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.CourseRepo.ListAvailableForStudent(studentID)
	if err != nil {
		return nil, err
	}

	recommendations := ScoreCourses(profile, completed, catalog)

	if s.rdb != nil {
		if payload, err := json.Marshal(recommendations); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, recommendationCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache recommendations", zap.Uint("studentId", studentID), zap.Error(err))
			}
		}
	}

	return recommendations, nil
}

// InvalidateCache drops the cached ranking after enrollment changes.
func (s *RecommendationService) InvalidateCache(ctx context.Context, studentID uint) {
	if s.rdb == nil {
		return
	}
	cacheKey := fmt.Sprintf("%s%d", recommendationCachePfx, studentID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate recommendation cache", zap.Uint("studentId", studentID), zap.Error(err))
	}
}
