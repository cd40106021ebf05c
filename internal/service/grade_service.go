package service

import (
	"math"
	"time"

	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/internal/util"

	"gorm.io/gorm"
)

// Weight applied to a component type the syllabus breakdown does not list.
// Unknown types can push a period's total weight past 100; that skew is kept
// as-is rather than renormalized.
const defaultComponentWeight = 40.0

type PerformanceLevel string

const (
	LevelLow     PerformanceLevel = "LOW"
	LevelAverage PerformanceLevel = "AVERAGE"
	LevelHigh    PerformanceLevel = "HIGH"
)

type PeriodPerformance struct {
	Score float64          `json:"score"`
	Level PerformanceLevel `json:"level"`
}

// PerformanceSummary maps each period with recorded components to its
// weighted score and level. Periods without components are absent.
type PerformanceSummary map[model.GradePeriod]PeriodPerformance

type GradeService struct {
	GradeRepo    *repository.GradeRepository
	SyllabusRepo *repository.SyllabusRepository
}

func NewGradeService(gradeRepo *repository.GradeRepository, syllabusRepo *repository.SyllabusRepository) *GradeService {
	return &GradeService{GradeRepo: gradeRepo, SyllabusRepo: syllabusRepo}
}

// PeriodGrade computes the 0-100 grade for one period from its components
// and the syllabus breakdown. Components are grouped by type; each type
// contributes its percentage scaled by the breakdown weight (default 40 when
// the type is not listed). Returns nil when the period has no components:
// "no grade yet" is distinct from a failing grade of zero.
func PeriodGrade(components []model.GradeComponent, breakdown model.GradingBreakdown) *float64 {
	if len(components) == 0 {
		return nil
	}

	period := components[0].Period

	typeScores := make(map[string]float64)
	typeMaxScores := make(map[string]float64)
	var typeOrder []string
	for _, c := range components {
		if _, seen := typeScores[c.ComponentType]; !seen {
			typeOrder = append(typeOrder, c.ComponentType)
		}
		typeScores[c.ComponentType] += c.Score
		typeMaxScores[c.ComponentType] += c.MaxScore
	}

	var weightedTotal, weightTotal float64
	for _, componentType := range typeOrder {
		percentage := 0.0
		if typeMaxScores[componentType] > 0 {
			percentage = typeScores[componentType] / typeMaxScores[componentType] * 100
		}

		weight := defaultComponentWeight
		if breakdown != nil {
			if periodWeights, ok := breakdown[period]; ok {
				if w, ok := periodWeights[componentType]; ok {
					weight = w
				}
			}
		}

		weightedTotal += percentage * weight / 100
		weightTotal += weight
	}

	if weightTotal <= 0 {
		return nil
	}

	grade := math.Round(weightedTotal*100) / 100
	return &grade
}

// ClassifyScore buckets a 0-100 score into the advising levels.
func ClassifyScore(score float64) PerformanceLevel {
	switch {
	case score < 75:
		return LevelLow
	case score < 85:
		return LevelAverage
	default:
		return LevelHigh
	}
}

// SummarizePerformance reduces raw components to per-period score/level
// buckets using each component's own weight field. Periods with no
// components are omitted, never reported as zero.
func SummarizePerformance(components []model.GradeComponent) PerformanceSummary {
	byPeriod := make(map[model.GradePeriod][]model.GradeComponent)
	for _, c := range components {
		byPeriod[c.Period] = append(byPeriod[c.Period], c)
	}

	summary := make(PerformanceSummary)
	for _, period := range model.Periods() {
		periodComponents := byPeriod[period]
		if len(periodComponents) == 0 {
			continue
		}

		var weightedScore, totalWeight float64
		for _, c := range periodComponents {
			percentage := 0.0
			if c.MaxScore > 0 {
				percentage = c.Score / c.MaxScore * 100
			}
			weightedScore += percentage * c.Weight / 100
			totalWeight += c.Weight
		}

		score := 0.0
		if totalWeight > 0 {
			score = weightedScore
		}

		summary[period] = PeriodPerformance{
			Score: math.Round(score*100) / 100,
			Level: ClassifyScore(score),
		}
	}

	return summary
}

// AverageScore is the mean across the periods present in the summary.
func (s PerformanceSummary) AverageScore() float64 {
	if len(s) == 0 {
		return 0
	}
	var total float64
	for _, p := range s {
		total += p.Score
	}
	return total / float64(len(s))
}

// OverallLevel is pessimistic: any LOW period makes the student LOW, then
// any AVERAGE period makes them AVERAGE. An empty summary reads AVERAGE.
func (s PerformanceSummary) OverallLevel() PerformanceLevel {
	if len(s) == 0 {
		return LevelAverage
	}
	hasAverage := false
	for _, p := range s {
		switch p.Level {
		case LevelLow:
			return LevelLow
		case LevelAverage:
			hasAverage = true
		}
	}
	if hasAverage {
		return LevelAverage
	}
	return LevelHigh
}

// periodWeeks maps each grading period onto the syllabus weeks it covers.
var periodWeeks = map[model.GradePeriod][]string{
	model.PeriodPrelim:    {"1", "2", "3", "4", "5"},
	model.PeriodMidterm:   {"6", "7", "8", "9"},
	model.PeriodSemiFinal: {"10", "11", "12", "13"},
	model.PeriodFinal:     {"14", "15", "16", "17", "18"},
}

// WeakTopics collects the syllabus topics for every LOW or AVERAGE period,
// deduplicated in term order.
func WeakTopics(summary PerformanceSummary, topics model.JSONMap) []string {
	seen := make(map[string]bool)
	var weak []string

	for _, period := range model.Periods() {
		performance, ok := summary[period]
		if !ok || performance.Level == LevelHigh {
			continue
		}
		for _, week := range periodWeeks[period] {
			topic, ok := topics[week]
			if !ok || topic == "" || seen[topic] {
				continue
			}
			seen[topic] = true
			weak = append(weak, topic)
		}
	}

	return weak
}

// CourseBreakdown loads the latest syllabus breakdown for a course; a
// missing syllabus is not an error, the aggregator falls back to default
// weights.
func (s *GradeService) CourseBreakdown(courseID uint) model.GradingBreakdown {
	syllabus, err := s.SyllabusRepo.Latest(courseID)
	if err != nil {
		return nil
	}
	return syllabus.Breakdown
}

// PeriodGrades computes the stored-scale grade of every period for a
// (student, course); periods without components map to nil.
func (s *GradeService) PeriodGrades(studentID, courseID uint) (map[model.GradePeriod]*float64, error) {
	components, err := s.GradeRepo.ListComponents(studentID, courseID)
	if err != nil {
		return nil, err
	}

	breakdown := s.CourseBreakdown(courseID)

	byPeriod := make(map[model.GradePeriod][]model.GradeComponent)
	for _, c := range components {
		byPeriod[c.Period] = append(byPeriod[c.Period], c)
	}

	grades := make(map[model.GradePeriod]*float64)
	for _, period := range model.Periods() {
		grades[period] = PeriodGrade(byPeriod[period], breakdown)
	}
	return grades, nil
}

// Summary loads the student's components for a course and reduces them.
func (s *GradeService) Summary(studentID, courseID uint) (PerformanceSummary, error) {
	components, err := s.GradeRepo.ListComponents(studentID, courseID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return SummarizePerformance(components), nil
}

type GradeComponentInput struct {
	Period        model.GradePeriod `json:"period" binding:"required"`
	ComponentType string            `json:"componentType" binding:"required"`
	Name          string            `json:"name"`
	Score         float64           `json:"score"`
	MaxScore      float64           `json:"maxScore" binding:"required"`
	Weight        float64           `json:"weight"`
}

// AddComponent records a new gradable item and recomputes the period's
// persisted final grade.
func (s *GradeService) AddComponent(studentID, courseID uint, input GradeComponentInput) (*model.GradeComponent, error) {
	if input.Score < 0 || input.MaxScore <= 0 || input.Score > input.MaxScore {
		return nil, util.ErrInvalidScore
	}

	header, err := s.GradeRepo.GetOrCreateHeader(studentID, courseID, input.Period)
	if err != nil {
		return nil, err
	}

	component := &model.GradeComponent{
		CourseGradeID: header.ID,
		Period:        input.Period,
		ComponentType: input.ComponentType,
		Name:          input.Name,
		Score:         input.Score,
		MaxScore:      input.MaxScore,
		Weight:        input.Weight,
		DateRecorded:  time.Now(),
	}
	if err := s.GradeRepo.CreateComponent(component); err != nil {
		return nil, err
	}

	if err := s.recomputeFinalGrade(header, studentID, courseID); err != nil {
		return nil, err
	}
	return component, nil
}

func (s *GradeService) UpdateComponent(componentID uint, input GradeComponentInput) (*model.GradeComponent, error) {
	if input.Score < 0 || input.MaxScore <= 0 || input.Score > input.MaxScore {
		return nil, util.ErrInvalidScore
	}

	component, err := s.GradeRepo.FindComponentByID(componentID)
	if err != nil {
		return nil, err
	}

	component.ComponentType = input.ComponentType
	component.Name = input.Name
	component.Score = input.Score
	component.MaxScore = input.MaxScore
	component.Weight = input.Weight
	if err := s.GradeRepo.UpdateComponent(component); err != nil {
		return nil, err
	}

	header, err := s.GradeRepo.HeaderForComponent(componentID)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeFinalGrade(header, header.StudentID, header.CourseID); err != nil {
		return nil, err
	}
	return component, nil
}

func (s *GradeService) DeleteComponent(componentID uint) error {
	header, err := s.GradeRepo.HeaderForComponent(componentID)
	if err != nil {
		return err
	}
	if err := s.GradeRepo.DeleteComponent(componentID); err != nil {
		return err
	}
	return s.recomputeFinalGrade(header, header.StudentID, header.CourseID)
}

func (s *GradeService) recomputeFinalGrade(header *model.CourseGrade, studentID, courseID uint) error {
	components, err := s.GradeRepo.ListComponentsForPeriod(studentID, courseID, header.Period)
	if err != nil {
		return err
	}
	grade := PeriodGrade(components, s.CourseBreakdown(courseID))
	return s.GradeRepo.SaveFinalGrade(header.ID, grade)
}
