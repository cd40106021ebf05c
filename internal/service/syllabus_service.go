package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/internal/util"
	"advising_backend/pkg/logger"

	"go.uber.org/zap"
)

type SyllabusService struct {
	SyllabusRepo *repository.SyllabusRepository
	Storage      *StorageService
	AI           *AIService
}

func NewSyllabusService(syllabusRepo *repository.SyllabusRepository, storage *StorageService, ai *AIService) *SyllabusService {
	return &SyllabusService{SyllabusRepo: syllabusRepo, Storage: storage, AI: ai}
}

// ValidateBreakdown checks that each period's weights sum to 100. This is
// the only place the invariant is enforced; the grade aggregator consumes
// whatever is stored.
func ValidateBreakdown(breakdown model.GradingBreakdown) error {
	for _, weights := range breakdown {
		var total float64
		for _, w := range weights {
			total += w
		}
		if math.Abs(total-100) > 0.01 {
			return util.ErrBreakdownWeights
		}
	}
	return nil
}

type SyllabusUploadInput struct {
	CourseID    uint
	ProfessorID uint
	SchoolYear  string
	Semester    string
	Filename    string
	Breakdown   model.GradingBreakdown
	Topics      model.JSONMap
}

// Upload validates the breakdown, stores the syllabus file and records the
// syllabus row.
func (s *SyllabusService) Upload(ctx context.Context, input SyllabusUploadInput, file io.Reader, size int64, contentType string) (*model.CourseSyllabus, error) {
	if err := ValidateBreakdown(input.Breakdown); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("syllabi/%d/%s_%s", input.CourseID, model.GenerateUUID(), input.Filename)
	filePath, err := s.Storage.Upload(ctx, objectName, file, size, contentType)
	if err != nil {
		return nil, err
	}

	syllabus := &model.CourseSyllabus{
		CourseID:    input.CourseID,
		ProfessorID: input.ProfessorID,
		SchoolYear:  input.SchoolYear,
		Semester:    input.Semester,
		FilePath:    filePath,
		Topics:      input.Topics,
		Breakdown:   input.Breakdown,
		UploadedAt:  time.Now(),
	}
	if err := s.SyllabusRepo.Create(syllabus); err != nil {
		return nil, err
	}
	return syllabus, nil
}

func (s *SyllabusService) Latest(courseID uint) (*model.CourseSyllabus, error) {
	return s.SyllabusRepo.Latest(courseID)
}

// syllabusAnalysis is the structured extraction a provider returns for a
// syllabus document.
type syllabusAnalysis struct {
	Objectives   []string               `json:"objectives"`
	WeeklyTopics map[string]string      `json:"weekly_topics"`
	Assessments  model.GradingBreakdown `json:"assessments"`
	Outcomes     []string               `json:"outcomes"`
}

// AnalyzeSyllabusText extracts weekly topics and the assessment breakdown
// from raw syllabus text with the AI provider, falling back to a default
// structure when the reply is unusable, and stores the result.
func (s *SyllabusService) AnalyzeSyllabusText(ctx context.Context, syllabusID uint, syllabusText string) (model.JSONMap, model.GradingBreakdown, error) {
	prompt := fmt.Sprintf(`Analyze this course syllabus and extract structured information.

SYLLABUS CONTENT:
%s

Extract and return ONLY valid JSON with this exact structure:
{
  "objectives": ["objective1", "objective2"],
  "weekly_topics": {
    "1": "Week 1 topic",
    "2": "Week 2 topic",
    "3": "Week 3 topic",
    "4": "Week 4 topic",
    "5": "Week 5 topic"
  },
  "assessments": {
    "prelim": {"class_standing": 60, "exam": 40},
    "midterm": {"class_standing": 60, "exam": 40},
    "semi_final": {"class_standing": 60, "exam": 40},
    "final": {"class_standing": 60, "exam": 40}
  },
  "outcomes": ["outcome1", "outcome2"]
}

Return ONLY the JSON, no markdown, no explanations.`, syllabusText)

	analysis := defaultSyllabusAnalysis()

	raw, provider, err := s.AI.Generate(ctx, prompt, defaultSystemPrompt)
	if err != nil {
		logger.Log.Warn("syllabus analysis failed, using default structure", zap.Error(err))
	} else {
		var parsed syllabusAnalysis
		if err := json.Unmarshal([]byte(CleanJSONResponse(raw)), &parsed); err != nil || len(parsed.WeeklyTopics) == 0 {
			logger.Log.Warn("unparsable syllabus analysis, using default structure",
				zap.String("provider", provider),
			)
		} else {
			analysis = parsed
		}
	}

	topics := model.JSONMap(analysis.WeeklyTopics)
	if err := s.SyllabusRepo.UpdateAnalysis(syllabusID, topics, analysis.Assessments); err != nil {
		return nil, nil, err
	}
	return topics, analysis.Assessments, nil
}

func defaultSyllabusAnalysis() syllabusAnalysis {
	return syllabusAnalysis{
		Objectives: []string{"Course objective 1", "Course objective 2"},
		WeeklyTopics: map[string]string{
			"1": "Introduction",
			"2": "Fundamentals",
			"3": "Core Concepts",
			"4": "Advanced Topics",
			"5": "Review",
		},
		Assessments: model.GradingBreakdown{
			model.PeriodPrelim:    {"class_standing": 60, "exam": 40},
			model.PeriodMidterm:   {"class_standing": 60, "exam": 40},
			model.PeriodSemiFinal: {"class_standing": 60, "exam": 40},
			model.PeriodFinal:     {"class_standing": 60, "exam": 40},
		},
		Outcomes: []string{"Outcome 1", "Outcome 2"},
	}
}
