package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"advising_backend/internal/model"
	"advising_backend/internal/repository"
	"advising_backend/pkg/logger"
	"advising_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// InsightReport is the typed shape of a provider's JSON reply. Unknown or
// missing fields are defaulted rather than trusted.
type InsightReport struct {
	Analysis        string    `json:"analysis"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskReasoning   string    `json:"risk_reasoning"`
	Recommendations []string  `json:"recommendations"`
	WeakTopics      []string  `json:"weak_topics"`

	// Source identifies what produced the report: a provider name or
	// "rule_based". Not part of the provider schema.
	Source string `json:"source"`
}

type InsightService struct {
	AI           *AIService
	GradeService *GradeService
	StudentRepo  *repository.StudentRepository
	SyllabusRepo *repository.SyllabusRepository
	RemarkRepo   *repository.RemarkRepository
	InsightRepo  *repository.InsightRepository
}

func NewInsightService(
	ai *AIService,
	gradeService *GradeService,
	studentRepo *repository.StudentRepository,
	syllabusRepo *repository.SyllabusRepository,
	remarkRepo *repository.RemarkRepository,
	insightRepo *repository.InsightRepository,
) *InsightService {
	return &InsightService{
		AI:           ai,
		GradeService: gradeService,
		StudentRepo:  studentRepo,
		SyllabusRepo: syllabusRepo,
		RemarkRepo:   remarkRepo,
		InsightRepo:  insightRepo,
	}
}

// AnalyzeStudentPerformance runs the full insight pipeline for one (student,
// course): gather performance, topics and remarks, ask a provider, fall back
// to the rule-based report on any transport or parse failure, then persist.
// The caller always receives a usable report; only repository failures
// surface as errors.
func (s *InsightService) AnalyzeStudentPerformance(ctx context.Context, studentID, courseID uint) (*InsightReport, error) {
	profile, err := s.StudentRepo.GetProfile(studentID)
	if err != nil {
		return nil, err
	}

	summary, err := s.GradeService.Summary(studentID, courseID)
	if err != nil {
		return nil, err
	}

	var topics model.JSONMap
	if syllabus, err := s.SyllabusRepo.Latest(courseID); err == nil {
		topics = syllabus.Topics
	}

	remarks, err := s.RemarkRepo.Latest(studentID, courseID, 5)
	if err != nil {
		remarks = nil
	}

	report := s.generateReport(ctx, profile, summary, topics, remarks)
	monitoring.InsightGenerations.WithLabelValues(report.Source).Inc()

	if err := s.persistReport(studentID, courseID, report); err != nil {
		return nil, err
	}
	return report, nil
}

// generateReport is the provider call plus fallback; it never fails.
func (s *InsightService) generateReport(
	ctx context.Context,
	profile *model.StudentProfile,
	summary PerformanceSummary,
	topics model.JSONMap,
	remarks []model.CourseRemark,
) *InsightReport {
	prompt := buildAnalysisPrompt(profile, summary, topics, remarks)

	raw, provider, err := s.AI.Generate(ctx, prompt, defaultSystemPrompt)
	if err != nil {
		logger.Log.Warn("AI generation failed, using rule-based insight", zap.Error(err))
		return RuleBasedReport(summary)
	}

	report, ok := ParseInsightReport(raw)
	if !ok {
		logger.Log.Warn("unparsable AI insight response, using rule-based insight",
			zap.String("provider", provider),
		)
		return RuleBasedReport(summary)
	}

	report.Source = provider
	return report
}

func (s *InsightService) persistReport(studentID, courseID uint, report *InsightReport) error {
	now := time.Now()
	course := courseID

	insight := &model.AIInsight{
		StudentID:       studentID,
		CourseID:        &course,
		InsightType:     model.InsightPerformanceTrend,
		InsightText:     report.Analysis,
		ConfidenceScore: 0.85,
		Source:          report.Source,
		GeneratedAt:     now,
	}
	if err := s.InsightRepo.Create(insight); err != nil {
		return err
	}

	if report.RiskLevel == RiskHigh {
		reasoning := report.RiskReasoning
		if reasoning == "" {
			reasoning = "Performance below expectations"
		}
		alert := &model.AIInsight{
			StudentID:       studentID,
			CourseID:        &course,
			InsightType:     model.InsightRiskAlert,
			InsightText:     reasoning,
			ConfidenceScore: 0.90,
			Source:          report.Source,
			GeneratedAt:     now,
		}
		if err := s.InsightRepo.Create(alert); err != nil {
			return err
		}
	}

	return nil
}

// ListInsights returns the persisted audit trail, newest first.
func (s *InsightService) ListInsights(studentID uint, courseID *uint, limit int) ([]model.AIInsight, error) {
	return s.InsightRepo.ListByStudent(studentID, courseID, limit)
}

// buildAnalysisPrompt embeds the performance summary, syllabus topics and
// professor remarks, and pins the reply to a strict JSON schema.
func buildAnalysisPrompt(
	profile *model.StudentProfile,
	summary PerformanceSummary,
	topics model.JSONMap,
	remarks []model.CourseRemark,
) string {
	var b strings.Builder

	b.WriteString("Analyze this student's academic performance:\n\n")
	b.WriteString("STUDENT INFO:\n")
	fmt.Fprintf(&b, "- Major: %s\n", profile.Major)
	fmt.Fprintf(&b, "- Current GPA: %.2f\n", profile.GPA)

	b.WriteString("\nPERFORMANCE BY PERIOD:\n")
	for _, period := range model.Periods() {
		if performance, ok := summary[period]; ok {
			fmt.Fprintf(&b, "- %s: %.2f%% (%s)\n", period, performance.Score, performance.Level)
		}
	}

	if len(topics) > 0 {
		b.WriteString("\nCOURSE TOPICS:\n")
		weeks := make([]string, 0, len(topics))
		for week := range topics {
			weeks = append(weeks, week)
		}
		sort.Slice(weeks, func(i, j int) bool {
			return len(weeks[i]) < len(weeks[j]) || (len(weeks[i]) == len(weeks[j]) && weeks[i] < weeks[j])
		})
		for _, week := range weeks {
			fmt.Fprintf(&b, "Week %s: %s\n", week, topics[week])
		}
	}

	if len(remarks) > 0 {
		b.WriteString("\nPROFESSOR REMARKS:\n")
		for _, remark := range remarks {
			fmt.Fprintf(&b, "- %s\n", remark.RemarkText)
		}
	}

	b.WriteString(`
Provide academic analysis. Return ONLY valid JSON:
{
  "analysis": "2-3 sentence performance summary",
  "risk_level": "low|medium|high",
  "risk_reasoning": "why this risk level",
  "recommendations": ["recommendation1", "recommendation2", "recommendation3"],
  "weak_topics": ["topic1", "topic2"]
}

Return ONLY JSON, no markdown.`)

	return b.String()
}

// ParseInsightReport cleans and decodes a raw provider reply. The second
// return is false when the reply is unusable and the caller should take the
// rule-based path.
func ParseInsightReport(raw string) (*InsightReport, bool) {
	cleaned := CleanJSONResponse(raw)
	if cleaned == "" {
		return nil, false
	}

	var report InsightReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, false
	}

	if report.Analysis == "" {
		return nil, false
	}

	switch report.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh:
	default:
		report.RiskLevel = RiskLow
	}
	if report.Recommendations == nil {
		report.Recommendations = []string{}
	}
	if report.WeakTopics == nil {
		report.WeakTopics = []string{}
	}

	return &report, true
}

// RuleBasedReport is the deterministic fallback, driven by the average score
// across graded periods and the same thresholds the summarizer uses.
func RuleBasedReport(summary PerformanceSummary) *InsightReport {
	avgScore := summary.AverageScore()

	var riskLevel RiskLevel
	var analysis string
	switch {
	case avgScore < 75:
		riskLevel = RiskHigh
		analysis = "Your current performance indicates significant challenges with course material. Immediate intervention and additional support are recommended."
	case avgScore < 85:
		riskLevel = RiskMedium
		analysis = "Your performance shows partial mastery of course concepts. Focused study on weak areas will help improve your grades."
	default:
		riskLevel = RiskLow
		analysis = "Excellent performance! You demonstrate strong understanding of course material. Continue your current study habits."
	}

	return &InsightReport{
		Analysis:      analysis,
		RiskLevel:     riskLevel,
		RiskReasoning: fmt.Sprintf("Average period score is %.2f%%", avgScore),
		Recommendations: []string{
			"Review weak topic areas",
			"Attend professor office hours",
			"Form study groups with classmates",
		},
		WeakTopics: []string{},
		Source:     model.SourceRuleBased,
	}
}
