package service

import (
	"context"
	"strings"
	"testing"

	"advising_backend/internal/model"
)

func TestParseInsightReportCleanJSON(t *testing.T) {
	raw := `{"analysis":"Solid progress overall.","risk_level":"medium","risk_reasoning":"Dip in midterm scores","recommendations":["Review pointers"],"weak_topics":["Pointers"]}`

	report, ok := ParseInsightReport(raw)
	if !ok {
		t.Fatal("expected a parsable report")
	}
	if report.Analysis != "Solid progress overall." {
		t.Errorf("Analysis = %q", report.Analysis)
	}
	if report.RiskLevel != RiskMedium {
		t.Errorf("RiskLevel = %q, want medium", report.RiskLevel)
	}
	if len(report.Recommendations) != 1 || len(report.WeakTopics) != 1 {
		t.Errorf("unexpected slices: %v %v", report.Recommendations, report.WeakTopics)
	}
}

func TestParseInsightReportFencedJSON(t *testing.T) {
	raw := "Here you go:\n```json\n{\"analysis\":\"Doing fine.\",\"risk_level\":\"low\"}\n```\nHope this helps!"

	report, ok := ParseInsightReport(raw)
	if !ok {
		t.Fatal("expected fenced JSON to parse")
	}
	if report.Analysis != "Doing fine." {
		t.Errorf("Analysis = %q", report.Analysis)
	}
	if report.Recommendations == nil || report.WeakTopics == nil {
		t.Error("missing slices should default to empty, not nil")
	}
}

func TestParseInsightReportInvalidRiskDefaultsLow(t *testing.T) {
	raw := `{"analysis":"ok","risk_level":"catastrophic"}`

	report, ok := ParseInsightReport(raw)
	if !ok {
		t.Fatal("expected report to parse")
	}
	if report.RiskLevel != RiskLow {
		t.Errorf("RiskLevel = %q, want low for unknown values", report.RiskLevel)
	}
}

func TestParseInsightReportRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"",
		"I'm sorry, I can't help with that.",
		`{"risk_level":"high"}`,
		`{"analysis":`,
	} {
		if _, ok := ParseInsightReport(raw); ok {
			t.Errorf("ParseInsightReport(%q) should be unusable", raw)
		}
	}
}

func TestRuleBasedReportThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{70, RiskHigh},
		{74.99, RiskHigh},
		{75, RiskMedium},
		{80, RiskMedium},
		{85, RiskLow},
		{95, RiskLow},
	}

	for _, tt := range tests {
		summary := PerformanceSummary{
			model.PeriodPrelim: {Score: tt.score, Level: ClassifyScore(tt.score)},
		}
		report := RuleBasedReport(summary)
		if report.RiskLevel != tt.want {
			t.Errorf("score %v: RiskLevel = %q, want %q", tt.score, report.RiskLevel, tt.want)
		}
		if report.Source != model.SourceRuleBased {
			t.Errorf("Source = %q, want %q", report.Source, model.SourceRuleBased)
		}
		if report.Analysis == "" || len(report.Recommendations) != 3 {
			t.Errorf("score %v: incomplete report %+v", tt.score, report)
		}
	}
}

type fakeProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func TestGenerateReportFallsBackOnProviderFailure(t *testing.T) {
	failing := &fakeProvider{name: "primary", err: context.DeadlineExceeded}
	s := &InsightService{AI: NewAIServiceWithProviders(failing, nil)}

	summary := PerformanceSummary{
		model.PeriodPrelim: {Score: 70, Level: LevelLow},
	}
	profile := &model.StudentProfile{Major: "Computer Science", GPA: 2.5}

	report := s.generateReport(context.Background(), profile, summary, nil, nil)
	if report == nil {
		t.Fatal("generateReport must always return a report")
	}
	if report.Source != model.SourceRuleBased {
		t.Errorf("Source = %q, want rule_based after provider failure", report.Source)
	}
	if report.RiskLevel != RiskHigh {
		t.Errorf("RiskLevel = %q, want high for avg 70", report.RiskLevel)
	}
}

func TestGenerateReportFallsBackOnUnparsableReply(t *testing.T) {
	chatty := &fakeProvider{name: "primary", reply: "As an AI I cannot produce JSON today."}
	s := &InsightService{AI: NewAIServiceWithProviders(chatty, nil)}

	summary := PerformanceSummary{
		model.PeriodPrelim: {Score: 90, Level: LevelHigh},
	}
	profile := &model.StudentProfile{Major: "Computer Science", GPA: 3.5}

	report := s.generateReport(context.Background(), profile, summary, nil, nil)
	if report.Source != model.SourceRuleBased {
		t.Errorf("Source = %q, want rule_based for unparsable reply", report.Source)
	}
	if report.RiskLevel != RiskLow {
		t.Errorf("RiskLevel = %q, want low for avg 90", report.RiskLevel)
	}
}

func TestGenerateReportUsesProviderReply(t *testing.T) {
	provider := &fakeProvider{
		name:  "gemini",
		reply: `{"analysis":"Strong quarter.","risk_level":"low","recommendations":[],"weak_topics":[]}`,
	}
	s := &InsightService{AI: NewAIServiceWithProviders(provider, nil)}

	summary := PerformanceSummary{
		model.PeriodPrelim: {Score: 92, Level: LevelHigh},
	}
	profile := &model.StudentProfile{Major: "Computer Science", GPA: 3.9}

	report := s.generateReport(context.Background(), profile, summary, nil, nil)
	if report.Source != "gemini" {
		t.Errorf("Source = %q, want the provider name", report.Source)
	}
	if report.Analysis != "Strong quarter." {
		t.Errorf("Analysis = %q", report.Analysis)
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	profile := &model.StudentProfile{Major: "Computer Science", GPA: 3.25}
	summary := PerformanceSummary{
		model.PeriodPrelim:  {Score: 88.5, Level: LevelHigh},
		model.PeriodMidterm: {Score: 72, Level: LevelLow},
	}
	topics := model.JSONMap{"2": "Loops", "10": "Graphs"}
	remarks := []model.CourseRemark{{RemarkText: "Struggles with recursion"}}

	prompt := buildAnalysisPrompt(profile, summary, topics, remarks)

	for _, fragment := range []string{
		"Major: Computer Science",
		"Current GPA: 3.25",
		"prelim: 88.50% (HIGH)",
		"midterm: 72.00% (LOW)",
		"Week 2: Loops",
		"Week 10: Graphs",
		"Struggles with recursion",
		"Return ONLY JSON, no markdown",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}

	// Numeric week order, not lexicographic.
	if strings.Index(prompt, "Week 2:") > strings.Index(prompt, "Week 10:") {
		t.Error("weeks should be ordered numerically")
	}
}
