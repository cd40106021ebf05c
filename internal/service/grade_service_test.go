package service

import (
	"testing"

	"advising_backend/internal/model"
)

func component(period model.GradePeriod, componentType string, score, maxScore, weight float64) model.GradeComponent {
	return model.GradeComponent{
		Period:        period,
		ComponentType: componentType,
		Score:         score,
		MaxScore:      maxScore,
		Weight:        weight,
	}
}

func TestPeriodGradeNoComponents(t *testing.T) {
	if grade := PeriodGrade(nil, nil); grade != nil {
		t.Fatalf("expected nil grade for empty period, got %v", *grade)
	}
}

func TestPeriodGradeWithBreakdown(t *testing.T) {
	components := []model.GradeComponent{
		component(model.PeriodPrelim, "quiz", 8, 10, 0),
		component(model.PeriodPrelim, "quiz", 9, 10, 0),
		component(model.PeriodPrelim, "exam", 45, 50, 0),
	}
	breakdown := model.GradingBreakdown{
		model.PeriodPrelim: {"quiz": 40, "exam": 60},
	}

	// quiz: 17/20 = 85% at weight 40; exam: 45/50 = 90% at weight 60.
	got := PeriodGrade(components, breakdown)
	if got == nil {
		t.Fatal("expected a grade")
	}
	if *got != 88.0 {
		t.Errorf("PeriodGrade = %v, want 88.0", *got)
	}
}

func TestPeriodGradeDefaultWeight(t *testing.T) {
	// With no breakdown every type gets the default weight, so two types at
	// 80% and 90% average to 85% of the combined weight: (80+90)*40/100 = 68.
	components := []model.GradeComponent{
		component(model.PeriodMidterm, "quiz", 80, 100, 0),
		component(model.PeriodMidterm, "exam", 90, 100, 0),
	}

	got := PeriodGrade(components, nil)
	if got == nil {
		t.Fatal("expected a grade")
	}
	if *got != 68 {
		t.Errorf("PeriodGrade = %v, want 68", *got)
	}
}

func TestPeriodGradeZeroMaxScore(t *testing.T) {
	components := []model.GradeComponent{
		component(model.PeriodPrelim, "quiz", 0, 0, 0),
	}
	got := PeriodGrade(components, nil)
	if got == nil {
		t.Fatal("expected a grade")
	}
	if *got != 0 {
		t.Errorf("PeriodGrade = %v, want 0 for zero max score", *got)
	}
}

func TestPeriodGradeZeroWeightBreakdown(t *testing.T) {
	components := []model.GradeComponent{
		component(model.PeriodPrelim, "quiz", 10, 10, 0),
	}
	breakdown := model.GradingBreakdown{
		model.PeriodPrelim: {"quiz": 0},
	}
	if got := PeriodGrade(components, breakdown); got != nil {
		t.Errorf("expected nil grade when total weight is zero, got %v", *got)
	}
}

func TestSummarizePerformanceWeightedScore(t *testing.T) {
	components := []model.GradeComponent{
		component(model.PeriodPrelim, "quiz", 80, 100, 60),
		component(model.PeriodPrelim, "exam", 90, 100, 40),
	}

	summary := SummarizePerformance(components)
	performance, ok := summary[model.PeriodPrelim]
	if !ok {
		t.Fatal("expected prelim entry in summary")
	}
	if performance.Score != 84.0 {
		t.Errorf("Score = %v, want 84.0", performance.Score)
	}
	if performance.Level != LevelAverage {
		t.Errorf("Level = %v, want AVERAGE", performance.Level)
	}
}

func TestSummarizePerformanceOmitsEmptyPeriods(t *testing.T) {
	components := []model.GradeComponent{
		component(model.PeriodMidterm, "exam", 95, 100, 100),
	}

	summary := SummarizePerformance(components)
	if len(summary) != 1 {
		t.Fatalf("expected 1 period, got %d", len(summary))
	}
	if _, ok := summary[model.PeriodPrelim]; ok {
		t.Error("prelim should be absent, not zero")
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score float64
		want  PerformanceLevel
	}{
		{0, LevelLow},
		{74.99, LevelLow},
		{75, LevelAverage},
		{84.99, LevelAverage},
		{85, LevelHigh},
		{100, LevelHigh},
	}
	for _, tt := range tests {
		if got := ClassifyScore(tt.score); got != tt.want {
			t.Errorf("ClassifyScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestOverallLevelPessimistic(t *testing.T) {
	summary := PerformanceSummary{
		model.PeriodPrelim:  {Score: 95, Level: LevelHigh},
		model.PeriodMidterm: {Score: 60, Level: LevelLow},
	}
	if got := summary.OverallLevel(); got != LevelLow {
		t.Errorf("OverallLevel = %v, want LOW", got)
	}

	summary = PerformanceSummary{
		model.PeriodPrelim:  {Score: 95, Level: LevelHigh},
		model.PeriodMidterm: {Score: 80, Level: LevelAverage},
	}
	if got := summary.OverallLevel(); got != LevelAverage {
		t.Errorf("OverallLevel = %v, want AVERAGE", got)
	}

	if got := (PerformanceSummary{}).OverallLevel(); got != LevelAverage {
		t.Errorf("OverallLevel of empty summary = %v, want AVERAGE", got)
	}
}

func TestAverageScore(t *testing.T) {
	summary := PerformanceSummary{
		model.PeriodPrelim:  {Score: 70, Level: LevelLow},
		model.PeriodMidterm: {Score: 90, Level: LevelHigh},
	}
	if got := summary.AverageScore(); got != 80 {
		t.Errorf("AverageScore = %v, want 80", got)
	}
	if got := (PerformanceSummary{}).AverageScore(); got != 0 {
		t.Errorf("AverageScore of empty summary = %v, want 0", got)
	}
}

func TestWeakTopics(t *testing.T) {
	summary := PerformanceSummary{
		model.PeriodPrelim:  {Score: 70, Level: LevelLow},
		model.PeriodMidterm: {Score: 95, Level: LevelHigh},
		model.PeriodFinal:   {Score: 80, Level: LevelAverage},
	}
	topics := model.JSONMap{
		"1":  "Variables",
		"2":  "Loops",
		"7":  "Pointers",
		"14": "Concurrency",
	}

	got := WeakTopics(summary, topics)
	want := []string{"Variables", "Loops", "Concurrency"}
	if len(got) != len(want) {
		t.Fatalf("WeakTopics = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WeakTopics[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWeakTopicsDeduplicates(t *testing.T) {
	summary := PerformanceSummary{
		model.PeriodPrelim:  {Score: 70, Level: LevelLow},
		model.PeriodMidterm: {Score: 70, Level: LevelLow},
	}
	topics := model.JSONMap{
		"1": "Recursion",
		"6": "Recursion",
	}

	got := WeakTopics(summary, topics)
	if len(got) != 1 || got[0] != "Recursion" {
		t.Errorf("WeakTopics = %v, want [Recursion]", got)
	}
}
