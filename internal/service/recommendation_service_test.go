package service

import (
	"strings"
	"testing"

	"advising_backend/internal/model"
)

func catalogCourse(code, department string, level model.CourseLevel, credits int, prerequisites ...string) model.Course {
	return model.Course{
		CourseCode:    code,
		CourseName:    code,
		Department:    department,
		Level:         level,
		Credits:       credits,
		Prerequisites: prerequisites,
		IsActive:      true,
	}
}

func TestStudentLevel(t *testing.T) {
	tests := []struct {
		credits int
		want    int
	}{
		{0, 1},
		{1, 1},
		{30, 1},
		{31, 2},
		{35, 2},
		{60, 2},
		{61, 3},
		{90, 3},
		{91, 4},
		{120, 4},
		{200, 4},
	}
	for _, tt := range tests {
		if got := StudentLevel(tt.credits); got != tt.want {
			t.Errorf("StudentLevel(%d) = %d, want %d", tt.credits, got, tt.want)
		}
	}
}

func TestScoreCoursesPrerequisiteFilter(t *testing.T) {
	profile := &model.StudentProfile{Major: "Computer Science", GPA: 3.0, CreditsCompleted: 30}
	catalog := []model.Course{
		catalogCourse("CS201", "Computer Science", model.LevelSophomore, 4, "CS101"),
		catalogCourse("CS301", "Computer Science", model.LevelJunior, 4, "CS201"),
	}

	scored := ScoreCourses(profile, []string{"CS101"}, catalog)
	if len(scored) != 1 {
		t.Fatalf("expected 1 eligible course, got %d", len(scored))
	}
	if scored[0].Course.CourseCode != "CS201" {
		t.Errorf("eligible course = %s, want CS201", scored[0].Course.CourseCode)
	}
}

func TestScoreCoursesSkipsCompleted(t *testing.T) {
	profile := &model.StudentProfile{Major: "Computer Science", CreditsCompleted: 10}
	catalog := []model.Course{
		catalogCourse("CS101", "Computer Science", model.LevelFreshman, 3),
	}

	scored := ScoreCourses(profile, []string{"cs101"}, catalog)
	if len(scored) != 0 {
		t.Errorf("completed course should be excluded, got %v", scored)
	}
}

func TestScoreCoursesSignals(t *testing.T) {
	// Sophomore CS student, 35 credits, modest GPA. CS201 is level-matched
	// (+50), in their major (+40) and within the remaining credit budget
	// (+20) for 110.
	profile := &model.StudentProfile{Major: "Computer Science", GPA: 2.2, CreditsCompleted: 35}
	catalog := []model.Course{
		catalogCourse("CS201", "Computer Science", model.LevelSophomore, 4, "CS101"),
	}

	scored := ScoreCourses(profile, []string{"CS101"}, catalog)
	if len(scored) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(scored))
	}
	if scored[0].Score != 110 {
		t.Errorf("Score = %d, want 110", scored[0].Score)
	}
	if !strings.HasPrefix(scored[0].Reason, "All prerequisites completed") {
		t.Errorf("Reason should start with the prerequisite note, got %q", scored[0].Reason)
	}
	if !strings.Contains(scored[0].Reason, "Matches your major") {
		t.Errorf("Reason should mention the major match, got %q", scored[0].Reason)
	}
}

func TestScoreCoursesStrongGPASignal(t *testing.T) {
	// 91 credits puts the student at senior level; a graduate course is one
	// level above (+50), and GPA 3.8 adds the advanced-course signal (+30).
	profile := &model.StudentProfile{Major: "Mathematics", GPA: 3.8, CreditsCompleted: 91}
	catalog := []model.Course{
		catalogCourse("MATH501", "Mathematics", model.LevelGraduate, 3),
	}

	scored := ScoreCourses(profile, nil, catalog)
	if len(scored) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(scored))
	}
	// 50 level + 30 gpa + 40 major + 20 credits
	if scored[0].Score != 140 {
		t.Errorf("Score = %d, want 140", scored[0].Score)
	}
}

func TestScoreCoursesStableDescendingOrder(t *testing.T) {
	profile := &model.StudentProfile{Major: "Computer Science", GPA: 3.0, CreditsCompleted: 35}
	catalog := []model.Course{
		catalogCourse("HIST101", "History", model.LevelFreshman, 3),
		catalogCourse("CS202", "Computer Science", model.LevelSophomore, 4),
		catalogCourse("HIST102", "History", model.LevelFreshman, 3),
	}

	scored := ScoreCourses(profile, nil, catalog)
	if len(scored) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(scored))
	}
	if scored[0].Course.CourseCode != "CS202" {
		t.Errorf("top course = %s, want CS202", scored[0].Course.CourseCode)
	}
	// Equal-scored courses keep catalog order.
	if scored[1].Course.CourseCode != "HIST101" || scored[2].Course.CourseCode != "HIST102" {
		t.Errorf("tie order = %s, %s; want HIST101, HIST102",
			scored[1].Course.CourseCode, scored[2].Course.CourseCode)
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Errorf("scores not descending at %d: %d > %d", i, scored[i].Score, scored[i-1].Score)
		}
	}
}

func TestScoreCoursesCap(t *testing.T) {
	profile := &model.StudentProfile{Major: "Computer Science", CreditsCompleted: 0}
	var catalog []model.Course
	for i := 0; i < 15; i++ {
		catalog = append(catalog, catalogCourse("CS10"+string(rune('A'+i)), "Computer Science", model.LevelFreshman, 3))
	}

	scored := ScoreCourses(profile, nil, catalog)
	if len(scored) != 10 {
		t.Errorf("expected the list capped at 10, got %d", len(scored))
	}
}

func TestScoreCoursesCreditBudget(t *testing.T) {
	// 118 credits leaves only 2 in the budget, so a 3-credit course misses
	// the credit signal.
	profile := &model.StudentProfile{Major: "History", CreditsCompleted: 118}
	catalog := []model.Course{
		catalogCourse("HIST400", "History", model.LevelSenior, 3),
	}

	scored := ScoreCourses(profile, nil, catalog)
	if len(scored) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(scored))
	}
	if strings.Contains(scored[0].Reason, "Fits your remaining credit load") {
		t.Errorf("credit signal should be absent, got %q", scored[0].Reason)
	}
	// 50 level + 40 major
	if scored[0].Score != 90 {
		t.Errorf("Score = %d, want 90", scored[0].Score)
	}
}
