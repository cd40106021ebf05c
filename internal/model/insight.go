package model

import "time"

type InsightType string

const (
	InsightPerformanceTrend InsightType = "performance_trend"
	InsightRiskAlert        InsightType = "risk_alert"
)

// InsightSource records whether the text came from an AI provider or the
// deterministic rule-based path, for observability.
const (
	SourceRuleBased = "rule_based"
)

// AIInsight rows are an append-only audit trail; they are created by the
// insight generator and never updated.
type AIInsight struct {
	BaseModel
	StudentID       uint        `gorm:"index;not null" json:"studentId"`
	CourseID        *uint       `gorm:"index" json:"courseId"`
	InsightType     InsightType `gorm:"type:varchar(30);not null" json:"insightType"`
	InsightText     string      `gorm:"type:text" json:"insightText"`
	ConfidenceScore float64     `gorm:"type:decimal(3,2)" json:"confidenceScore"`
	Source          string      `gorm:"size:30" json:"source"`
	GeneratedAt     time.Time   `json:"generatedAt"`
}

func (AIInsight) TableName() string {
	return "ai_insights"
}
