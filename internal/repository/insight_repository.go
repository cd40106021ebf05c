package repository

import (
	"advising_backend/internal/model"

	"gorm.io/gorm"
)

type InsightRepository struct {
	DB *gorm.DB
}

func NewInsightRepository(db *gorm.DB) *InsightRepository {
	return &InsightRepository{DB: db}
}

// Create appends an insight row. Insights are never updated or deleted.
func (r *InsightRepository) Create(insight *model.AIInsight) error {
	return r.DB.Create(insight).Error
}

func (r *InsightRepository) ListByStudent(studentID uint, courseID *uint, limit int) ([]model.AIInsight, error) {
	var insights []model.AIInsight
	query := r.DB.Where("student_id = ?", studentID)
	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("generated_at desc").Find(&insights).Error
	return insights, err
}

func (r *InsightRepository) ListRiskAlerts(limit int) ([]model.AIInsight, error) {
	var insights []model.AIInsight
	query := r.DB.Where("insight_type = ?", model.InsightRiskAlert).Order("generated_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&insights).Error
	return insights, err
}
