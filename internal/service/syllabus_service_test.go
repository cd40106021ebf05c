package service

import (
	"errors"
	"testing"

	"advising_backend/internal/model"
	"advising_backend/internal/util"
)

func TestValidateBreakdown(t *testing.T) {
	valid := model.GradingBreakdown{
		model.PeriodPrelim:  {"quiz": 40, "exam": 60},
		model.PeriodMidterm: {"quiz": 30, "exam": 50, "activity": 20},
	}
	if err := ValidateBreakdown(valid); err != nil {
		t.Errorf("valid breakdown rejected: %v", err)
	}
}

func TestValidateBreakdownRejectsBadSum(t *testing.T) {
	bad := model.GradingBreakdown{
		model.PeriodPrelim: {"quiz": 40, "exam": 50},
	}
	if err := ValidateBreakdown(bad); !errors.Is(err, util.ErrBreakdownWeights) {
		t.Errorf("err = %v, want ErrBreakdownWeights", err)
	}
}

func TestValidateBreakdownTolerance(t *testing.T) {
	// Floating point weights that sum to 100 within the tolerance.
	breakdown := model.GradingBreakdown{
		model.PeriodFinal: {"quiz": 33.33, "exam": 33.33, "project": 33.34},
	}
	if err := ValidateBreakdown(breakdown); err != nil {
		t.Errorf("tolerant sum rejected: %v", err)
	}
}

func TestValidateBreakdownEmpty(t *testing.T) {
	if err := ValidateBreakdown(nil); err != nil {
		t.Errorf("nil breakdown should pass, got %v", err)
	}
	if err := ValidateBreakdown(model.GradingBreakdown{}); err != nil {
		t.Errorf("empty breakdown should pass, got %v", err)
	}
}
