package project

import (
	"errors"
	"fmt"

	"sitebook/internal/domain"
)

var (
	ErrPlanRequired     = errors.New("approved design plan required to start construction")
	ErrPlanNotApproved  = errors.New("design plan must be approved first")
	ErrPlanIncompatible = errors.New("design plan type is not compatible with project")
	ErrNotCompleted     = errors.New("project must be completed first")
)

// checkPlan validates the plan a variant is about to build from.
func checkPlan(plan *domain.DesignPlan, want domain.PlanType) error {
	if plan == nil {
		return ErrPlanRequired
	}
	if !plan.Approved {
		return fmt.Errorf("plan %s: %w", plan.ID, ErrPlanNotApproved)
	}
	if plan.Type != want {
		return fmt.Errorf("plan %s has type %q, want %q: %w", plan.ID, plan.Type, want, ErrPlanIncompatible)
	}
	return nil
}
