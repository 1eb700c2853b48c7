package domain

import (
	"fmt"
	"sort"
	"time"
)

type PlanType string

const (
	PlanHousing    PlanType = "housing"
	PlanRoad       PlanType = "road"
	PlanCommercial PlanType = "commercial"
)

const dateLayout = "2006-01-02"

// DesignPlan is owned by the company registry; projects only hold a pointer to it.
type DesignPlan struct {
	ID             string            `json:"plan_id"`
	Type           PlanType          `json:"type"`
	Description    string            `json:"description"`
	AreaSqft       float64           `json:"area_sqft"`
	EstimatedCost  float64           `json:"estimated_cost"`
	Specifications map[string]string `json:"specifications"`
	Approved       bool              `json:"approved"`
	CreatedAt      time.Time         `json:"created_at" format:"date-time"`
	ApprovedAt     *time.Time        `json:"approved_at,omitempty" format:"date-time"`
}

// PlanDetails is a read-only copy of a plan, safe to hand to renderers.
type PlanDetails struct {
	ID             string            `json:"plan_id"`
	Type           PlanType          `json:"type"`
	Description    string            `json:"description"`
	AreaSqft       float64           `json:"area_sqft"`
	EstimatedCost  float64           `json:"estimated_cost"`
	Approved       bool              `json:"approved"`
	Specifications map[string]string `json:"specifications"`
	CreatedDate    string            `json:"created_date"`
}

func NewDesignPlan(id string, planType PlanType, description string, areaSqft, estimatedCost float64, now time.Time) *DesignPlan {
	return &DesignPlan{
		ID:             id,
		Type:           planType,
		Description:    description,
		AreaSqft:       areaSqft,
		EstimatedCost:  estimatedCost,
		Specifications: map[string]string{},
		CreatedAt:      now,
	}
}

// AddSpecification upserts a technical specification. It is allowed after approval.
func (p *DesignPlan) AddSpecification(key, value string) {
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	p.Specifications[key] = value
}

// Approve marks the plan approved and returns a confirmation line.
func (p *DesignPlan) Approve(now time.Time) string {
	p.Approved = true
	if p.ApprovedAt == nil {
		at := now
		p.ApprovedAt = &at
	}
	return fmt.Sprintf("Plan %s approved on %s", p.ID, now.Format(dateLayout))
}

// SpecificationKeys returns the specification keys in lexical order.
func (p *DesignPlan) SpecificationKeys() []string {
	keys := make([]string, 0, len(p.Specifications))
	for k := range p.Specifications {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *DesignPlan) Details() PlanDetails {
	specs := make(map[string]string, len(p.Specifications))
	for k, v := range p.Specifications {
		specs[k] = v
	}
	return PlanDetails{
		ID:             p.ID,
		Type:           p.Type,
		Description:    p.Description,
		AreaSqft:       p.AreaSqft,
		EstimatedCost:  p.EstimatedCost,
		Approved:       p.Approved,
		Specifications: specs,
		CreatedDate:    p.CreatedAt.Format(dateLayout),
	}
}
