// Package company is the registry that owns design plans and projects and reports across them.
package company

import (
	"errors"
	"fmt"
	"time"

	"sitebook/internal/domain"
	"sitebook/internal/project"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate id")
)

type Company struct {
	Name string
	Now  func() time.Time

	plans      map[string]*domain.DesignPlan
	planOrder  []string
	projects   map[string]project.Site
	projectIDs []string
}

func New(name string) *Company {
	return &Company{
		Name:     name,
		Now:      time.Now,
		plans:    map[string]*domain.DesignPlan{},
		projects: map[string]project.Site{},
	}
}

func (c *Company) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// ProjectOptions are parameters shared by every project variant.
type ProjectOptions struct {
	ID       string
	Name     string
	Location string
	Budget   float64
}

type HousingOptions struct {
	ProjectOptions
	HousingType string
	Units       int
}

type RoadOptions struct {
	ProjectOptions
	RoadType string
	LengthKm float64
}

func (c *Company) CreateDesignPlan(id string, planType domain.PlanType, description string, areaSqft, estimatedCost float64) (*domain.DesignPlan, error) {
	if _, ok := c.plans[id]; ok {
		return nil, fmt.Errorf("design plan %s: %w", id, ErrDuplicateID)
	}
	plan := domain.NewDesignPlan(id, planType, description, areaSqft, estimatedCost, c.now())
	c.plans[id] = plan
	c.planOrder = append(c.planOrder, id)
	return plan, nil
}

func (c *Company) CreateProject(opts ProjectOptions) (*project.Project, error) {
	p := project.New(opts.ID, opts.Name, opts.Location, opts.Budget)
	if err := c.register(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Company) CreateHousingProject(opts HousingOptions) (*project.HousingProject, error) {
	h := project.NewHousing(opts.ID, opts.Name, opts.Location, opts.Budget, opts.HousingType, opts.Units)
	if err := c.register(h); err != nil {
		return nil, err
	}
	return h, nil
}

func (c *Company) CreateRoadProject(opts RoadOptions) (*project.RoadProject, error) {
	r := project.NewRoad(opts.ID, opts.Name, opts.Location, opts.Budget, opts.RoadType, opts.LengthKm)
	if err := c.register(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *Company) register(site project.Site) error {
	core := site.Core()
	if _, ok := c.projects[core.ID]; ok {
		return fmt.Errorf("project %s: %w", core.ID, ErrDuplicateID)
	}
	core.Now = c.now
	c.projects[core.ID] = site
	c.projectIDs = append(c.projectIDs, core.ID)
	return nil
}

func (c *Company) Plan(id string) (*domain.DesignPlan, error) {
	plan, ok := c.plans[id]
	if !ok {
		return nil, fmt.Errorf("design plan %s: %w", id, ErrNotFound)
	}
	return plan, nil
}

func (c *Company) Project(id string) (project.Site, error) {
	site, ok := c.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return site, nil
}

// AssignPlan links a registered plan to a registered project. The registry keeps ownership.
func (c *Company) AssignPlan(projectID, planID string) error {
	site, err := c.Project(projectID)
	if err != nil {
		return err
	}
	plan, err := c.Plan(planID)
	if err != nil {
		return err
	}
	site.Core().AssignDesignPlan(plan)
	return nil
}

// Plans returns the plans in creation order.
func (c *Company) Plans() []*domain.DesignPlan {
	res := make([]*domain.DesignPlan, 0, len(c.planOrder))
	for _, id := range c.planOrder {
		res = append(res, c.plans[id])
	}
	return res
}

// Projects returns every project in creation order.
func (c *Company) Projects() []project.Site {
	res := make([]project.Site, 0, len(c.projectIDs))
	for _, id := range c.projectIDs {
		res = append(res, c.projects[id])
	}
	return res
}

func (c *Company) projectsOfKind(kind project.Kind) []project.Site {
	var res []project.Site
	for _, site := range c.Projects() {
		if site.Kind() == kind {
			res = append(res, site)
		}
	}
	return res
}

func (c *Company) HousingProjects() []*project.HousingProject {
	var res []*project.HousingProject
	for _, site := range c.projectsOfKind(project.KindHousing) {
		res = append(res, site.(*project.HousingProject))
	}
	return res
}

func (c *Company) RoadProjects() []*project.RoadProject {
	var res []*project.RoadProject
	for _, site := range c.projectsOfKind(project.KindRoad) {
		res = append(res, site.(*project.RoadProject))
	}
	return res
}

func (c *Company) ListProjectInfo() []project.Info {
	res := make([]project.Info, 0, len(c.projectIDs))
	for _, site := range c.Projects() {
		res = append(res, site.Info())
	}
	return res
}

func (c *Company) ListSummaries() []project.Summary {
	res := make([]project.Summary, 0, len(c.projectIDs))
	for _, site := range c.Projects() {
		res = append(res, site.Summary())
	}
	return res
}

func (c *Company) ListPlanDetails() []domain.PlanDetails {
	res := make([]domain.PlanDetails, 0, len(c.planOrder))
	for _, plan := range c.Plans() {
		res = append(res, plan.Details())
	}
	return res
}
