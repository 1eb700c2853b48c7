package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sitebook/internal/company"
	"sitebook/internal/config"
	"sitebook/internal/domain"
	"sitebook/internal/logging"
	"sitebook/internal/project"
)

// Options control how a portfolio is replayed into a registry.
type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
}

// Build replays a portfolio into a fresh company registry: plans first, then projects in
// file order, each followed by its lifecycle. Projects without an id get a stable uuid
// derived from the company and project names.
func Build(p *config.Portfolio, opts Options) (*company.Company, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	c := company.New(p.Company.Name)
	if opts.Now != nil {
		c.Now = opts.Now
	}

	for _, pc := range p.Plans {
		plan, err := c.CreateDesignPlan(pc.ID, domain.PlanType(pc.Type), pc.Description, pc.AreaSqft, pc.EstimatedCost)
		if err != nil {
			return nil, err
		}
		for k, v := range pc.Specifications {
			plan.AddSpecification(k, v)
		}
		if pc.Approved {
			plan.Approve(c.Now())
		}
		log.Debug("design plan loaded", "plan_id", plan.ID, "type", plan.Type, "approved", plan.Approved)
	}

	for i, pc := range p.Projects {
		if pc.ID == "" {
			pc.ID = ProjectID(p.Company.Name, pc.Name)
		}
		if err := buildProject(c, pc, log); err != nil {
			return nil, fmt.Errorf("projects[%d] %s: %w", i, pc.ID, err)
		}
	}
	return c, nil
}

// ProjectID derives a deterministic project id for entries that do not name one.
func ProjectID(companyName, projectName string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(companyName+"|"+projectName)).String()
}

func buildProject(c *company.Company, pc config.ProjectConfig, log *slog.Logger) error {
	base := company.ProjectOptions{ID: pc.ID, Name: pc.Name, Location: pc.Location, Budget: pc.Budget}
	var (
		site    project.Site
		housing *project.HousingProject
		road    *project.RoadProject
		err     error
	)
	switch pc.Kind {
	case config.KindHousing:
		housing, err = c.CreateHousingProject(company.HousingOptions{ProjectOptions: base, HousingType: pc.HousingType, Units: pc.Units})
		site = housing
	case config.KindRoad:
		road, err = c.CreateRoadProject(company.RoadOptions{ProjectOptions: base, RoadType: pc.RoadType, LengthKm: pc.LengthKm})
		site = road
	default:
		site, err = c.CreateProject(base)
	}
	if err != nil {
		return err
	}
	core := site.Core()

	for _, t := range pc.Tasks {
		task := core.AddTask(t.Name, t.Duration, t.Assignee)
		if t.Completed {
			core.CompleteTask(task.ID)
		}
	}
	for _, m := range pc.Materials {
		if housing != nil && m.UnitCost == 0 {
			housing.AddMaterials(m.Name, m.Quantity, m.Unit)
			continue
		}
		core.AddMaterial(m.Name, m.Quantity, m.UnitCost)
	}
	for _, w := range pc.Workers {
		worker := core.AddWorker(w.Name, w.Role, w.HourlyRate)
		if w.HoursWorked != 0 {
			core.SetHoursWorked(worker.ID, w.HoursWorked)
		}
	}
	if road != nil {
		lanes, surface := road.Lanes, road.Surface
		if pc.Lanes > 0 {
			lanes = pc.Lanes
		}
		if pc.Surface != "" {
			surface = pc.Surface
		}
		road.SetRoadSpecs(lanes, surface)
		for _, e := range pc.Equipment {
			road.AddEquipment(e.Name, e.Quantity)
		}
	}
	if pc.Plan != "" {
		if err := c.AssignPlan(core.ID, pc.Plan); err != nil {
			return err
		}
	}

	if err := replayLifecycle(site, housing, road, pc); err != nil {
		return err
	}
	if road != nil {
		if err := scheduleMaintenance(road, pc.Maintenance, c.Now()); err != nil {
			return err
		}
	}
	log.Debug("project loaded",
		"project_id", core.ID,
		"kind", site.Kind(),
		"status", core.Status,
		"tasks", len(core.Tasks()),
		"total_cost", core.TotalCost(),
	)
	return nil
}

func replayLifecycle(site project.Site, housing *project.HousingProject, road *project.RoadProject, pc config.ProjectConfig) error {
	core := site.Core()
	if pc.Crew > 0 {
		var err error
		switch {
		case housing != nil:
			_, err = housing.StartConstruction(pc.Crew)
		case road != nil:
			_, err = road.StartConstruction(pc.Crew)
		}
		if err != nil {
			return err
		}
	}
	switch pc.Status {
	case "in_progress":
		if core.Status == project.StatusPlanning {
			core.Start()
		}
	case "completed":
		core.Complete()
	}
	return nil
}

func scheduleMaintenance(road *project.RoadProject, windows []config.MaintenanceConfig, now time.Time) error {
	for i, m := range windows {
		if m.Cron != "" {
			from := now
			if m.From != "" {
				t, err := parseTime(m.From)
				if err != nil {
					return fmt.Errorf("maintenance[%d].from: %w", i, err)
				}
				from = t
			}
			count := m.Count
			if count <= 0 {
				count = 1
			}
			if _, err := road.ScheduleRecurringMaintenance(m.Cron, from, count, m.Description); err != nil {
				return fmt.Errorf("maintenance[%d]: %w", i, err)
			}
			continue
		}
		at, err := parseTime(m.At)
		if err != nil {
			return fmt.Errorf("maintenance[%d].at: %w", i, err)
		}
		if err := road.ScheduleMaintenance(at, m.Description); err != nil {
			return fmt.Errorf("maintenance[%d]: %w", i, err)
		}
	}
	return nil
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want YYYY-MM-DD or RFC3339", v)
	}
	return t, nil
}
