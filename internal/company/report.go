package company

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"sitebook/internal/domain"
	"sitebook/internal/project"
)

// Overview counts projects and plans and rolls up cost across every project.
type Overview struct {
	CompanyName           string  `json:"company_name"`
	TotalProjects         int     `json:"total_projects"`
	TotalGenericProjects  int     `json:"total_generic_projects"`
	TotalHousingProjects  int     `json:"total_housing_projects"`
	TotalRoadProjects     int     `json:"total_road_projects"`
	TotalDesignPlans      int     `json:"total_design_plans"`
	ActiveGenericProjects int     `json:"active_generic_projects"`
	ActiveHousingProjects int     `json:"active_housing_projects"`
	ActiveRoadProjects    int     `json:"active_road_projects"`
	TotalActiveProjects   int     `json:"total_active_projects"`
	TotalBudget           float64 `json:"total_budget"`
	TotalCost             float64 `json:"total_cost"`
}

type PlanStats struct {
	Total              int                     `json:"total"`
	Approved           int                     `json:"approved"`
	Pending            int                     `json:"pending"`
	TotalEstimatedCost float64                 `json:"total_estimated_cost"`
	ByType             map[domain.PlanType]int `json:"by_type"`
}

func (c *Company) Overview() Overview {
	o := Overview{
		CompanyName:      c.Name,
		TotalDesignPlans: len(c.planOrder),
	}
	for _, site := range c.Projects() {
		core := site.Core()
		active := core.Status == project.StatusInProgress
		o.TotalProjects++
		o.TotalBudget += core.Budget
		o.TotalCost += core.TotalCost()
		switch site.Kind() {
		case project.KindHousing:
			o.TotalHousingProjects++
			if active {
				o.ActiveHousingProjects++
			}
		case project.KindRoad:
			o.TotalRoadProjects++
			if active {
				o.ActiveRoadProjects++
			}
		default:
			o.TotalGenericProjects++
			if active {
				o.ActiveGenericProjects++
			}
		}
	}
	o.TotalActiveProjects = o.ActiveGenericProjects + o.ActiveHousingProjects + o.ActiveRoadProjects
	return o
}

func (c *Company) PlanStats() PlanStats {
	s := PlanStats{ByType: map[domain.PlanType]int{}}
	for _, plan := range c.Plans() {
		s.Total++
		if plan.Approved {
			s.Approved++
		}
		s.TotalEstimatedCost += plan.EstimatedCost
		s.ByType[plan.Type]++
	}
	s.Pending = s.Total - s.Approved
	return s
}

const rule = "============================================================"

// GenerateReport renders the company report as plain text.
func (c *Company) GenerateReport() string {
	o := c.Overview()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s - CONSTRUCTION COMPANY REPORT\n%s\n\n", rule, strings.ToUpper(c.Name), rule)
	b.WriteString("SUMMARY:\n--------\n")
	fmt.Fprintf(&b, "Total Housing Projects: %d\n", o.TotalHousingProjects)
	fmt.Fprintf(&b, "Total Road Projects: %d\n", o.TotalRoadProjects)
	fmt.Fprintf(&b, "Total Other Projects: %d\n", o.TotalGenericProjects)
	fmt.Fprintf(&b, "Total Design Plans: %d\n", o.TotalDesignPlans)
	fmt.Fprintf(&b, "Active Projects: %d\n", o.TotalActiveProjects)
	fmt.Fprintf(&b, "Total Budget: %s\n", money(o.TotalBudget))
	fmt.Fprintf(&b, "Total Cost: %s\n", money(o.TotalCost))

	b.WriteString("\nHOUSING PROJECTS:\n----------------\n")
	b.WriteString(projectTable(c.projectsOfKind(project.KindHousing)))
	b.WriteString("\nROAD PROJECTS:\n-------------\n")
	b.WriteString(projectTable(c.projectsOfKind(project.KindRoad)))
	if generic := c.projectsOfKind(project.KindGeneric); len(generic) > 0 {
		b.WriteString("\nOTHER PROJECTS:\n--------------\n")
		b.WriteString(projectTable(generic))
	}
	b.WriteString("\nDESIGN PLANS:\n------------\n")
	b.WriteString(PlanTable(c.Plans()))

	fmt.Fprintf(&b, "\n%s\nGenerated on: %s\n%s\n", rule, c.now().Format("2006-01-02 15:04:05"), rule)
	return b.String()
}

func projectTable(sites []project.Site) string {
	if len(sites) == 0 {
		return "  (none)\n"
	}
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"ID", "Name", "Type", "Status", "Progress", "Cost", "Remaining"})
	for _, site := range sites {
		info := site.Info()
		s := site.Summary()
		kind := info.Type
		if info.Kind == project.KindRoad {
			kind = fmt.Sprintf("%s, %gkm", info.Type, info.LengthKm)
		}
		tw.AppendRow(table.Row{s.ID, s.Name, kind, s.Status, s.Progress, money(s.TotalCost), money(s.RemainingBudget)})
	}
	return tw.Render() + "\n"
}

// PlanTable renders design plans one row each.
func PlanTable(plans []*domain.DesignPlan) string {
	if len(plans) == 0 {
		return "  (none)\n"
	}
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Plan", "Type", "Description", "Area (sq ft)", "Estimated Cost", "Approved", "Specs"})
	for _, plan := range plans {
		approved := "no"
		if plan.Approved {
			approved = "yes"
		}
		tw.AppendRow(table.Row{plan.ID, plan.Type, plan.Description, fmt.Sprintf("%.1f", plan.AreaSqft), money(plan.EstimatedCost), approved, len(plan.Specifications)})
	}
	return tw.Render() + "\n"
}

// money formats an amount as $1,234,567.89; negative amounts keep their sign.
func money(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}
