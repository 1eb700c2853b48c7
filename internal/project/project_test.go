package project

import (
	"errors"
	"testing"
	"time"

	"sitebook/internal/domain"
)

var (
	_ Site = (*Project)(nil)
	_ Site = (*HousingProject)(nil)
	_ Site = (*RoadProject)(nil)
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
}

func TestAddTaskAssignsSequentialIDs(t *testing.T) {
	p := New("P-1", "Depot", "Leeds", 1000)
	for i := 1; i <= 5; i++ {
		task := p.AddTask("step", 3, "crew")
		if task.ID != i {
			t.Fatalf("call %d: expected id %d, got %d", i, i, task.ID)
		}
		if task.Status != domain.TaskPending {
			t.Fatalf("new task should be pending, got %s", task.Status)
		}
	}
	if len(p.Tasks()) != 5 {
		t.Fatalf("expected 5 tasks, got %d", len(p.Tasks()))
	}
}

func TestProgress(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		completed int
		want      int
	}{
		{"no tasks", 0, 0, 0},
		{"none done", 4, 0, 0},
		{"one of three", 3, 1, 33},
		{"two of three", 3, 2, 67},
		{"half", 2, 1, 50},
		{"one of eight", 8, 1, 13},
		{"all", 3, 3, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New("P-1", "Depot", "", 0)
			for i := 0; i < tc.total; i++ {
				p.AddTask("step", 1, "")
			}
			for id := 1; id <= tc.completed; id++ {
				p.CompleteTask(id)
			}
			if got := p.Progress(); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCompleteTask(t *testing.T) {
	p := New("P-1", "Depot", "", 0)
	p.AddTask("Foundation", 10, "Ann")
	p.AddTask("Framing", 15, "Bo")

	if p.CompleteTask(7) {
		t.Fatalf("unknown id must report false")
	}
	for _, task := range p.Tasks() {
		if task.Completed {
			t.Fatalf("unknown id must not mutate tasks")
		}
	}
	if !p.CompleteTask(2) || !p.CompleteTask(2) {
		t.Fatalf("completing an existing task must report true, also when repeated")
	}
	task := p.Tasks()[1]
	if !task.Completed || task.Status != domain.TaskCompleted {
		t.Fatalf("unexpected task state %+v", task)
	}
	if p.Tasks()[0].Completed {
		t.Fatalf("other tasks must stay pending")
	}
}

func TestCostAggregation(t *testing.T) {
	p := New("P-1", "Depot", "", 500000)
	if p.TotalMaterialCost() != 0 || p.TotalLaborCost() != 0 {
		t.Fatalf("empty project should cost 0")
	}
	p.AddMaterial("Concrete", 100, 150)
	p.AddMaterial("Steel", 50, 500)
	p.AddMaterial("Gravel", 0, 80)
	p.AddMaterial("Donated timber", 40, 0)
	if got := p.TotalMaterialCost(); got != 40000 {
		t.Fatalf("expected 40000, got %v", got)
	}

	w := p.AddWorker("Ann", "Mason", 30)
	p.AddWorker("Bo", "Electrician", 45)
	if p.TotalLaborCost() != 0 {
		t.Fatalf("labor cost should be 0 while no hours are logged")
	}
	if p.SetHoursWorked(9, 10) {
		t.Fatalf("unknown worker must report false")
	}
	if !p.SetHoursWorked(w.ID, 10) {
		t.Fatalf("expected hours to be recorded")
	}
	if got := p.TotalLaborCost(); got != 300 {
		t.Fatalf("expected 300, got %v", got)
	}
	if got := p.TotalCost(); got != 40300 {
		t.Fatalf("expected 40300, got %v", got)
	}
}

func TestSummaryRemainingBudgetMayGoNegative(t *testing.T) {
	p := New("P-1", "Kiosk", "Hull", 1000)
	p.AddMaterial("Glass", 10, 150)
	w := p.AddWorker("Ann", "Glazier", 20)
	p.SetHoursWorked(w.ID, 5)
	p.AddTask("Fit", 1, "Ann")
	p.CompleteTask(1)

	s := p.Summary()
	if s.MaterialCost != 1500 || s.LaborCost != 100 || s.TotalCost != 1600 {
		t.Fatalf("unexpected costs %+v", s)
	}
	if s.RemainingBudget != -600 {
		t.Fatalf("expected -600, got %v", s.RemainingBudget)
	}
	if s.Progress != "100%" || s.Tasks != 1 || s.CompletedTasks != 1 || s.Workers != 1 {
		t.Fatalf("unexpected counts %+v", s)
	}
	if s.Kind != KindGeneric || s.Status != StatusPlanning {
		t.Fatalf("unexpected identity %+v", s)
	}
}

func TestLifecycleScenario(t *testing.T) {
	p := New("P-1", "Office Block", "Bristol", 500000)
	p.Now = fixedClock()
	p.AddMaterial("Concrete", 100, 150)
	p.AddMaterial("Steel", 50, 500)
	p.AddTask("Foundation", 10, "Ann")
	p.AddTask("Framing", 15, "Bo")
	p.AddTask("Roofing", 5, "Cy")
	p.CompleteTask(1)

	if p.TotalMaterialCost() != 40000 {
		t.Fatalf("expected 40000, got %v", p.TotalMaterialCost())
	}
	if p.Progress() != 33 {
		t.Fatalf("expected 33, got %d", p.Progress())
	}
	if p.StartedAt != nil || p.EndedAt != nil {
		t.Fatalf("timestamps must be unset before the lifecycle starts")
	}
	p.Start()
	if p.Status != StatusInProgress || p.StartedAt == nil {
		t.Fatalf("unexpected state after start: %s", p.Status)
	}
	if string(p.Status) != "In Progress" {
		t.Fatalf("unexpected status label %q", p.Status)
	}
	p.Complete()
	if p.Status != StatusCompleted || p.EndedAt == nil {
		t.Fatalf("unexpected state after complete: %s", p.Status)
	}
}

func TestCompleteWithoutStart(t *testing.T) {
	p := New("P-1", "Shed", "", 0)
	p.Complete()
	if p.Status != StatusCompleted || p.StartedAt != nil || p.EndedAt == nil {
		t.Fatalf("complete before start should be allowed: %+v", p.Summary())
	}
}

func TestStartOverwritesTimestamp(t *testing.T) {
	p := New("P-1", "Shed", "", 0)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.Now = func() time.Time { return at }
	p.Start()
	at = at.Add(time.Hour)
	p.Start()
	if !p.StartedAt.Equal(at) {
		t.Fatalf("expected start time to be overwritten, got %v", p.StartedAt)
	}
}

func TestAssignedPlanIsShared(t *testing.T) {
	plan := domain.NewDesignPlan("PLAN-001", domain.PlanHousing, "Homes", 1000, 100, time.Now())
	p := New("P-1", "Homes", "", 0)
	p.AssignDesignPlan(plan)
	if p.DesignPlan().Approved {
		t.Fatalf("unapproved plan should be assignable")
	}
	plan.Approve(time.Now())
	if !p.DesignPlan().Approved {
		t.Fatalf("approval after assignment must be visible through the project")
	}
	if p.Summary().DesignPlanID != "PLAN-001" || !p.Info().HasDesignPlan {
		t.Fatalf("summary should reference the plan")
	}
}

func TestIDsAreScopedPerProject(t *testing.T) {
	a := New("A", "A", "", 0)
	b := New("B", "B", "", 0)
	if a.AddTask("x", 1, "").ID != 1 || b.AddTask("y", 1, "").ID != 1 {
		t.Fatalf("task ids should restart at 1 in each project")
	}
	if a.AddMaterial("m", 1, 1).ID != 1 || a.AddWorker("w", "r", 1).ID != 1 {
		t.Fatalf("each collection numbers independently")
	}
}

func TestHousingMaterialsCarryNoCost(t *testing.T) {
	h := NewHousing("PROJ-001", "Oakwood", "Austin", 200000, HousingResidential, 12)
	m := h.AddMaterials("concrete", 200, "cubic yards")
	if m.ID != 1 || m.Unit != "cubic yards" || m.TotalCost != 0 {
		t.Fatalf("unexpected material %+v", m)
	}
	if h.Summary().MaterialCost != 0 {
		t.Fatalf("housing materials without unit cost must not add cost")
	}
	h.AddMaterial("steel", 10, 900)
	if h.Summary().MaterialCost != 9000 {
		t.Fatalf("priced materials should still count, got %v", h.Summary().MaterialCost)
	}
	info := h.Info()
	if info.Kind != KindHousing || info.Type != HousingResidential || info.Units != 12 || info.MaterialsCount != 2 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestHousingStartConstruction(t *testing.T) {
	h := NewHousing("PROJ-001", "Oakwood", "", 0, HousingApartment, 24)
	h.Now = fixedClock()
	if _, err := h.StartConstruction(10); !errors.Is(err, ErrPlanRequired) {
		t.Fatalf("expected ErrPlanRequired, got %v", err)
	}

	road := domain.NewDesignPlan("DP-R", domain.PlanRoad, "Road", 1, 1, time.Now())
	road.Approve(time.Now())
	h.AssignDesignPlan(road)
	if _, err := h.StartConstruction(10); !errors.Is(err, ErrPlanIncompatible) {
		t.Fatalf("expected ErrPlanIncompatible, got %v", err)
	}

	plan := domain.NewDesignPlan("DP-H", domain.PlanHousing, "Homes", 1, 1, time.Now())
	h.AssignDesignPlan(plan)
	if _, err := h.StartConstruction(10); !errors.Is(err, ErrPlanNotApproved) {
		t.Fatalf("expected ErrPlanNotApproved, got %v", err)
	}
	if h.Status != StatusPlanning {
		t.Fatalf("failed start must not change status")
	}

	plan.Approve(time.Now())
	msg, err := h.StartConstruction(25)
	if err != nil {
		t.Fatalf("start construction: %v", err)
	}
	if msg != "Construction started for Oakwood with 25 workers" {
		t.Fatalf("unexpected message %q", msg)
	}
	if h.Status != StatusInProgress || h.WorkersAssigned != 25 || h.Info().WorkersAssigned != 25 {
		t.Fatalf("unexpected state %+v", h.Info())
	}
	if got := h.CompleteProject(); got != "Housing project Oakwood completed on 2024-01-01" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRoadDefaultsAndSpecs(t *testing.T) {
	r := NewRoad("RD001", "Central Highway", "North", 1500000, RoadHighway, 15.5)
	if r.Lanes != 2 || r.Surface != "asphalt" {
		t.Fatalf("unexpected defaults %+v", r.Specs())
	}
	r.SetRoadSpecs(4, "concrete")
	r.AddEquipment("excavator", 2)
	r.AddEquipment("roller", 3)
	e := r.AddEquipment("paver", 1)
	if e.ID != 3 || len(r.Equipment()) != 3 {
		t.Fatalf("unexpected equipment %+v", r.Equipment())
	}
	info := r.Info()
	if info.Kind != KindRoad || info.Lanes != 4 || info.Surface != "concrete" || info.LengthKm != 15.5 || info.EquipmentCount != 3 {
		t.Fatalf("unexpected info %+v", info)
	}
	if r.Summary().Kind != KindRoad {
		t.Fatalf("summary should carry the road kind")
	}
}

func TestRoadMaintenance(t *testing.T) {
	r := NewRoad("RD001", "Ring Road", "", 0, RoadMainRoad, 4)
	r.Now = fixedClock()
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if err := r.ScheduleMaintenance(at, "resurface"); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}
	if _, err := r.ScheduleRecurringMaintenance("0 6 1 * *", at, 2, "inspect"); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}

	r.CompleteProject()
	if err := r.ScheduleMaintenance(at, "resurface"); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	added, err := r.ScheduleRecurringMaintenance("0 6 1 * *", from, 3, "inspect drains")
	if err != nil {
		t.Fatalf("schedule recurring: %v", err)
	}
	want := []time.Time{
		time.Date(2025, 2, 1, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 6, 0, 0, 0, time.UTC),
	}
	if len(added) != len(want) {
		t.Fatalf("expected %d windows, got %d", len(want), len(added))
	}
	for i, w := range want {
		if !added[i].At.Equal(w) {
			t.Fatalf("window %d: expected %v, got %v", i, w, added[i].At)
		}
	}
	schedule := r.MaintenanceSchedule()
	if len(schedule) != 4 || schedule[0].Description != "resurface" {
		t.Fatalf("unexpected schedule %+v", schedule)
	}
	if r.Info().MaintenanceCount != 4 {
		t.Fatalf("info should count maintenance windows")
	}

	if _, err := r.ScheduleRecurringMaintenance("every tuesday", from, 1, "x"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRoadRecurringMaintenanceNonPositiveCount(t *testing.T) {
	r := NewRoad("RD002", "Bypass", "", 0, RoadStreet, 2)
	r.CompleteProject()
	from := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, count := range []int{0, -1} {
		added, err := r.ScheduleRecurringMaintenance("0 6 1 * *", from, count, "inspect")
		if err != nil {
			t.Fatalf("count %d: %v", count, err)
		}
		if len(added) != 0 {
			t.Fatalf("count %d: expected no windows, got %+v", count, added)
		}
	}
	if len(r.MaintenanceSchedule()) != 0 {
		t.Fatalf("schedule should stay empty, got %+v", r.MaintenanceSchedule())
	}
}

func TestRoadStartConstructionNeedsRoadPlan(t *testing.T) {
	r := NewRoad("RD001", "Central Highway", "", 0, RoadHighway, 15.5)
	plan := domain.NewDesignPlan("DP002", domain.PlanRoad, "Highway", 100000, 1500000, time.Now())
	plan.Approve(time.Now())
	r.AssignDesignPlan(plan)
	msg, err := r.StartConstruction(40)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if msg != "Road construction started for Central Highway with 40 workers" || r.Status != StatusInProgress {
		t.Fatalf("unexpected result %q %s", msg, r.Status)
	}
}
