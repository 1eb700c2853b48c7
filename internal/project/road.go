package project

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"sitebook/internal/domain"
)

const (
	RoadHighway  = "highway"
	RoadMainRoad = "main_road"
	RoadStreet   = "street"
)

const (
	defaultLanes   = 2
	defaultSurface = "asphalt"
)

// maintenanceParser accepts standard 5-field cron expressions (minute, hour, dom, month, dow).
var maintenanceParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

type RoadSpecs struct {
	Lanes       int                        `json:"lanes"`
	Surface     string                     `json:"surface"`
	RoadType    string                     `json:"road_type"`
	Maintenance []domain.MaintenanceWindow `json:"maintenance,omitempty"`
}

type RoadProject struct {
	*Project
	RoadType        string
	LengthKm        float64
	Lanes           int
	Surface         string
	WorkersAssigned int

	equipment   []*domain.Equipment
	maintenance []domain.MaintenanceWindow
}

func NewRoad(id, name, location string, budget float64, roadType string, lengthKm float64) *RoadProject {
	return &RoadProject{
		Project:  New(id, name, location, budget),
		RoadType: roadType,
		LengthKm: lengthKm,
		Lanes:    defaultLanes,
		Surface:  defaultSurface,
	}
}

func (r *RoadProject) Kind() Kind { return KindRoad }

func (r *RoadProject) SetRoadSpecs(lanes int, surface string) {
	r.Lanes = lanes
	r.Surface = surface
}

func (r *RoadProject) Specs() RoadSpecs {
	return RoadSpecs{
		Lanes:       r.Lanes,
		Surface:     r.Surface,
		RoadType:    r.RoadType,
		Maintenance: r.MaintenanceSchedule(),
	}
}

func (r *RoadProject) AddEquipment(name string, quantity int) *domain.Equipment {
	e := &domain.Equipment{
		ID:       len(r.equipment) + 1,
		Name:     name,
		Quantity: quantity,
	}
	r.equipment = append(r.equipment, e)
	return e
}

func (r *RoadProject) Equipment() []*domain.Equipment {
	return append([]*domain.Equipment(nil), r.equipment...)
}

// ScheduleMaintenance appends a maintenance window. Only completed roads can be scheduled.
func (r *RoadProject) ScheduleMaintenance(at time.Time, description string) error {
	if r.Status != StatusCompleted {
		return fmt.Errorf("schedule maintenance for %s: %w", r.Name, ErrNotCompleted)
	}
	r.maintenance = append(r.maintenance, domain.MaintenanceWindow{At: at, Description: description})
	return nil
}

// ScheduleRecurringMaintenance appends the next count occurrences of a cron expression after from.
// A count of zero or less schedules nothing.
func (r *RoadProject) ScheduleRecurringMaintenance(expr string, from time.Time, count int, description string) ([]domain.MaintenanceWindow, error) {
	if r.Status != StatusCompleted {
		return nil, fmt.Errorf("schedule maintenance for %s: %w", r.Name, ErrNotCompleted)
	}
	sched, err := maintenanceParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse maintenance schedule %q: %w", expr, err)
	}
	if count <= 0 {
		return nil, nil
	}
	added := make([]domain.MaintenanceWindow, 0, count)
	next := from
	for i := 0; i < count; i++ {
		next = sched.Next(next)
		if next.IsZero() {
			break
		}
		added = append(added, domain.MaintenanceWindow{At: next, Description: description})
	}
	r.maintenance = append(r.maintenance, added...)
	return added, nil
}

func (r *RoadProject) MaintenanceSchedule() []domain.MaintenanceWindow {
	return append([]domain.MaintenanceWindow(nil), r.maintenance...)
}

// StartConstruction requires an approved road plan before the crew is put to work.
func (r *RoadProject) StartConstruction(workers int) (string, error) {
	if err := checkPlan(r.DesignPlan(), domain.PlanRoad); err != nil {
		return "", err
	}
	r.WorkersAssigned = workers
	r.Start()
	return fmt.Sprintf("Road construction started for %s with %d workers", r.Name, workers), nil
}

func (r *RoadProject) CompleteProject() string {
	r.Complete()
	return fmt.Sprintf("Road project %s completed on %s", r.Name, r.EndedAt.Format("2006-01-02"))
}

func (r *RoadProject) Summary() Summary {
	s := r.Project.Summary()
	s.Kind = KindRoad
	return s
}

func (r *RoadProject) Info() Info {
	info := r.Project.Info()
	info.Kind = KindRoad
	info.Type = r.RoadType
	info.LengthKm = r.LengthKm
	info.Lanes = r.Lanes
	info.Surface = r.Surface
	info.WorkersAssigned = r.WorkersAssigned
	info.EquipmentCount = len(r.equipment)
	info.MaintenanceCount = len(r.maintenance)
	return info
}
