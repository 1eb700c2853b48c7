// Package project models construction projects: the shared base with its task, material and
// worker ledgers, plus the housing and road variants.
package project

import (
	"fmt"
	"math"
	"time"

	"sitebook/internal/domain"
)

type Status string

const (
	StatusPlanning   Status = "Planning"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

type Kind string

const (
	KindGeneric Kind = "generic"
	KindHousing Kind = "housing"
	KindRoad    Kind = "road"
)

// Site is implemented by every project variant held in a company registry.
type Site interface {
	Core() *Project
	Kind() Kind
	Info() Info
	Summary() Summary
}

// Project holds append-only collections; every aggregate is recomputed on read.
type Project struct {
	ID        string
	Name      string
	Location  string
	Budget    float64
	Status    Status
	StartedAt *time.Time
	EndedAt   *time.Time
	Now       func() time.Time

	tasks     []*domain.Task
	materials []*domain.Material
	workers   []*domain.Worker
	plan      *domain.DesignPlan
}

func New(id, name, location string, budget float64) *Project {
	return &Project{
		ID:       id,
		Name:     name,
		Location: location,
		Budget:   budget,
		Status:   StatusPlanning,
		Now:      time.Now,
	}
}

func (p *Project) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Project) Core() *Project { return p }
func (p *Project) Kind() Kind     { return KindGeneric }

func (p *Project) AddTask(name string, duration int, assignee string) *domain.Task {
	t := &domain.Task{
		ID:       len(p.tasks) + 1,
		Name:     name,
		Duration: duration,
		Assignee: assignee,
		Status:   domain.TaskPending,
	}
	p.tasks = append(p.tasks, t)
	return t
}

func (p *Project) AddMaterial(name string, quantity, unitCost float64) *domain.Material {
	return p.addMaterial(name, quantity, unitCost, "")
}

func (p *Project) addMaterial(name string, quantity, unitCost float64, unit string) *domain.Material {
	m := domain.NewMaterial(len(p.materials)+1, name, quantity, unitCost, unit)
	p.materials = append(p.materials, &m)
	return &m
}

func (p *Project) AddWorker(name, role string, hourlyRate float64) *domain.Worker {
	w := &domain.Worker{
		ID:         len(p.workers) + 1,
		Name:       name,
		Role:       role,
		HourlyRate: hourlyRate,
	}
	p.workers = append(p.workers, w)
	return w
}

// CompleteTask reports whether a task with the id exists; unknown ids change nothing.
func (p *Project) CompleteTask(id int) bool {
	for _, t := range p.tasks {
		if t.ID == id {
			t.Complete()
			return true
		}
	}
	return false
}

// SetHoursWorked records the hours logged by a worker. It returns false for unknown ids.
func (p *Project) SetHoursWorked(workerID int, hours float64) bool {
	for _, w := range p.workers {
		if w.ID == workerID {
			w.HoursWorked = hours
			return true
		}
	}
	return false
}

func (p *Project) Tasks() []*domain.Task {
	return append([]*domain.Task(nil), p.tasks...)
}

func (p *Project) Materials() []*domain.Material {
	return append([]*domain.Material(nil), p.materials...)
}

func (p *Project) Workers() []*domain.Worker {
	return append([]*domain.Worker(nil), p.workers...)
}

func (p *Project) TotalMaterialCost() float64 {
	var total float64
	for _, m := range p.materials {
		total += m.TotalCost
	}
	return total
}

func (p *Project) TotalLaborCost() float64 {
	var total float64
	for _, w := range p.workers {
		total += w.LaborCost()
	}
	return total
}

func (p *Project) TotalCost() float64 {
	return p.TotalMaterialCost() + p.TotalLaborCost()
}

func (p *Project) RemainingBudget() float64 {
	return p.Budget - p.TotalCost()
}

func (p *Project) completedTasks() int {
	n := 0
	for _, t := range p.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Progress returns the share of completed tasks as a whole percentage.
func (p *Project) Progress() int {
	if len(p.tasks) == 0 {
		return 0
	}
	return int(math.Round(float64(p.completedTasks()) / float64(len(p.tasks)) * 100))
}

// Start moves the project to In Progress. Repeated calls overwrite the start time.
func (p *Project) Start() {
	now := p.now()
	p.Status = StatusInProgress
	p.StartedAt = &now
}

// Complete moves the project to Completed, with or without a prior Start.
func (p *Project) Complete() {
	now := p.now()
	p.Status = StatusCompleted
	p.EndedAt = &now
}

// AssignDesignPlan keeps a reference to a registry-owned plan. Approval is not checked here.
func (p *Project) AssignDesignPlan(plan *domain.DesignPlan) {
	p.plan = plan
}

func (p *Project) DesignPlan() *domain.DesignPlan {
	return p.plan
}

// Summary is the full cost and progress snapshot of a project.
type Summary struct {
	ID              string     `json:"project_id"`
	Name            string     `json:"name"`
	Location        string     `json:"location,omitempty"`
	Kind            Kind       `json:"kind"`
	Status          Status     `json:"status"`
	Progress        string     `json:"progress"`
	Tasks           int        `json:"tasks"`
	CompletedTasks  int        `json:"completed_tasks"`
	Workers         int        `json:"workers"`
	Materials       int        `json:"materials"`
	MaterialCost    float64    `json:"material_cost"`
	LaborCost       float64    `json:"labor_cost"`
	TotalCost       float64    `json:"total_cost"`
	Budget          float64    `json:"budget"`
	RemainingBudget float64    `json:"remaining_budget"`
	DesignPlanID    string     `json:"design_plan_id,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty" format:"date-time"`
	EndedAt         *time.Time `json:"ended_at,omitempty" format:"date-time"`
}

func (p *Project) Summary() Summary {
	material := p.TotalMaterialCost()
	labor := p.TotalLaborCost()
	s := Summary{
		ID:              p.ID,
		Name:            p.Name,
		Location:        p.Location,
		Kind:            KindGeneric,
		Status:          p.Status,
		Progress:        fmt.Sprintf("%d%%", p.Progress()),
		Tasks:           len(p.tasks),
		CompletedTasks:  p.completedTasks(),
		Workers:         len(p.workers),
		Materials:       len(p.materials),
		MaterialCost:    material,
		LaborCost:       labor,
		TotalCost:       material + labor,
		Budget:          p.Budget,
		RemainingBudget: p.Budget - (material + labor),
		StartedAt:       p.StartedAt,
		EndedAt:         p.EndedAt,
	}
	if p.plan != nil {
		s.DesignPlanID = p.plan.ID
	}
	return s
}

// Info is the compact listing row for a project. Variant fields are left zero when unused.
type Info struct {
	ID               string  `json:"project_id"`
	Name             string  `json:"name"`
	Kind             Kind    `json:"kind"`
	Type             string  `json:"type,omitempty"`
	Status           Status  `json:"status"`
	Progress         int     `json:"progress"`
	Workers          int     `json:"workers"`
	WorkersAssigned  int     `json:"workers_assigned,omitempty"`
	MaterialsCount   int     `json:"materials_count"`
	HasDesignPlan    bool    `json:"has_design_plan"`
	Units            int     `json:"units,omitempty"`
	LengthKm         float64 `json:"length_km,omitempty"`
	Lanes            int     `json:"lanes,omitempty"`
	Surface          string  `json:"surface,omitempty"`
	EquipmentCount   int     `json:"equipment_count,omitempty"`
	MaintenanceCount int     `json:"maintenance_count,omitempty"`
}

func (p *Project) Info() Info {
	return Info{
		ID:             p.ID,
		Name:           p.Name,
		Kind:           KindGeneric,
		Status:         p.Status,
		Progress:       p.Progress(),
		Workers:        len(p.workers),
		MaterialsCount: len(p.materials),
		HasDesignPlan:  p.plan != nil,
	}
}
