package domain

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskCompleted TaskStatus = "Completed"
)

type Task struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Duration  int        `json:"duration_days"`
	Assignee  string     `json:"assignee,omitempty"`
	Status    TaskStatus `json:"status" enum:"Pending,Completed"`
	Completed bool       `json:"completed"`
}

// Complete marks the task done. Completing twice leaves it unchanged.
func (t *Task) Complete() {
	t.Completed = true
	t.Status = TaskCompleted
}

// Material is a priced snapshot: TotalCost is fixed when the material is recorded.
type Material struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	UnitCost  float64 `json:"unit_cost"`
	TotalCost float64 `json:"total_cost"`
}

func NewMaterial(id int, name string, quantity, unitCost float64, unit string) Material {
	return Material{
		ID:        id,
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		UnitCost:  unitCost,
		TotalCost: quantity * unitCost,
	}
}

type Worker struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	HourlyRate  float64 `json:"hourly_rate"`
	HoursWorked float64 `json:"hours_worked"`
}

func (w Worker) LaborCost() float64 {
	return w.HourlyRate * w.HoursWorked
}

type Equipment struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type MaintenanceWindow struct {
	At          time.Time `json:"at" format:"date-time"`
	Description string    `json:"description"`
}
