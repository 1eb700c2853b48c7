package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileName = "sitebook.yml"

// Portfolio models sitebook.yml: a company with its design plans and projects.
type Portfolio struct {
	Company struct {
		Name string `yaml:"name"`
	} `yaml:"company"`
	Plans    []PlanConfig    `yaml:"plans"`
	Projects []ProjectConfig `yaml:"projects"`
}

type PlanConfig struct {
	ID             string            `yaml:"id"`
	Type           string            `yaml:"type"`
	Description    string            `yaml:"description"`
	AreaSqft       float64           `yaml:"area_sqft"`
	EstimatedCost  float64           `yaml:"estimated_cost"`
	Approved       bool              `yaml:"approved"`
	Specifications map[string]string `yaml:"specifications"`
}

type ProjectConfig struct {
	ID       string  `yaml:"id"`
	Kind     string  `yaml:"kind"`
	Name     string  `yaml:"name"`
	Location string  `yaml:"location"`
	Budget   float64 `yaml:"budget"`
	Plan     string  `yaml:"plan"`
	// Status is the lifecycle stage to replay: planning, in_progress or completed.
	Status string `yaml:"status"`
	// Crew, when set, starts a housing or road project through StartConstruction.
	Crew int `yaml:"crew"`

	HousingType string `yaml:"housing_type"`
	Units       int    `yaml:"units"`

	RoadType    string              `yaml:"road_type"`
	LengthKm    float64             `yaml:"length_km"`
	Lanes       int                 `yaml:"lanes"`
	Surface     string              `yaml:"surface"`
	Equipment   []EquipmentConfig   `yaml:"equipment"`
	Maintenance []MaintenanceConfig `yaml:"maintenance"`

	Tasks     []TaskConfig     `yaml:"tasks"`
	Materials []MaterialConfig `yaml:"materials"`
	Workers   []WorkerConfig   `yaml:"workers"`
}

type TaskConfig struct {
	Name      string `yaml:"name"`
	Duration  int    `yaml:"duration"`
	Assignee  string `yaml:"assignee"`
	Completed bool   `yaml:"completed"`
}

type MaterialConfig struct {
	Name     string  `yaml:"name"`
	Quantity float64 `yaml:"quantity"`
	UnitCost float64 `yaml:"unit_cost"`
	Unit     string  `yaml:"unit"`
}

type WorkerConfig struct {
	Name        string  `yaml:"name"`
	Role        string  `yaml:"role"`
	HourlyRate  float64 `yaml:"hourly_rate"`
	HoursWorked float64 `yaml:"hours_worked"`
}

type EquipmentConfig struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

// MaintenanceConfig is either a one-off window (at) or a cron schedule with a count.
type MaintenanceConfig struct {
	At          string `yaml:"at"`
	Cron        string `yaml:"cron"`
	From        string `yaml:"from"`
	Count       int    `yaml:"count"`
	Description string `yaml:"description"`
}

const (
	KindGeneric = "generic"
	KindHousing = "housing"
	KindRoad    = "road"
)

var validStatus = map[string]bool{"": true, "planning": true, "in_progress": true, "completed": true}

// Validate ensures the portfolio meets required structure. All problems are reported at once.
func (p *Portfolio) Validate() error {
	var errs []string
	if p.Company.Name == "" {
		errs = append(errs, "company.name is required")
	}
	plans := map[string]bool{}
	for i, pl := range p.Plans {
		if pl.ID == "" {
			errs = append(errs, fmt.Sprintf("plans[%d].id is required", i))
			continue
		}
		if plans[pl.ID] {
			errs = append(errs, fmt.Sprintf("plans[%d].id %s is duplicated", i, pl.ID))
		}
		plans[pl.ID] = true
	}
	projects := map[string]bool{}
	for i, pr := range p.Projects {
		switch pr.Kind {
		case "", KindGeneric, KindHousing, KindRoad:
		default:
			errs = append(errs, fmt.Sprintf("projects[%d].kind %q is not one of generic, housing, road", i, pr.Kind))
		}
		if pr.Name == "" {
			errs = append(errs, fmt.Sprintf("projects[%d].name is required", i))
		}
		if pr.ID != "" {
			if projects[pr.ID] {
				errs = append(errs, fmt.Sprintf("projects[%d].id %s is duplicated", i, pr.ID))
			}
			projects[pr.ID] = true
		}
		if pr.Plan != "" && !plans[pr.Plan] {
			errs = append(errs, fmt.Sprintf("projects[%d].plan references unknown plan %s", i, pr.Plan))
		}
		if !validStatus[pr.Status] {
			errs = append(errs, fmt.Sprintf("projects[%d].status %q is not one of planning, in_progress, completed", i, pr.Status))
		}
		if pr.Crew > 0 && pr.Kind != KindHousing && pr.Kind != KindRoad {
			errs = append(errs, fmt.Sprintf("projects[%d].crew is only valid for housing and road projects", i))
		}
		if pr.Kind != KindRoad && (len(pr.Equipment) > 0 || len(pr.Maintenance) > 0) {
			errs = append(errs, fmt.Sprintf("projects[%d] equipment and maintenance require kind road", i))
		}
		for j, m := range pr.Maintenance {
			if (m.At == "") == (m.Cron == "") {
				errs = append(errs, fmt.Sprintf("projects[%d].maintenance[%d] needs exactly one of at, cron", i, j))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Path returns the portfolio file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, fileName)
}

// Load reads and validates the portfolio from a workspace.
func Load(workspace string) (*Portfolio, error) {
	path := Path(workspace)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("portfolio %s not found; create one with sb init", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromFile reads YAML portfolio from the given path.
func FromFile(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates a portfolio from raw YAML bytes.
func FromYAML(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid portfolio yaml: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// GenerateDefault returns the demo portfolio YAML for a company name.
func GenerateDefault(companyName string) string {
	return fmt.Sprintf(defaultTemplate, companyName)
}

// Default returns the parsed and validated demo portfolio.
func Default(companyName string) (*Portfolio, error) {
	return FromYAML([]byte(GenerateDefault(companyName)))
}

const defaultTemplate = `company:
  name: %q

plans:
  - id: DP001
    type: housing
    description: Residential Complex Blueprint
    area_sqft: 5000
    estimated_cost: 250000
    approved: true
    specifications:
      bedrooms: "3"
      bathrooms: "2"
      floors: "2"
  - id: DP002
    type: road
    description: Main Highway Design
    area_sqft: 100000
    estimated_cost: 1500000
    approved: true
    specifications:
      lanes: "4"
      surface: asphalt
  - id: COM-001
    type: commercial
    description: Shopping Plaza with Mixed Use
    area_sqft: 125000
    estimated_cost: 15000000
    specifications:
      retail_spaces: "45"
      parking_capacity: 500 vehicles

projects:
  - id: HP001
    kind: housing
    name: Greenview Apartments
    location: Riverside
    budget: 2000000
    housing_type: apartment
    units: 24
    plan: DP001
    crew: 25
    materials:
      - {name: cement, quantity: 500, unit: bags}
      - {name: steel, quantity: 10, unit: tons}
      - {name: bricks, quantity: 50000, unit: pieces}
  - id: RD001
    kind: road
    name: Central Highway
    location: North Corridor
    budget: 1500000
    road_type: highway
    length_km: 15.5
    lanes: 4
    surface: asphalt
    plan: DP002
    crew: 40
    equipment:
      - {name: excavator, quantity: 2}
      - {name: roller, quantity: 3}
      - {name: paver, quantity: 1}
  - id: GP001
    kind: generic
    name: Office Block
    location: Downtown
    budget: 500000
    status: in_progress
    tasks:
      - {name: Foundation, duration: 10, assignee: Ann, completed: true}
      - {name: Framing, duration: 15, assignee: Bo}
      - {name: Roofing, duration: 5, assignee: Cy}
    materials:
      - {name: Concrete, quantity: 100, unit_cost: 150}
      - {name: Steel, quantity: 50, unit_cost: 500}
    workers:
      - {name: Ann, role: Mason, hourly_rate: 30, hours_worked: 40}
      - {name: Bo, role: Carpenter, hourly_rate: 28}
`
