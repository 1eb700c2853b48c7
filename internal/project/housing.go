package project

import (
	"fmt"

	"sitebook/internal/domain"
)

const (
	HousingResidential = "residential"
	HousingApartment   = "apartment"
	HousingVilla       = "villa"
)

type HousingProject struct {
	*Project
	HousingType     string
	Units           int
	WorkersAssigned int
}

func NewHousing(id, name, location string, budget float64, housingType string, units int) *HousingProject {
	return &HousingProject{
		Project:     New(id, name, location, budget),
		HousingType: housingType,
		Units:       units,
	}
}

func (h *HousingProject) Kind() Kind { return KindHousing }

// AddMaterials records a quantity with its unit label. No unit cost is known, so the
// material adds nothing to the cost totals; use AddMaterial for priced entries.
func (h *HousingProject) AddMaterials(name string, quantity float64, unit string) *domain.Material {
	return h.addMaterial(name, quantity, 0, unit)
}

// StartConstruction requires an approved housing plan before the crew is put to work.
func (h *HousingProject) StartConstruction(workers int) (string, error) {
	if err := checkPlan(h.DesignPlan(), domain.PlanHousing); err != nil {
		return "", err
	}
	h.WorkersAssigned = workers
	h.Start()
	return fmt.Sprintf("Construction started for %s with %d workers", h.Name, workers), nil
}

func (h *HousingProject) CompleteProject() string {
	h.Complete()
	return fmt.Sprintf("Housing project %s completed on %s", h.Name, h.EndedAt.Format("2006-01-02"))
}

func (h *HousingProject) Summary() Summary {
	s := h.Project.Summary()
	s.Kind = KindHousing
	return s
}

func (h *HousingProject) Info() Info {
	info := h.Project.Info()
	info.Kind = KindHousing
	info.Type = h.HousingType
	info.Units = h.Units
	info.WorkersAssigned = h.WorkersAssigned
	return info
}
