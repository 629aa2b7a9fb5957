package core

// health_ops.go computes per-component remaining life for one vehicle
// or the whole fleet. The snapshot's current counters live in fixed
// columns (kilometraje_actual, horas_actuales); everything else comes
// from the columns the assembler resolved for each component.
//
// A component's interval column feeds whichever bases the component
// tracks: it is the km interval when a km field exists and the hours
// interval when an hours field exists. Components on a dual schedule
// use it for both, and the worst of the two bases wins.

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/fleetledger/internal/schema"
	"github.com/JonMunkholm/fleetledger/internal/store"
)

// Fixed counter columns of the vehicle record.
const (
	ColumnCurrentKm    = "kilometraje_actual"
	ColumnCurrentHours = "horas_actuales"
)

// ComponentHealth is the computed signal for one component of one
// vehicle, with the raw service fields the presentation layer shows
// alongside the traffic light.
type ComponentHealth struct {
	ComponentID     string        `json:"component_id"`
	Label           string        `json:"label"`
	CategoryID      string        `json:"category_id"`
	Percent         *float64      `json:"percent_remaining"`
	Status          schema.Status `json:"status"`
	LastServiceKm   *int64        `json:"last_service_km,omitempty"`
	LastServiceDate string        `json:"last_service_date,omitempty"`
	Model           string        `json:"model,omitempty"`
}

// VehicleHealthReport is the full health view of one vehicle.
type VehicleHealthReport struct {
	Vehicle      store.VehicleRef  `json:"vehicle"`
	Preset       string            `json:"preset"`
	CurrentKm    *int64            `json:"current_km"`
	CurrentHours *int64            `json:"current_hours"`
	Components   []ComponentHealth `json:"components"`
}

// VehicleHealth computes the report for one vehicle under the named
// threshold preset ("" means the configured default).
func (s *Service) VehicleHealth(ctx context.Context, vehicleID int64, presetName string) (*VehicleHealthReport, error) {
	preset, err := s.resolvePreset(presetName)
	if err != nil {
		return nil, err
	}

	tree, err := s.AssembleSchema(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.store.GetVehicleSnapshot(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	return s.reportFor(vehicleID, snapshot, tree, preset), nil
}

// FleetHealth computes reports for every vehicle on the roster. The
// schema is assembled once and reused across snapshots.
func (s *Service) FleetHealth(ctx context.Context, presetName string) ([]VehicleHealthReport, error) {
	preset, err := s.resolvePreset(presetName)
	if err != nil {
		return nil, err
	}

	tree, err := s.AssembleSchema(ctx)
	if err != nil {
		return nil, err
	}

	refs, err := s.store.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]VehicleHealthReport, 0, len(refs))
	for _, ref := range refs {
		snapshot, err := s.store.GetVehicleSnapshot(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		report := s.reportFor(ref.ID, snapshot, tree, preset)
		report.Vehicle = ref
		reports = append(reports, *report)
	}
	return reports, nil
}

func (s *Service) resolvePreset(name string) (schema.ThresholdPreset, error) {
	if name == "" {
		name = s.cfg.Health.DefaultPreset
	}
	preset, ok := schema.PresetByName(name)
	if !ok {
		return schema.ThresholdPreset{}, fmt.Errorf("unknown preset %q", name)
	}
	return preset, nil
}

func (s *Service) reportFor(vehicleID int64, snapshot store.VehicleSnapshot, tree schema.CategoryTree, preset schema.ThresholdPreset) *VehicleHealthReport {
	report := &VehicleHealthReport{
		Vehicle: store.VehicleRef{
			ID:              vehicleID,
			NumeroEconomico: snapshot.String("numero_economico"),
			Placas:          snapshot.String("placas"),
		},
		Preset:       preset.Name,
		CurrentKm:    snapshot.Int64(ColumnCurrentKm),
		CurrentHours: snapshot.Int64(ColumnCurrentHours),
	}

	for _, group := range tree {
		for _, comp := range group.Components {
			report.Components = append(report.Components,
				componentHealth(comp, group.Category.ID, snapshot, preset))
		}
	}
	return report
}

func componentHealth(comp schema.Component, categoryID string, snapshot store.VehicleSnapshot, preset schema.ThresholdPreset) ComponentHealth {
	in := schema.HealthInput{}

	if column, ok := comp.Fields[schema.KindKm]; ok {
		in.CurrentKm = snapshot.Int64(ColumnCurrentKm)
		in.LastServiceKm = snapshot.Int64(column)
	}
	if column, ok := comp.Fields[schema.KindHours]; ok {
		in.CurrentHours = snapshot.Int64(ColumnCurrentHours)
		in.LastServiceHours = snapshot.Int64(column)
	}
	if column, ok := comp.Fields[schema.KindInterval]; ok {
		interval := snapshot.Int64(column)
		if _, tracked := comp.Fields[schema.KindKm]; tracked {
			in.IntervalKm = interval
		}
		if _, tracked := comp.Fields[schema.KindHours]; tracked {
			in.IntervalHours = interval
		}
	}

	percent := schema.RemainingLife(in)

	health := ComponentHealth{
		ComponentID:   comp.ID,
		Label:         comp.Label,
		CategoryID:    categoryID,
		Percent:       percent,
		Status:        preset.Status(percent),
		LastServiceKm: in.LastServiceKm,
	}
	if column, ok := comp.Fields[schema.KindDate]; ok {
		if t, ok := snapshot.Time(column); ok && !schema.IsDatePlaceholder(t) {
			health.LastServiceDate = t.Format("2006-01-02")
		}
	}
	if column, ok := comp.Fields[schema.KindModel]; ok {
		health.Model = snapshot.String(column)
	}
	return health
}
