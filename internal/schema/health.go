package schema

import "time"

// Status is the tri-state service urgency of a component, plus the
// explicit no-data state.
type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusNoData   Status = "no_data"
)

// DefaultIntervalKm is the universal fallback service interval. A
// km basis with no stored interval assumes this value; the hours basis
// has no equivalent and is simply absent without a stored interval.
const DefaultIntervalKm = 10000

// SentinelUnset is the stored value meaning "not set" for km, hours
// and interval columns. It must be treated as absent, never as zero.
const SentinelUnset = -1

// IsDatePlaceholder reports whether a stored service date is the epoch
// placeholder the ledger writes for "never serviced".
func IsDatePlaceholder(t time.Time) bool {
	return t.IsZero() || t.Unix() == 0
}

// ThresholdPreset maps a remaining-life percentage to a Status. Two
// presets coexist for different audiences; both are legitimate and
// callers pick one by name rather than assuming a global threshold.
type ThresholdPreset struct {
	Name string
	// OKFloor is the lowest percentage still considered OK.
	OKFloor float64
	// WarningFloor is the lowest percentage still considered Warning;
	// below it is Critical.
	WarningFloor float64
}

var (
	// PresetStandard is the maintenance-desk view: OK at 30% and above,
	// Critical below 10%.
	PresetStandard = ThresholdPreset{Name: "standard", OKFloor: 30, WarningFloor: 10}
	// PresetDashboard is the looser fleet-dashboard view: OK at 15% and
	// above, Critical below 5%.
	PresetDashboard = ThresholdPreset{Name: "dashboard", OKFloor: 15, WarningFloor: 5}
)

// PresetByName resolves a preset by its name.
func PresetByName(name string) (ThresholdPreset, bool) {
	switch name {
	case PresetStandard.Name:
		return PresetStandard, true
	case PresetDashboard.Name:
		return PresetDashboard, true
	}
	return ThresholdPreset{}, false
}

// Status maps a remaining-life percentage to the preset's tri-state
// status. A nil percentage is the no-data state.
func (p ThresholdPreset) Status(percent *float64) Status {
	switch {
	case percent == nil:
		return StatusNoData
	case *percent >= p.OKFloor:
		return StatusOK
	case *percent >= p.WarningFloor:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// HealthInput carries the raw counters for one (vehicle, component)
// pair. Nil means the column is absent from the schema or NULL in the
// record; SentinelUnset values are normalized to absent internally.
type HealthInput struct {
	CurrentKm     *int64
	LastServiceKm *int64
	IntervalKm    *int64

	CurrentHours     *int64
	LastServiceHours *int64
	IntervalHours    *int64
}

// HealthResult is the computed signal for one (vehicle, component)
// pair. Percent is nil in the no-data state.
type HealthResult struct {
	ComponentID string   `json:"component_id"`
	Label       string   `json:"label"`
	Percent     *float64 `json:"percent_remaining"`
	Status      Status   `json:"status"`
}

// RemainingLife computes the normalized remaining-life percentage.
//
// Each available basis (km, hours) yields
//
//	((interval - (current - last_service)) / interval) * 100
//
// clamped to [0, 100]. With both bases available the result is the
// minimum of the two: a component on a dual km/hours plan is due the
// moment either counter crosses its threshold. With neither basis the
// result is nil.
func RemainingLife(in HealthInput) *float64 {
	kmPct := basisPercent(in.CurrentKm, in.LastServiceKm, kmInterval(in.IntervalKm))
	hrPct := basisPercent(in.CurrentHours, in.LastServiceHours, present(in.IntervalHours))

	switch {
	case kmPct == nil:
		return hrPct
	case hrPct == nil:
		return kmPct
	case *hrPct < *kmPct:
		return hrPct
	default:
		return kmPct
	}
}

// kmInterval applies the universal default interval when no explicit
// km interval is stored.
func kmInterval(interval *int64) *int64 {
	if v := present(interval); v != nil {
		return v
	}
	def := int64(DefaultIntervalKm)
	return &def
}

// present normalizes sentinel and non-positive values to absent.
func present(v *int64) *int64 {
	if v == nil || *v == SentinelUnset || *v <= 0 {
		return nil
	}
	return v
}

func basisPercent(current, last, interval *int64) *float64 {
	if interval == nil {
		return nil
	}
	cur := counterValue(current)
	prev := counterValue(last)
	if cur == nil || prev == nil {
		return nil
	}

	pct := (float64(*interval-(*cur-*prev)) / float64(*interval)) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}

// counterValue normalizes a counter reading: sentinel and negative
// values are absent, zero is a legitimate reading.
func counterValue(v *int64) *int64 {
	if v == nil || *v < 0 {
		return nil
	}
	return v
}
