package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/fleetledger/internal/config"
	"github.com/JonMunkholm/fleetledger/internal/schema"
	"github.com/JonMunkholm/fleetledger/internal/store"
)

// fakeStore implements Store in memory so the engine runs without a
// live database.
type fakeStore struct {
	configs    map[int64][]byte
	configErr  error
	columns    []string
	columnsErr error
	vehicles   []store.VehicleRef
	snapshots  map[int64]store.VehicleSnapshot

	savedConfigs map[int64][]byte
	changes      []store.ConfigChange
	updates      map[int64]map[string]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		configs:      make(map[int64][]byte),
		snapshots:    make(map[int64]store.VehicleSnapshot),
		savedConfigs: make(map[int64][]byte),
		updates:      make(map[int64]map[string]any),
	}
}

func (f *fakeStore) GetConfig(_ context.Context, configID int64) ([]byte, error) {
	if f.configErr != nil {
		return nil, f.configErr
	}
	payload, ok := f.configs[configID]
	if !ok {
		return nil, store.ErrConfigNotFound
	}
	return payload, nil
}

func (f *fakeStore) PutConfig(_ context.Context, configID int64, payload []byte) error {
	f.savedConfigs[configID] = payload
	return nil
}

func (f *fakeStore) ListVehicleColumns(_ context.Context) ([]string, error) {
	return f.columns, f.columnsErr
}

func (f *fakeStore) ListVehicles(_ context.Context) ([]store.VehicleRef, error) {
	return f.vehicles, nil
}

func (f *fakeStore) GetVehicleSnapshot(_ context.Context, vehicleID int64) (store.VehicleSnapshot, error) {
	snapshot, ok := f.snapshots[vehicleID]
	if !ok {
		return nil, errors.New("vehicle not found")
	}
	return snapshot, nil
}

func (f *fakeStore) UpdateVehicleColumns(_ context.Context, vehicleID int64, values map[string]any) error {
	f.updates[vehicleID] = values
	return nil
}

func (f *fakeStore) RecordConfigChange(_ context.Context, change store.ConfigChange) error {
	f.changes = append(f.changes, change)
	return nil
}

func (f *fakeStore) ListConfigChanges(_ context.Context, _ int) ([]store.ConfigChange, error) {
	return f.changes, nil
}

func testService(f *fakeStore) *Service {
	return NewService(f, &config.Config{
		Health: config.HealthConfig{DefaultPreset: "standard", AuditLimit: 100},
	})
}

// ============================================================================
// Registry loading
// ============================================================================

func TestLoadRegistries_DefaultsWhenNothingStored(t *testing.T) {
	s := testService(newFakeStore())

	r := s.LoadRegistries(context.Background())

	if !r.Exclusions.Contains("placas") {
		t.Error("default exclusions missing placas")
	}
	if _, ok := r.AliasMap.Resolve("intervalo_cambio_aceite"); !ok {
		t.Error("default aliases missing intervalo_cambio_aceite")
	}
	if len(r.Categories.Categories) != 8 {
		t.Errorf("got %d categories, want the 8 defaults", len(r.Categories.Categories))
	}
}

func TestLoadRegistries_DefaultsWhenStoreUnreachable(t *testing.T) {
	f := newFakeStore()
	f.configErr = errors.New("connection refused")
	s := testService(f)

	r := s.LoadRegistries(context.Background())

	// Degrades silently; callers never see the store error.
	if !r.Exclusions.Contains("id") {
		t.Error("unreachable store must fall back to default exclusions")
	}
	if len(r.Aliases) != len(schema.DefaultAliases()) {
		t.Errorf("got %d aliases, want the %d defaults", len(r.Aliases), len(schema.DefaultAliases()))
	}
}

func TestLoadRegistries_StoredDocumentsWin(t *testing.T) {
	f := newFakeStore()
	f.configs[store.ConfigIDExclusions] = []byte(`{"excluded_columns":["solo_esta"]}`)
	f.configs[store.ConfigIDAliases] = []byte(`{"aliases":[{"real_name":"raro","component":"bujias","field_kind":"km"}]}`)
	s := testService(f)

	r := s.LoadRegistries(context.Background())

	if !r.Exclusions.Contains("solo_esta") || r.Exclusions.Contains("id") {
		t.Errorf("stored exclusions not honored: %v", r.ExclusionNames)
	}
	entry, ok := r.AliasMap.Resolve("raro")
	if !ok || entry.Component != "bujias" || entry.Kind != schema.KindKm {
		t.Errorf("stored alias not honored: %+v", entry)
	}
}

func TestLoadRegistries_CorruptDocumentFallsBack(t *testing.T) {
	f := newFakeStore()
	f.configs[store.ConfigIDCategories] = []byte(`{not json`)
	s := testService(f)

	r := s.LoadRegistries(context.Background())

	if len(r.Categories.Categories) != 8 {
		t.Errorf("corrupt document must fall back to defaults, got %d categories", len(r.Categories.Categories))
	}
}

// ============================================================================
// Schema assembly
// ============================================================================

func TestAssembleSchema_ColumnListingFailureIsFatal(t *testing.T) {
	f := newFakeStore()
	f.columnsErr = errors.New("permission denied for table vehiculos")
	s := testService(f)

	_, err := s.AssembleSchema(context.Background())
	if err == nil {
		t.Fatal("column listing failure must surface, registries-style degradation does not apply")
	}
	if msg := MapError(err); msg.Code != "SCH001" {
		t.Errorf("MapError code = %s, want SCH001", msg.Code)
	}
}

func TestAssembleSchema_EndToEnd(t *testing.T) {
	f := newFakeStore()
	f.columns = []string{
		"id", "numero_economico", "placas", "kilometraje_actual",
		"aceite_motor_km", "aceite_motor_fecha", "aceite_motor_intervalo",
		"suspencion_km_a", "suspencion_fecha_a",
		"intervalo_cambio_aceite",
		"observaciones",
	}
	s := testService(f)

	tree, err := s.AssembleSchema(context.Background())
	if err != nil {
		t.Fatalf("AssembleSchema() error = %v", err)
	}

	comps := tree.Components()
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2 (aceite_motor, suspencion_a)", len(comps))
	}

	var oil schema.Component
	for _, comp := range comps {
		if comp.ID == "aceite_motor" {
			oil = comp
		}
	}
	// The aliased legacy interval column collides with the pattern
	// column aceite_motor_intervalo; later column wins.
	if got := oil.Fields[schema.KindInterval]; got != "intervalo_cambio_aceite" {
		t.Errorf("interval field = %q, want intervalo_cambio_aceite", got)
	}
}

// ============================================================================
// Health
// ============================================================================

func fleetOfOne(f *fakeStore) {
	f.columns = []string{
		"id", "numero_economico", "placas", "kilometraje_actual", "horas_actuales",
		"aceite_motor_km", "aceite_motor_intervalo",
	}
	f.vehicles = []store.VehicleRef{{ID: 7, NumeroEconomico: "ECO-07", Placas: "ABC123"}}
	f.snapshots[7] = store.VehicleSnapshot{
		"numero_economico":       "ECO-07",
		"placas":                 "ABC123",
		"kilometraje_actual":     int64(50000),
		"aceite_motor_km":        int64(45000),
		"aceite_motor_intervalo": int64(10000),
	}
}

func TestVehicleHealth_KmScenario(t *testing.T) {
	f := newFakeStore()
	fleetOfOne(f)
	s := testService(f)

	report, err := s.VehicleHealth(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("VehicleHealth() error = %v", err)
	}

	if report.Preset != "standard" {
		t.Errorf("preset = %q, want the configured default", report.Preset)
	}
	if len(report.Components) != 1 {
		t.Fatalf("got %d components, want 1", len(report.Components))
	}

	comp := report.Components[0]
	if comp.Percent == nil || *comp.Percent != 50 {
		t.Errorf("percent = %v, want 50", comp.Percent)
	}
	if comp.Status != schema.StatusOK {
		t.Errorf("status = %v, want ok", comp.Status)
	}
}

func TestVehicleHealth_PresetDependentStatus(t *testing.T) {
	f := newFakeStore()
	fleetOfOne(f)
	f.snapshots[7]["aceite_motor_km"] = int64(42000) // 80% consumed -> 20%
	s := testService(f)

	standard, err := s.VehicleHealth(context.Background(), 7, "standard")
	if err != nil {
		t.Fatalf("VehicleHealth(standard) error = %v", err)
	}
	dashboard, err := s.VehicleHealth(context.Background(), 7, "dashboard")
	if err != nil {
		t.Fatalf("VehicleHealth(dashboard) error = %v", err)
	}

	if got := standard.Components[0].Status; got != schema.StatusWarning {
		t.Errorf("standard status = %v, want warning", got)
	}
	if got := dashboard.Components[0].Status; got != schema.StatusOK {
		t.Errorf("dashboard status = %v, want ok", got)
	}
}

func TestVehicleHealth_UnknownPreset(t *testing.T) {
	f := newFakeStore()
	fleetOfOne(f)
	s := testService(f)

	_, err := s.VehicleHealth(context.Background(), 7, "strict")
	if err == nil {
		t.Fatal("unknown preset must be rejected")
	}
	if msg := MapError(err); msg.Code != "VAL002" {
		t.Errorf("MapError code = %s, want VAL002", msg.Code)
	}
}

// ============================================================================
// Mutations
// ============================================================================

func TestSaveAliases_PersistsAndAudits(t *testing.T) {
	f := newFakeStore()
	s := testService(f)

	entries := []schema.AliasEntry{
		{RealName: "col_raro", Component: "bujias", Kind: schema.KindKm},
	}
	if err := s.SaveAliases(context.Background(), entries); err != nil {
		t.Fatalf("SaveAliases() error = %v", err)
	}

	payload, ok := f.savedConfigs[store.ConfigIDAliases]
	if !ok {
		t.Fatal("alias document not written")
	}
	var doc struct {
		Aliases []schema.AliasEntry `json:"aliases"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("stored document does not decode: %v", err)
	}
	if len(doc.Aliases) != 1 || doc.Aliases[0].RealName != "col_raro" {
		t.Errorf("stored document = %s", payload)
	}

	if len(f.changes) != 1 || f.changes[0].Registry != "aliases" {
		t.Errorf("audit trail = %+v, want one aliases entry", f.changes)
	}
}

func TestSaveAliases_RejectsDuplicates(t *testing.T) {
	s := testService(newFakeStore())

	err := s.SaveAliases(context.Background(), []schema.AliasEntry{
		{RealName: "col", Component: "a", Kind: schema.KindKm},
		{RealName: "col", Component: "b", Kind: schema.KindDate},
	})
	if err == nil {
		t.Fatal("duplicate real_name must be rejected before writing")
	}
	if msg := MapError(err); msg.Code != "VAL003" {
		t.Errorf("MapError code = %s, want VAL003", msg.Code)
	}
}

func TestSaveCategories_RejectsUnknownAssignment(t *testing.T) {
	s := testService(newFakeStore())

	err := s.SaveCategories(context.Background(), schema.CategoryConfig{
		Categories:  []schema.CategoryDefinition{{ID: "frenos", Name: "Frenos"}},
		Assignments: []schema.CategoryAssignment{{ComponentID: "clutch", CategoryID: "motor"}},
	})
	if err == nil {
		t.Fatal("assignment to a missing category must be rejected")
	}
}

func TestUpdateComponentService_ValidatesNumbers(t *testing.T) {
	f := newFakeStore()
	fleetOfOne(f)
	s := testService(f)

	err := s.UpdateComponentService(context.Background(), ServiceUpdate{
		VehicleID:   7,
		ComponentID: "aceite_motor",
		Values:      map[string]string{"km": "45k"},
	})
	if err == nil {
		t.Fatal("non-integer km must be rejected")
	}
	if msg := MapError(err); msg.Code != "VAL001" {
		t.Errorf("MapError code = %s, want VAL001", msg.Code)
	}
	if len(f.updates) != 0 {
		t.Error("no write may happen when validation fails")
	}
}

func TestUpdateComponentService_WritesResolvedColumns(t *testing.T) {
	f := newFakeStore()
	fleetOfOne(f)
	s := testService(f)

	err := s.UpdateComponentService(context.Background(), ServiceUpdate{
		VehicleID:   7,
		ComponentID: "aceite_motor",
		Values:      map[string]string{"km": "46000", "interval": "12000"},
	})
	if err != nil {
		t.Fatalf("UpdateComponentService() error = %v", err)
	}

	values := f.updates[7]
	if values["aceite_motor_km"] != int64(46000) {
		t.Errorf("aceite_motor_km = %v, want 46000", values["aceite_motor_km"])
	}
	if values["aceite_motor_intervalo"] != int64(12000) {
		t.Errorf("aceite_motor_intervalo = %v, want 12000", values["aceite_motor_intervalo"])
	}
}

// ============================================================================
// Export
// ============================================================================

func TestExportFleetHealth(t *testing.T) {
	f := newFakeStore()
	fleetOfOne(f)
	s := testService(f)

	var out strings.Builder
	if err := s.ExportFleetHealth(context.Background(), "standard", &out); err != nil {
		t.Fatalf("ExportFleetHealth() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 vehicle", len(lines))
	}

	wantHeader := "vehiculo,placas,km_actual,hr_actual,Aceite Motor %,Aceite Motor km,Aceite Motor fecha,Aceite Motor modelo"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	wantRow := "ECO-07,ABC123,50000,,50.0,45000,,"
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestExportFleetHealth_CommasStrippedNotEscaped(t *testing.T) {
	f := newFakeStore()
	fleetOfOne(f)
	f.columns = append(f.columns, "aceite_motor_modelo")
	f.snapshots[7]["aceite_motor_modelo"] = "Mobil, Delvac 15W40"
	s := testService(f)

	var out strings.Builder
	if err := s.ExportFleetHealth(context.Background(), "standard", &out); err != nil {
		t.Fatalf("ExportFleetHealth() error = %v", err)
	}

	if strings.Contains(out.String(), `"`) {
		t.Error("cells must not be quote-escaped")
	}
	if strings.Contains(out.String(), "Mobil,") {
		t.Error("embedded commas must be stripped to keep rows aligned")
	}
}

func TestMapError_Fallback(t *testing.T) {
	msg := MapError(errors.New("some wild failure"))
	if msg.Code != "ERR000" {
		t.Errorf("code = %s, want ERR000", msg.Code)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) must be empty")
	}
}
