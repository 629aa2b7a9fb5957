package core

import (
	"context"

	"github.com/JonMunkholm/fleetledger/internal/config"
	"github.com/JonMunkholm/fleetledger/internal/store"
)

// Store is the persistence surface the service needs. Satisfied by
// *store.Store; tests substitute fakes so no live database is needed
// to exercise the engine.
type Store interface {
	GetConfig(ctx context.Context, configID int64) ([]byte, error)
	PutConfig(ctx context.Context, configID int64, payload []byte) error

	ListVehicleColumns(ctx context.Context) ([]string, error)
	ListVehicles(ctx context.Context) ([]store.VehicleRef, error)
	GetVehicleSnapshot(ctx context.Context, vehicleID int64) (store.VehicleSnapshot, error)
	UpdateVehicleColumns(ctx context.Context, vehicleID int64, values map[string]any) error

	RecordConfigChange(ctx context.Context, change store.ConfigChange) error
	ListConfigChanges(ctx context.Context, limit int) ([]store.ConfigChange, error)
}

// Service is the main entry point for all ledger operations.
type Service struct {
	store Store
	cfg   *config.Config
}

// NewService creates a Service over a store and loaded configuration.
func NewService(st Store, cfg *config.Config) *Service {
	return &Service{store: st, cfg: cfg}
}

// DefaultPreset returns the configured default threshold preset name.
func (s *Service) DefaultPreset() string {
	return s.cfg.Health.DefaultPreset
}

// ConfigChanges returns the recent registry audit trail.
func (s *Service) ConfigChanges(ctx context.Context, limit int) ([]store.ConfigChange, error) {
	return s.store.ListConfigChanges(ctx, limit)
}

// ListVehicles returns the fleet roster.
func (s *Service) ListVehicles(ctx context.Context) ([]store.VehicleRef, error) {
	return s.store.ListVehicles(ctx)
}
