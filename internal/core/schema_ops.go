package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/fleetledger/internal/logging"
	"github.com/JonMunkholm/fleetledger/internal/schema"
)

// AssembleSchema builds the current category tree: registries plus the
// raw column list of the vehicle table. Registry loads degrade to
// defaults, but a failed column listing fails the whole operation —
// there is no partial schema.
func (s *Service) AssembleSchema(ctx context.Context) (schema.CategoryTree, error) {
	registries := s.LoadRegistries(ctx)
	return s.assembleWith(ctx, registries)
}

func (s *Service) assembleWith(ctx context.Context, registries Registries) (schema.CategoryTree, error) {
	columns, err := s.store.ListVehicleColumns(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load schema: %w", err)
	}

	assembler := &schema.Assembler{
		Exclusions: registries.Exclusions,
		Aliases:    registries.AliasMap,
		Categories: registries.Categories,
		Logger:     logging.FromContext(ctx),
	}
	return assembler.Assemble(columns), nil
}
