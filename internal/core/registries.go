package core

// registries.go loads and persists the three override registries. Each
// registry is one whole JSON document in the config store; documents
// are replaced in full on save, never patched. Loads degrade to the
// hardcoded defaults on any failure — a fleet with no stored overrides
// (or a briefly unreachable store) still gets a working schema.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/JonMunkholm/fleetledger/internal/logging"
	"github.com/JonMunkholm/fleetledger/internal/schema"
	"github.com/JonMunkholm/fleetledger/internal/store"
)

// Registries is the resolved override state for one operation. It is
// loaded fresh per request and passed into the assembler explicitly;
// nothing here is process-wide.
type Registries struct {
	Exclusions schema.ExclusionSet
	// ExclusionNames preserves the stored list for the admin surface.
	ExclusionNames []string
	Aliases        []schema.AliasEntry
	AliasMap       schema.AliasMap
	Categories     schema.CategoryConfig
}

// Stored document shapes. Exclusions and aliases get a wrapper object
// so the documents stay extensible; the category document is the
// CategoryConfig pair itself (definitions and assignments always
// travel together).
type exclusionsDoc struct {
	ExcludedColumns []string `json:"excluded_columns"`
}

type aliasesDoc struct {
	Aliases []schema.AliasEntry `json:"aliases"`
}

// LoadRegistries fetches the three registry documents concurrently.
// Per-registry failures are recovered locally: the registry falls back
// to its default and the condition is logged, never surfaced.
func (s *Service) LoadRegistries(ctx context.Context) Registries {
	var (
		wg         sync.WaitGroup
		exclusions []string
		aliases    []schema.AliasEntry
		categories schema.CategoryConfig
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		exclusions = s.loadExclusions(ctx)
	}()
	go func() {
		defer wg.Done()
		aliases = s.loadAliases(ctx)
	}()
	go func() {
		defer wg.Done()
		categories = s.loadCategories(ctx)
	}()
	wg.Wait()

	return Registries{
		Exclusions:     schema.NewExclusionSet(exclusions),
		ExclusionNames: exclusions,
		Aliases:        aliases,
		AliasMap:       schema.BuildAliasMap(aliases),
		Categories:     categories,
	}
}

func (s *Service) loadExclusions(ctx context.Context) []string {
	var doc exclusionsDoc
	if !s.loadConfigDoc(ctx, store.ConfigIDExclusions, "exclusions", &doc) {
		return schema.DefaultExclusions()
	}
	return doc.ExcludedColumns
}

func (s *Service) loadAliases(ctx context.Context) []schema.AliasEntry {
	var doc aliasesDoc
	if !s.loadConfigDoc(ctx, store.ConfigIDAliases, "aliases", &doc) {
		return schema.DefaultAliases()
	}
	return doc.Aliases
}

func (s *Service) loadCategories(ctx context.Context) schema.CategoryConfig {
	var doc schema.CategoryConfig
	if !s.loadConfigDoc(ctx, store.ConfigIDCategories, "categories", &doc) {
		return schema.DefaultCategoryConfig()
	}
	return doc
}

// loadConfigDoc fetches and decodes one registry document. Returns
// false when the caller should use defaults: document missing, store
// unreachable, or payload corrupt.
func (s *Service) loadConfigDoc(ctx context.Context, configID int64, registry string, out any) bool {
	logger := logging.FromContext(ctx)

	payload, err := s.store.GetConfig(ctx, configID)
	if errors.Is(err, store.ErrConfigNotFound) {
		logger.Debug("no stored registry document, using defaults", "registry", registry)
		return false
	}
	if err != nil {
		logger.Warn("registry load failed, using defaults",
			"registry", registry,
			"error", err,
		)
		return false
	}

	if err := json.Unmarshal(payload, out); err != nil {
		logger.Warn("registry document corrupt, using defaults",
			"registry", registry,
			"error", err,
		)
		return false
	}
	return true
}

// saveConfigDoc persists one registry document and appends the audit
// row. The audit failure does not roll back the save; it is logged.
func (s *Service) saveConfigDoc(ctx context.Context, configID int64, registry string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", registry, err)
	}
	if err := s.store.PutConfig(ctx, configID, payload); err != nil {
		return err
	}

	change := store.ConfigChange{
		ConfigID:  configID,
		Registry:  registry,
		Payload:   payload,
		IPAddress: IPAddressFromContext(ctx),
	}
	if err := s.store.RecordConfigChange(ctx, change); err != nil {
		logging.FromContext(ctx).Warn("config audit write failed",
			"registry", registry,
			"error", err,
		)
	}

	logging.FromContext(ctx).Info("registry saved", "registry", registry, "config_id", configID)
	return nil
}
