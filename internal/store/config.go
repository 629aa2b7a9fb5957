package store

// config.go reads and writes the registry override documents.
//
// The app_config table holds ordinary user-facing configuration rows;
// the schema registries live in the same table under reserved numeric
// ids, tagged with a description and is_system = true so admin tooling
// can tell them apart. Writes are whole-document upserts: replace
// semantics, never a patch. Concurrent writers to the same document
// race and the last writer wins; the ledger's scale does not warrant
// optimistic locking (documented limitation).

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Reserved config document ids, one per registry.
const (
	ConfigIDExclusions int64 = 9001
	ConfigIDAliases    int64 = 9002
	ConfigIDCategories int64 = 9003
)

// configDescriptions tags each reserved id for the admin surface.
var configDescriptions = map[int64]string{
	ConfigIDExclusions: "Schema engine: excluded columns",
	ConfigIDAliases:    "Schema engine: column aliases",
	ConfigIDCategories: "Schema engine: categories and assignments",
}

// GetConfig returns the raw JSON payload for a reserved config id.
// Returns ErrConfigNotFound when no document exists.
func (s *Store) GetConfig(ctx context.Context, configID int64) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow(ctx,
		`SELECT payload FROM app_config WHERE id = $1`,
		configID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get config %d: %w", configID, err)
	}
	return payload, nil
}

// PutConfig upserts the whole document for a reserved config id.
func (s *Store) PutConfig(ctx context.Context, configID int64, payload []byte) error {
	description := configDescriptions[configID]
	_, err := s.db.Exec(ctx,
		`INSERT INTO app_config (id, payload, description, is_system, updated_at)
		 VALUES ($1, $2, $3, TRUE, now())
		 ON CONFLICT (id) DO UPDATE
		 SET payload = EXCLUDED.payload,
		     description = EXCLUDED.description,
		     updated_at = now()`,
		configID, payload, description,
	)
	if err != nil {
		return fmt.Errorf("put config %d: %w", configID, err)
	}
	return nil
}
