package store

// audit.go records registry saves. Every whole-document write to a
// reserved config id leaves one row behind: who changed which registry,
// from where, and the full document that was written. The trail is
// append-only; nothing in the application deletes from it.

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConfigChange is one audit entry for a registry save.
type ConfigChange struct {
	ID        uuid.UUID `json:"id"`
	ConfigID  int64     `json:"config_id"`
	Registry  string    `json:"registry"`
	Payload   []byte    `json:"payload"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordConfigChange appends one audit row. The id is assigned here if
// the caller left it zero.
func (s *Store) RecordConfigChange(ctx context.Context, change ConfigChange) error {
	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO config_audit (id, config_id, registry, payload, ip_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, now())`,
		change.ID, change.ConfigID, change.Registry, change.Payload, change.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("record config change: %w", err)
	}
	return nil
}

// ListConfigChanges returns the most recent audit entries, newest
// first, capped at limit.
func (s *Store) ListConfigChanges(ctx context.Context, limit int) ([]ConfigChange, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, config_id, registry, payload, COALESCE(ip_address, ''), created_at
		 FROM config_audit
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list config changes: %w", err)
	}
	defer rows.Close()

	var changes []ConfigChange
	for rows.Next() {
		var c ConfigChange
		if err := rows.Scan(&c.ID, &c.ConfigID, &c.Registry, &c.Payload, &c.IPAddress, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan config change: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list config changes: %w", err)
	}
	return changes, nil
}
