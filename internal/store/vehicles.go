package store

// vehicles.go reads the wide vehiculos table. The table is the whole
// point of the system: one row per vehicle, with the maintenance plan
// encoded in the column names. The schema engine needs two reads here:
// the raw column list (to infer the schema) and single-row snapshots
// (to compute health).

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// VehicleTable is the ledger's wide record table.
const VehicleTable = "vehiculos"

// VehicleRef identifies one vehicle for listings and export rows.
type VehicleRef struct {
	ID              int64  `json:"id"`
	NumeroEconomico string `json:"numero_economico"`
	Placas          string `json:"placas"`
}

// ListVehicleColumns returns every column name of the vehicle record
// shape, in ordinal order. Unlike registry loads, a failure here is
// fatal for the caller's operation: there is no degraded schema.
func (s *Store) ListVehicleColumns(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT column_name
		 FROM information_schema.columns
		 WHERE table_name = $1
		 ORDER BY ordinal_position`,
		VehicleTable,
	)
	if err != nil {
		return nil, fmt.Errorf("list vehicle columns: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicle columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns (missing table?)", VehicleTable)
	}
	return columns, nil
}

// ListVehicles returns the fleet roster ordered by economic number.
func (s *Store) ListVehicles(ctx context.Context) ([]VehicleRef, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, COALESCE(numero_economico, ''), COALESCE(placas, '')
		 FROM vehiculos
		 ORDER BY numero_economico`,
	)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var refs []VehicleRef
	for rows.Next() {
		var ref VehicleRef
		if err := rows.Scan(&ref.ID, &ref.NumeroEconomico, &ref.Placas); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return refs, nil
}

// UpdateVehicleColumns writes explicit values into one vehicle row.
// Column names must come from the vehicle shape itself (the assembler
// resolves them from information_schema); they are still quoted as
// identifiers here.
func (s *Store) UpdateVehicleColumns(ctx context.Context, vehicleID int64, values map[string]any) error {
	if len(values) == 0 {
		return fmt.Errorf("update vehicle %d: no columns", vehicleID)
	}

	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var b strings.Builder
	args := make([]any, 0, len(values)+1)
	b.WriteString("UPDATE vehiculos SET ")
	for i, column := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		args = append(args, values[column])
		fmt.Fprintf(&b, "%s = $%d", quoteIdent(column), len(args))
	}
	args = append(args, vehicleID)
	fmt.Fprintf(&b, " WHERE id = $%d", len(args))

	tag, err := s.db.Exec(ctx, b.String(), args...)
	if err != nil {
		return fmt.Errorf("update vehicle %d: %w", vehicleID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %d not found", vehicleID)
	}
	return nil
}

// quoteIdent double-quotes a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// VehicleSnapshot is one wide row, column name to raw value. Values
// come back as whatever pgx decodes for the column type; the accessor
// methods below normalize them for the health calculator.
type VehicleSnapshot map[string]any

// GetVehicleSnapshot reads one vehicle row in full.
func (s *Store) GetVehicleSnapshot(ctx context.Context, vehicleID int64) (VehicleSnapshot, error) {
	rows, err := s.db.Query(ctx, `SELECT * FROM vehiculos WHERE id = $1`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle %d: %w", vehicleID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get vehicle %d: %w", vehicleID, err)
		}
		return nil, fmt.Errorf("vehicle %d not found", vehicleID)
	}

	values, err := rows.Values()
	if err != nil {
		return nil, fmt.Errorf("read vehicle %d row: %w", vehicleID, err)
	}

	snapshot := make(VehicleSnapshot, len(values))
	for i, fd := range rows.FieldDescriptions() {
		snapshot[fd.Name] = values[i]
	}
	return snapshot, nil
}

// Int64 coerces a snapshot cell to an integer counter. The wide table
// mixes integer, numeric and legacy text columns for the km fields, so
// all three decode paths are handled. Returns nil for NULL, absent and
// non-numeric cells.
func (v VehicleSnapshot) Int64(column string) *int64 {
	raw, ok := v[column]
	if !ok || raw == nil {
		return nil
	}
	switch val := raw.(type) {
	case int64:
		return &val
	case int32:
		n := int64(val)
		return &n
	case int16:
		n := int64(val)
		return &n
	case float64:
		n := int64(val)
		return &n
	case pgtype.Numeric:
		if !val.Valid || val.Int == nil {
			return nil
		}
		n := numericToInt64(val)
		return n
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

// Time returns a snapshot cell as a date, if the column holds one.
func (v VehicleSnapshot) Time(column string) (time.Time, bool) {
	raw, ok := v[column]
	if !ok || raw == nil {
		return time.Time{}, false
	}
	t, ok := raw.(time.Time)
	return t, ok
}

// String renders a snapshot cell for display/export. NULL and absent
// cells render empty.
func (v VehicleSnapshot) String(column string) string {
	raw, ok := v[column]
	if !ok || raw == nil {
		return ""
	}
	switch val := raw.(type) {
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprint(val)
	}
}

// numericToInt64 truncates a pgtype.Numeric toward zero.
func numericToInt64(n pgtype.Numeric) *int64 {
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	out := int64(f.Float64)
	return &out
}
