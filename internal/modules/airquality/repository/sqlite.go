package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"math"

	"airquality-server/internal/modules/airquality/types"
)

//go:embed sql/select-observations.sql
var selectObservationsSQL string

//go:embed sql/insert-observation.sql
var insertObservationSQL string

//go:embed sql/delete-observations.sql
var deleteObservationsSQL string

//go:embed sql/count-observations.sql
var countObservationsSQL string

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository reads and writes the observations table created by the
// migrations package.
func NewSQLiteRepository(db *sql.DB) ObservationStore {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) LoadObservations(ctx context.Context) ([]types.Observation, error) {
	rows, err := r.db.QueryContext(ctx, selectObservationsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: query observations: %v", types.ErrDataUnavailable, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close observation rows", "error", err)
		}
	}()

	columns := types.MeasurementColumns()
	var out []types.Observation
	for rows.Next() {
		var (
			o      types.Observation
			values = make([]sql.NullFloat64, len(columns))
			dest   = make([]any, 0, len(columns)+2)
		)
		dest = append(dest, &o.No, &o.Station)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan observation: %v", types.ErrDataUnavailable, err)
		}
		for i, name := range columns {
			v := math.NaN()
			if values[i].Valid {
				v = values[i].Float64
			}
			o.SetValue(name, v)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read observations: %v", types.ErrDataUnavailable, err)
	}
	return out, nil
}

// ReplaceObservations deletes every stored row and inserts rows in one transaction.
func (r *sqliteRepository) ReplaceObservations(ctx context.Context, rows []types.Observation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteObservationsSQL); err != nil {
		return fmt.Errorf("clear observations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertObservationSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			slog.Error("close insert statement", "error", err)
		}
	}()

	columns := types.MeasurementColumns()
	args := make([]any, len(columns)+2)
	for _, o := range rows {
		args[0], args[1] = o.No, o.Station
		for i, name := range columns {
			v, _ := o.Value(name)
			args[i+2] = nullableFloat(v)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert observation %s/%d: %w", o.Station, o.No, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func (r *sqliteRepository) CountObservations(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countObservationsSQL).Scan(&n)
	return n, err
}

func nullableFloat(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
