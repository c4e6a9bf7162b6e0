package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresIndicatorRecorder сохраняет вычисленные значения территориальных
// индикаторов в локальную таблицу. Платформенный приёмник живёт в
// infrastructure/urbanapi, рекордер держит локальную историю значений.
type PostgresIndicatorRecorder struct {
	db *sqlx.DB
}

func NewPostgresIndicatorRecorder(db *sqlx.DB) *PostgresIndicatorRecorder {
	return &PostgresIndicatorRecorder{db: db}
}

func (r *PostgresIndicatorRecorder) SaveIndicatorValue(
	ctx context.Context,
	territoryID int64,
	indicatorID int,
	value float64,
	comment string,
) error {
	const query = `
		INSERT INTO indicator_values (
			territory_id, indicator_id, value, comment, recorded_at
		) VALUES (
			$1, $2, $3, $4, NOW()
		)`

	_, err := r.db.ExecContext(ctx, query,
		territoryID, indicatorID, value,
		sql.NullString{String: comment, Valid: comment != ""},
	)
	if err != nil {
		return fmt.Errorf("failed to insert indicator value: %w", err)
	}
	return nil
}
