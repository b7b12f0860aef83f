package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"schedparse/domain/core"
	"schedparse/domain/schedule"
	"schedparse/ports"
)

// resultJSON stores a ParseResult in a JSONB column.
type resultJSON schedule.ParseResult

// Value implements driver.Valuer interface
func (r resultJSON) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner interface
func (r *resultJSON) Scan(value interface{}) error {
	if value == nil {
		*r = resultJSON{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported result column type %T", value)
	}
	return json.Unmarshal(bytes, r)
}

type parseRunRow struct {
	ID           string     `db:"id"`
	Filename     string     `db:"filename"`
	ScheduleName string     `db:"schedule_name"`
	ProductCount int        `db:"product_count"`
	Result       resultJSON `db:"result"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (row parseRunRow) toParseRun() *ports.ParseRun {
	return &ports.ParseRun{
		ID:           core.ParseRunID(row.ID),
		Filename:     row.Filename,
		ScheduleName: row.ScheduleName,
		ProductCount: row.ProductCount,
		Result:       schedule.ParseResult(row.Result),
		CreatedAt:    row.CreatedAt,
	}
}

// ScheduleRepositoryImpl implements ScheduleRepository for PostgreSQL
type ScheduleRepositoryImpl struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new PostgreSQL schedule repository
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepositoryImpl {
	return &ScheduleRepositoryImpl{db: db}
}

// EnsureSchema creates the parse_runs table if it does not exist.
func (r *ScheduleRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS parse_runs (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			schedule_name TEXT NOT NULL,
			product_count INTEGER NOT NULL,
			result JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create parse_runs table: %w", err)
	}
	return nil
}

// Create stores a parse run
func (r *ScheduleRepositoryImpl) Create(ctx context.Context, run *ports.ParseRun) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO parse_runs (id, filename, schedule_name, product_count, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID.String(), run.Filename, run.ScheduleName, run.ProductCount, resultJSON(run.Result), run.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert parse run: %w", err)
	}
	return nil
}

// GetByID retrieves a parse run by ID
func (r *ScheduleRepositoryImpl) GetByID(ctx context.Context, id core.ParseRunID) (*ports.ParseRun, error) {
	var row parseRunRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, filename, schedule_name, product_count, result, created_at
		FROM parse_runs
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrParseRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select parse run: %w", err)
	}
	return row.toParseRun(), nil
}

// List returns parse runs, newest first
func (r *ScheduleRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*ports.ParseRun, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rows []parseRunRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, filename, schedule_name, product_count, result, created_at
		FROM parse_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parse runs: %w", err)
	}

	runs := make([]*ports.ParseRun, len(rows))
	for i, row := range rows {
		runs[i] = row.toParseRun()
	}
	return runs, nil
}

// Delete removes a parse run
func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id core.ParseRunID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parse_runs WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete parse run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete parse run: %w", err)
	}
	if affected == 0 {
		return core.ErrParseRunNotFound
	}
	return nil
}

var _ ports.ScheduleRepository = (*ScheduleRepositoryImpl)(nil)
