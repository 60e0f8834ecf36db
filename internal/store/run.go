package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kubev2v/installer-driver/internal/models"
	srvErrors "github.com/kubev2v/installer-driver/pkg/errors"
)

type RunStore struct {
	db QueryInterceptor
}

func NewRunStore(db QueryInterceptor) *RunStore {
	return &RunStore{db: db}
}

// Save inserts run. A zero ID is replaced with a fresh one.
func (s *RunStore) Save(ctx context.Context, run *models.Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	_, err := s.db.ExecContext(ctx, queryInsertRun,
		run.ID.String(),
		string(run.Operation),
		run.Host,
		run.Username,
		run.Trust,
		run.Force,
		run.ExpectFailure,
		run.Outcome.Value(),
		run.ExitCode,
		run.LogPath,
		run.Error,
		run.StartedAt.UTC(),
		run.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	query, args, err := sq.Select(runColumns...).From("runs").Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewRunNotFoundError(id.String())
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns runs newest first unless a sort option says otherwise.
func (s *RunStore) List(ctx context.Context, opts ...ListOption) ([]models.Run, error) {
	builder := sq.Select(runColumns...).From("runs")
	for _, opt := range opts {
		builder = opt(builder)
	}
	builder = builder.OrderBy("started_at DESC", "id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

func (s *RunStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("runs")
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Prune deletes runs started before t and returns how many were removed.
func (s *RunStore) Prune(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, queryDeleteRunsBefore, t.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	var (
		run       models.Run
		id        string
		operation string
		outcome   string
	)
	err := row.Scan(
		&id,
		&operation,
		&run.Host,
		&run.Username,
		&run.Trust,
		&run.Force,
		&run.ExpectFailure,
		&outcome,
		&run.ExitCode,
		&run.LogPath,
		&run.Error,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	if run.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	run.Operation = models.Operation(operation)
	run.Outcome = models.Outcome(outcome)

	return &run, nil
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByOperations(operations ...models.Operation) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(operations) == 0 {
			return b
		}
		values := make([]string, 0, len(operations))
		for _, o := range operations {
			values = append(values, string(o))
		}
		return b.Where(sq.Eq{"operation": values})
	}
}

func ByOutcomes(outcomes ...models.Outcome) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(outcomes) == 0 {
			return b
		}
		values := make([]string, 0, len(outcomes))
		for _, o := range outcomes {
			values = append(values, string(o))
		}
		return b.Where(sq.Eq{"outcome": values})
	}
}

func ByHost(host string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if host == "" {
			return b
		}
		return b.Where(sq.Eq{"host": host})
	}
}

// Since keeps runs started at or after t.
func Since(t time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.GtOrEq{"started_at": t.UTC()})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}
