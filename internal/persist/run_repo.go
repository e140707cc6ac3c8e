package persist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RunInfo describes one process lifetime of a scenario.
type RunInfo struct {
	ID       uuid.UUID
	Scenario string
	Width    int
	Height   int
}

// NewRunInfo assigns a fresh random run ID.
func NewRunInfo(scenario string, width, height int) RunInfo {
	return RunInfo{ID: uuid.New(), Scenario: scenario, Width: width, Height: height}
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Start records the beginning of a run.
func (r *RunRepo) Start(ctx context.Context, run RunInfo) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO runs (id, scenario, width, height) VALUES ($1, $2, $3, $4)`,
		run.ID, run.Scenario, run.Width, run.Height,
	)
	if err != nil {
		return fmt.Errorf("start run %s: %w", run.ID, err)
	}
	return nil
}

// Finish stamps the end time and the number of completed ticks.
func (r *RunRepo) Finish(ctx context.Context, id uuid.UUID, ticks uint64) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE runs SET finished_at = NOW(), ticks = $2 WHERE id = $1`,
		id, int64(ticks),
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finish run %s: no such run", id)
	}
	return nil
}
