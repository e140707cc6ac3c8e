package persist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/acimap/kernel/internal/core/event"
	"github.com/acimap/kernel/internal/sim"
	"github.com/acimap/kernel/internal/world"
)

// TileRecord is one tile as stored in the snapshot's JSONB column. Walls
// carry only their position and ground level.
type TileRecord struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Wall     bool    `json:"wall,omitempty"`
	Ground   float32 `json:"ground"`
	Nitrogen float32 `json:"n2,omitempty"`
	Oxygen   float32 `json:"o2,omitempty"`
	Fumes    float32 `json:"fumes,omitempty"`
	Liquid   string  `json:"liquid,omitempty"`
	Level    float32 `json:"level,omitempty"`
}

// SnapshotRow is one row of the snapshots table.
type SnapshotRow struct {
	RunID      uuid.UUID
	Tick       uint64
	Time       float64
	Totals     world.Totals
	Characters int
	Working    int
	Checksum   []byte
	Tiles      []TileRecord // nil when tiles are not stored
}

// BuildSnapshotRow turns simulation stats into a row. The grid is only read
// when storeTiles is set.
func BuildSnapshotRow(runID uuid.UUID, st sim.Stats, g *world.Grid, storeTiles bool) SnapshotRow {
	row := SnapshotRow{
		RunID:      runID,
		Tick:       st.Tick,
		Time:       st.Time,
		Totals:     st.Totals,
		Characters: st.Characters,
		Working:    st.Working,
		Checksum:   append([]byte(nil), st.Checksum[:]...),
	}
	if !storeTiles || g == nil {
		return row
	}
	tiles := g.Tiles()
	row.Tiles = make([]TileRecord, len(tiles))
	for i := range tiles {
		t := &tiles[i]
		c := g.Coord(i)
		rec := TileRecord{X: c.X, Y: c.Y, Ground: t.GroundLevel}
		if air, liquids, ok := t.Ground(); ok {
			rec.Nitrogen, rec.Oxygen, rec.Fumes = air.Nitrogen, air.Oxygen, air.Fumes
			if !liquids.IsNone() {
				rec.Liquid = liquids.Kind.String()
				rec.Level = liquids.Level
			}
		} else {
			rec.Wall = true
		}
		row.Tiles[i] = rec
	}
	return row
}

type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// SaveSnapshot inserts a row. Saving the same tick twice overwrites it.
func (r *SnapshotRepo) SaveSnapshot(ctx context.Context, row SnapshotRow) error {
	var tiles any
	if row.Tiles != nil {
		tiles = row.Tiles
	}
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO snapshots (run_id, tick, sim_time, nitrogen, oxygen, fumes, water, lava,
		                        characters, working, checksum, tiles)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (run_id, tick) DO UPDATE SET
		     sim_time = EXCLUDED.sim_time, nitrogen = EXCLUDED.nitrogen, oxygen = EXCLUDED.oxygen,
		     fumes = EXCLUDED.fumes, water = EXCLUDED.water, lava = EXCLUDED.lava,
		     characters = EXCLUDED.characters, working = EXCLUDED.working,
		     checksum = EXCLUDED.checksum, tiles = EXCLUDED.tiles`,
		row.RunID, int64(row.Tick), row.Time,
		row.Totals.Nitrogen, row.Totals.Oxygen, row.Totals.Fumes, row.Totals.Water, row.Totals.Lava,
		row.Characters, row.Working, row.Checksum, tiles,
	)
	if err != nil {
		return fmt.Errorf("save snapshot tick %d: %w", row.Tick, err)
	}
	return nil
}

// SaveSolidified bulk-copies solidification events.
func (r *SnapshotRepo) SaveSolidified(ctx context.Context, runID uuid.UUID, events []event.TileSolidified) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([][]any, len(events))
	for i, ev := range events {
		rows[i] = []any{runID, int64(ev.Tick), ev.Tile.X, ev.Tile.Y}
	}
	_, err := r.db.Pool.CopyFrom(ctx,
		pgx.Identifier{"solidified_tiles"},
		[]string{"run_id", "tick", "x", "y"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("save %d solidified tiles: %w", len(events), err)
	}
	return nil
}
