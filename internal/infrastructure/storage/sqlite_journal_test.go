package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"qc-station/internal/domain/entity"
)

func TestSQLiteJournal_AppendAndRecent(t *testing.T) {
	j, err := OpenSQLiteJournal(filepath.Join(t.TempDir(), "qc", "journal.db"))
	require.NoError(t, err)
	defer j.Close()
	ctx := context.Background()

	base := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	require.NoError(t, j.Append(ctx, entity.InspectionRecord{
		ID: "first", InspectedAt: base, Color: entity.ColorBlue, ExposureUs: 30000, Accepted: true, Good: 1,
	}))
	require.NoError(t, j.Append(ctx, entity.InspectionRecord{
		ID: "second", InspectedAt: base.Add(time.Minute), Color: entity.ColorGray, ColorFallback: true,
		ExposureUs: 165000, ComponentID: 1, Phase: 1, PercentChange: -0.917, Good: 1, Bad: 1,
	}))

	recent, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	require.Equal(t, "second", recent[0].ID)
	require.False(t, recent[0].Accepted)
	require.True(t, recent[0].ColorFallback)
	require.Equal(t, entity.ColorGray, recent[0].Color)
	require.InDelta(t, -0.917, recent[0].PercentChange, 1e-9)
	require.Equal(t, 1, recent[0].Phase)
	require.True(t, recent[0].InspectedAt.Equal(base.Add(time.Minute)))

	require.Equal(t, "first", recent[1].ID)
	require.True(t, recent[1].Accepted)
}

func TestSQLiteJournal_ReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	j, err := OpenSQLiteJournal(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, entity.InspectionRecord{ID: "kept", InspectedAt: time.Now(), Color: entity.ColorRed}))
	require.NoError(t, j.Close())

	j, err = OpenSQLiteJournal(path)
	require.NoError(t, err)
	defer j.Close()

	recent, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "kept", recent[0].ID)
}

func TestSQLiteJournal_AddsPhaseToOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE inspections (
		id TEXT PRIMARY KEY,
		inspected_at TEXT NOT NULL,
		color TEXT NOT NULL,
		color_fallback INTEGER NOT NULL,
		exposure_us INTEGER NOT NULL,
		accepted INTEGER NOT NULL,
		component_id INTEGER NOT NULL,
		percent_change REAL NOT NULL,
		good INTEGER NOT NULL,
		bad INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO inspections VALUES ('old', '2026-10-19T08:00:00Z', 'red', 0, 95000, 1, 0, 0, 1, 0)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	j, err := OpenSQLiteJournal(path)
	require.NoError(t, err)
	defer j.Close()
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, entity.InspectionRecord{
		ID: "new", InspectedAt: time.Now(), Color: entity.ColorRed, ComponentID: 22, Phase: 2, PercentChange: -1, Bad: 1,
	}))

	recent, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, 2, recent[0].Phase)
	require.Equal(t, "old", recent[1].ID)
	require.Zero(t, recent[1].Phase)
}
