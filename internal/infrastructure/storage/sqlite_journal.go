package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.

	"qc-station/internal/domain/entity"
	"qc-station/internal/domain/port"
)

// SQLiteJournal журнал проверок в файле SQLite.
// Счётчики станции из журнала не восстанавливаются: они живут только до перезапуска.
type SQLiteJournal struct {
	db *sql.DB
}

// OpenSQLiteJournal открывает или создаёт базу и применяет миграции
func OpenSQLiteJournal(path string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return j, nil
}

// Close закрывает базу
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

func (j *SQLiteJournal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS inspections (
			id TEXT PRIMARY KEY,
			inspected_at TEXT NOT NULL,
			color TEXT NOT NULL,
			color_fallback INTEGER NOT NULL,
			exposure_us INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			component_id INTEGER NOT NULL,
			phase INTEGER NOT NULL DEFAULT 0,
			percent_change REAL NOT NULL,
			good INTEGER NOT NULL,
			bad INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_inspections_inspected_at ON inspections(inspected_at);`,
	}
	for _, stmt := range stmts {
		if _, err := j.db.Exec(stmt); err != nil {
			return err
		}
	}
	// журналы, созданные до появления колонки phase
	return j.addColumn("inspections", "phase", "INTEGER NOT NULL DEFAULT 0")
}

func (j *SQLiteJournal) addColumn(table, column, decl string) error {
	rows, err := j.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = j.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// Append добавляет запись о цикле
func (j *SQLiteJournal) Append(ctx context.Context, r entity.InspectionRecord) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO inspections (id, inspected_at, color, color_fallback, exposure_us, accepted, component_id, phase, percent_change, good, bad)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.InspectedAt.UTC().Format(time.RFC3339Nano),
		string(r.Color),
		r.ColorFallback,
		r.ExposureUs,
		r.Accepted,
		r.ComponentID,
		r.Phase,
		r.PercentChange,
		r.Good,
		r.Bad,
	)
	return err
}

// Recent возвращает последние записи, новые первыми
func (j *SQLiteJournal) Recent(ctx context.Context, limit int) ([]entity.InspectionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, inspected_at, color, color_fallback, exposure_us, accepted, component_id, phase, percent_change, good, bad
		 FROM inspections ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entity.InspectionRecord
	for rows.Next() {
		var (
			r     entity.InspectionRecord
			at    string
			color string
		)
		if err := rows.Scan(&r.ID, &at, &color, &r.ColorFallback, &r.ExposureUs, &r.Accepted, &r.ComponentID, &r.Phase, &r.PercentChange, &r.Good, &r.Bad); err != nil {
			return nil, err
		}
		r.InspectedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse inspected_at %q: %w", at, err)
		}
		r.Color = entity.BoardColor(color)
		records = append(records, r)
	}
	return records, rows.Err()
}

var _ port.InspectionJournal = (*SQLiteJournal)(nil)
