// Package storage persists collected gesture samples in a sqlite database,
// using the same table shape the training pipeline reads from.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/FerociousFuture/Proyecto-Automata-IoT/internal/record"
)

const initSchemaSQL = `
CREATE TABLE IF NOT EXISTS gestos_raw (
    id        INTEGER PRIMARY KEY,
    timestamp TEXT NOT NULL,
    accel_x   REAL,
    accel_y   REAL,
    accel_z   REAL,
    gyro_x    REAL,
    gyro_y    REAL,
    gyro_z    REAL,
    magnitud  REAL,
    etiqueta  TEXT DEFAULT ''
)`

const insertSampleSQL = `
INSERT INTO gestos_raw (timestamp,
                        accel_x,
                        accel_y,
                        accel_z,
                        gyro_x,
                        gyro_y,
                        gyro_z,
                        magnitud)
VALUES (?, ?, ?, ?, 0, 0, 0, ?)`

// timestampLayout matches the wall-clock format the training scripts expect.
const timestampLayout = "2006-01-02 15:04:05.000000"

// Store is a write handle to the gesture sample database.
type Store struct {
	db     *sql.DB
	insert *sql.Stmt
}

// Open opens (or creates) the database at dbPath and ensures the schema.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_synchronous=NORMAL", dbPath))
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", dbPath, err)
	}

	if _, err := db.Exec(initSchemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: initializing schema: %w", err)
	}

	insert, err := db.Prepare(insertSampleSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: preparing insert: %w", err)
	}

	return &Store{db: db, insert: insert}, nil
}

// InsertSample stores one parsed record with the wall-clock time it was
// received. The sample stream carries no gyro data, so those columns are
// written as zero.
func (s *Store) InsertSample(receivedAt time.Time, r record.Record) error {
	ts := receivedAt.Format(timestampLayout)
	if _, err := s.insert.Exec(ts, r.Ax, r.Ay, r.Az, r.Magnitude); err != nil {
		return fmt.Errorf("storage: insert sample: %w", err)
	}
	return nil
}

// CountSamples returns the number of stored rows.
func (s *Store) CountSamples() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM gestos_raw").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: count samples: %w", err)
	}
	return n, nil
}

// Close releases the prepared statement and the database handle.
func (s *Store) Close() error {
	s.insert.Close()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("storage: close: %w", err)
	}
	return nil
}
