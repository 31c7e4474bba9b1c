package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"profilo/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Put(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap.Account)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (login, token, payload, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(login) DO UPDATE SET
			token = excluded.token,
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`,
		snap.Login, snap.Token, payload, snap.FetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot saved",
		"login", snap.Login,
		"transactions", len(snap.Account.Transactions))
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, login string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT login, token, payload, fetched_at FROM snapshots WHERE login = ?`, login)
	return scanSnapshot(row)
}

func (s *SQLiteStore) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT login, token, payload, fetched_at FROM snapshots ORDER BY login`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var snap Snapshot
	var payload []byte
	var fetchedAt string

	if err := row.Scan(&snap.Login, &snap.Token, &payload, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}

	var acc core.Account
	if err := json.Unmarshal(payload, &acc); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal account payload: %w", err)
	}
	snap.Account = acc

	t, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse fetched_at: %w", err)
	}
	snap.FetchedAt = t
	return snap, nil
}
