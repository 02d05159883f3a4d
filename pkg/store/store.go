// Package store persists client records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/PrettyR/ClientSphere/pkg/activity"
	"github.com/PrettyR/ClientSphere/pkg/data"
)

var ErrNotFound = errors.New("store: client not found")

// timeLayout is fixed width so activity rows sort by text.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Store is a SQLite-backed client repository. client_id is unique; writing
// an existing id updates the row.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// ClusterCount is the number of stored clients with one label. Cluster is
// nil for unassigned clients.
type ClusterCount struct {
	Cluster *int `json:"cluster"`
	Count   int  `json:"count"`
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps :memory: databases and write ordering consistent
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	clientsTable := `
	CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id TEXT NOT NULL UNIQUE,
		age INTEGER NOT NULL DEFAULT 0,
		balance REAL NOT NULL DEFAULT 0,
		tx_count INTEGER NOT NULL DEFAULT 0,
		cluster_label INTEGER,
		raw_attributes TEXT,
		import_batch TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_clients_cluster ON clients(cluster_label);
	`

	activityTable := `
	CREATE TABLE IF NOT EXISTS activity_logs (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		resource TEXT,
		details TEXT,
		user_name TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_logs(created_at);
	`

	for _, table := range []string{clientsTable, activityTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Upsert inserts or updates records in one transaction and returns how many
// were written. batch tags the rows with the import they came from.
func (s *Store) Upsert(ctx context.Context, recs []data.ClientRecord, batch string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO clients (client_id, age, balance, tx_count, cluster_label, raw_attributes, import_batch)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			age = excluded.age,
			balance = excluded.balance,
			tx_count = excluded.tx_count,
			cluster_label = excluded.cluster_label,
			raw_attributes = excluded.raw_attributes,
			import_batch = excluded.import_batch,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, r := range recs {
		if r.ClientID == "" {
			continue
		}
		attrs, err := json.Marshal(r.RawAttributes)
		if err != nil {
			return 0, fmt.Errorf("encode attributes for %s: %w", r.ClientID, err)
		}
		var label any
		if r.ClusterLabel != nil {
			label = *r.ClusterLabel
		}
		if _, err := stmt.ExecContext(ctx, r.ClientID, r.Age, r.Balance, r.TxCount, label, string(attrs), batch); err != nil {
			return 0, fmt.Errorf("upsert %s: %w", r.ClientID, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert: %w", err)
	}
	return n, nil
}

// SetLabels overwrites the cluster label of the given clients. Unknown ids
// are ignored. It returns the number of rows changed.
func (s *Store) SetLabels(ctx context.Context, labels map[string]*int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin set labels: %w", err)
	}
	defer tx.Rollback()

	n := 0
	for id, l := range labels {
		var label any
		if l != nil {
			label = *l
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE clients SET cluster_label = ?, updated_at = CURRENT_TIMESTAMP WHERE client_id = ?`, label, id)
		if err != nil {
			return 0, fmt.Errorf("set label %s: %w", id, err)
		}
		if c, _ := res.RowsAffected(); c > 0 {
			n += int(c)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit set labels: %w", err)
	}
	return n, nil
}

const selectClients = `SELECT client_id, age, balance, tx_count, cluster_label, raw_attributes FROM clients`

// All returns every client ordered by insertion.
func (s *Store) All(ctx context.Context) ([]data.ClientRecord, error) {
	return s.query(ctx, selectClients+` ORDER BY id`)
}

// ByCluster returns the clients with the given label; nil selects the
// unassigned clients.
func (s *Store) ByCluster(ctx context.Context, cluster *int) ([]data.ClientRecord, error) {
	if cluster == nil {
		return s.query(ctx, selectClients+` WHERE cluster_label IS NULL ORDER BY id`)
	}
	return s.query(ctx, selectClients+` WHERE cluster_label = ? ORDER BY id`, *cluster)
}

// Get returns one client or ErrNotFound.
func (s *Store) Get(ctx context.Context, clientID string) (data.ClientRecord, error) {
	recs, err := s.query(ctx, selectClients+` WHERE client_id = ?`, clientID)
	if err != nil {
		return data.ClientRecord{}, err
	}
	if len(recs) == 0 {
		return data.ClientRecord{}, fmt.Errorf("%w: %s", ErrNotFound, clientID)
	}
	return recs[0], nil
}

// Count returns the number of stored clients.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

// CountByCluster returns client counts per label, ascending with the
// unassigned group last.
func (s *Store) CountByCluster(ctx context.Context) ([]ClusterCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `
		SELECT cluster_label, COUNT(*) FROM clients
		GROUP BY cluster_label
		ORDER BY cluster_label IS NULL, cluster_label`)
	if err != nil {
		return nil, fmt.Errorf("count by cluster: %w", err)
	}
	defer rows.Close()

	out := []ClusterCount{}
	for rows.Next() {
		var label sql.NullInt64
		var c ClusterCount
		if err := rows.Scan(&label, &c.Count); err != nil {
			return nil, err
		}
		if label.Valid {
			v := int(label.Int64)
			c.Cluster = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Clear deletes every client and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients`)
	if err != nil {
		return 0, fmt.Errorf("clear clients: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]data.ClientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var out []data.ClientRecord
	for rows.Next() {
		var r data.ClientRecord
		var label sql.NullInt64
		var attrs sql.NullString
		if err := rows.Scan(&r.ClientID, &r.Age, &r.Balance, &r.TxCount, &label, &attrs); err != nil {
			return nil, err
		}
		if label.Valid {
			v := int(label.Int64)
			r.ClusterLabel = &v
		}
		if attrs.Valid && attrs.String != "" {
			if err := json.Unmarshal([]byte(attrs.String), &r.RawAttributes); err != nil {
				return nil, fmt.Errorf("decode attributes for %s: %w", r.ClientID, err)
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LogActivity stores one activity entry.
func (s *Store) LogActivity(ctx context.Context, e activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity_logs (id, action, resource, details, user_name, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Action, e.Resource, e.Details, e.User, e.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}

// Activity returns the most recent entries, newest first.
func (s *Store) Activity(ctx context.Context, limit int) ([]activity.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, action, resource, details, user_name, created_at FROM activity_logs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	out := []activity.Entry{}
	for rows.Next() {
		var e activity.Entry
		var resource, details, user sql.NullString
		var created string
		if err := rows.Scan(&e.ID, &e.Action, &resource, &details, &user, &created); err != nil {
			return nil, err
		}
		e.Resource, e.Details, e.User = resource.String, details.String, user.String
		if ts, err := time.Parse(timeLayout, created); err == nil {
			e.CreatedAt = ts
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
