package datastore

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meslamib3/storiesdb/internal/errors"
	"github.com/meslamib3/storiesdb/internal/method"
	"github.com/meslamib3/storiesdb/internal/metrics"
	_ "modernc.org/sqlite"
)

// busyTimeout is how long a statement waits on SQLite's file lock held by another session
const busyTimeout = 5 * time.Second

// uriPath escapes the characters SQLite's URI filename parser treats as delimiters
var uriPath = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// SQLiteStore implements the Store interface for local SQLite storage
type SQLiteStore struct {
	db      *sql.DB
	dbPath  string
	metrics *metrics.Metrics
}

// Option configures a SQLiteStore
type Option func(*SQLiteStore)

// WithMetrics records every operation in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SQLiteStore) {
		s.metrics = m
	}
}

// NewSQLiteStore creates a new SQLiteStore instance
func NewSQLiteStore(dbPath string, opts ...Option) *SQLiteStore {
	s := &SQLiteStore{
		dbPath: dbPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store for dbPath, connects it and ensures the schema exists
func Open(ctx context.Context, dbPath string, opts ...Option) (*SQLiteStore, error) {
	s := NewSQLiteStore(dbPath, opts...)
	if err := s.Connect(); err != nil {
		return nil, err
	}
	if err := s.Init(ctx); err != nil {
		return nil, stdErrors.Join(err, s.Close())
	}
	return s, nil
}

// Connect opens a connection to the SQLite database
func (s *SQLiteStore) Connect() error {
	if dir := filepath.Dir(s.dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", uriPath.Replace(s.dbPath), busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer: statements from concurrent requests queue for the one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return stdErrors.Join(fmt.Errorf("failed to connect to database: %w", err), closeErr)
	}

	s.db = db
	slog.Debug("Opened method database", "path", s.dbPath)
	return nil
}

// Init creates the methods table if it doesn't exist
func (s *SQLiteStore) Init(ctx context.Context) (err error) {
	defer s.observe("init", time.Now(), &err)

	if _, err = s.db.ExecContext(ctx, MethodsSchema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Insert appends a record; the id of m is ignored
func (s *SQLiteStore) Insert(ctx context.Context, m method.Method) (id int64, err error) {
	defer s.observe("insert", time.Now(), &err)

	result, err := s.db.ExecContext(ctx, insertSQL, m.Values()...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert method: %w", err)
	}

	id, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}

	slog.Debug("Method inserted", "id", id, "method_name", m.MethodName)
	return id, nil
}

// List returns all records ordered by id
func (s *SQLiteStore) List(ctx context.Context) (methods []method.Method, err error) {
	defer s.observe("list", time.Now(), &err)

	rows, err := s.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query methods: %w", err)
	}
	defer func() { _ = rows.Close() }()

	methods = []method.Method{}
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read methods: %w", err)
	}

	slog.Debug("Loaded methods", "count", len(methods))
	return methods, nil
}

// Get returns the record with the given id
func (s *SQLiteStore) Get(ctx context.Context, id int64) (m method.Method, err error) {
	defer s.observe("get", time.Now(), &err)

	m, err = scanMethod(s.db.QueryRowContext(ctx, selectOneSQL, id))
	if stdErrors.Is(err, sql.ErrNoRows) {
		return method.Method{}, errors.NewNotFoundError(MethodsTable, id)
	}
	if err != nil {
		return method.Method{}, err
	}
	return m, nil
}

// IDs returns all record identifiers in ascending order
func (s *SQLiteStore) IDs(ctx context.Context) (ids []int64, err error) {
	defer s.observe("ids", time.Now(), &err)

	rows, err := s.db.QueryContext(ctx, selectIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query method ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids = []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan method id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read method ids: %w", err)
	}
	return ids, nil
}

// Update replaces all 25 fields of the record with the given id in one statement
func (s *SQLiteStore) Update(ctx context.Context, id int64, m method.Method) (changed bool, err error) {
	defer s.observe("update", time.Now(), &err)

	args := append(m.Values(), id)
	result, err := s.db.ExecContext(ctx, updateSQL, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update method %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		slog.Warn("Update matched no method", "id", id)
		return false, nil
	}

	slog.Debug("Method updated", "id", id)
	return true, nil
}

// Delete removes the record with the given id
func (s *SQLiteStore) Delete(ctx context.Context, id int64) (changed bool, err error) {
	defer s.observe("delete", time.Now(), &err)

	result, err := s.db.ExecContext(ctx, deleteSQL, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete method %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		slog.Warn("Delete matched no method", "id", id)
		return false, nil
	}

	slog.Debug("Method deleted", "id", id)
	return true, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// observe records the outcome of an operation. NotFoundError is an expected
// answer, not a storage failure.
func (s *SQLiteStore) observe(operation string, start time.Time, errp *error) {
	err := *errp
	if errors.IsNotFoundError(err) {
		err = nil
	}
	s.metrics.ObserveStore(operation, start, err)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMethod(row scanner) (method.Method, error) {
	var m method.Method
	fields := m.Pointers()

	// Columns are nullable TEXT; rows written by other tools may hold NULL.
	nulls := make([]sql.NullString, len(fields))
	dest := make([]any, 0, len(fields)+1)
	dest = append(dest, &m.ID)
	for i := range nulls {
		dest = append(dest, &nulls[i])
	}

	if err := row.Scan(dest...); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return method.Method{}, err
		}
		return method.Method{}, fmt.Errorf("failed to scan method: %w", err)
	}

	for i, n := range nulls {
		*fields[i] = n.String
	}
	return m, nil
}
