// Package devstore serves the remote row-source interface from a local
// SQLite database. It backs development and tests when no hosted project
// is configured, and mimics the hosted store's error codes so the fetch
// fallback policies behave identically against it.
package devstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"coachdesk/internal/adapters/remote"
	"coachdesk/internal/domain/row"
)

// Store implements remote.RowSource over SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the dev database with WAL mode and busy timeout.
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open dev database: %w", err)
	}
	return db, nil
}

// New creates a Store over an open database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// selectable columns per table, in stable order. Queries never interpolate
// caller input into SQL; tables and columns are checked against these.
var tableColumns = map[string][]string{
	"employees": {"id", "first_name", "last_name", "program", "email", "phone", "start_date", "end_date", "notes", "avatar_url"},
	"sessions":  {"id", "created_at", "session_date", "status", "program", "employee_id", "employee_name"},
}

// Migrate creates the dev tables. When normalized is false the employees
// table is omitted, leaving only the denormalized session log so the
// roster fallback path can be exercised end to end.
// PRE: db is open
// POST: Tables exist and are empty unless previously seeded
func (s *Store) Migrate(ctx context.Context, normalized bool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			session_date TEXT,
			status TEXT,
			program TEXT,
			employee_id INTEGER,
			employee_name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,
	}
	if normalized {
		stmts = append(stmts, `CREATE TABLE IF NOT EXISTS employees (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT,
			last_name TEXT,
			program TEXT,
			email TEXT,
			phone TEXT,
			start_date TEXT,
			end_date TEXT,
			notes TEXT,
			avatar_url TEXT
		)`)
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("devstore migrate: %w", err)
		}
	}
	return nil
}

// Select serves one ranged query, mirroring the hosted store's contract:
// a missing table reports code 42P01, an unknown column 42703.
// PRE: q.Table is non-empty
// POST: Returns one page of rows as open records
func (s *Store) Select(ctx context.Context, q remote.Query) ([]row.Row, error) {
	cols, ok := tableColumns[q.Table]
	if !ok {
		return nil, missingRelation(q.Table)
	}
	exists, err := s.tableExists(ctx, q.Table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, missingRelation(q.Table)
	}

	// A nested-relation select requires the joined table to exist.
	wantsJoin := strings.Contains(q.Select, ":employees(")
	if wantsJoin {
		joined, err := s.tableExists(ctx, "employees")
		if err != nil {
			return nil, err
		}
		if !joined {
			return nil, missingRelation("employees")
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(q.Table)

	var where []string
	for _, col := range q.NotNull {
		if !columnKnown(cols, col) {
			return nil, undefinedColumn(col)
		}
		where = append(where, col+" IS NOT NULL")
	}
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	if q.OrderBy != "" {
		if !columnKnown(cols, q.OrderBy) {
			return nil, undefinedColumn(q.OrderBy)
		}
		sb.WriteString(" ORDER BY " + q.OrderBy)
		if q.OrderDesc {
			sb.WriteString(" DESC")
		}
	} else {
		sb.WriteString(" ORDER BY id")
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d OFFSET %d", q.Limit, q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sb.String())
	if err != nil {
		return nil, fmt.Errorf("devstore select %s: %w", q.Table, err)
	}
	defer rows.Close()

	out := []row.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("devstore scan %s: %w", q.Table, err)
		}
		rec := make(row.Row, len(cols))
		for i, col := range cols {
			rec[col] = jsonValue(vals[i])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if wantsJoin {
		if err := s.nestEmployees(ctx, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// nestEmployees attaches a joined employee sub-record to each session row,
// emulating the hosted store's nested-relation selection.
func (s *Store) nestEmployees(ctx context.Context, sessions []row.Row) error {
	employees, err := s.Select(ctx, remote.Query{Table: "employees"})
	if err != nil {
		return err
	}
	byID := make(map[string]row.Row, len(employees))
	for _, e := range employees {
		if id, ok := row.Pick(e, "id"); ok {
			byID[id] = e
		}
	}
	for _, sess := range sessions {
		id, ok := row.Pick(sess, "employee_id")
		if !ok {
			continue
		}
		if e, found := byID[id]; found {
			sess["employee"] = map[string]any(e)
		}
	}
	return nil
}

func (s *Store) tableExists(ctx context.Context, table string) (bool, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func columnKnown(cols []string, col string) bool {
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}

// jsonValue converts a scanned SQLite value to the shape JSON decoding
// would produce, so domain reconciliation sees identical inputs in dev
// and production.
func jsonValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(t)
	case int64:
		return float64(t)
	default:
		return v
	}
}

func missingRelation(table string) *remote.QueryError {
	return &remote.QueryError{
		Code:       remote.CodeUndefinedTable,
		Message:    fmt.Sprintf("relation %q does not exist", "public."+table),
		HTTPStatus: 404,
	}
}

func undefinedColumn(col string) *remote.QueryError {
	return &remote.QueryError{
		Code:       remote.CodeUndefinedColumn,
		Message:    fmt.Sprintf("column %q does not exist", col),
		HTTPStatus: 400,
	}
}
