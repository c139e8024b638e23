package flightdb

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverConn = "conn" // zombiezen connection per query
	DriverSQL  = "sql"  // database/sql handle, modernc driver
)

// DB is a Source backed by an injected *sql.DB. Each query acquires a
// dedicated connection from the handle and releases it before returning.
type DB struct {
	db *sql.DB
}

// NewDB wraps an open handle. The caller keeps ownership unless it calls Close.
func NewDB(db *sql.DB) *DB {
	return &DB{db: db}
}

// OpenDB opens the SQLite file at path through database/sql in query-only mode.
func OpenDB(path string) (*DB, error) {
	const op = "flightdb.OpenDB"

	if _, err := os.Stat(path); err != nil {
		return nil, &Error{Op: op, Ref: path, Kind: ErrConnection, Err: err}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)")
	if err != nil {
		return nil, &Error{Op: op, Ref: path, Kind: ErrConnection, Err: err}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return NewDB(db), nil
}

// Query runs a single statement with positional args.
func (d *DB) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	const op = "flightdb.DB.Query"

	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, &Error{Op: op, Kind: ErrConnection, Err: err}
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.QueryContext(ctx, normalizeQuery(query), args...)
	if err != nil {
		return nil, &Error{Op: op, Ref: snippet(query), Kind: ErrQuery, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &Error{Op: op, Ref: snippet(query), Kind: ErrQuery, Err: err}
	}
	res := newResult(cols)
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &Error{Op: op, Ref: snippet(query), Kind: ErrQuery, Err: err}
		}
		row := make(Row, len(cols))
		for i, name := range cols {
			row[name] = normalizeValue(vals[i])
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: op, Ref: snippet(query), Kind: ErrQuery, Err: err}
	}
	return res, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// normalizeValue maps driver values onto the set Conn produces.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case float32:
		return float64(x)
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case time.Time:
		return formatTime(x)
	default:
		return v
	}
}

// sqliteTimeLayout is the layout SQLite's date functions produce.
const sqliteTimeLayout = "2006-01-02 15:04:05.999999999"

// formatTime renders a time the driver parsed from a DATE/DATETIME/TIMESTAMP
// column back in SQLite's text layout, so both sources return the same string.
func formatTime(t time.Time) string {
	if _, off := t.Zone(); off != 0 {
		return t.Format(sqliteTimeLayout + "-07:00")
	}
	return t.Format(sqliteTimeLayout)
}

// Open returns a Source for the SQLite file at path using the named driver.
func Open(driver, path string) (Source, error) {
	switch driver {
	case DriverConn, "":
		if _, err := os.Stat(path); err != nil {
			return nil, &Error{Op: "flightdb.Open", Ref: path, Kind: ErrConnection, Err: err}
		}
		return NewConn(path), nil
	case DriverSQL:
		db, err := OpenDB(path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, Errorf("flightdb.Open", ErrValidation, driver, "unknown driver, want %q or %q", DriverConn, DriverSQL)
	}
}
