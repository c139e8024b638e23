package flightdb

import (
	"context"
	"fmt"

	"zombiezen.com/go/sqlite"
)

// Conn is a Source that opens a read-only connection for every query and
// closes it before returning, whether the query succeeds or not.
type Conn struct {
	path string
}

// NewConn returns a Conn for the SQLite file at path. Nothing is opened until Query.
func NewConn(path string) *Conn {
	return &Conn{path: path}
}

// Query runs a single statement with positional args bound to its ? placeholders.
func (c *Conn) Query(ctx context.Context, query string, args ...any) (*Result, error) {
	const op = "flightdb.Conn.Query"

	conn, err := sqlite.OpenConn(c.path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, &Error{Op: op, Ref: c.path, Kind: ErrConnection, Err: err}
	}
	defer func() { _ = conn.Close() }()
	conn.SetInterrupt(ctx.Done())

	stmt, trailing, err := conn.PrepareTransient(normalizeQuery(query))
	if err != nil {
		return nil, &Error{Op: op, Ref: snippet(query), Kind: ErrQuery, Err: err}
	}
	defer func() { _ = stmt.Finalize() }()
	if trailing > 0 {
		return nil, Errorf(op, ErrQuery, snippet(query), "query contains more than one statement")
	}
	if err := bindArgs(stmt, args); err != nil {
		return nil, &Error{Op: op, Ref: snippet(query), Kind: ErrQuery, Err: err}
	}

	cols := make([]string, stmt.ColumnCount())
	for i := range cols {
		cols[i] = stmt.ColumnName(i)
	}
	res := newResult(cols)
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, &Error{Op: op, Ref: snippet(query), Kind: ErrQuery, Err: err}
		}
		if !hasRow {
			break
		}
		row := make(Row, len(cols))
		for i, name := range cols {
			row[name] = columnValue(stmt, i)
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// Close is a no-op: Conn holds no connection between queries.
func (c *Conn) Close() error { return nil }

func bindArgs(stmt *sqlite.Stmt, args []any) error {
	if n := stmt.BindParamCount(); n != len(args) {
		return fmt.Errorf("statement has %d parameters, got %d args", n, len(args))
	}
	for i, arg := range args {
		param := i + 1
		switch v := arg.(type) {
		case nil:
			stmt.BindNull(param)
		case string:
			stmt.BindText(param, v)
		case []byte:
			stmt.BindBytes(param, v)
		case int:
			stmt.BindInt64(param, int64(v))
		case int64:
			stmt.BindInt64(param, v)
		case float64:
			stmt.BindFloat(param, v)
		case bool:
			stmt.BindBool(param, v)
		default:
			return fmt.Errorf("unsupported arg type %T at position %d", arg, param)
		}
	}
	return nil
}

func columnValue(stmt *sqlite.Stmt, col int) any {
	switch stmt.ColumnType(col) {
	case sqlite.TypeInteger:
		return stmt.ColumnInt64(col)
	case sqlite.TypeFloat:
		return stmt.ColumnFloat(col)
	case sqlite.TypeText:
		return stmt.ColumnText(col)
	case sqlite.TypeBlob:
		buf := make([]byte, stmt.ColumnLen(col))
		stmt.ColumnBytes(col, buf)
		return buf
	default:
		return nil
	}
}
