package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/repository"
)

// ErrUnknownColumn is returned when a row or filter names a column the table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// Dialect selects placeholder syntax.
type Dialect int

const (
	// SQLite uses "?" placeholders.
	SQLite Dialect = iota
	// Postgres uses "$1", "$2", ... placeholders.
	Postgres
)

// String returns the dialect name.
func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// rebind rewrites "?" placeholders for the dialect. Queries built by this
// package never contain a literal question mark.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// Row is one table row keyed by column name.
type Row map[string]any

// Expr is a SQL expression used in place of a literal value in an update.
// Its placeholders are written as "?".
type Expr struct {
	SQL  string
	Args []any
}

// Filter scopes a statement to one account, plus optional equality conditions.
type Filter struct {
	AccountID string
	Eq        Row
}

// Client issues account-scoped statements against the remote tables.
type Client struct {
	conn    DBTX
	db      *sql.DB
	dialect Dialect
}

// NewClient wraps an open database whose schema is already migrated.
func NewClient(db *sql.DB, dialect Dialect) *Client {
	return &Client{conn: db, db: db, dialect: dialect}
}

// Close closes the underlying database.
func (c *Client) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Dialect reports the SQL dialect of the connection.
func (c *Client) Dialect() Dialect {
	return c.dialect
}

// WithinTx runs fn with a client bound to one transaction. Nested calls reuse
// the outer transaction.
func (c *Client) WithinTx(ctx context.Context, fn func(tx *Client) error) error {
	if c.db == nil {
		return fn(c)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.StoreError("remote.begin", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Client{conn: tx, dialect: c.dialect}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errs.StoreError("remote.commit", err)
	}
	return nil
}

// ============================================================================
// Statement building
// ============================================================================

func quote(ident string) string {
	return `"` + ident + `"`
}

func tableColumns(table string) ([]string, error) {
	cols, ok := columns[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownTable, table)
	}
	return cols, nil
}

func checkColumns(table string, cols []string, names ...string) error {
	for _, n := range names {
		if !slices.Contains(cols, n) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, n)
		}
	}
	return nil
}

func sortedKeys(r Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func selectList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ", ")
}

// where renders the filter as a WHERE clause.
func where(table string, cols []string, f Filter) (string, []any, error) {
	if err := repository.CheckAccount(f.AccountID); err != nil {
		return "", nil, err
	}
	keys := sortedKeys(f.Eq)
	if err := checkColumns(table, cols, keys...); err != nil {
		return "", nil, err
	}
	conds := []string{quote("account_id") + " = ?"}
	args := []any{f.AccountID}
	for _, k := range keys {
		conds = append(conds, quote(k)+" = ?")
		args = append(args, f.Eq[k])
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// assignments renders "col = value" pairs, expanding Expr values in place.
func assignments(row Row) (string, []any) {
	keys := sortedKeys(row)
	parts := make([]string, len(keys))
	var args []any
	for i, k := range keys {
		if e, ok := row[k].(Expr); ok {
			parts[i] = quote(k) + " = " + e.SQL
			args = append(args, e.Args...)
			continue
		}
		parts[i] = quote(k) + " = ?"
		args = append(args, row[k])
	}
	return strings.Join(parts, ", "), args
}

func insertParts(row Row) (string, string, []any) {
	keys := sortedKeys(row)
	names := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		names[i] = quote(k)
		marks[i] = "?"
		args[i] = row[k]
	}
	return strings.Join(names, ", "), strings.Join(marks, ", "), args
}

func (c *Client) query(ctx context.Context, op, q string, args ...any) ([]Row, error) {
	rows, err := c.conn.QueryContext(ctx, c.dialect.rebind(q), args...)
	if err != nil {
		return nil, errs.StoreError(op, err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, errs.StoreError(op, err)
	}
	return out, nil
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := []Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ============================================================================
// Table operations
// ============================================================================

// Select returns every row of table matching the filter.
func (c *Client) Select(ctx context.Context, table string, f Filter) ([]Row, error) {
	cols, err := tableColumns(table)
	if err != nil {
		return nil, err
	}
	w, args, err := where(table, cols, f)
	if err != nil {
		return nil, err
	}
	q := "SELECT " + selectList(cols) + " FROM " + quote(table) + w + " ORDER BY " + quote(cols[0])
	return c.query(ctx, table+".select", q, args...)
}

// Insert writes rows and returns them as stored. Several rows are written in one transaction.
func (c *Client) Insert(ctx context.Context, table string, rows ...Row) ([]Row, error) {
	cols, err := tableColumns(table)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := checkColumns(table, cols, sortedKeys(r)...); err != nil {
			return nil, err
		}
	}

	var out []Row
	insert := func(tx *Client) error {
		out = make([]Row, 0, len(rows))
		for _, r := range rows {
			names, marks, args := insertParts(r)
			q := "INSERT INTO " + quote(table) + " (" + names + ") VALUES (" + marks + ") RETURNING " + selectList(cols)
			got, err := tx.query(ctx, table+".insert", q, args...)
			if err != nil {
				return err
			}
			out = append(out, got...)
		}
		return nil
	}

	if len(rows) > 1 {
		err = c.WithinTx(ctx, insert)
	} else {
		err = insert(c)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies patch to every row matching the filter and returns the updated rows.
// Patch values may be Expr.
func (c *Client) Update(ctx context.Context, table string, f Filter, patch Row) ([]Row, error) {
	cols, err := tableColumns(table)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("update %s: empty patch", table)
	}
	if err := checkColumns(table, cols, sortedKeys(patch)...); err != nil {
		return nil, err
	}
	w, wargs, err := where(table, cols, f)
	if err != nil {
		return nil, err
	}
	set, args := assignments(patch)
	q := "UPDATE " + quote(table) + " SET " + set + w + " RETURNING " + selectList(cols)
	return c.query(ctx, table+".update", q, append(args, wargs...)...)
}

// Delete removes every row matching the filter.
func (c *Client) Delete(ctx context.Context, table string, f Filter) error {
	cols, err := tableColumns(table)
	if err != nil {
		return err
	}
	w, args, err := where(table, cols, f)
	if err != nil {
		return err
	}
	q := "DELETE FROM " + quote(table) + w
	_, err = c.conn.ExecContext(ctx, c.dialect.rebind(q), args...)
	return errs.StoreError(table+".delete", err)
}

// Upsert inserts row, or applies onConflict to the existing row that collides
// on the conflict columns, in one statement. onConflict values may be Expr and
// may refer to the proposed row as "excluded".
func (c *Client) Upsert(ctx context.Context, table string, row Row, conflict []string, onConflict Row) (Row, error) {
	cols, err := tableColumns(table)
	if err != nil {
		return nil, err
	}
	if err := checkColumns(table, cols, sortedKeys(row)...); err != nil {
		return nil, err
	}
	if err := checkColumns(table, cols, conflict...); err != nil {
		return nil, err
	}
	if err := checkColumns(table, cols, sortedKeys(onConflict)...); err != nil {
		return nil, err
	}

	names, marks, args := insertParts(row)
	set, setArgs := assignments(onConflict)
	q := "INSERT INTO " + quote(table) + " (" + names + ") VALUES (" + marks + ")" +
		" ON CONFLICT (" + selectList(conflict) + ") DO UPDATE SET " + set +
		" RETURNING " + selectList(cols)

	got, err := c.query(ctx, table+".upsert", q, append(args, setArgs...)...)
	if err != nil {
		return nil, err
	}
	if len(got) != 1 {
		return nil, errs.NewSystemErrorWithOp(table+".upsert", "unexpected row count", fmt.Errorf("got %d rows", len(got)))
	}
	return got[0], nil
}

// InsertIgnore inserts row unless it collides on the conflict columns. It
// reports whether the row was written.
func (c *Client) InsertIgnore(ctx context.Context, table string, row Row, conflict []string) (bool, error) {
	cols, err := tableColumns(table)
	if err != nil {
		return false, err
	}
	if err := checkColumns(table, cols, sortedKeys(row)...); err != nil {
		return false, err
	}
	if err := checkColumns(table, cols, conflict...); err != nil {
		return false, err
	}

	names, marks, args := insertParts(row)
	q := "INSERT INTO " + quote(table) + " (" + names + ") VALUES (" + marks + ")" +
		" ON CONFLICT (" + selectList(conflict) + ") DO NOTHING"
	res, err := c.conn.ExecContext(ctx, c.dialect.rebind(q), args...)
	if err != nil {
		return false, errs.StoreError(table+".insert", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errs.StoreError(table+".insert", err)
	}
	return n == 1, nil
}
