package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fitcontest/internal/common"
	"fitcontest/internal/domain/model"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// queryList runs query and scans every row with scan. It never returns a nil slice.
func queryList[T any](ctx context.Context, db *sql.DB, op, query string, scan func(rowScanner) (T, error), args ...interface{}) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.ClassifyDBError(op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

// updateWhere applies set to every row of table matching all key columns and reports the
// number of rows touched.
func updateWhere(ctx context.Context, db *sql.DB, op, table string, set model.Assignments, keys []string, keyArgs ...interface{}) (int64, error) {
	if len(set) == 0 {
		return 0, nil
	}
	query, args := buildUpdate(table, set, keys, keyArgs)
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, common.ClassifyDBError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return n, nil
}

func buildUpdate(table string, set model.Assignments, keys []string, keyArgs []interface{}) (string, []interface{}) {
	var b strings.Builder
	clause, args := buildSet(set, make([]interface{}, 0, len(set)+len(keyArgs)))

	b.WriteString("UPDATE ")
	b.WriteString(table)
	b.WriteString(" SET ")
	b.WriteString(clause)
	b.WriteString(" WHERE ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(" AND ")
		}
		args = append(args, keyArgs[i])
		fmt.Fprintf(&b, "%s = $%d", k, len(args))
	}
	return b.String(), args
}

// buildSet renders the SET list for set, numbering placeholders after the args already
// bound.
func buildSet(set model.Assignments, args []interface{}) (string, []interface{}) {
	parts := make([]string, 0, len(set))
	for _, a := range set {
		args = append(args, a.Value)
		if a.Cast != "" {
			// values arrive text-encoded and are converted server side
			parts = append(parts, fmt.Sprintf("%s = $%d::text::%s", a.Column, len(args), a.Cast))
		} else {
			parts = append(parts, fmt.Sprintf("%s = $%d", a.Column, len(args)))
		}
	}
	return strings.Join(parts, ", "), args
}

func deleteWhere(ctx context.Context, db *sql.DB, op, table string, keys []string, keyArgs ...interface{}) (int64, error) {
	conds := make([]string, len(keys))
	for i, k := range keys {
		conds[i] = fmt.Sprintf("%s = $%d", k, i+1)
	}
	query := "DELETE FROM " + table + " WHERE " + strings.Join(conds, " AND ")
	res, err := db.ExecContext(ctx, query, keyArgs...)
	if err != nil {
		return 0, common.ClassifyDBError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return n, nil
}

// optionalString maps a nil pointer to SQL NULL.
func optionalString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func optionalInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
