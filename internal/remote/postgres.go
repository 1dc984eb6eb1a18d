package remote

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

func newPostgres(ctx context.Context, log logger.Logger, cfg PostgresConfig) (*postgresClient, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.WrapFail(err, "parse postgres dsn")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errors.WrapFail(err, "open postgres pool")
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, errors.WrapFail(err, "ping postgres")
	}

	return &postgresClient{
		pool:    pool,
		timeout: cfg.Timeout,
		log:     log.With("postgres_client"),
	}, nil
}

type postgresClient struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	log     logger.Logger
}

func (p *postgresClient) List(ctx context.Context, table string) ([]Row, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	rows, err := p.query(ctx, "SELECT * FROM "+quote(table))
	if err != nil {
		return nil, Fail(err, "select rows")
	}
	return rows, nil
}

func (p *postgresClient) Insert(ctx context.Context, table string, row Row) (Row, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	sql, args := buildInsert(table, row)
	rows, err := p.query(ctx, sql, args...)
	if err != nil {
		return nil, Fail(err, "insert row")
	}
	if len(rows) == 0 {
		return nil, &Failure{Message: "insert returned no row"}
	}
	return rows[0], nil
}

func (p *postgresClient) Update(ctx context.Context, table string, id string, row Row) (Row, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	sql, args := buildUpdate(table, id, row)
	rows, err := p.query(ctx, sql, args...)
	if err != nil {
		return nil, Fail(err, "update row")
	}
	if len(rows) == 0 {
		return nil, notFound(table, id)
	}
	return rows[0], nil
}

func (p *postgresClient) Delete(ctx context.Context, table string, id string) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	tag, err := p.pool.Exec(ctx, "DELETE FROM "+quote(table)+" WHERE "+quote(ColumnID)+" = $1", id)
	if err != nil {
		return Fail(err, "delete row")
	}

	if tag.RowsAffected() == 0 {
		p.log.Debugf("delete from %s: no row %s", table, id)
	}
	return nil
}

func (p *postgresClient) Close(context.Context) error {
	p.pool.Close()
	return nil
}

func (p *postgresClient) query(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Row, error) {
		m, err := pgx.RowToMap(row)
		if err != nil {
			return nil, err
		}
		return normalizeRow(row.FieldDescriptions(), m), nil
	})
}

func (p *postgresClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.timeout)
}

func buildInsert(table string, row Row) (string, []any) {
	cols := sortedColumns(row)
	if len(cols) == 0 {
		return "INSERT INTO " + quote(table) + " DEFAULT VALUES RETURNING *", nil
	}

	names := make([]string, 0, len(cols))
	marks := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, c := range cols {
		names = append(names, quote(c))
		marks = append(marks, fmt.Sprintf("$%d", i+1))
		args = append(args, row[c])
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quote(table), strings.Join(names, ", "), strings.Join(marks, ", "),
	)
	return sql, args
}

func buildUpdate(table string, id string, row Row) (string, []any) {
	cols := slices.DeleteFunc(sortedColumns(row), func(c string) bool { return c == ColumnID })
	if len(cols) == 0 {
		return "SELECT * FROM " + quote(table) + " WHERE " + quote(ColumnID) + " = $1", []any{id}
	}

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", quote(c), i+1))
		args = append(args, row[c])
	}
	args = append(args, id)

	sql := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d RETURNING *",
		quote(table), strings.Join(sets, ", "), quote(ColumnID), len(args),
	)
	return sql, args
}

func sortedColumns(row Row) []string {
	cols := make([]string, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func normalizeRow(fields []pgconn.FieldDescription, m map[string]any) Row {
	row := make(Row, len(m))
	for _, f := range fields {
		v, ok := m[f.Name]
		if !ok {
			continue
		}
		row[f.Name] = normalizeValue(f.DataTypeOID, v)
	}
	return row
}

// normalizeValue turns driver types into values that survive a JSON round trip
// into application entities. oid is the type of the column v was read from.
func normalizeValue(oid uint32, v any) any {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val).String()
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case time.Time:
		if oid == pgtype.DateOID {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339Nano)
	default:
		return v
	}
}
