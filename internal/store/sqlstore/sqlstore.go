// Package sqlstore implements store.Collection on a SQL database.
//
// Each collection is one table holding the JSON document plus a copy of the
// fields its policy sorts, filters or constrains on. Queries are built with
// ent's dialect-aware SQL builder, so the same code runs on PostgreSQL (pgx)
// and SQLite (modernc).
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver for PostgreSQL
	"github.com/samber/lo"
	_ "modernc.org/sqlite" // register sqlite driver

	"portfolio-api/internal/logx"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"
)

var sqlLogger = logx.GetScope("sqlstore")

// Open opens a pooled connection for driver ("postgres" or "sqlite") and
// wraps it in an ent driver.
func Open(driver, dsn string, maxOpen, maxIdle int) (*entsql.Driver, func(), error) {
	var sqlDriver, entDialect string
	switch driver {
	case "postgres":
		sqlDriver, entDialect = "pgx", dialect.Postgres
	case "sqlite":
		sqlDriver, entDialect = "sqlite", dialect.SQLite
	default:
		return nil, func() {}, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, func() {}, err
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	drv := entsql.OpenDB(entDialect, db)
	closer := func() {
		if err := drv.Close(); err != nil {
			sqlLogger.Sugar().Errorf("close db: %v", err)
		}
	}
	return drv, closer, nil
}

// Migrate creates the table and indexes of every policy if missing.
func Migrate(ctx context.Context, drv *entsql.Driver, policies ...store.Policy) error {
	for _, p := range policies {
		stmts, err := ddl(entsql.Dialect(drv.Dialect()), p)
		if err != nil {
			return err
		}
		for _, stmt := range stmts {
			if err := exec(ctx, drv, stmt, nil); err != nil {
				return fmt.Errorf("%s: migrate: %w", p.Name, err)
			}
		}
	}
	return nil
}

// ddl renders the CREATE TABLE and CREATE INDEX statements of p with
// dialect-quoted identifiers. Unique fields get a column-level UNIQUE.
func ddl(d *entsql.DialectBuilder, p store.Policy) ([]string, error) {
	cols := []entsql.Querier{
		d.Column("id").Type("varchar(64) PRIMARY KEY"),
		d.Column("doc").Type("text NOT NULL"),
		d.Column("created_at").Type("bigint NOT NULL"),
		d.Column("updated_at").Type("bigint NOT NULL"),
	}
	for _, c := range p.Columns {
		typ := sqlType(c.Type)
		if lo.Contains(p.Unique, c.Field) {
			typ += " UNIQUE"
		}
		cols = append(cols, d.Column(c.Name).Type(typ))
	}
	stmts := []string{d.String(func(b *entsql.Builder) {
		b.WriteString("CREATE TABLE IF NOT EXISTS ").Ident(p.Name).Pad().
			Wrap(func(b *entsql.Builder) { b.JoinComma(cols...) })
	})}
	for i, idx := range p.Indexes {
		names := make([]string, 0, len(idx))
		for _, k := range idx {
			col, ok := p.Column(k.Field)
			if !ok {
				return nil, fmt.Errorf("%s: index on unmapped field %q", p.Name, k.Field)
			}
			names = append(names, col.Name)
		}
		stmts = append(stmts, d.String(func(b *entsql.Builder) {
			b.WriteString("CREATE INDEX IF NOT EXISTS ").Ident(fmt.Sprintf("idx_%s_%d", p.Name, i)).
				WriteString(" ON ").Ident(p.Name).Pad().
				Wrap(func(b *entsql.Builder) { b.IdentComma(names...) })
		}))
	}
	return stmts, nil
}

func sqlType(t store.ColumnType) string {
	switch t {
	case store.TypeInt, store.TypeTime:
		return "bigint"
	case store.TypeBool:
		return "boolean"
	default:
		return "text"
	}
}

func exec(ctx context.Context, ex dialect.ExecQuerier, query string, args []any) error {
	var res sql.Result
	return ex.Exec(ctx, query, args, &res)
}

// Collection stores T documents in the table named by its policy.
// Identities are UUIDv7 strings, so they sort by creation time.
type Collection[T any, P store.Doc[T]] struct {
	drv    *entsql.Driver
	policy store.Policy
}

var _ store.Collection[model.Project] = (*Collection[model.Project, *model.Project])(nil)

// New binds policy to its table.
func New[T any, P store.Doc[T]](drv *entsql.Driver, policy store.Policy) *Collection[T, P] {
	for _, f := range policy.Unique {
		if _, ok := policy.Column(f); !ok {
			panic(fmt.Sprintf("sqlstore: unique field %q of %s has no column", f, policy.Name))
		}
	}
	return &Collection[T, P]{drv: drv, policy: policy}
}

func (c *Collection[T, P]) builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.drv.Dialect())
}

func (c *Collection[T, P]) Create(ctx context.Context, doc *T) error {
	h := P(doc).Header()
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	store.Stamp(h, id.String())

	cols, vals, err := c.row(doc)
	if err != nil {
		h.ID = ""
		return err
	}
	query, args := c.builder().Insert(c.policy.Name).Columns(cols...).Values(vals...).Query()
	if err := exec(ctx, c.drv, query, args); err != nil {
		h.ID = ""
		return c.wrap("insert", err)
	}
	return nil
}

func (c *Collection[T, P]) Find(ctx context.Context, q store.Query) ([]*T, error) {
	pred, err := c.where(q.Filter)
	if err != nil {
		return nil, err
	}
	sel := c.builder().Select("doc").From(c.builder().Table(c.policy.Name))
	if pred != nil {
		sel.Where(pred)
	}
	for _, k := range c.policy.OrderBy() {
		col, ok := c.policy.Column(k.Field)
		if !ok {
			return nil, fmt.Errorf("%s: sort on unmapped field %q", c.policy.Name, k.Field)
		}
		sel.OrderBy(lo.Ternary(k.Desc, entsql.Desc(col.Name), entsql.Asc(col.Name)))
	}
	if q.Limit > 0 {
		sel.Limit(q.Limit)
	}
	if q.Skip > 0 {
		if q.Limit <= 0 {
			// OFFSET needs a LIMIT on SQLite
			sel.Limit(math.MaxInt32)
		}
		sel.Offset(q.Skip)
	}
	query, args := sel.Query()
	return c.queryDocs(ctx, c.drv, query, args)
}

func (c *Collection[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	return c.findByID(ctx, c.drv, id)
}

func (c *Collection[T, P]) findByID(ctx context.Context, ex dialect.ExecQuerier, id string) (*T, error) {
	query, args := c.builder().Select("doc").From(c.builder().Table(c.policy.Name)).
		Where(entsql.EQ("id", id)).Query()
	docs, err := c.queryDocs(ctx, ex, query, args)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, store.ErrNotFound
	}
	return docs[0], nil
}

// Update reads and rewrites the row inside one transaction.
func (c *Collection[T, P]) Update(ctx context.Context, id string, apply func(*T) error) (*T, error) {
	tx, err := c.drv.Tx(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := c.update(ctx, tx, id, apply)
	if err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			sqlLogger.Sugar().Warnf("%s: rollback: %v", c.policy.Name, rerr)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, c.wrap("commit", err)
	}
	return doc, nil
}

func (c *Collection[T, P]) update(ctx context.Context, tx dialect.Tx, id string, apply func(*T) error) (*T, error) {
	doc, err := c.findByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	h := P(doc).Header()
	saved := *h
	if err := apply(doc); err != nil {
		return nil, err
	}
	store.Restore(h, saved)
	h.UpdatedAt = store.Now()

	cols, vals, err := c.row(doc)
	if err != nil {
		return nil, err
	}
	upd := c.builder().Update(c.policy.Name)
	for i, col := range cols {
		if col == "id" || col == "created_at" {
			continue
		}
		upd.Set(col, vals[i])
	}
	query, args := upd.Where(entsql.EQ("id", id)).Query()
	if err := exec(ctx, tx, query, args); err != nil {
		return nil, c.wrap("update", err)
	}
	return doc, nil
}

func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	query, args := c.builder().Delete(c.policy.Name).Where(entsql.EQ("id", id)).Query()
	var res sql.Result
	if err := c.drv.Exec(ctx, query, args, &res); err != nil {
		return c.wrap("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return c.wrap("delete", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *Collection[T, P]) Count(ctx context.Context, f store.Filter) (int64, error) {
	pred, err := c.where(f)
	if err != nil {
		return 0, err
	}
	sel := c.builder().Select(entsql.Count("*")).From(c.builder().Table(c.policy.Name))
	if pred != nil {
		sel.Where(pred)
	}
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return 0, c.wrap("count", err)
	}
	defer rows.Close()
	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, c.wrap("count", err)
		}
	}
	return n, rows.Err()
}

// Clear removes every row. Used by the seeder.
func (c *Collection[T, P]) Clear(ctx context.Context) (int64, error) {
	query, args := c.builder().Delete(c.policy.Name).Query()
	var res sql.Result
	if err := c.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, c.wrap("clear", err)
	}
	return res.RowsAffected()
}

func (c *Collection[T, P]) queryDocs(ctx context.Context, ex dialect.ExecQuerier, query string, args []any) ([]*T, error) {
	rows := &entsql.Rows{}
	if err := ex.Query(ctx, query, args, rows); err != nil {
		return nil, c.wrap("query", err)
	}
	defer rows.Close()
	out := make([]*T, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, c.wrap("scan", err)
		}
		doc := new(T)
		if err := json.Unmarshal([]byte(raw), doc); err != nil {
			return nil, fmt.Errorf("%s: decode document: %w", c.policy.Name, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, c.wrap("rows", err)
	}
	return out, nil
}

// row flattens doc into the table's columns, in a stable order.
func (c *Collection[T, P]) row(doc *T) ([]string, []any, error) {
	h := P(doc).Header()
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: encode document: %w", c.policy.Name, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, fmt.Errorf("%s: encode document: %w", c.policy.Name, err)
	}
	cols := []string{"id", "doc", "created_at", "updated_at"}
	vals := []any{h.ID, string(raw), h.CreatedAt.UnixNano(), h.UpdatedAt.UnixNano()}
	for _, col := range c.policy.Columns {
		v, err := columnValue(col, fields[col.Field])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", c.policy.Name, err)
		}
		cols = append(cols, col.Name)
		vals = append(vals, v)
	}
	return cols, vals, nil
}

// columnValue converts a decoded JSON value, or a filter value, to the column type.
func columnValue(col store.Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch col.Type {
	case store.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("field %q: want bool, got %T", col.Field, v)
		}
		return b, nil
	case store.TypeInt:
		switch n := v.(type) {
		case float64:
			return int64(n), nil
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		}
		return nil, fmt.Errorf("field %q: want number, got %T", col.Field, v)
	case store.TypeTime:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("field %q: want date string, got %T", col.Field, v)
		}
		d, err := model.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", col.Field, err)
		}
		return d.UnixNano(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func (c *Collection[T, P]) where(f store.Filter) (*entsql.Predicate, error) {
	if err := c.policy.CheckFilter(f); err != nil {
		return nil, err
	}
	if len(f) == 0 {
		return nil, nil
	}
	keys := lo.Keys(f)
	sort.Strings(keys)
	preds := make([]*entsql.Predicate, 0, len(keys))
	for _, k := range keys {
		col, ok := c.policy.Column(k)
		if !ok {
			return nil, fmt.Errorf("%s: filter on unmapped field %q", c.policy.Name, k)
		}
		v, err := columnValue(col, f[k])
		if err != nil {
			return nil, err
		}
		preds = append(preds, entsql.EQ(col.Name, v))
	}
	return entsql.And(preds...), nil
}

func (c *Collection[T, P]) wrap(op string, err error) error {
	if sqlgraph.IsUniqueConstraintError(err) {
		return &store.DuplicateKeyError{Field: c.duplicateField(err), Err: err}
	}
	return fmt.Errorf("%s: %s: %w", c.policy.Name, op, err)
}

func (c *Collection[T, P]) duplicateField(err error) string {
	if len(c.policy.Unique) == 1 {
		return c.policy.Unique[0]
	}
	msg := err.Error()
	f, _ := lo.Find(c.policy.Unique, func(f string) bool {
		col, _ := c.policy.Column(f)
		return strings.Contains(msg, col.Name)
	})
	return f
}
