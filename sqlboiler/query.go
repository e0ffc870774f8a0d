// Package sqlboiler adapts aarondl/sqlboiler query mods to the
// paging.Query contract (§6), so the engine in the root package can
// drive a SQLBoiler-generated model query without knowing SQLBoiler
// exists.
//
// Example:
//
//	q := sqlboiler.New(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Post, error) {
//	        return models.Posts(mods...).All(ctx, db)
//	    },
//	    func(p *models.Post) paging.Row {
//	        return paging.Row{"id": p.ID, "created_at": p.CreatedAt}
//	    },
//	)
//	page, err := paginator.Paginate(ctx, paging.PaginateRequest{Query: q, Sorts: sorts, Limit: 20})
package sqlboiler

import (
	"context"
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/keyset-go"
)

// QueryFunc executes a SQLBoiler query for model type T given the mods
// the adapter accumulated.
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// RowFunc projects a fetched model down to the Row shape the engine
// needs: one entry per sort item's output key, at minimum.
type RowFunc[T any] func(item T) paging.Row

// Query is a paging.Query backed by accumulated SQLBoiler query mods.
// Every builder method returns a new value (copy-on-write over its
// slices) so that branching a Query mid-build — which the engine
// doesn't do, but a caller composing base mods might — never mutates
// a shared instance.
type Query[T any] struct {
	exec QueryFunc[T]
	toRow RowFunc[T]

	base    []qm.QueryMod
	orderBy []string
	where   []paging.Predicate
	limit   *int
	offset  *int
}

// New builds a Query around exec/toRow, seeded with base mods (table
// selection, preloads, tenant scoping — anything true for every page).
func New[T any](exec QueryFunc[T], toRow RowFunc[T], base ...qm.QueryMod) *Query[T] {
	return &Query[T]{exec: exec, toRow: toRow, base: append([]qm.QueryMod{}, base...)}
}

func (q *Query[T]) clone() *Query[T] {
	c := *q
	c.base = append([]qm.QueryMod{}, q.base...)
	c.orderBy = append([]string{}, q.orderBy...)
	c.where = append([]paging.Predicate{}, q.where...)
	return &c
}

func (q *Query[T]) OrderBy(column string, desc bool, nulls paging.NullsPlacement) paging.Query {
	c := q.clone()

	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	clause := column + " " + dir

	switch nulls {
	case paging.NullsFirst:
		clause += " NULLS FIRST"
	case paging.NullsLast:
		clause += " NULLS LAST"
	}

	c.orderBy = append(c.orderBy, clause)
	return c
}

func (q *Query[T]) Limit(n int) paging.Query {
	c := q.clone()
	c.limit = &n
	return c
}

// Top exists to satisfy the MSSQL dialect's call; SQLBoiler's own MSSQL
// driver renders qm.Limit as TOP under the hood, so there's nothing
// different to do here.
func (q *Query[T]) Top(n int) paging.Query {
	return q.Limit(n)
}

func (q *Query[T]) Offset(n int) paging.Query {
	c := q.clone()
	c.offset = &n
	return c
}

func (q *Query[T]) Where(pred paging.Predicate) paging.Query {
	c := q.clone()
	c.where = append(c.where, pred)
	return c
}

func (q *Query[T]) Execute(ctx context.Context) ([]paging.Row, error) {
	mods := append([]qm.QueryMod{}, q.base...)

	for _, pred := range q.where {
		clause, args := translatePredicate(pred)
		mods = append(mods, rawWhereClause(clause, args))
	}
	if len(q.orderBy) > 0 {
		mods = append(mods, qm.OrderBy(strings.Join(q.orderBy, ", ")))
	}
	if q.limit != nil {
		mods = append(mods, qm.Limit(*q.limit))
	}
	if q.offset != nil {
		mods = append(mods, qm.Offset(*q.offset))
	}

	items, err := q.exec(ctx, mods...)
	if err != nil {
		return nil, err
	}

	rows := make([]paging.Row, len(items))
	for i, item := range items {
		rows[i] = q.toRow(item)
	}
	return rows, nil
}

var _ paging.Query = (*Query[struct{}])(nil)
