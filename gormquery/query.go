// Package gormquery adapts gorm.io/gorm query building to the
// paging.Query contract (§6), as a second real Query-builder
// implementation alongside paging/sqlboiler — demonstrating that the
// engine never needs to know which builder (or ORM) produced the rows
// it paginates.
//
// Example:
//
//	q := gormquery.New(
//	    db.Model(&Post{}),
//	    func(ctx context.Context, stmt *gorm.DB, dest *[]Post) error {
//	        return stmt.WithContext(ctx).Find(dest).Error
//	    },
//	    func(p Post) paging.Row {
//	        return paging.Row{"id": p.ID, "created_at": p.CreatedAt}
//	    },
//	)
//	page, err := paginator.Paginate(ctx, paging.PaginateRequest{Query: q, Sorts: sorts, Limit: 20})
package gormquery

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/nrfta/keyset-go"
)

// ExecFunc runs stmt against dest, populating it with the matching
// rows. Callers supply this instead of the adapter calling Find
// itself, since dest's concrete slice type varies per model.
type ExecFunc[T any] func(ctx context.Context, stmt *gorm.DB, dest *[]T) error

// RowFunc projects a fetched model down to the Row shape the engine needs.
type RowFunc[T any] func(item T) paging.Row

// Query is a paging.Query backed by a *gorm.DB statement, built up by
// copy-on-write the same way paging/sqlboiler's adapter is, so that a
// caller branching a base statement for several pages never shares
// mutable state between branches.
type Query[T any] struct {
	base  *gorm.DB
	exec  ExecFunc[T]
	toRow RowFunc[T]

	orderBy []string
	where   []paging.Predicate
	limit   *int
	offset  *int
}

// New builds a Query around a base gorm statement (table/preloads/
// tenant scoping already applied), an exec function, and a row
// projector.
func New[T any](base *gorm.DB, exec ExecFunc[T], toRow RowFunc[T]) *Query[T] {
	return &Query[T]{base: base, exec: exec, toRow: toRow}
}

func (q *Query[T]) clone() *Query[T] {
	c := *q
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

// Top exists to satisfy the MSSQL dialect's call; gorm's sqlserver
// driver renders Limit as TOP under the hood, so there's nothing
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
	stmt := q.base.WithContext(ctx)

	for _, pred := range q.where {
		clause, args := translatePredicate(pred)
		stmt = stmt.Where(clause, args...)
	}
	if len(q.orderBy) > 0 {
		stmt = stmt.Order(strings.Join(q.orderBy, ", "))
	}
	if q.limit != nil {
		stmt = stmt.Limit(*q.limit)
	}
	if q.offset != nil {
		stmt = stmt.Offset(*q.offset)
	}

	var items []T
	if err := q.exec(ctx, stmt, &items); err != nil {
		return nil, err
	}

	rows := make([]paging.Row, len(items))
	for i, item := range items {
		rows[i] = q.toRow(item)
	}
	return rows, nil
}

var _ paging.Query = (*Query[struct{}])(nil)
