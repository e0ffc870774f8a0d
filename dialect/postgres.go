// Package dialect ships the four concrete paging.Dialect adapters named
// in §6: Postgres, MySQL, MSSQL, SQLite. Each implements the same four
// operations (ApplySort, ApplyLimit, ApplyOffset, ApplyCursor); they
// differ only in NULL placement emission and limit syntax (§4.6).
package dialect

import "github.com/nrfta/keyset-go"

// Postgres is the only dialect whose engine default for descending sort
// disagrees with the unified NULLS FIRST/LAST policy (§4.5), so it's
// the only one that must emit NULLS FIRST/LAST explicitly.
type Postgres struct{}

func (Postgres) ApplySort(q paging.Query, sorts paging.SortSet) paging.Query {
	for _, s := range sorts {
		q = q.OrderBy(s.Column, s.Direction == paging.Desc, paging.NullsFor(s.Direction))
	}
	return q
}

func (Postgres) ApplyLimit(q paging.Query, limit int, _ paging.CursorKind) paging.Query {
	return q.Limit(limit)
}

func (Postgres) ApplyOffset(q paging.Query, offset int) paging.Query {
	return q.Offset(offset)
}

func (Postgres) ApplyCursor(q paging.Query, sorts paging.SortSet, decoded paging.DecodedCursor) (paging.Query, error) {
	return paging.ApplyCursorPredicate(q, sorts, decoded)
}
