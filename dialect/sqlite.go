package dialect

import "github.com/nrfta/keyset-go"

// SQLite's NULL ordering already matches the unified policy, same as MySQL.
type SQLite struct{}

func (SQLite) ApplySort(q paging.Query, sorts paging.SortSet) paging.Query {
	for _, s := range sorts {
		q = q.OrderBy(s.Column, s.Direction == paging.Desc, paging.NullsDefault)
	}
	return q
}

func (SQLite) ApplyLimit(q paging.Query, limit int, _ paging.CursorKind) paging.Query {
	return q.Limit(limit)
}

func (SQLite) ApplyOffset(q paging.Query, offset int) paging.Query {
	return q.Offset(offset)
}

func (SQLite) ApplyCursor(q paging.Query, sorts paging.SortSet, decoded paging.DecodedCursor) (paging.Query, error) {
	return paging.ApplyCursorPredicate(q, sorts, decoded)
}
