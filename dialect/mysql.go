package dialect

import "github.com/nrfta/keyset-go"

// MySQL's own NULL ordering ("NULL sorts first for ASC, last for DESC"
// in default collation) already matches the unified policy, so no
// explicit NULLS FIRST/LAST is ever emitted.
type MySQL struct{}

func (MySQL) ApplySort(q paging.Query, sorts paging.SortSet) paging.Query {
	for _, s := range sorts {
		q = q.OrderBy(s.Column, s.Direction == paging.Desc, paging.NullsDefault)
	}
	return q
}

func (MySQL) ApplyLimit(q paging.Query, limit int, _ paging.CursorKind) paging.Query {
	return q.Limit(limit)
}

func (MySQL) ApplyOffset(q paging.Query, offset int) paging.Query {
	return q.Offset(offset)
}

func (MySQL) ApplyCursor(q paging.Query, sorts paging.SortSet, decoded paging.DecodedCursor) (paging.Query, error) {
	return paging.ApplyCursorPredicate(q, sorts, decoded)
}
