package dialect

import "github.com/nrfta/keyset-go"

// MSSQL is the one dialect whose limit syntax depends on whether an
// OFFSET will also be applied to the same query: keyset paging (no
// OFFSET) uses TOP n, offset-based paging uses FETCH NEXT n ROWS ONLY
// alongside OFFSET (§4.6). Its NULL ordering already matches the
// unified policy.
type MSSQL struct{}

func (MSSQL) ApplySort(q paging.Query, sorts paging.SortSet) paging.Query {
	for _, s := range sorts {
		q = q.OrderBy(s.Column, s.Direction == paging.Desc, paging.NullsDefault)
	}
	return q
}

func (MSSQL) ApplyLimit(q paging.Query, limit int, kind paging.CursorKind) paging.Query {
	if kind == paging.KindOffset {
		return q.Limit(limit)
	}
	return q.Top(limit)
}

func (MSSQL) ApplyOffset(q paging.Query, offset int) paging.Query {
	return q.Offset(offset)
}

func (MSSQL) ApplyCursor(q paging.Query, sorts paging.SortSet, decoded paging.DecodedCursor) (paging.Query, error) {
	return paging.ApplyCursorPredicate(q, sorts, decoded)
}
