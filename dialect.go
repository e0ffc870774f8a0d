package paging

// Dialect is the per-engine adapter (§4.6) that knows how to apply
// sort, limit, offset, and the keyset predicate to a Query. Concrete
// dialects (postgres, mysql, mssql, sqlite) live in the paging/dialect
// subpackage; the interface is declared here because it operates
// entirely in terms of root-package types (Query, SortSet,
// DecodedCursor) and the paginator needs it directly.
type Dialect interface {
	// ApplySort appends ORDER BY for every item in sorts, with NULL
	// placement normalized per §4.5: Asc -> NULLS FIRST, Desc -> NULLS
	// LAST.
	ApplySort(q Query, sorts SortSet) Query

	// ApplyLimit appends the row-limit clause for limit rows. kind is
	// supplied so dialects whose limit syntax depends on whether an
	// OFFSET will also apply (MSSQL) can choose TOP vs FETCH NEXT.
	ApplyLimit(q Query, limit int, kind CursorKind) Query

	// ApplyOffset appends OFFSET n.
	ApplyOffset(q Query, offset int) Query

	// ApplyCursor appends the WHERE clause selecting rows strictly
	// beyond the boundary encoded in decoded, for sorts.
	ApplyCursor(q Query, sorts SortSet, decoded DecodedCursor) (Query, error)
}

// ApplyCursorPredicate is the shared ApplyCursor implementation every
// dialect delegates to (§4.6: "Dialects share a common implementation").
// It only handles KindNextPage/KindPrevPage; KindOffset cursors don't produce a
// predicate and should be filtered out by the caller before reaching
// here.
func ApplyCursorPredicate(q Query, sorts SortSet, decoded DecodedCursor) (Query, error) {
	pred, err := BuildPredicate(sorts, decoded.Payload)
	if err != nil {
		return nil, err
	}
	return q.Where(pred), nil
}
