package paging

import "fmt"

// BuildPredicate synthesizes the boolean WHERE predicate that selects
// rows strictly beyond the boundary row encoded in payload, under the
// applied sort set sorts (§4.5). sorts must already be the *applied*
// set — inverted for backward paging, if applicable (§4.7 step 2);
// BuildPredicate itself is direction-agnostic, it just reads
// item.Direction off each Sort.
func BuildPredicate(sorts SortSet, payload CursorPayload) (Predicate, error) {
	if len(sorts) == 0 {
		return Predicate{}, newError(CodeInvalidSort, "Cannot paginate without sorting")
	}
	return buildFrom(sorts, payload, 0)
}

// buildFrom recursively synthesizes the predicate for sorts[i:], per
// the recursion described in §4.5. Folding this right-to-left
// iteratively (§9 design notes) would avoid the recursion depth, but
// sort sets are short in practice (a handful of tie-break columns) so
// the direct recursive form is kept for clarity, matching how the
// teacher's own buildKeysetWhereClause reads top-to-bottom.
func buildFrom(sorts SortSet, payload CursorPayload, i int) (Predicate, error) {
	if i >= len(sorts) {
		return Predicate{}, fmt.Errorf("paging: buildFrom called past sort set length (i=%d, len=%d)", i, len(sorts))
	}

	item := sorts[i]
	v, err := payload.valueFor(item)
	if err != nil {
		return Predicate{}, err
	}

	cmp := OpGT
	if item.Direction == Desc {
		cmp = OpLT
	}

	// Last item: the tie-breaker column is unique, so a strict
	// inequality alone is total.
	if i == len(sorts)-1 {
		return Cmp(item.Column, cmp, v), nil
	}

	next, err := buildFrom(sorts, payload, i+1)
	if err != nil {
		return Predicate{}, err
	}

	if v.IsNull() {
		if item.Direction == Asc {
			// Asc/NULLS FIRST: every non-null row is beyond any null
			// boundary; among nulls, tie-break recursively.
			return Or(
				And(IsNull(item.Column), next),
				IsNotNull(item.Column),
			), nil
		}
		// Desc/NULLS LAST: anything beyond a null boundary is also
		// null; tie-break recursively.
		return And(IsNull(item.Column), next), nil
	}

	base := []Predicate{
		Cmp(item.Column, cmp, v),
		And(Cmp(item.Column, OpEQ, v), next),
	}
	if item.Direction == Desc {
		// Desc/NULLS LAST: nulls sort after any non-null boundary, so
		// they must be included when paging forward past a non-null
		// value. Asc excludes them: nulls already sort before v.
		base = append(base, IsNull(item.Column))
	}
	return Or(base...), nil
}
