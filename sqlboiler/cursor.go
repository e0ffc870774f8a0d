package sqlboiler

import (
	"fmt"
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/keyset-go"
)

// translatePredicate walks a paging.Predicate tree and renders it as a
// parameterized SQL fragment plus its positional arguments, in the
// order the predicate builder (C5) produced them — SQLBoiler's "?"
// placeholders bind positionally, so the children of an And/Or must be
// rendered (and their args collected) in a fixed left-to-right order.
func translatePredicate(p paging.Predicate) (string, []interface{}) {
	switch p.Kind {
	case paging.PredAnd:
		return joinChildren(p.Children, " AND ")
	case paging.PredOr:
		return joinChildren(p.Children, " OR ")
	case paging.PredCmp:
		return fmt.Sprintf("%s %s ?", p.Column, p.Op), []interface{}{p.Value.Raw()}
	case paging.PredIsNull:
		return fmt.Sprintf("%s IS NULL", p.Column), nil
	case paging.PredIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", p.Column), nil
	default:
		return "1=1", nil
	}
}

func joinChildren(children []paging.Predicate, sep string) (string, []interface{}) {
	parts := make([]string, len(children))
	var args []interface{}
	for i, c := range children {
		clause, cargs := translatePredicate(c)
		parts[i] = clause
		args = append(args, cargs...)
	}
	return "(" + strings.Join(parts, sep) + ")", args
}

// rawWhereClause injects a WHERE fragment and its args directly into
// the query's WHERE buffer, bypassing qm.Where's own placeholder
// handling — needed because the predicate tree already renders fully
// parenthesized boolean SQL, not a single column/op/value triple.
func rawWhereClause(clause string, args []interface{}) qm.QueryMod {
	return qm.QueryModFunc(func(q *queries.Query) {
		queries.AppendWhere(q, clause, args...)
	})
}
