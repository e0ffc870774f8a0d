package gormquery

import (
	"fmt"
	"strings"

	"github.com/nrfta/keyset-go"
)

// translatePredicate walks a paging.Predicate tree into a gorm-style
// "?"-parameterized clause and its positional args, mirroring
// paging/sqlboiler's translator — the predicate tree is builder
// agnostic, only the final string-rendering differs per adapter, and
// here it doesn't differ at all since gorm's Where also binds "?"
// positionally.
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
