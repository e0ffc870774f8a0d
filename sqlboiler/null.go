package sqlboiler

import (
	"github.com/aarondl/null/v8"
)

// RowValue converts a SQLBoiler-generated model's nullable column type
// into the plain Go value (or nil) paging.Value expects — SQLBoiler
// models carry nullable columns as aarondl/null wrapper types, not as
// plain pointers, so a hand-written RowFunc needs this conversion for
// every nullable sort column it projects.
func RowValue(v interface{}) interface{} {
	switch t := v.(type) {
	case null.String:
		if !t.Valid {
			return nil
		}
		return t.String
	case null.Int:
		if !t.Valid {
			return nil
		}
		return t.Int
	case null.Int64:
		if !t.Valid {
			return nil
		}
		return t.Int64
	case null.Float64:
		if !t.Valid {
			return nil
		}
		return t.Float64
	case null.Time:
		if !t.Valid {
			return nil
		}
		return t.Time
	case null.Bool:
		if !t.Valid {
			return nil
		}
		return t.Bool
	default:
		return v
	}
}
