// Package rowschema gives a caller a single declarative place to
// register a model's sortable and fixed columns, so a query adapter's
// Row projection can never drift out of sync with its SortSet — the
// failure mode this package exists to rule out: an OrderBy clause that
// sorts by a column the extracted Row doesn't carry a value for, which
// nothing downstream rejects: cursor resolution records the missing
// value as a null boundary value.
package rowschema

import (
	"fmt"

	"github.com/nrfta/keyset-go"
)

type fieldSpec[T any] struct {
	column    string
	outputKey string
	extractor func(T) any
	fixed     bool
	direction paging.Direction
	position  int
}

// Schema declares the sortable and fixed columns for a model type T.
// Fixed columns (tenant scoping, a uniqueness tie-breaker) are always
// present in both the emitted SortSet and every extracted Row; sortable
// columns only enter the SortSet when a caller selects them via Choose.
type Schema[T any] struct {
	sortable map[string]*fieldSpec[T]
	fixed    []*fieldSpec[T]
	all      []*fieldSpec[T]
	next     int
}

// New returns an empty Schema for model type T.
func New[T any]() *Schema[T] {
	return &Schema[T]{sortable: make(map[string]*fieldSpec[T])}
}

// Field registers a user-selectable sortable column.
func (s *Schema[T]) Field(column string, extractor func(T) any) *Schema[T] {
	spec := &fieldSpec[T]{column: column, extractor: extractor, position: s.next}
	s.next++
	s.sortable[column] = spec
	s.all = append(s.all, spec)
	return s
}

// FixedField registers a column always included in the sort set,
// regardless of what the caller Chooses — e.g. a tenant partition key
// prepended, or a uniqueness tie-breaker appended. Declaration order
// relative to Field calls determines whether it's prepended or
// appended by Bound.SortSet.
func (s *Schema[T]) FixedField(column string, direction paging.Direction, extractor func(T) any) *Schema[T] {
	spec := &fieldSpec[T]{column: column, extractor: extractor, fixed: true, direction: direction, position: s.next}
	s.next++
	s.fixed = append(s.fixed, spec)
	s.all = append(s.all, spec)
	return s
}

// Choose validates a caller-selected set of sortable columns and
// directions, returning a Bound schema that knows how to build both
// the effective SortSet and a Row for any item.
func (s *Schema[T]) Choose(selections ...Selection) (*Bound[T], error) {
	chosen := make([]*fieldSpec[T], 0, len(selections))
	for _, sel := range selections {
		spec, ok := s.sortable[sel.Column]
		if !ok {
			return nil, fmt.Errorf("rowschema: %q is not a registered sortable field", sel.Column)
		}
		c := *spec
		c.direction = sel.Direction
		chosen = append(chosen, &c)
	}
	return &Bound[T]{schema: s, chosen: chosen}, nil
}

// Selection is a caller's choice of a registered sortable column and
// the direction to sort it in.
type Selection struct {
	Column    string
	Direction paging.Direction
}

// Bound is a Schema resolved against one caller's sort selections.
type Bound[T any] struct {
	schema *Schema[T]
	chosen []*fieldSpec[T]
}

// SortSet builds the sort set the paginator and BuildPredicate use: fixed
// fields declared before the first Field() call are prepended, fixed
// fields declared after the last are appended, matching the schema's
// declaration order.
func (b *Bound[T]) SortSet() paging.SortSet {
	firstSortable, lastSortable := -1, -1
	for _, spec := range b.schema.all {
		if !spec.fixed {
			if firstSortable == -1 {
				firstSortable = spec.position
			}
			lastSortable = spec.position
		}
	}

	var out paging.SortSet
	appendFixed := func(before bool) {
		for _, spec := range b.schema.fixed {
			if before && spec.position < firstSortable || !before && spec.position > lastSortable {
				out = append(out, paging.Sort{Column: spec.column, OutputKey: spec.outputKey, Direction: spec.direction})
			}
		}
	}

	if firstSortable == -1 {
		for _, spec := range b.schema.fixed {
			out = append(out, paging.Sort{Column: spec.column, OutputKey: spec.outputKey, Direction: spec.direction})
		}
		return out
	}

	appendFixed(true)
	for _, spec := range b.chosen {
		out = append(out, paging.Sort{Column: spec.column, OutputKey: spec.outputKey, Direction: spec.direction})
	}
	appendFixed(false)
	return out
}

// Row extracts a paging.Row from item, covering every column in
// SortSet (fixed fields plus the caller's chosen sortable fields) —
// exactly the set BuildPredicate will need values for, no more and no
// less.
func (b *Bound[T]) Row(item T) paging.Row {
	row := make(paging.Row, len(b.schema.fixed)+len(b.chosen))
	for _, spec := range b.schema.fixed {
		row[spec.key()] = spec.extractor(item)
	}
	for _, spec := range b.chosen {
		row[spec.key()] = spec.extractor(item)
	}
	return row
}

func (f *fieldSpec[T]) key() string {
	if f.outputKey != "" {
		return f.outputKey
	}
	s := paging.Sort{Column: f.column}
	return s.Key()
}
