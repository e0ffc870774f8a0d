package paging

// Row is a single fetched row, keyed by output key (the same keys
// Sort.Key() produces). The engine reads boundary values out of a Row
// by key; it never re-runs sort expressions against it (§4.4).
type Row map[string]any

// Get returns the row's value for key, wrapped as a Value.
func (r Row) Get(key string) (Value, bool) {
	raw, ok := r[key]
	if !ok {
		return Value{}, false
	}
	return ValueOf(raw), true
}

// CursorPayload is the decoded, signature-checked shape carried by a
// token: a fingerprint of the sort set it was minted under, plus the
// boundary row's values for each sort item (§3).
type CursorPayload struct {
	Sig string
	K   map[string]Value
}

// CursorKind distinguishes the three shapes an incoming cursor may take.
type CursorKind int

const (
	KindNextPage CursorKind = iota
	KindPrevPage
	KindOffset
)

// IncomingCursor is the tagged union a caller supplies: exactly one of
// NextPage, PrevPage, or Offset must be set (enforced when the
// paginator decodes the cursor, not by the zero value — an IncomingCursor{} is invalid, not "first
// page"; omit the cursor argument entirely for that).
type IncomingCursor struct {
	NextPage *string
	PrevPage *string
	Offset   *int
}

// DecodedCursor is what the paginator actually operates on after
// unwrapping an IncomingCursor's token (if any) through the cursor
// codec.
type DecodedCursor struct {
	Kind    CursorKind
	Payload CursorPayload // valid when Kind is KindNextPage or KindPrevPage
	Offset  int           // valid when Kind is KindOffset
}

// validate checks that exactly one field of IncomingCursor is set.
func (c IncomingCursor) validate() error {
	count := 0
	if c.NextPage != nil {
		count++
	}
	if c.PrevPage != nil {
		count++
	}
	if c.Offset != nil {
		count++
	}
	if count != 1 {
		return newError(CodeInvalidToken, "Invalid cursor")
	}
	return nil
}

// ResolveCursor builds the cursor payload for an arbitrary row under
// sorts, for callers outside this package that need to mint a cursor
// for a row the paginator didn't itself return as a page boundary —
// e.g. a decorator that re-fetches and filters pages (paging/quotafill)
// and needs a cursor anchored to the last surviving item, not the last
// fetched one.
func ResolveCursor(row Row, sorts SortSet) CursorPayload {
	return resolveCursor(row, sorts)
}

// resolveCursor extracts a CursorPayload from a boundary row for the
// given (possibly inverted at call time — callers always pass the
// *original*, non-inverted sort set here, since tokens must stay valid
// against the sort order the caller asked for) sort set (§4.4).
func resolveCursor(row Row, sorts SortSet) CursorPayload {
	k := make(map[string]Value, len(sorts))
	for _, item := range sorts {
		key := item.Key()
		if v, ok := row.Get(key); ok {
			k[key] = v
		} else {
			k[key] = Null()
		}
	}
	return CursorPayload{Sig: sorts.Signature(), K: k}
}

// valueFor looks up the boundary value for sort item i's output key,
// failing per §4.5's "missing cursor value" edge case if the payload
// doesn't carry it.
func (p CursorPayload) valueFor(item Sort) (Value, error) {
	v, ok := p.K[item.Key()]
	if !ok {
		return Value{}, newErrorf(CodeInvalidToken, "missing cursor value for %q", item.Key())
	}
	return v, nil
}
