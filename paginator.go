package paging

import (
	"context"
	"errors"
)

// Paginator is the long-lived, immutable orchestration engine (C7): a
// dialect and a cursor codec, shared freely across concurrent calls
// (§5 — two concurrent Paginate calls are independent and share no
// state beyond these two immutable collaborators).
type Paginator struct {
	Dialect     Dialect
	CursorCodec Codec[CursorPayload, string]
}

// NewPaginator builds a Paginator. cursorCodec is the token pipeline
// (paging/token's Pipe2(structured, armor) is the shipped default; pass
// a different composition to add encryption or stashing).
func NewPaginator(dialect Dialect, cursorCodec Codec[CursorPayload, string]) *Paginator {
	return &Paginator{Dialect: dialect, CursorCodec: cursorCodec}
}

// PaginateRequest is the per-call input (§4.7).
type PaginateRequest struct {
	Query  Query
	Sorts  SortSet
	Limit  int
	Cursor *IncomingCursor
}

// Paginate runs the full algorithm of §4.7: validate, decode, invert for
// backward paging, apply sort/limit/offset/predicate, execute, slice and
// reverse, emit tokens. Any error that isn't already a *PaginationError
// is wrapped as CodeUnexpected with message "Failed to paginate" (§4.7
// step 9, §7); a *PaginationError from a precondition or from the
// codec/query collaborators passes through unchanged.
func (p *Paginator) Paginate(ctx context.Context, req PaginateRequest, opts ...PaginateOption) (*Page[Row], error) {
	items, _, info, err := p.run(ctx, req, opts...)
	if err != nil {
		return nil, wrapUnexpected("Failed to paginate", err)
	}
	return &Page[Row]{Items: items, PageInfo: info}, nil
}

// PaginateEdges runs Paginate and additionally pairs each item with its
// own per-row cursor token (§4.9). Edge-encoding failures are wrapped
// separately from the main algorithm's, with the message "Failed to
// generate edges" rather than "Failed to paginate", per §4.9.
func (p *Paginator) PaginateEdges(ctx context.Context, req PaginateRequest, opts ...PaginateOption) (*Page[Row], error) {
	items, sorts, info, err := p.run(ctx, req, opts...)
	if err != nil {
		return nil, wrapUnexpected("Failed to paginate", err)
	}

	edges := make([]Edge[Row], len(items))
	for i, item := range items {
		cur, err := p.CursorCodec.Encode(ctx, resolveCursor(item, sorts))
		if err != nil {
			return nil, wrapUnexpected("Failed to generate edges", err)
		}
		edges[i] = Edge[Row]{Node: item, Cursor: cur}
	}

	return &Page[Row]{Items: items, PageInfo: info, Edges: edges}, nil
}

// run holds the unwrapped algorithm body; both Paginate and
// PaginateEdges fold its error through their own wrap message, and
// PaginateEdges additionally needs the resolved (original, non-inverted)
// sorts back out to derive per-row cursors.
func (p *Paginator) run(ctx context.Context, req PaginateRequest, opts ...PaginateOption) ([]Row, SortSet, PageInfo, error) {
	cfg := applyOptions(opts...)

	// Precondition 1 (§4.7): limit is an integer and limit > 0. A
	// request that omits the limit (zero) is resolved against the
	// configured default rather than rejected — this is this package's
	// one supplemental affordance on top of the validated contract, so
	// that a zero-value PaginateRequest still has sane default behavior;
	// a negative limit is never defaulted, only rejected.
	if req.Limit < 0 {
		return nil, nil, PageInfo{}, newError(CodeInvalidLimit, "Invalid page size limit")
	}
	limit := cfg.effectiveLimit(req.Limit)
	if limit <= 0 {
		return nil, nil, PageInfo{}, newError(CodeInvalidLimit, "Invalid page size limit")
	}

	// Precondition 2 (§4.7): sorts is non-empty (Validate also rejects
	// output-key collisions, resolving the open question in §9).
	if err := req.Sorts.Validate(); err != nil {
		return nil, nil, PageInfo{}, err
	}

	var decoded *DecodedCursor
	if req.Cursor != nil {
		d, err := p.decodeCursor(ctx, *req.Cursor)
		if err != nil {
			return nil, nil, PageInfo{}, err
		}
		decoded = d
	}

	// Step 2: backward paging inverts the sort set fed to applySort,
	// applyCursor, and the predicate builder. The original req.Sorts is
	// kept for signature comparison and for the token emission and edge
	// cursors (§4.8, §4.9 both read from items after they've been
	// reversed back into canonical order, against the original sorts).
	sortsApplied := req.Sorts
	kind := KindNextPage
	if decoded != nil {
		kind = decoded.Kind
		if kind == KindPrevPage {
			sortsApplied = req.Sorts.Invert()
		}
	}

	q := p.Dialect.ApplySort(req.Query, sortsApplied)
	q = p.Dialect.ApplyLimit(q, limit+1, kind)

	switch {
	case decoded != nil && decoded.Kind == KindOffset:
		q = p.Dialect.ApplyOffset(q, decoded.Offset)
	case decoded != nil:
		if decoded.Payload.Sig != req.Sorts.Signature() {
			return nil, nil, PageInfo{}, newError(CodeInvalidToken, "Page token does not match sort order")
		}
		var err error
		q, err = p.Dialect.ApplyCursor(q, sortsApplied, *decoded)
		if err != nil {
			return nil, nil, PageInfo{}, err
		}
	}

	rows, err := q.Execute(ctx)
	if err != nil {
		return nil, nil, PageInfo{}, err
	}

	// Step 7: over-fetch detection, slice, and — for backward paging —
	// reverse back into the client-facing canonical order.
	overFetched := len(rows) > limit
	items := rows
	if overFetched {
		items = rows[:limit]
	}
	if decoded != nil && decoded.Kind == KindPrevPage {
		items = reverseRows(items)
	}

	info, err := p.emitTokens(ctx, items, req.Sorts, decoded, overFetched)
	if err != nil {
		return nil, nil, PageInfo{}, err
	}

	return items, req.Sorts, info, nil
}

// decodeCursor dispatches an IncomingCursor to its decoded shape (§4.7
// step 1).
func (p *Paginator) decodeCursor(ctx context.Context, c IncomingCursor) (*DecodedCursor, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	switch {
	case c.NextPage != nil:
		payload, err := p.CursorCodec.Decode(ctx, *c.NextPage)
		if err != nil {
			return nil, wrapInvalidToken(err)
		}
		return &DecodedCursor{Kind: KindNextPage, Payload: payload}, nil

	case c.PrevPage != nil:
		payload, err := p.CursorCodec.Decode(ctx, *c.PrevPage)
		if err != nil {
			return nil, wrapInvalidToken(err)
		}
		return &DecodedCursor{Kind: KindPrevPage, Payload: payload}, nil

	default:
		offset := *c.Offset
		if offset < 0 {
			return nil, newError(CodeInvalidToken, "Invalid cursor")
		}
		return &DecodedCursor{Kind: KindOffset, Offset: offset}, nil
	}
}

// wrapInvalidToken normalizes a cursor-codec decode failure (bad
// base64, forged ciphertext, malformed structured payload, an
// unrecognized stash key) to CodeInvalidToken, passing an existing
// PaginationError through unchanged.
func wrapInvalidToken(err error) error {
	var pe *PaginationError
	if errors.As(err, &pe) {
		return pe
	}
	return &PaginationError{Message: "Invalid cursor", Code: CodeInvalidToken, Cause: err}
}

func reverseRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}

// emitTokens implements §4.8 exactly: empty items emit no anchors;
// otherwise both anchors are always encoded, and nextPage/prevPage are
// populated according to direction and over-fetch.
func (p *Paginator) emitTokens(ctx context.Context, items []Row, sorts SortSet, decoded *DecodedCursor, overFetched bool) (PageInfo, error) {
	if len(items) == 0 {
		return PageInfo{}, nil
	}

	startCursor, err := p.CursorCodec.Encode(ctx, resolveCursor(items[0], sorts))
	if err != nil {
		return PageInfo{}, err
	}
	endCursor, err := p.CursorCodec.Encode(ctx, resolveCursor(items[len(items)-1], sorts))
	if err != nil {
		return PageInfo{}, err
	}

	inverted := decoded != nil && decoded.Kind == KindPrevPage
	isFirst := decoded == nil || (decoded.Kind == KindOffset && decoded.Offset == 0)

	info := PageInfo{StartCursor: &startCursor, EndCursor: &endCursor}

	if (!inverted || overFetched) && !isFirst {
		info.PrevPage = &startCursor
		info.HasPrevPage = true
	}
	if inverted || overFetched {
		info.NextPage = &endCursor
		info.HasNextPage = true
	}

	return info, nil
}
