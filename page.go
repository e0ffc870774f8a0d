package paging

// PageInfo carries the navigation metadata returned alongside a page's
// items (§3 "Outgoing result"). Unlike the teacher's PageInfo, whose
// fields are lazy functions deferring a second round-trip, every value
// here is computed eagerly inside Paginate: §4.8 derives hasNextPage,
// hasPrevPage, and both cursor tokens from the same overfetched row set
// already held in memory, so there is nothing left to defer.
type PageInfo struct {
	HasNextPage bool
	HasPrevPage bool

	// StartCursor and EndCursor point at the first and last item of the
	// page actually returned (nil if the page is empty).
	StartCursor *string
	EndCursor   *string

	// NextPage and PrevPage are the tokens to hand back on the
	// following call; nil when there is no such page.
	NextPage *string
	PrevPage *string
}

// Edge pairs a page item with the cursor token for that exact item,
// the shape a GraphQL-style connection exposes (§4.9).
type Edge[T any] struct {
	Node   T
	Cursor string
}

// Page is the typed result of a Paginate call.
type Page[T any] struct {
	Items    []T
	PageInfo PageInfo

	// Edges is populated only by PaginateEdges (§4.9); Paginate leaves
	// it nil since most callers only want Items plus PageInfo.
	Edges []Edge[T]
}

// Connection is the GraphQL-style envelope built by BuildConnection:
// edges plus PageInfo, without the flattened Items slice Page carries.
type Connection[T any] struct {
	Edges    []Edge[T]
	PageInfo PageInfo
}

// BuildConnection reshapes a Page into a Connection, pairing each item
// with the cursor for its own row. cursorFor is invoked once per item
// and must return the same token Paginate would have produced had the
// page been truncated at that item — callers get this for free by
// passing through the per-row cursors a PaginateEdges call already
// computed; BuildConnection exists for callers who only have a Page
// and a way to re-derive each row's cursor (e.g. composing with
// quotafill, which only ever sees a Page[T]).
func BuildConnection[T any](page *Page[T], cursorFor func(item T, index int) string) Connection[T] {
	edges := make([]Edge[T], len(page.Items))
	for i, item := range page.Items {
		edges[i] = Edge[T]{Node: item, Cursor: cursorFor(item, i)}
	}
	return Connection[T]{Edges: edges, PageInfo: page.PageInfo}
}
