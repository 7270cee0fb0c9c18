package tracing

// Span attribute keys for collection tracing.
const (
	AttrStoreQuery = "store.query"
	AttrPageIndex  = "page.index"
	AttrPageSize   = "page.size"
	AttrItemCount  = "items.count"
	AttrRendererID = "renderer.key"

	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixStore  = "store."
	SpanPrefixRender = "render."
)
