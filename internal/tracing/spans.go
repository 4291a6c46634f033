package tracing

// Span attribute keys.
const (
	AttrChangeID   = "jj.change_id"
	AttrCommitID   = "jj.commit_id"
	AttrDiffFormat = "jj.diff_format"
	AttrWidth      = "jj.width"
	AttrRevset     = "jj.revset"
	AttrOutputSize = "jj.output_bytes"
	AttrLogEntries = "jj.log_entries"

	AttrCacheResult = "cache.result" // hit, stale, miss
	AttrLineCount   = "cache.line_count"

	AttrErrorType = "error.type"
)

// Span names.
const (
	SpanJJRoot       = "jj.root"
	SpanJJConfigList = "jj.config_list"
	SpanJJLog        = "jj.log"
	SpanJJShow       = "jj.show"
	SpanDetailLookup = "detail.lookup"
	SpanLogLoad      = "log.load"
)

// Event names.
const (
	EventCacheMiss    = "cache.miss"
	EventCacheEvicted = "cache.evicted"
	EventRepoChanged  = "repo.changed"
)
