package tracing

// Span names.
const (
	SpanImportPeople = "roster.import_people"
	SpanImportSongs  = "roster.import_songs"
	SpanLoadSeed     = "roster.load_seed"
	SpanCommand      = "cli."
)

// Span attribute keys.
const (
	AttrKind    = "registry.kind"
	AttrSize    = "registry.size"
	AttrPath    = "import.path"
	AttrBatchID = "import.batch_id"
	AttrRows    = "import.rows"
	AttrReplace = "import.replace"
)

// Span event names.
const (
	EventFileRead   = "file.read"
	EventParsed     = "parsed"
	EventNormalized = "normalized"
)
