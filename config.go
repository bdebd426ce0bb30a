package natrix

// Config collects the tunable knobs of the interpreter's memory
// subsystems and debug tracing. All fields have sane defaults
// (DefaultConfig); the CLI only overrides the few exposed as flags.
type Config struct {
	// GCInitialThreshold is the number of live objects the heap may
	// hold before the first collection is triggered.
	GCInitialThreshold int

	// GCRootStackCapacity bounds the GC's root stack. The spec
	// requires at least 64 slots.
	GCRootStackCapacity int

	// IndentStackCapacity bounds the lexer's indentation stack. The
	// spec requires at least 64 levels.
	IndentStackCapacity int

	// ArenaChunkSize is the size in bytes of a default arena chunk.
	// Requests larger than this get a dedicated chunk.
	ArenaChunkSize int

	// GCStats, when true, makes the collector report a one-line
	// summary after every collection (mirrors the original
	// ENABLE_GC_STATS build flag, now a runtime switch).
	GCStats bool

	// GCStatsWriter receives the collector's stats lines when
	// GCStats is true. If it is nil, no stats lines are written even
	// with GCStats set; the CLI wires it to os.Stderr.
	GCStatsWriter func(format string, args ...any)
}

// DefaultConfig returns a Config primed with the values the original
// natrix C sources hard-coded as constants.
func DefaultConfig() Config {
	return Config{
		GCInitialThreshold:  100,
		GCRootStackCapacity: 64,
		IndentStackCapacity: 64,
		ArenaChunkSize:      8192,
		GCStats:             false,
	}
}
