package natrix

// Object is anything the garbage collector can allocate, root, mark,
// and sweep. Every concrete value type (Int, Bool, Str, List, TypeObj)
// embeds a gcHeader and exposes it through gcHeader().
//
// Invariant: an Object interface value must never wrap a nil concrete
// pointer. GC.Alloc always returns a freshly constructed, non-nil
// object, and this package passes nil only as the literal interface
// nil — Root/Unroot/Visit all treat that as "nothing to do".
type Object interface {
	gcHeader() *gcHeader
	Type() *ObjType
}

// TraceFunc visits every Object directly reachable from o by calling
// gc.Visit on each. It is the Go analogue of original_source's
// trace_fn function pointer, stored per-object at allocation time
// rather than per-type, matching the §3 GC object header model.
type TraceFunc func(gc *GC, o Object)

func traceNop(*GC, Object) {}

// gcHeader is the "every heap object begins with {link, trace_fn}"
// header from spec.md §3, minus the mark-bit-in-pointer trick: §9's
// design notes call that bit-tagging an implementation choice not
// justified in a language with a real bool field, so marked is its own
// field here.
type gcHeader struct {
	next    Object
	marked  bool
	traceFn TraceFunc
}

// GC is a non-moving, single-threaded, stop-the-world mark-and-sweep
// collector. Grounded on original_source/src/util/gc.c.
type GC struct {
	head         Object
	objectsCount int
	threshold    int
	roots        []Object
	rootCap      int

	stats       bool
	statsWriter func(format string, args ...any)

	// ExtraRoots, when set, is called at the start of every Collect
	// to mark long-lived roots that aren't pushed through Root/Unroot
	// — namely the evaluator's current Env, which outlives any single
	// expression and so doesn't fit the root stack's LIFO discipline.
	// Grounded on spec.md §4.2's rooting protocol, generalised: the
	// protocol is stated there in terms of transient expression
	// temporaries, but an Env holding bindings across statements needs
	// the same protection against a collection triggered mid-statement.
	ExtraRoots func(gc *GC)
}

// NewGC creates a collector with an empty heap, per cfg's initial
// threshold and root-stack capacity.
func NewGC(cfg Config) *GC {
	threshold := cfg.GCInitialThreshold
	if threshold <= 0 {
		threshold = DefaultConfig().GCInitialThreshold
	}
	rootCap := cfg.GCRootStackCapacity
	if rootCap <= 0 {
		rootCap = DefaultConfig().GCRootStackCapacity
	}
	writer := cfg.GCStatsWriter
	return &GC{
		threshold:   threshold,
		rootCap:     rootCap,
		roots:       make([]Object, 0, rootCap),
		stats:       cfg.GCStats,
		statsWriter: writer,
	}
}

// Alloc links o into the heap list and assigns it trace, collecting
// first if the heap is at or above its threshold. trace of nil becomes
// a no-op, matching gc_alloc's treatment of a null trace_fn.
//
// Objects that must never be collected (small-int cache, true/false,
// the type singleton) are constructed directly with their own header
// and never passed to Alloc, so they're simply absent from the heap
// list the sweeper walks — the same effect original_source gets by
// never linking them in.
func (gc *GC) Alloc(o Object, trace TraceFunc) Object {
	if gc.objectsCount >= gc.threshold {
		gc.Collect()
	}
	if trace == nil {
		trace = traceNop
	}
	h := o.gcHeader()
	h.next = gc.head
	h.traceFn = trace
	h.marked = false
	gc.head = o
	gc.objectsCount++
	return o
}

// Root pushes o onto the root stack. Overflowing rootCap is fatal,
// matching gc_root's PANIC on MAX_ROOTS.
func (gc *GC) Root(o Object) {
	if o == nil {
		return
	}
	if len(gc.roots) >= gc.rootCap {
		fatal("too many GC roots")
	}
	gc.roots = append(gc.roots, o)
}

// Unroot pops the root stack, which must have o at its top — LIFO
// discipline enforced the same way gc_unroot asserts it.
func (gc *GC) Unroot(o Object) {
	if o == nil {
		return
	}
	if len(gc.roots) == 0 || gc.roots[len(gc.roots)-1] != o {
		fatal("gc: unroot called out of order")
	}
	gc.roots = gc.roots[:len(gc.roots)-1]
}

// Visit marks o (if unmarked) and recurses into it via its trace
// function. A nil Object is a no-op, matching gc_visit.
func (gc *GC) Visit(o Object) {
	if o == nil {
		return
	}
	h := o.gcHeader()
	if h.marked {
		return
	}
	h.marked = true
	h.traceFn(gc, o)
}

// Collect runs one mark-and-sweep cycle: mark every root (and what
// they reach), free everything left unmarked, then grow the threshold
// if survivors still occupy at least 87.5% of it.
func (gc *GC) Collect() {
	for _, r := range gc.roots {
		gc.Visit(r)
	}
	if gc.ExtraRoots != nil {
		gc.ExtraRoots(gc)
	}

	freed := 0
	p := &gc.head
	for *p != nil {
		h := (*p).gcHeader()
		if h.marked {
			h.marked = false
			p = &h.next
		} else {
			*p = h.next
			freed++
		}
	}
	gc.objectsCount -= freed

	if gc.objectsCount >= gc.threshold-gc.threshold/8 {
		gc.threshold *= 2
	}

	if gc.stats && gc.statsWriter != nil {
		gc.statsWriter("GC done: freed %d objects, %d remaining, threshold %d", freed, gc.objectsCount, gc.threshold)
	}
}

// ObjectsCount reports the number of objects currently on the heap,
// for tests asserting sweep behaviour.
func (gc *GC) ObjectsCount() int {
	return gc.objectsCount
}
