package natrix

// Bool wraps the language's two boolean singletons. Grounded on
// original_source/src/obj/nx_bool.c.
type Bool struct {
	header gcHeader
	Value  bool
}

func (b *Bool) gcHeader() *gcHeader { return &b.header }
func (b *Bool) Type() *ObjType      { return BoolType }

var BoolType = &ObjType{
	Name: "bool",
	AsBool: func(o Object) bool {
		return o.(*Bool).Value
	},
}

// True and False are process-wide singletons, constructed directly
// (never through GC.Alloc) so they're never linked into a heap list
// and never swept — same treatment as the small-int cache.
var (
	False = &Bool{header: gcHeader{traceFn: traceNop}, Value: false}
	True  = &Bool{header: gcHeader{traceFn: traceNop}, Value: true}
)

// WrapBool returns the True or False singleton for v.
func WrapBool(v bool) Object {
	if v {
		return True
	}
	return False
}
