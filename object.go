package natrix

// ObjType is the per-type vtable from spec.md §4.3: a name used in
// diagnostics, and three nullable operation slots. A nil slot means
// the operation is unsupported for that type and dispatching it is a
// fatal runtime error naming the type — exactly as in
// original_source/src/obj/defs.c's nxo_as_bool.
//
// §9's design notes call out two valid mappings for this open
// method set: a capability-object-per-operation design, or a single
// match over a closed set of variants. With five built-in types that
// never grow at runtime, this package takes the vtable approach
// directly (struct of function fields) rather than a type switch,
// since it's what the original vtable already is and needs no
// translation.
type ObjType struct {
	Name string

	AsBool     func(o Object) bool
	GetElement func(gc *GC, o Object, index Object) Object
	SetElement func(gc *GC, o Object, index Object, value Object)
}

// AsBool dispatches o's as_bool operation. Unlike defs.c's
// nxo_as_bool, there's no "result wasn't actually a bool" failure mode
// to check for: ObjType.AsBool's signature already guarantees a Go
// bool back, so that half of the original runtime check is enforced by
// the type checker instead of at call time.
func AsBool(o Object) bool {
	t := o.Type()
	if t.AsBool == nil {
		fatal("cannot convert '%s' to bool", t.Name)
	}
	return t.AsBool(o)
}

// GetElement dispatches o's get_element operation.
func GetElement(gc *GC, o Object, index Object) Object {
	t := o.Type()
	if t.GetElement == nil {
		fatal("'%s' is not subscriptable", t.Name)
	}
	return t.GetElement(gc, o, index)
}

// SetElement dispatches o's set_element operation.
func SetElement(gc *GC, o Object, index Object, value Object) {
	t := o.Type()
	if t.SetElement == nil {
		fatal("'%s' does not support item assignment", t.Name)
	}
	t.SetElement(gc, o, index, value)
}

// CheckIndex validates index against a sequence of the given length:
// it must be an Int, wrapped once if negative, and the result must
// land in [0, length). Grounded on original_source's nxo_check_index.
func CheckIndex(index Object, length int) int {
	iv, ok := index.(*Int)
	if !ok {
		fatal("index must be an integer")
	}
	i := iv.Value
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		fatal("index out of range")
	}
	return int(i)
}
