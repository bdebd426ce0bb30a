package natrix

// TypeObj represents a type itself as a first-class value (so guest
// code could, in principle, reference int/str/list/bool/type by name).
// Grounded on original_source/src/obj/nx_type.c.
type TypeObj struct {
	header gcHeader
	Inner  *ObjType
}

func (t *TypeObj) gcHeader() *gcHeader { return &t.header }

// Type returns TypeObjType for every TypeObj instance — the `type`
// singleton's own type points to itself, per spec.md §3's
// `type.type == &type`.
func (t *TypeObj) Type() *ObjType { return TypeObjType }

var TypeObjType = &ObjType{
	Name: "type",
	AsBool: func(Object) bool {
		return true
	},
}

// typeObjects mirrors each built-in ObjType with its first-class
// TypeObj wrapper, constructed once and never linked into any GC heap
// (same treatment as the int cache and the bool singletons: they must
// outlive every collection).
var typeObjects = map[*ObjType]*TypeObj{}

func wrapType(t *ObjType) *TypeObj {
	if wrapped, ok := typeObjects[t]; ok {
		return wrapped
	}
	wrapped := &TypeObj{header: gcHeader{traceFn: traceNop}, Inner: t}
	typeObjects[t] = wrapped
	return wrapped
}

var (
	IntTypeObj  = wrapType(IntType)
	BoolTypeObj = wrapType(BoolType)
	StrTypeObj  = wrapType(StrType)
	ListTypeObj = wrapType(ListType)
	TypeTypeObj = wrapType(TypeObjType)
)
