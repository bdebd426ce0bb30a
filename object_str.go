package natrix

// Str is an immutable byte string. original_source stores this
// length-prefixed and null-terminated, inline after the object header,
// to keep the whole value in one arena-free allocation; a Go string is
// already an immutable, length-carrying byte sequence, so Value stores
// it directly rather than replicating the inline-buffer trick.
// Grounded on original_source/src/obj/nx_str.c.
type Str struct {
	header gcHeader
	Value  string
}

func (s *Str) gcHeader() *gcHeader { return &s.header }
func (s *Str) Type() *ObjType      { return StrType }

var StrType = &ObjType{
	Name: "str",
	AsBool: func(o Object) bool {
		return len(o.(*Str).Value) > 0
	},
	GetElement: func(gc *GC, o Object, index Object) Object {
		s := o.(*Str)
		i := CheckIndex(index, len(s.Value))
		return NewStr(gc, s.Value[i:i+1])
	},
}

// NewStr allocates a new str object holding value.
func NewStr(gc *GC, value string) Object {
	return gc.Alloc(&Str{Value: value}, traceNop)
}

// ConcatStr implements `+` between two strs.
func ConcatStr(gc *GC, left, right *Str) Object {
	return NewStr(gc, left.Value+right.Value)
}
