package natrix

// List is a growable array of Objects. original_source backs this
// with a separately GC-allocated NxObjectArray so the array can be
// reallocated and traced independent of the list header; in Go the
// backing array is an ordinary slice under the list's own trace
// function; there's no separate heap object to manage since Go's
// runtime already owns the slice's storage and this collector only
// needs to reach the elements, not the array's own allocation.
// Grounded on original_source/src/obj/nx_list.c.
type List struct {
	header gcHeader
	Items  []Object
}

func (l *List) gcHeader() *gcHeader { return &l.header }
func (l *List) Type() *ObjType      { return ListType }

var ListType = &ObjType{
	Name: "list",
	AsBool: func(o Object) bool {
		return len(o.(*List).Items) > 0
	},
	GetElement: func(gc *GC, o Object, index Object) Object {
		l := o.(*List)
		i := CheckIndex(index, len(l.Items))
		return l.Items[i]
	},
	SetElement: func(gc *GC, o Object, index Object, value Object) {
		l := o.(*List)
		i := CheckIndex(index, len(l.Items))
		l.Items[i] = value
	},
}

func traceList(gc *GC, o Object) {
	l := o.(*List)
	for _, item := range l.Items {
		gc.Visit(item)
	}
}

// NewList allocates a list with the given initial capacity. Where
// nx_list_create asserts a positive capacity, a capacity <= 0 is
// raised to 1 here, so an empty list literal still reserves a positive
// capacity per spec.md §8.
func NewList(gc *GC, initialCapacity int) Object {
	if initialCapacity <= 0 {
		initialCapacity = 1
	}
	l := &List{Items: make([]Object, 0, initialCapacity)}
	return gc.Alloc(l, traceList)
}

// AppendList grows list's backing array by 2*cap+1 when full,
// matching nx_list_append's growth rule exactly, then appends item.
func AppendList(list Object, item Object) {
	l := list.(*List)
	if len(l.Items) == cap(l.Items) {
		newCap := 2*cap(l.Items) + 1
		grown := make([]Object, len(l.Items), newCap)
		copy(grown, l.Items)
		l.Items = grown
	}
	l.Items = append(l.Items, item)
}
