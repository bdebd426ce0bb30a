package natrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallIntCacheIsPointerStable(t *testing.T) {
	gc := NewGC(DefaultConfig())
	for _, v := range []int64{-1, 0, 1, 100, 255} {
		a := NewInt(gc, v)
		b := NewInt(gc, v)
		assert.Same(t, a, b, "cached int %d should be pointer-equal across calls", v)
	}
}

func TestOutOfRangeIntsAreNotCached(t *testing.T) {
	gc := NewGC(DefaultConfig())
	a := NewInt(gc, 1000)
	b := NewInt(gc, 1000)
	assert.NotSame(t, a, b)
	assert.Equal(t, int64(1000), a.(*Int).Value)
}

func TestBoolSingletons(t *testing.T) {
	assert.Same(t, True, WrapBool(true))
	assert.Same(t, False, WrapBool(false))
	assert.True(t, AsBool(True))
	assert.False(t, AsBool(False))
}

func TestListAppendGrowth(t *testing.T) {
	gc := NewGC(DefaultConfig())
	list := NewList(gc, 1)
	l := list.(*List)
	require.Equal(t, 1, cap(l.Items))

	AppendList(list, NewInt(gc, 1))
	assert.Equal(t, 1, len(l.Items))
	assert.Equal(t, 1, cap(l.Items)) // still fits

	AppendList(list, NewInt(gc, 2)) // triggers growth: 2*1+1 == 3
	assert.Equal(t, 2, len(l.Items))
	assert.Equal(t, 3, cap(l.Items))

	assert.Equal(t, int64(1), l.Items[0].(*Int).Value)
	assert.Equal(t, int64(2), l.Items[1].(*Int).Value)
}

func TestListGetSetElementAndNegativeIndex(t *testing.T) {
	gc := NewGC(DefaultConfig())
	list := NewList(gc, 3)
	for _, v := range []int64{10, 20, 30} {
		AppendList(list, NewInt(gc, v))
	}
	assert.Equal(t, int64(30), GetElement(gc, list, NewInt(gc, -1)).(*Int).Value)
	SetElement(gc, list, NewInt(gc, -1), NewInt(gc, 99))
	assert.Equal(t, int64(99), GetElement(gc, list, NewInt(gc, 2)).(*Int).Value)
}

func TestListEmptyLiteralHasPositiveCapacity(t *testing.T) {
	gc := NewGC(DefaultConfig())
	list := NewList(gc, 0)
	l := list.(*List)
	assert.Equal(t, 0, len(l.Items))
	assert.Greater(t, cap(l.Items), 0)
}

func TestCheckIndexOutOfRangePanics(t *testing.T) {
	gc := NewGC(DefaultConfig())
	list := NewList(gc, 1)
	AppendList(list, NewInt(gc, 1))
	assert.Panics(t, func() {
		GetElement(gc, list, NewInt(gc, 5))
	})
}

func TestStrConcat(t *testing.T) {
	gc := NewGC(DefaultConfig())
	a := NewStr(gc, "ab").(*Str)
	b := NewStr(gc, "cd").(*Str)
	result := ConcatStr(gc, a, b)
	assert.Equal(t, "abcd", result.(*Str).Value)
}

func TestStrGetElement(t *testing.T) {
	gc := NewGC(DefaultConfig())
	s := NewStr(gc, "hello")
	elem := GetElement(gc, s, NewInt(gc, 1))
	assert.Equal(t, "e", elem.(*Str).Value)
}

func TestTypeSingletonsDistinctFromValues(t *testing.T) {
	assert.Equal(t, "int", IntType.Name)
	assert.Same(t, IntTypeObj, wrapType(IntType))
	assert.Equal(t, TypeObjType, TypeTypeObj.Type())
}

func TestUnsupportedOperationIsFatal(t *testing.T) {
	gc := NewGC(DefaultConfig())
	n := NewInt(gc, 1)
	assert.Panics(t, func() {
		GetElement(gc, n, NewInt(gc, 0))
	})
	s := NewStr(gc, "hi")
	assert.Panics(t, func() {
		SetElement(gc, s, NewInt(gc, 0), NewInt(gc, 1))
	})
}
