package bimap

import (
	"sort"
	"testing"

	"github.com/epiclabs-io/ut"
)

const key = "key"
const value = "value"

// didPanic returns true if the function passed to it panics
func didPanic(f func()) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	f()
	return false
}

func TestNew(tx *testing.T) {
	t := ut.BeginTest(tx, false)
	defer t.FinishTest()

	empty := New[string, int](nil)
	t.Equals(0, empty.Size())

	b := New(map[string]byte{"cool": 1, "heat": 3})
	t.Equals(2, b.Size())

	v, ok := b.Get("heat")
	t.Assert(ok, "expected heat to exist")
	t.Equals(byte(3), v)

	k, ok := b.GetInverse(1)
	t.Assert(ok, "expected 1 to exist")
	t.Equals("cool", k)
}

func TestInsert(tx *testing.T) {
	t := ut.BeginTest(tx, false)
	defer t.FinishTest()

	b := New[string, string](nil)
	b.Insert(key, value)

	t.Assert(b.Exists(key), "key should exist")
	t.Assert(b.ExistsInverse(value), "value should exist")

	// replacing a value drops the stale inverse entry
	b.Insert(key, "other")
	t.Assert(!b.ExistsInverse(value), "stale value should be gone")
	t.Equals(1, b.Size())

	// reusing a value drops the stale forward entry
	b.Insert("second", "other")
	t.Assert(!b.Exists(key), "stale key should be gone")
	t.Equals(1, b.Size())
}

func TestMissing(tx *testing.T) {
	t := ut.BeginTest(tx, false)
	defer t.FinishTest()

	b := New[string, int](nil)

	_, ok := b.Get(key)
	t.Assert(!ok, "should not find a missing key")
	_, ok = b.GetInverse(7)
	t.Assert(!ok, "should not find a missing value")
}

func TestDelete(tx *testing.T) {
	t := ut.BeginTest(tx, false)
	defer t.FinishTest()

	b := New(map[string]string{key: value, "a": "b"})

	b.Delete(key)
	t.Assert(!b.Exists(key), "key should be gone")
	t.Assert(!b.ExistsInverse(value), "value should be gone")

	b.DeleteInverse("b")
	t.Assert(!b.Exists("a"), "key should be gone")
	t.Equals(0, b.Size())

	b.Delete("nothing")
	b.DeleteInverse("nothing")
	t.Equals(0, b.Size())
}

func TestImmutable(tx *testing.T) {
	t := ut.BeginTest(tx, false)
	defer t.FinishTest()

	b := New(map[string]string{key: value}).MakeImmutable()

	t.Assert(didPanic(func() { b.Insert("a", "b") }), "Insert should panic")
	t.Assert(didPanic(func() { b.Delete(key) }), "Delete should panic")
	t.Assert(didPanic(func() { b.DeleteInverse(value) }), "DeleteInverse should panic")

	v, ok := b.Get(key)
	t.Assert(ok, "reads still work")
	t.Equals(value, v)
}

func TestMaps(tx *testing.T) {
	t := ut.BeginTest(tx, false)
	defer t.FinishTest()

	b := New(map[string]int{"low": 1, "high": 3})

	keys := b.Keys()
	sort.Strings(keys)
	t.Equals([]string{"high", "low"}, keys)

	t.Equals(map[string]int{"low": 1, "high": 3}, b.GetForwardMap())
	inverse := b.GetInverseMap()
	t.Equals(map[int]string{1: "low", 3: "high"}, inverse)

	inverse[9] = "changed"
	t.Assert(!b.ExistsInverse(9), "copies must not leak into the map")
}
