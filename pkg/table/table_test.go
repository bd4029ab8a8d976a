package table

import (
	"testing"

	"github.com/kristofer/quill/pkg/object"
)

func TestSetGet_RoundTrip(t *testing.T) {
	tb := New()
	key := Intern(tb, "answer")
	tb.Set(key, object.Number(42))

	got, ok := tb.Get(key)
	if !ok {
		t.Fatal("expected key to be found")
	}
	if got.Number != 42 {
		t.Fatalf("expected 42, got %v", got.Number)
	}
}

func TestSet_ReturnsIsNewCorrectly(t *testing.T) {
	tb := New()
	key := Intern(New(), "x")

	isNew := tb.Set(key, object.Number(1))
	if !isNew {
		t.Fatal("expected first Set to report a new key")
	}
	isNew = tb.Set(key, object.Number(2))
	if isNew {
		t.Fatal("expected second Set to report an existing key")
	}
}

func TestDelete_TombstoneKeepsLaterEntriesReachable(t *testing.T) {
	tb := New()
	a := Intern(tb, "a")
	b := Intern(tb, "b")
	tb.Set(a, object.Number(1))
	tb.Set(b, object.Number(2))

	if !tb.Delete(a) {
		t.Fatal("expected delete of existing key to succeed")
	}

	got, ok := tb.Get(b)
	if !ok || got.Number != 2 {
		t.Fatalf("expected b still reachable after deleting a, got %v ok=%v", got, ok)
	}

	if _, ok := tb.Get(a); ok {
		t.Fatal("expected deleted key to be absent")
	}
}

func TestGrowth_SurvivesManyInsertions(t *testing.T) {
	tb := New()
	for i := 0; i < 200; i++ {
		key := Intern(tb, string(rune('a'+i%26))+string(rune(i)))
		tb.Set(key, object.Number(float64(i)))
	}
	if tb.Count() != 200 {
		t.Fatalf("expected 200 live entries, got %d", tb.Count())
	}
}

func TestIntern_ReturnsSamePointerForEqualContent(t *testing.T) {
	tb := New()
	a := Intern(tb, "hello")
	b := Intern(tb, "hello")
	if a != b {
		t.Fatal("expected interning to return the same *ObjString for equal content")
	}
}

func TestFindString_MissReturnsNil(t *testing.T) {
	tb := New()
	Intern(tb, "present")
	if tb.FindString("absent", object.HashString("absent")) != nil {
		t.Fatal("expected nil for a string never interned")
	}
}

func TestAddAll_CopiesLiveEntries(t *testing.T) {
	src := New()
	k := Intern(src, "shared")
	src.Set(k, object.Number(9))

	dst := New()
	dst.AddAll(src)

	got, ok := dst.Get(k)
	if !ok || got.Number != 9 {
		t.Fatalf("expected copied entry, got %v ok=%v", got, ok)
	}
}
