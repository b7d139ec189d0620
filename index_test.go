package semidex

import (
	"strings"
	"testing"
)

func TestBuildIndexSimpleObject(t *testing.T) {
	src := []byte(`{"a":1}`)
	idx, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, err := idx.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if root.Kind() != KindObject {
		t.Fatalf("root.Kind() = %v, want object", root.Kind())
	}
	if got := string(root.ValueBytes()); got != `{"a":1}` {
		t.Fatalf("root.ValueBytes() = %q, want %q", got, src)
	}
	if root.ChildCount() != 1 {
		t.Fatalf("root.ChildCount() = %d, want 1", root.ChildCount())
	}
	child, ok := root.Field("a")
	if !ok {
		t.Fatal(`root.Field("a") not found`)
	}
	if child.Kind() != KindNumber {
		t.Fatalf("child.Kind() = %v, want number", child.Kind())
	}
	if got := string(child.ValueBytes()); got != "1" {
		t.Fatalf("child.ValueBytes() = %q, want %q", got, "1")
	}
	name, ok := child.FieldName()
	if !ok || name != "a" {
		t.Fatalf("child.FieldName() = (%q, %v), want (a, true)", name, ok)
	}
}

func TestBuildIndexMixedArray(t *testing.T) {
	src := []byte(`[true,null,false]`)
	idx, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, err := idx.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if root.Kind() != KindArray {
		t.Fatalf("root.Kind() = %v, want array", root.Kind())
	}
	wantKinds := []ValueKind{KindBool, KindNull, KindBool}
	wantBytes := []string{"true", "null", "false"}
	for i, wk := range wantKinds {
		el, ok := root.Index(i)
		if !ok {
			t.Fatalf("root.Index(%d) not found", i)
		}
		if el.Kind() != wk {
			t.Fatalf("element %d Kind() = %v, want %v", i, el.Kind(), wk)
		}
		if got := string(el.ValueBytes()); got != wantBytes[i] {
			t.Fatalf("element %d ValueBytes() = %q, want %q", i, got, wantBytes[i])
		}
	}
	if _, ok := root.Index(3); ok {
		t.Fatal("root.Index(3) should not exist (only 3 elements)")
	}
}

func TestBuildIndexNestedObjectArray(t *testing.T) {
	src := []byte(`{"x":[1,2,3]}`)
	idx, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, err := idx.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	arr, ok := root.Field("x")
	if !ok {
		t.Fatal(`root.Field("x") not found`)
	}
	if arr.Kind() != KindArray {
		t.Fatalf("arr.Kind() = %v, want array", arr.Kind())
	}
	if arr.ChildCount() != 3 {
		t.Fatalf("arr.ChildCount() = %d, want 3", arr.ChildCount())
	}
	for i, want := range []string{"1", "2", "3"} {
		el, ok := arr.Index(i)
		if !ok {
			t.Fatalf("arr.Index(%d) not found", i)
		}
		if got := string(el.ValueBytes()); got != want {
			t.Fatalf("arr element %d = %q, want %q", i, got, want)
		}
	}
	// arr's parent is the root object that holds key "x".
	parent, ok := arr.Parent()
	if !ok || parent.Kind() != KindObject {
		t.Fatal("arr.Parent() should be the root object")
	}
}

func TestBuildIndexBareString(t *testing.T) {
	src := []byte(`"hello \"world\""`)
	idx, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, err := idx.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if root.Kind() != KindString {
		t.Fatalf("root.Kind() = %v, want string", root.Kind())
	}
	if got := string(root.ValueBytes()); got != string(src) {
		t.Fatalf("root.ValueBytes() = %q, want %q", got, src)
	}
	sv, ok := root.StringValue()
	if !ok {
		t.Fatal("root.StringValue() reported false for a string node")
	}
	if want := `hello "world"`; sv != want {
		t.Fatalf("root.StringValue() = %q, want %q", sv, want)
	}
}

func TestBuildIndexDeepNestedArray(t *testing.T) {
	const depth = 1000
	src := []byte(strings.Repeat("[", depth) + strings.Repeat("]", depth))
	idx, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, err := idx.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if root.Kind() != KindArray {
		t.Fatalf("root.Kind() = %v, want array", root.Kind())
	}
	cur := root
	for i := 0; i < depth-1; i++ {
		if cur.ChildCount() != 1 {
			t.Fatalf("depth %d: ChildCount() = %d, want 1", i, cur.ChildCount())
		}
		child, ok := cur.FirstChild()
		if !ok {
			t.Fatalf("depth %d: FirstChild() not found", i)
		}
		if child.Kind() != KindArray {
			t.Fatalf("depth %d: child.Kind() = %v, want array", i, child.Kind())
		}
		cur = child
	}
	if cur.ChildCount() != 0 {
		t.Fatalf("innermost array ChildCount() = %d, want 0", cur.ChildCount())
	}
	if got := string(root.ValueBytes()); got != string(src) {
		t.Fatalf("root.ValueBytes() length = %d, want %d", len(got), len(src))
	}
}

// TestBuildIndexInterestBits checks the Interest Bits vector itself
// (not just offsets/cursor navigation, which go through a separate
// table): it must have exactly one bit set per structural byte and per
// value-leaf start, at the true source offset, with nothing else set.
func TestBuildIndexInterestBits(t *testing.T) {
	src := []byte(`{"a":1}`)
	idx, err := Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ib := idx.InterestBits()
	if ib.Len() != uint64(len(src)) {
		t.Fatalf("InterestBits().Len() = %d, want %d", ib.Len(), len(src))
	}
	want := map[int]bool{0: true, 1: true, 2: false, 3: true, 4: true, 5: true, 6: true}
	for i, wantBit := range want {
		if got := ib.Get(uint64(i)); got != wantBit {
			t.Fatalf("InterestBits().Get(%d) = %v, want %v (byte %q)", i, got, wantBit, src[i])
		}
	}
	wantOnes := uint64(0)
	for _, b := range want {
		if b {
			wantOnes++
		}
	}
	if ib.Ones() != wantOnes {
		t.Fatalf("InterestBits().Ones() = %d, want %d", ib.Ones(), wantOnes)
	}
}

func TestBuildIndexEmptySourceErrors(t *testing.T) {
	if _, err := Build([]byte("   ")); err == nil {
		t.Fatal("Build on whitespace-only input should return an error")
	}
}

func TestBuildIndexWithOptions(t *testing.T) {
	src := []byte(`{"a":[1,2,3,4,5,6,7,8]}`)
	idx, err := Build(src, SelectSampleRate(2), BPBlockSize(2), WithSIMDDispatch(DispatchForceScalar))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root, err := idx.Root()
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	arr, ok := root.Field("a")
	if !ok || arr.ChildCount() != 8 {
		t.Fatalf(`expected field "a" with 8 children, got ok=%v count=%d`, ok, arr.ChildCount())
	}
}
