package set

import (
	"sort"
	"testing"
)

func TestFromSlice(t *testing.T) {
	s := FromSlice([]string{"a", "b", "a", "c", "b"})
	if got := len(s.ToSlice()); got != 3 {
		t.Errorf("len(ToSlice()) = %d, want 3", got)
	}
	for _, item := range []string{"a", "b", "c"} {
		if !s.Contains(item) {
			t.Errorf("expected set to contain %q", item)
		}
	}
	if s.Contains("d") {
		t.Error("did not expect set to contain d")
	}
}

func TestAdd(t *testing.T) {
	s := New[string]()
	s.Add("u1")
	s.Add("u2")
	s.Add("u1")

	got := s.ToSlice()
	sort.Strings(got)

	want := []string{"u1", "u2"}
	if len(got) != len(want) {
		t.Fatalf("ToSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToSlice() = %v, want %v", got, want)
			break
		}
	}
}
