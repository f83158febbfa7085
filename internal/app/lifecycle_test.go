package app

import (
	"errors"
	"slices"
	"testing"
)

func TestLifecycle_ReleasesInReverseOrderOnce(t *testing.T) {
	var l lifecycle
	var got []string
	for _, name := range []string{"display", "visual", "colormap", "window"} {
		name := name
		l.push(name, func() error {
			got = append(got, name)
			return nil
		})
	}

	if err := l.releaseAll(nil); err != nil {
		t.Fatalf("releaseAll() error: %v", err)
	}
	want := []string{"window", "colormap", "visual", "display"}
	if !slices.Equal(got, want) {
		t.Fatalf("release order = %v, want %v", got, want)
	}

	if err := l.releaseAll(nil); err != nil {
		t.Fatalf("second releaseAll() error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("second releaseAll() ran releases again: %v", got)
	}
}

func TestLifecycle_ContinuesPastFailures(t *testing.T) {
	var l lifecycle
	boom := errors.New("boom")
	ran := 0
	l.push("first", func() error { ran++; return nil })
	l.push("second", func() error { ran++; return boom })

	var reported []string
	err := l.releaseAll(func(name string, err error) {
		if err != nil {
			reported = append(reported, name)
		}
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to wrap boom, got %v", err)
	}
	if ran != 2 {
		t.Fatalf("ran = %d, want 2", ran)
	}
	if !slices.Equal(reported, []string{"second"}) {
		t.Fatalf("reported = %v", reported)
	}
	if len(l.pending()) != 0 {
		t.Fatalf("pending after release = %v", l.pending())
	}
}
