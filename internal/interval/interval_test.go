package interval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeSwapsEndpoints(t *testing.T) {
	iv := TimeInterval{StartSecs: 30, EndSecs: 10}.Normalize()
	if iv.StartSecs != 10 || iv.EndSecs != 30 {
		t.Fatalf("unexpected normalized interval: %+v", iv)
	}
	if New(5, 2) != (TimeInterval{StartSecs: 2, EndSecs: 5}) {
		t.Fatalf("New should normalize")
	}
}

func TestOverlaps(t *testing.T) {
	a := New(10, 20)
	if !a.Overlaps(New(15, 25)) {
		t.Fatalf("expected overlap")
	}
	if a.Overlaps(New(20, 30)) {
		t.Fatalf("touching half-open intervals must not overlap")
	}
	if !New(0, 100).Overlaps(a) {
		t.Fatalf("containing interval should overlap")
	}
}

func TestValidAndClamp(t *testing.T) {
	if !New(0, 10).Valid(10) {
		t.Fatalf("expected valid interval")
	}
	if New(5, 5).Valid(10) {
		t.Fatalf("zero length interval must be invalid")
	}
	got := TimeInterval{StartSecs: 120, EndSecs: -5}.Clamp(100)
	if got != (TimeInterval{StartSecs: 0, EndSecs: 100}) {
		t.Fatalf("unexpected clamp result: %+v", got)
	}
}

func TestClampAllDropsEmptyIntervals(t *testing.T) {
	in := []TimeInterval{New(500, 700), New(-20, 10), New(650, 900), New(100, 200)}
	got := ClampAll(in, 600)
	want := []TimeInterval{New(500, 600), New(0, 10), New(100, 200)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected clamp (-want +got):\n%s", diff)
	}
	if in[0].EndSecs != 700 {
		t.Fatalf("input slice was modified")
	}
	if got := ClampAll(nil, 600); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestSortByStartDoesNotMutateInput(t *testing.T) {
	in := []TimeInterval{New(50, 60), New(10, 20), New(30, 40)}
	sorted := SortByStart(in)

	want := []TimeInterval{New(10, 20), New(30, 40), New(50, 60)}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Fatalf("unexpected sort (-want +got):\n%s", diff)
	}
	if in[0].StartSecs != 50 {
		t.Fatalf("input slice was modified")
	}
}

func TestExcludedDurationCountsOverlapsTwice(t *testing.T) {
	set := []TimeInterval{New(0, 10), New(5, 15)}
	if got := ExcludedDuration(set); got != 20 {
		t.Fatalf("expected overlapping exclusions to double count, got %v", got)
	}
	if got := ExcludedDuration(nil); got != 0 {
		t.Fatalf("expected zero for empty set, got %v", got)
	}
}

func TestIncluded(t *testing.T) {
	got := Included([]TimeInterval{New(200, 250), New(100, 150), New(120, 180)}, 300)
	want := []TimeInterval{New(0, 100), New(180, 200), New(250, 300)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected included intervals (-want +got):\n%s", diff)
	}

	if got := Included([]TimeInterval{New(0, 300)}, 300); len(got) != 0 {
		t.Fatalf("expected nothing included, got %+v", got)
	}
	if got := Included(nil, 42); len(got) != 1 || got[0] != New(0, 42) {
		t.Fatalf("expected whole range, got %+v", got)
	}
}

func TestClip(t *testing.T) {
	included := []TimeInterval{New(0, 100), New(200, 600)}
	got := Clip(included, 50, 300)
	want := []TimeInterval{New(50, 100), New(200, 300)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected clip (-want +got):\n%s", diff)
	}
	if got := Clip(included, 100, 200); len(got) != 0 {
		t.Fatalf("expected empty clip inside a gap, got %+v", got)
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList("5-8, 00:01:00-00:01:30,20-25")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	want := []TimeInterval{New(5, 8), New(60, 90), New(20, 25)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected ranges (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"5", "8-5", "a-b", "00:00:01-00:99"} {
		if _, err := ParseList(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
