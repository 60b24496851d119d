package interval

import (
	"testing"
)

func mustRange(t *testing.T, start, end string) Interval {
	t.Helper()
	iv, err := ParseRange(start, end)
	if err != nil {
		t.Fatalf("ParseRange(%s, %s): %v", start, end, err)
	}
	return iv
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		clock   string
		want    int
		wantErr bool
	}{
		{name: "midnight", clock: "00:00", want: 0},
		{name: "morning", clock: "09:30", want: 570},
		{name: "no leading zero", clock: "9:30", want: 570},
		{name: "end of day", clock: "24:00", want: 1440},
		{name: "last minute", clock: "23:59", want: 1439},
		{name: "hour out of range", clock: "25:00", wantErr: true},
		{name: "minute out of range", clock: "12:60", wantErr: true},
		{name: "past end of day", clock: "24:01", wantErr: true},
		{name: "garbage", clock: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.clock)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) expected error, got %d", tt.clock, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q): %v", tt.clock, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.clock, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(570); got != "09:30" {
		t.Errorf("FormatClock(570) = %q, want 09:30", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Errorf("FormatClock(0) = %q, want 00:00", got)
	}
}

func TestNew_RejectsMidnightCrossing(t *testing.T) {
	if _, err := New(1200, 300); err == nil {
		t.Error("expected error for interval crossing midnight")
	}
	if _, err := New(600, 600); err == nil {
		t.Error("expected error for zero-length interval")
	}
	if _, err := New(-10, 60); err == nil {
		t.Error("expected error for negative start")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{
			name: "empty input",
			in:   nil,
			want: nil,
		},
		{
			name: "disjoint stay separate",
			in:   []Interval{{540, 720}, {780, 1020}},
			want: []Interval{{540, 720}, {780, 1020}},
		},
		{
			name: "overlapping shifts union",
			in:   []Interval{{540, 780}, {720, 1020}},
			want: []Interval{{540, 1020}},
		},
		{
			name: "touching intervals coalesce",
			in:   []Interval{{540, 720}, {720, 1020}},
			want: []Interval{{540, 1020}},
		},
		{
			name: "unsorted input",
			in:   []Interval{{780, 1020}, {540, 720}},
			want: []Interval{{540, 720}, {780, 1020}},
		},
		{
			name: "zero-length dropped",
			in:   []Interval{{540, 540}, {600, 660}},
			want: []Interval{{600, 660}},
		},
		{
			name: "contained interval absorbed",
			in:   []Interval{{540, 1020}, {600, 660}},
			want: []Interval{{540, 1020}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			assertIntervals(t, got, tt.want)
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name  string
		base  []Interval
		holes []Interval
		want  []Interval
	}{
		{
			name:  "no holes",
			base:  []Interval{{540, 1020}},
			holes: nil,
			want:  []Interval{{540, 1020}},
		},
		{
			name:  "hole splits interval",
			base:  []Interval{{540, 1020}},
			holes: []Interval{{720, 780}},
			want:  []Interval{{540, 720}, {780, 1020}},
		},
		{
			name:  "hole at start",
			base:  []Interval{{540, 1020}},
			holes: []Interval{{540, 600}},
			want:  []Interval{{600, 1020}},
		},
		{
			name:  "hole covering everything",
			base:  []Interval{{540, 1020}},
			holes: []Interval{{0, 1440}},
			want:  nil,
		},
		{
			name:  "hole outside base is ignored",
			base:  []Interval{{540, 1020}},
			holes: []Interval{{60, 120}},
			want:  []Interval{{540, 1020}},
		},
		{
			name:  "multiple holes in one base",
			base:  []Interval{{540, 1020}},
			holes: []Interval{{600, 660}, {720, 780}},
			want:  []Interval{{540, 600}, {660, 720}, {780, 1020}},
		},
		{
			name:  "overlapping holes merged before cutting",
			base:  []Interval{{540, 1020}},
			holes: []Interval{{600, 700}, {650, 780}},
			want:  []Interval{{540, 600}, {780, 1020}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtract(tt.base, tt.holes)
			assertIntervals(t, got, tt.want)
		})
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name string
		a    []Interval
		b    []Interval
		want []Interval
	}{
		{
			name: "partial overlap",
			a:    []Interval{{540, 720}},
			b:    []Interval{{600, 780}},
			want: []Interval{{600, 720}},
		},
		{
			name: "no overlap",
			a:    []Interval{{540, 600}},
			b:    []Interval{{660, 720}},
			want: nil,
		},
		{
			name: "touching is empty",
			a:    []Interval{{540, 600}},
			b:    []Interval{{600, 720}},
			want: nil,
		},
		{
			name: "multiple fragments",
			a:    []Interval{{540, 720}, {780, 1020}},
			b:    []Interval{{600, 840}},
			want: []Interval{{600, 720}, {780, 840}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersect(tt.a, tt.b)
			assertIntervals(t, got, tt.want)
		})
	}
}

func TestClip(t *testing.T) {
	day := mustRange(t, "09:00", "17:00")

	clipped := Interval{Start: 480, End: 600}.Clip(day)
	if clipped.Start != 540 || clipped.End != 600 {
		t.Errorf("Clip = %v, want [540, 600)", clipped)
	}

	outside := Interval{Start: 0, End: 300}.Clip(day)
	if !outside.IsZero() {
		t.Errorf("Clip outside bounds should be zero, got %v", outside)
	}
}

func TestSubtractResultIsSortedAndDisjoint(t *testing.T) {
	base := []Interval{{780, 1020}, {540, 720}}
	holes := []Interval{{600, 630}, {800, 830}, {900, 960}}

	got := Subtract(base, holes)
	for i := 1; i < len(got); i++ {
		if got[i].Start < got[i-1].End {
			t.Fatalf("result not disjoint/sorted: %v", got)
		}
	}
	for _, iv := range got {
		for _, h := range holes {
			if iv.Overlaps(h) {
				t.Fatalf("interval %v overlaps hole %v", iv, h)
			}
		}
	}
}

func assertIntervals(t *testing.T, got, want []Interval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
