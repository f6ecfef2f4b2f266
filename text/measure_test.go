package text

import (
	"slices"
	"testing"
)

func TestMetrics_Basics(t *testing.T) {
	m := NewMetrics(7)
	if got := m.LineHeight(); got != 20 {
		t.Errorf("LineHeight() = %d, want 20", got)
	}
	if got := m.StringWidth("ab"); got != 14 {
		t.Errorf("StringWidth(ab) = %d, want 14", got)
	}
	if got := m.StringWidth("a漢"); got != 21 {
		t.Errorf("StringWidth(a漢) = %d, want 21", got)
	}
	if got := NewMetrics(-3).LineHeight(); got != 13 {
		t.Errorf("negative gap LineHeight() = %d, want 13", got)
	}
}

func TestMetrics_Wrap(t *testing.T) {
	m := NewMetrics(0)
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"empty", "", 35, []string{""}},
		{"fits", "abc", 35, []string{"abc"}},
		{"break at space", "hello world", 35, []string{"hello", "world"}},
		{"break long word", "abcdefghij", 35, []string{"abcde", "fghij"}},
		{"narrow box still progresses", "abc", 3, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Wrap(tt.in, tt.width); !slices.Equal(got, tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestMetrics_Offsets(t *testing.T) {
	m := NewMetrics(0)
	got := m.Offsets([]rune("hello world again"), 35)
	want := []int{0, 6, 12}
	if !slices.Equal(got, want) {
		t.Errorf("Offsets() = %v, want %v", got, want)
	}
}

func TestMetrics_Height(t *testing.T) {
	m := NewMetrics(7)
	if got := m.Height("hello world", 35); got != 40 {
		t.Errorf("Height() = %d, want 40", got)
	}
}
