package debug

import (
	"testing"
)

func TestNewTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw == nil {
		t.Fatal("NewTreeWriter() returned nil")
	}
	if tw.String() != "" {
		t.Error("Expected empty string from new TreeWriter")
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{name: "no depth", depth: 0, format: "root", want: "root\n"},
		{name: "nested", depth: 2, format: "box[%d]", args: []any{3}, want: "    box[3]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Positioned(t *testing.T) {
	tw := NewTreeWriter()
	tw.Positioned(1, 12, "text %q", "abc")
	want := "  @12    text \"abc\"\n"
	if got := tw.String(); got != want {
		t.Errorf("Positioned() = %q, want %q", got, want)
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tw := NewTreeWriter()
	tw.TextBlock(0, "markup", "<div>\n</div>")
	tw.TextBlock(1, "empty", "")
	want := "markup: \"<div>\\n</div>\"\n  empty: \n"
	if got := tw.String(); got != want {
		t.Errorf("TextBlock() = %q, want %q", got, want)
	}
}
