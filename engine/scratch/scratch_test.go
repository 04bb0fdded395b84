package scratch

import "testing"

func TestChain(t *testing.T) {
	b := New(8)
	b.S("score ").I(42).C(' ').F(1.5, 2).C(' ').Bool(true).C(' ').R('é').C(' ').U(7)
	if got := b.View(); got != "score 42 1.50 true é 7" {
		t.Fatalf("got %q", got)
	}
	if b.String() != b.View() {
		t.Fatal("copy and view differ")
	}
	b.Reset()
	if b.Len() != 0 || b.View() != "" {
		t.Fatal("reset")
	}
}

func TestPrintf(t *testing.T) {
	tests := []struct {
		format string
		args   []any
		want   string
	}{
		{"draws %d quads %d", []any{3, int32(120)}, "draws 3 quads 120"},
		{"%.1f ms", []any{float32(16.66)}, "16.7 ms"},
		{"%f", []any{0.5}, "0.500"},
		{"%s!", []any{"go"}, "go!"},
		{"100%%", nil, "100%"},
		{"%x", []any{1}, "%x"},
		{"missing %d", nil, "missing "},
	}
	b := New(0)
	for _, tt := range tests {
		b.Reset()
		if got := b.Printf(tt.format, tt.args...); got != tt.want {
			t.Errorf("Printf(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestMarkAndPad(t *testing.T) {
	b := New(16)
	b.S("fps ")
	m := b.Mark()
	b.I(60).Pad(m, 4, ' ').S("|")
	if got := b.ViewFrom(m); got != "60  |" {
		t.Fatalf("got %q", got)
	}
}

func TestGrowKeepsContents(t *testing.T) {
	b := New(2)
	b.S("ab")
	b.Grow(10)
	if b.Cap() < 12 || b.View() != "ab" {
		t.Fatalf("cap=%d view=%q", b.Cap(), b.View())
	}
}
