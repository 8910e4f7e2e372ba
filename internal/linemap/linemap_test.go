package linemap

import (
	"reflect"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		blocks int
		want   []int
	}{
		{
			name:   "one block per line",
			lines:  []string{"# Title", "para", "- item"},
			blocks: 3,
			want:   []int{0, 1, 2},
		},
		{
			name:   "blank lines skipped",
			lines:  []string{"# Title", "", "", "para", "   ", "> quote"},
			blocks: 3,
			want:   []int{0, 3, 5},
		},
		{
			name:   "fewer blocks than lines",
			lines:  []string{"- a", "- b", "- c", "", "after"},
			blocks: 2,
			want:   []int{0, 1},
		},
		{
			name:   "excess blocks unmapped",
			lines:  []string{"only"},
			blocks: 3,
			want:   []int{0, Unmapped, Unmapped},
		},
		{
			name:   "no blocks",
			lines:  []string{"text"},
			blocks: 0,
			want:   []int{},
		},
		{
			name:   "all blank",
			lines:  []string{"", " ", "\t"},
			blocks: 1,
			want:   []int{Unmapped},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.lines, tt.blocks).Lines()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Build() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildMonotonic(t *testing.T) {
	text := "# a\n\npara one\ncontinued\n\n- x\n- y\n\n```\ncode\n```\n\n---\n"
	m := BuildFromText(text, 6)

	prev := -1
	for i := 0; i < m.Len(); i++ {
		l, ok := m.Line(i)
		if !ok {
			continue
		}
		if l < prev {
			t.Fatalf("block %d line %d precedes previous line %d", i, l, prev)
		}
		prev = l
	}
	if m.Mapped() != 6 {
		t.Errorf("Mapped() = %d, want 6", m.Mapped())
	}
}

func TestLineOutOfRange(t *testing.T) {
	m := Build([]string{"a"}, 1)
	if _, ok := m.Line(-1); ok {
		t.Error("Line(-1) should not be mapped")
	}
	if _, ok := m.Line(1); ok {
		t.Error("Line(1) should not be mapped")
	}
	if l, ok := m.Line(0); !ok || l != 0 {
		t.Errorf("Line(0) = %d, %v, want 0, true", l, ok)
	}
}

func TestNearest(t *testing.T) {
	// blocks at lines 0, 4, 8
	m := Build([]string{"a", "", "", "", "b", "", "", "", "c"}, 3)

	tests := []struct {
		caret int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 0}, // equidistant from 0 and 4: lowest index wins
		{3, 1},
		{6, 1}, // equidistant from 4 and 8
		{7, 2},
		{100, 2},
		{-5, 0},
	}

	for _, tt := range tests {
		got, ok := m.Nearest(tt.caret)
		if !ok {
			t.Fatalf("Nearest(%d) reported no mapped block", tt.caret)
		}
		if got != tt.want {
			t.Errorf("Nearest(%d) = %d, want %d", tt.caret, got, tt.want)
		}
	}
}

func TestNearestSkipsUnmapped(t *testing.T) {
	m := Build([]string{"", "x"}, 3)
	got, ok := m.Nearest(50)
	if !ok || got != 0 {
		t.Errorf("Nearest(50) = %d, %v, want 0, true", got, ok)
	}
}

func TestNearestEmpty(t *testing.T) {
	var m LineMap
	if _, ok := m.Nearest(3); ok {
		t.Error("Nearest on empty map should report false")
	}
	m = Build([]string{"", ""}, 2)
	if _, ok := m.Nearest(0); ok {
		t.Error("Nearest with only unmapped blocks should report false")
	}
}
