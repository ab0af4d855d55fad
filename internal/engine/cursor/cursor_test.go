package cursor

import "testing"

func TestNewPositionClampsNegative(t *testing.T) {
	p := NewPosition(-3, -1)

	if p.Line != 0 || p.Col != 0 {
		t.Errorf("expected (0:0), got %s", p)
	}
}

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"equal", Position{1, 2}, Position{1, 2}, 0},
		{"earlier line", Position{0, 9}, Position{1, 0}, -1},
		{"later line", Position{2, 0}, Position{1, 9}, 1},
		{"same line earlier col", Position{1, 1}, Position{1, 2}, -1},
		{"same line later col", Position{1, 3}, Position{1, 2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPositionBeforeAfter(t *testing.T) {
	a := Position{Line: 0, Col: 5}
	b := Position{Line: 1, Col: 0}

	if !a.Before(b) {
		t.Error("expected a before b")
	}
	if !b.After(a) {
		t.Error("expected b after a")
	}
	if a.After(b) || b.Before(a) {
		t.Error("ordering should be antisymmetric")
	}
}

func TestSelectionStartEnd(t *testing.T) {
	forward := NewSelection(Position{0, 1}, Position{2, 3})
	backward := NewSelection(Position{2, 3}, Position{0, 1})

	if !forward.SameRange(backward) {
		t.Error("forward and backward selections should cover the same range")
	}
	if forward.Start() != (Position{0, 1}) {
		t.Errorf("expected start (0:1), got %s", forward.Start())
	}
	if backward.Start() != (Position{0, 1}) {
		t.Errorf("expected start (0:1), got %s", backward.Start())
	}
	if backward.End() != (Position{2, 3}) {
		t.Errorf("expected end (2:3), got %s", backward.End())
	}
}

func TestSelectionEmpty(t *testing.T) {
	s := Position{1, 1}.ToSelection()

	if !s.IsEmpty() {
		t.Error("cursor selection should be empty")
	}
	if s.Contains(Position{1, 1}) {
		t.Error("empty selection should contain nothing")
	}
}

func TestSelectionExtendAndCollapse(t *testing.T) {
	s := Position{0, 0}.ToSelection().Extend(Position{0, 4})

	if s.IsEmpty() {
		t.Error("extended selection should not be empty")
	}
	if s.Anchor != (Position{0, 0}) {
		t.Errorf("extend should not move the anchor, got %s", s.Anchor)
	}

	c := s.Collapse()
	if !c.IsEmpty() || c.Head != (Position{0, 4}) {
		t.Errorf("collapse should leave a cursor at the head, got %s", c)
	}
}

func TestSelectionNormalize(t *testing.T) {
	s := NewSelection(Position{3, 0}, Position{1, 2})

	n := s.Normalize()
	if !n.IsForward() {
		t.Error("normalized selection should be forward")
	}
	if !n.SameRange(s) {
		t.Error("normalize should preserve the range")
	}
}

func TestSelectionContains(t *testing.T) {
	s := NewSelection(Position{1, 2}, Position{1, 5})

	if !s.Contains(Position{1, 2}) {
		t.Error("selection should contain its start")
	}
	if !s.Contains(Position{1, 4}) {
		t.Error("selection should contain interior positions")
	}
	if s.Contains(Position{1, 5}) {
		t.Error("selection end is exclusive")
	}
	if s.Contains(Position{0, 3}) {
		t.Error("selection should not contain earlier lines")
	}
}
