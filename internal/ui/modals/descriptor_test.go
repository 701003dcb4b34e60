package modals

import "testing"

func TestWidthPolicy_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		policy   WidthPolicy
		content  int
		screen   int
		expected int
	}{
		{"auto fits content", WidthAuto(), 34, 100, 34},
		{"auto respects minimum frame", WidthAuto(), 8, 100, ModalMinWidth},
		{"auto clamps to screen", WidthAuto(), 140, 100, 100},
		{"min widens", WidthMin(50), 30, 100, 50},
		{"min keeps wider content", WidthMin(50), 70, 100, 70},
		{"stretch", WidthStretch(), 10, 100, 96},
		{"tiny screen", WidthAuto(), 8, 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Resolve(tt.content, tt.screen); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestPlacement_Origin(t *testing.T) {
	tests := []struct {
		name  string
		top   *int
		wantX int
		wantY int
	}{
		{"centered", nil, 30, 7},
		{"from top", Top(2), 30, 2},
		{"flush bottom", Top(-1), 30, 14},
		{"above bottom", Top(-3), 30, 12},
		{"offset past bottom is clamped", Top(50), 30, 14},
		{"offset past top is clamped", Top(-50), 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Placement{Top: tt.top}
			x, y := p.Origin(40, 10, 100, 24)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("expected (%d,%d), got (%d,%d)", tt.wantX, tt.wantY, x, y)
			}
		})
	}
}

func TestDescriptorBuilders(t *testing.T) {
	yn := YesNo("t", "b")
	if len(yn.Buttons) != 2 || yn.EscapeResult == nil || yn.EscapeResult.Value != false {
		t.Errorf("unexpected yes/no descriptor: %+v", yn)
	}

	msg := Message("t", "b")
	if len(msg.Buttons) != 1 || msg.EscapeResult == nil || msg.EscapeResult.Value != nil {
		t.Errorf("unexpected message descriptor: %+v", msg)
	}

	ch := Choice("t", "b", "x", "y")
	if len(ch.Buttons) != 2 || ch.Buttons[1].Value != "y" || !ch.EscapeResult.Cancelled {
		t.Errorf("unexpected choice descriptor: %+v", ch)
	}
}
