package core

import "testing"

func TestBounds_Center(t *testing.T) {
	b := Bounds{X: 100, Y: 200, Width: 200, Height: 50}
	x, y := b.Center()
	if x != 200 || y != 225 {
		t.Errorf("Center()=(%v,%v), want (200,225)", x, y)
	}
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{X: 10, Y: 10, Width: 100, Height: 20}

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 50, 15, true},
		{"top-left corner", 10, 10, true},
		{"right edge exclusive", 110, 15, false},
		{"outside", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.x, tt.y); got != tt.expected {
				t.Errorf("Contains(%v,%v)=%v, want %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestScrollAxis_DragOffset(t *testing.T) {
	tests := []struct {
		name      string
		axis      ScrollAxis
		increment float64
		expected  Offset
	}{
		{"down axis inverts vertical sign", AxisDown, 200, Offset{DY: -200}},
		{"down axis backward", AxisDown, -200, Offset{DY: 200}},
		{"up axis", AxisUp, 200, Offset{DY: 200}},
		{"left axis", AxisLeft, 200, Offset{DX: -200}},
		{"right axis", AxisRight, 200, Offset{DX: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.axis.DragOffset(tt.increment); got != tt.expected {
				t.Errorf("DragOffset(%v)=%+v, want %+v", tt.increment, got, tt.expected)
			}
		})
	}
}

func TestStepStatus_String(t *testing.T) {
	tests := []struct {
		status   StepStatus
		expected string
	}{
		{StatusPending, "pending"},
		{StatusRunning, "running"},
		{StatusPassed, "passed"},
		{StatusFailed, "failed"},
		{StatusCancelled, "cancelled"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("String()=%q, want %q", got, tt.expected)
		}
	}
}

func TestStepStatus_IsTerminal(t *testing.T) {
	if StatusRunning.IsTerminal() {
		t.Error("running is not terminal")
	}
	for _, s := range []StepStatus{StatusPassed, StatusFailed, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%v should be terminal", s)
		}
	}
}
