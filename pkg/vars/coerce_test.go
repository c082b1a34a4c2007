package vars

import (
	"testing"
	"time"
)

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected bool
	}{
		{"native true", true, true},
		{"string true", "true", true},
		{"int one", 1, true},
		{"string one", "1", true},
		{"yes", "yes", true},
		{"YES uppercase", "YES", true},
		{"native false", false, false},
		{"string false", "false", false},
		{"zero", 0, false},
		{"no", "no", false},
		{"empty string", "", false},
		{"garbage", "maybe", false},
		{"other int", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceBool(tt.value); got != tt.expected {
				t.Errorf("CoerceBool(%v)=%v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected int
		wantErr  bool
	}{
		{"native int", 7, 7, false},
		{"whole float", float64(7), 7, false},
		{"decimal string", "7", 7, false},
		{"padded string", " 7 ", 7, false},
		{"fractional float", 7.5, 0, true},
		{"word", "seven", 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceInt(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CoerceInt(%v) error=%v, wantErr=%v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("CoerceInt(%v)=%d, want %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected float64
		wantErr  bool
	}{
		{"native float", 2.5, 2.5, false},
		{"int", 3, 3, false},
		{"string", "2.5", 2.5, false},
		{"word", "pi", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceFloat(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CoerceFloat(%v) error=%v, wantErr=%v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("CoerceFloat(%v)=%v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestCoerceSeconds(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected time.Duration
		wantErr  bool
	}{
		{"int seconds", 5, 5 * time.Second, false},
		{"string seconds", "5", 5 * time.Second, false},
		{"zero", 0, 0, false},
		{"negative", -1, 0, true},
		{"word", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CoerceSeconds(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CoerceSeconds(%v) error=%v, wantErr=%v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("CoerceSeconds(%v)=%v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"string", "x", "x"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"float", 2.5, "2.5"},
		{"whole float", float64(4), "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.value); got != tt.expected {
				t.Errorf("Stringify(%v)=%q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}
