package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down", 10.124, 10.12},
		{"Round up", 10.126, 10.13},
		{"Round half up", 10.125, 10.13},
		{"Negative value", -10.126, -10.13},
		{"Already rounded", 99.99, 99.99},
		{"Zero", 0.0, 0.0},
		{"Large payment", 55188.4449, 55188.44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exact zero", 0.0, true},
		{"Sub-cent positive", 0.005, true},
		{"Sub-cent negative", -0.005, true},
		{"Two cents", 0.02, false},
		{"Clearly nonzero", 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClampNonNegative(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Negative clamps to zero", -1234.56, 0},
		{"Zero stays zero", 0, 0},
		{"Positive unchanged", 42000.5, 42000.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ClampNonNegative(tt.input); result != tt.expected {
				t.Errorf("ClampNonNegative(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if Min(1.5, 2.5) != 1.5 {
		t.Error("Min(1.5, 2.5) should be 1.5")
	}
	if Min(2.5, 1.5) != 1.5 {
		t.Error("Min(2.5, 1.5) should be 1.5")
	}
	if Max(1.5, 2.5) != 2.5 {
		t.Error("Max(1.5, 2.5) should be 2.5")
	}
	if Max(2.5, 1.5) != 2.5 {
		t.Error("Max(2.5, 1.5) should be 2.5")
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"Residual percentage", 45000, 57, 25650},
		{"Zero percentage", 45000, 0, 0},
		{"Full percentage", 1234.5, 100, 1234.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.004, 100.0, 0.01) {
		t.Error("values within a cent should be within tolerance")
	}
	if WithinTolerance(100.02, 100.0, 0.01) {
		t.Error("values two cents apart should not be within a one-cent tolerance")
	}
}
