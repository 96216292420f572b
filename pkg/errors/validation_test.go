package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Main", false},
		{"qualified", "org.example.Main#run()", false},
		{"path", "src/main/Main.java", false},
		{"unicode", "Größe", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 1025), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateMetricName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"dotted", "Metric.Lines.LOC", false},
		{"short", "loc", false},

		{"empty", "", true},
		{"padded", " loc", true},
		{"inner space", "lines of code", true},
		{"tab", "loc\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetricName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMetricName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLength(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 1.5, false},
		{"negative", -0.1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLength("padding", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLength(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidArgument) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidArgument)
			}
		})
	}
}

func TestValidatePositive(t *testing.T) {
	if err := ValidatePositive("street width", 0); err == nil {
		t.Error("ValidatePositive(0) = nil, want error")
	}
	if err := ValidatePositive("street width", 2); err != nil {
		t.Errorf("ValidatePositive(2) = %v, want nil", err)
	}
}
