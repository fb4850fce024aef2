package errors

import (
	"strings"
	"testing"
)

func TestValidateWidgetType(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		wantErr bool
	}{
		{"simple", "clock", false},
		{"hyphenated", "sys-gauge", false},
		{"digits", "notes2", false},
		{"empty", "", true},
		{"uppercase", "Clock", true},
		{"space", "my widget", true},
		{"slash", "a/b", true},
		{"control char", "a\x00b", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidgetType(tt.typ)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidgetType(%q) error = %v, wantErr %v", tt.typ, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWidget) {
				t.Errorf("expected INVALID_WIDGET code, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateWidgetID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"generated form", "clock-1735689600000-a1b2c3d4", false},
		{"imported arbitrary", "Widget 7 (left)", false},
		{"empty", "", true},
		{"forward slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control char", "a\nb", true},
		{"too long", strings.Repeat("x", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidgetID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidgetID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
