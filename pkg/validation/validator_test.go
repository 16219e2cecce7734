package validation

import (
	"strings"
	"testing"
)

type sampleEvent struct {
	Kind  string `validate:"required,vertexkind"`
	Label string `validate:"required"`
}

type sampleRoot struct {
	Character string        `validate:"required,character"`
	Level     string        `validate:"omitempty,loglevel"`
	Events    []sampleEvent `validate:"dive"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		errorField string
	}{
		{
			name:  "valid",
			value: &sampleRoot{Character: "farmer", Level: "debug", Events: []sampleEvent{{Kind: "action", Label: "a"}}},
		},
		{
			name:       "missing character",
			value:      &sampleRoot{},
			errorField: "sampleRoot.Character: field is required",
		},
		{
			name:       "bad character",
			value:      &sampleRoot{Character: "9lives"},
			errorField: "not a valid character name",
		},
		{
			name:       "unknown kind",
			value:      &sampleRoot{Character: "hen", Events: []sampleEvent{{Kind: "dream", Label: "a"}}},
			errorField: `sampleRoot.Events[0].Kind: unknown event kind "dream"`,
		},
		{
			name:       "missing label",
			value:      &sampleRoot{Character: "hen", Events: []sampleEvent{{Kind: "percept"}}},
			errorField: "sampleRoot.Events[0].Label: field is required",
		},
		{
			name:       "bad level",
			value:      &sampleRoot{Character: "hen", Level: "loud"},
			errorField: `unknown log level "loud"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.value)
			if tt.errorField == "" {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.errorField)
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.errorField)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestValidateLabel(t *testing.T) {
	if err := ValidateLabel("!get(drink)"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateLabel("  "); err == nil {
		t.Error("Expected error for blank label")
	}
	if err := ValidateLabel(strings.Repeat("x", MaxLabelLength+1)); err == nil {
		t.Error("Expected error for oversized label")
	}
}
