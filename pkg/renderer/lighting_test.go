package renderer

import (
	"encoding/json"
	"testing"
)

func TestLightingMode_Cycle(t *testing.T) {
	mode := ObservedArea
	expected := []LightingMode{Radiance, BRDF, Combined, ObservedArea}
	for _, want := range expected {
		mode = mode.Cycle()
		if mode != want {
			t.Fatalf("Expected %s, got %s", want, mode)
		}
	}
}

func TestParseLightingMode(t *testing.T) {
	tests := []struct {
		input    string
		expected LightingMode
		wantErr  bool
	}{
		{"observed-area", ObservedArea, false},
		{"ObservedArea", ObservedArea, false},
		{"observed_area", ObservedArea, false},
		{"RADIANCE", Radiance, false},
		{"brdf", BRDF, false},
		{"combined", Combined, false},
		{"sunlight", Combined, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseLightingMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%t, got %v", tt.wantErr, err)
			}
			if mode != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, mode)
			}
		})
	}
}

func TestLightingMode_JSON(t *testing.T) {
	data, err := json.Marshal(Settings{LightingMode: Radiance})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if settings.LightingMode != Radiance {
		t.Errorf("Expected radiance, got %s", settings.LightingMode)
	}

	if err := json.Unmarshal([]byte(`{"lightingMode":"nope"}`), &settings); err == nil {
		t.Error("Expected unknown mode to be rejected")
	}
}

func TestLightingMode_StringUnknown(t *testing.T) {
	if got := LightingMode(7).String(); got != "LightingMode(7)" {
		t.Errorf("Unexpected name %q", got)
	}
}
