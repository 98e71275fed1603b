package threemf

import "testing"

func TestDecodeSettings_JSON(t *testing.T) {
	text := `{
		"layer_height": "0.2",
		"nozzle_diameter": 0.4,
		"spiral_mode": false,
		"filament_type": ["PLA", "PETG"],
		"nested": {"a": "b"},
		"empty_list": []
	}`

	settings := DecodeSettings(text)

	tests := []struct {
		key  string
		want string
	}{
		{"layer_height", "0.2"},
		{"nozzle_diameter", "0.4"},
		{"spiral_mode", "false"},
		{"filament_type", "PLA"},
		{"nested", `{"a":"b"}`},
	}

	for _, tt := range tests {
		if got := settings[tt.key]; got != tt.want {
			t.Errorf("settings[%q] = %q, want %q", tt.key, got, tt.want)
		}
	}

	if _, ok := settings["empty_list"]; ok {
		t.Error("empty list value should be dropped")
	}
}

func TestDecodeSettings_LegacyLines(t *testing.T) {
	text := `; generated by Slic3r
; layer_height = 0.3
fill_density = 15%
# a comment line
[print_settings]
bare line without separator
; filament_colour = #29B2B2`

	settings := DecodeSettings(text)

	tests := []struct {
		key  string
		want string
	}{
		{"layer_height", "0.3"},
		{"fill_density", "15%"},
		{"filament_colour", "#29B2B2"},
	}

	for _, tt := range tests {
		if got := settings[tt.key]; got != tt.want {
			t.Errorf("settings[%q] = %q, want %q", tt.key, got, tt.want)
		}
	}

	if _, ok := settings["[print_settings]"]; ok {
		t.Error("section line must be ignored")
	}
}

func TestDecodeSettings_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n"} {
		settings := DecodeSettings(text)
		if settings == nil {
			t.Fatal("DecodeSettings() returned nil map")
		}
		if len(settings) != 0 {
			t.Errorf("DecodeSettings(%q) = %v, want empty map", text, settings)
		}
	}
}

func TestDecodeSettings_MalformedJSONFallsBack(t *testing.T) {
	// Broken JSON that still contains parseable key = value lines
	text := `{ not json
key = value`

	settings := DecodeSettings(text)

	if settings["key"] != "value" {
		t.Errorf("settings[key] = %q, want %q", settings["key"], "value")
	}
}
