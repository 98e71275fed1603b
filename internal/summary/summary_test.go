package summary

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/philipparndt/plate3mf/internal/threemf"
)

func TestSettings_PreferredKeysFirst(t *testing.T) {
	settings := map[string]string{
		"layer_height":  "0.2",
		"printer_model": "X1C",
		"wall_speed":    "200",
	}

	out := Settings(settings, 2)

	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out["layer_height"] != "0.2" || out["printer_model"] != "X1C" {
		t.Errorf("preferred keys missing: %v", out)
	}
	if _, ok := out["wall_speed"]; ok {
		t.Error("fallback key took a preferred key's slot")
	}
}

func TestSettings_RelevanceFallback(t *testing.T) {
	settings := map[string]string{
		"nozzle_temperature": "220",
		"project_name":       "irrelevant",
	}

	out := Settings(settings, 10)

	if out["nozzle_temperature"] != "220" {
		t.Errorf("relevant fallback key missing: %v", out)
	}
	if _, ok := out["project_name"]; ok {
		t.Error("irrelevant key included")
	}
}

func TestSettings_NoisyKeysBlocked(t *testing.T) {
	settings := map[string]string{
		"machine_start_gcode":    "M104 S220",
		"machine_end_gcode":      "M104 S0",
		"filament_change_gcode":  "T{next}",
		"custom_filament_colour": "#FF0000",
		"thumbnail_size":         "200x200",
		"layer_height":           "0.2",
	}

	out := Settings(settings, 20)

	for key := range out {
		if key != "layer_height" {
			t.Errorf("noisy key %q leaked into summary", key)
		}
	}
}

func TestSettings_LongValuesDropped(t *testing.T) {
	settings := map[string]string{
		"layer_height":  "0.2",
		"filament_type": strings.Repeat("x", 121),
	}

	out := Settings(settings, 10)

	for key, value := range out {
		if len(value) > 120 {
			t.Errorf("value of %q exceeds 120 characters", key)
		}
	}
	if _, ok := out["filament_type"]; ok {
		t.Error("over-long value must be dropped, not truncated")
	}
}

func TestSettings_MaxItems(t *testing.T) {
	settings := map[string]string{
		"filament_a": "1",
		"filament_b": "2",
		"filament_c": "3",
		"filament_d": "4",
	}

	out := Settings(settings, 2)

	if len(out) != 2 {
		t.Errorf("len(out) = %d, want capped at 2", len(out))
	}
}

func TestModelMetadata_Whitelist(t *testing.T) {
	metadata := map[string]string{
		"Title":          "Benchy",
		"Designer":       "author",
		"Application":    "BambuStudio-01.08.00.57",
		"SecretInternal": "should not appear",
		"Description":    strings.Repeat("d", 121),
	}

	out := ModelMetadata(metadata, 8)

	if out["Title"] != "Benchy" || out["Designer"] != "author" {
		t.Errorf("whitelisted keys missing: %v", out)
	}
	if _, ok := out["SecretInternal"]; ok {
		t.Error("non-whitelisted key included")
	}
	if _, ok := out["Description"]; ok {
		t.Error("over-long metadata value included")
	}
}

func TestModelMetadata_MaxItems(t *testing.T) {
	metadata := map[string]string{
		"Title":       "a",
		"Designer":    "b",
		"Description": "c",
		"Application": "d",
	}

	if out := ModelMetadata(metadata, 2); len(out) != 2 {
		t.Errorf("len(out) = %d, want 2", len(out))
	}
}

func TestProject_JSONSafe(t *testing.T) {
	project := &threemf.Project{
		Metadata: map[string]string{"Title": "Plate Test"},
		Settings: map[string]string{"layer_height": "0.2"},
		Plates: []threemf.Plate{
			{
				Index:      1,
				Metadata:   map[string]string{"plater_name": "left"},
				SliceInfo:  map[string]string{},
				Filaments:  []map[string]string{},
				ObjectIDs:  []int{1},
				Dimensions: map[string]float64{"x": 10, "y": 10, "z": 0},
			},
		},
	}

	out := Project(project)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("summary is not JSON-serializable: %v", err)
	}
	if strings.Contains(string(data), "Triangles") {
		t.Error("summary leaked raw geometry")
	}

	plates, ok := out["plates"].([]map[string]any)
	if !ok || len(plates) != 1 {
		t.Fatalf("plates = %v", out["plates"])
	}
	if plates[0]["index"] != 1 {
		t.Errorf("plate index = %v, want 1", plates[0]["index"])
	}
	if plates[0]["triangle_count"] != 0 {
		t.Errorf("triangle_count = %v, want 0", plates[0]["triangle_count"])
	}
}

func TestProject_EmptyDimensionsForEmptyPlate(t *testing.T) {
	project := &threemf.Project{
		Metadata: map[string]string{},
		Settings: map[string]string{},
		Plates: []threemf.Plate{
			{
				Index:      1,
				Metadata:   map[string]string{},
				SliceInfo:  map[string]string{},
				Filaments:  []map[string]string{},
				Dimensions: map[string]float64{},
			},
		},
	}

	out := Project(project)

	plates := out["plates"].([]map[string]any)
	dims := plates[0]["dimensions_mm"].(map[string]float64)
	if len(dims) != 0 {
		t.Errorf("dimensions_mm = %v, want empty map", dims)
	}
}
