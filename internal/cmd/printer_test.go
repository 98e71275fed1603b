package cmd

import "testing"

func TestFormatDimensions(t *testing.T) {
	dims := map[string]float64{"x": 25.5, "y": 10, "z": 3.2}
	if got := formatDimensions(dims); got != "25.5 × 10 × 3.2 mm" {
		t.Errorf("formatDimensions() = %q", got)
	}

	if got := formatDimensions(nil); got != "-" {
		t.Errorf("formatDimensions(nil) = %q, want -", got)
	}
}

func TestFormatPrediction(t *testing.T) {
	tests := []struct {
		name string
		info map[string]string
		want string
	}{
		{"seconds", map[string]string{"prediction": "3720"}, "1h2m0s"},
		{"missing", map[string]string{}, "-"},
		{"non numeric", map[string]string{"prediction": "soon"}, "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPrediction(tt.info); got != tt.want {
				t.Errorf("formatPrediction() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatFilament(t *testing.T) {
	filament := map[string]string{
		"id":    "1",
		"type":  "PLA",
		"color": "#FF0000",
		"brand": "Generic",
	}

	want := "id=1 type=PLA color=#FF0000 brand=Generic"
	if got := formatFilament(filament); got != want {
		t.Errorf("formatFilament() = %q, want %q", got, want)
	}
}

func TestExportOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		cmd    ExportCmd
		index  int
		multi  bool
		want   string
	}{
		{"default name", ExportCmd{}, 2, false, "plate_2.stl"},
		{"explicit file", ExportCmd{Output: "out.stl"}, 1, false, "out.stl"},
		{"directory for all plates", ExportCmd{Output: "exports"}, 3, true, "exports/plate_3.stl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.outputPath(tt.index, tt.multi); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
