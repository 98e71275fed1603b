package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/philipparndt/plate3mf/internal/threemf"
	"github.com/philipparndt/plate3mf/internal/ui"
)

// PlatePrinter renders a parsed project for the terminal
type PlatePrinter struct{}

func NewPlatePrinter() *PlatePrinter {
	return &PlatePrinter{}
}

// metadata keys shown in the header block, in display order
var headerKeys = []string{"Title", "Designer", "Application", "CreationDate"}

func (p *PlatePrinter) PrintProject(file string, project *threemf.Project) {
	ui.PrintHeader("Inspecting: " + file)

	for _, key := range headerKeys {
		if value, ok := project.Metadata[key]; ok && value != "" {
			ui.PrintKeyValue(key, value)
		}
	}
	ui.PrintKeyValue("Plates", strconv.Itoa(len(project.Plates)))
	ui.PrintKeyValue("Settings", fmt.Sprintf("%d entries", len(project.Settings)))
	ui.PrintSeparator()

	ui.PrintTableHeader("Plate", "Items", "Triangles", "Dimensions", "Print time")
	for i := range project.Plates {
		p.printPlateRow(&project.Plates[i])
	}

	for i := range project.Plates {
		p.printFilaments(&project.Plates[i])
	}
}

func (p *PlatePrinter) printPlateRow(plate *threemf.Plate) {
	ui.PrintTableRow(
		strconv.Itoa(plate.Index),
		strconv.Itoa(plate.InstanceCount()),
		strconv.Itoa(plate.TriangleCount()),
		formatDimensions(plate.Dimensions),
		formatPrediction(plate.SliceInfo),
	)
}

func (p *PlatePrinter) printFilaments(plate *threemf.Plate) {
	if len(plate.Filaments) == 0 {
		return
	}

	ui.PrintStep(fmt.Sprintf("Plate %d filaments", plate.Index))
	for _, filament := range plate.Filaments {
		ui.PrintItem(formatFilament(filament))
	}
}

// formatDimensions renders the bounding box as "W × D × H mm"
func formatDimensions(dims map[string]float64) string {
	if len(dims) == 0 {
		return "-"
	}
	return fmt.Sprintf("%g × %g × %g mm", dims["x"], dims["y"], dims["z"])
}

// formatPrediction renders the slicer's predicted print time, which is
// stored in seconds
func formatPrediction(info map[string]string) string {
	raw, ok := info["prediction"]
	if !ok {
		return "-"
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	return (time.Duration(seconds) * time.Second).String()
}

func formatFilament(filament map[string]string) string {
	parts := make([]string, 0, len(filament))
	for _, key := range []string{"id", "type", "color", "used_m", "used_g"} {
		if value, ok := filament[key]; ok {
			parts = append(parts, key+"="+value)
		}
	}

	// keep any extra attributes the slicer wrote
	known := map[string]bool{"id": true, "type": true, "color": true, "used_m": true, "used_g": true}
	extras := make([]string, 0)
	for key, value := range filament {
		if !known[key] {
			extras = append(extras, key+"="+value)
		}
	}
	sort.Strings(extras)
	parts = append(parts, extras...)

	return strings.Join(parts, " ")
}
