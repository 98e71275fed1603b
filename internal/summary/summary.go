// Package summary projects a parsed project into a JSON-safe map that
// carries no raw geometry: whitelisted model metadata, relevant slicer
// settings and per-plate statistics.
package summary

import (
	"regexp"
	"sort"

	"github.com/philipparndt/plate3mf/internal/threemf"
)

// maxValueLen caps metadata and settings values; anything longer is noise
// (g-code fragments, embedded blobs) and is dropped entirely
const maxValueLen = 120

// DefaultMaxSettings bounds the number of settings keys in a summary
const DefaultMaxSettings = 40

// DefaultMaxMetadata bounds the number of model metadata keys in a summary
const DefaultMaxMetadata = 8

// metadataKeys is the whitelist of model-level metadata worth surfacing
var metadataKeys = []string{
	"Title",
	"Designer",
	"Description",
	"Application",
	"CreationDate",
	"ModificationDate",
	"Copyright",
	"LicenseTerms",
}

// preferredSettingKeys are surfaced first, in this order, when present
var preferredSettingKeys = []string{
	"printer_model",
	"printer_settings_id",
	"nozzle_diameter",
	"layer_height",
	"filament_type",
	"filament_colour",
	"filament_settings_id",
	"sparse_infill_density",
	"sparse_infill_pattern",
	"fill_density",
	"enable_support",
	"support_type",
	"wall_loops",
	"brim_type",
}

var (
	// relevantKeyPattern is the fallback filter for settings not on the
	// preferred list
	relevantKeyPattern = regexp.MustCompile(
		`(?i)(filament|layer|infill|support|printer|nozzle|wall|speed|temperature|bed_type)`)

	// noisyKeyPattern excludes keys whose values are scripts or blobs even
	// when the relevance pattern matches them
	noisyKeyPattern = regexp.MustCompile(
		`(?i)(gcode|thumbnail|^custom_|_start_|_end_|change_filament)`)
)

// Project builds the JSON-safe summary of a parsed project. It never fails;
// missing facets summarize to empty structures.
func Project(project *threemf.Project) map[string]any {
	return map[string]any{
		"model_metadata":   ModelMetadata(project.Metadata, DefaultMaxMetadata),
		"project_settings": Settings(project.Settings, DefaultMaxSettings),
		"plates":           Plates(project),
	}
}

// Plates summarizes every plate of the project in index order.
func Plates(project *threemf.Project) []map[string]any {
	plates := make([]map[string]any, 0, len(project.Plates))
	for i := range project.Plates {
		plates = append(plates, platesSummary(&project.Plates[i]))
	}
	return plates
}

func platesSummary(plate *threemf.Plate) map[string]any {
	return map[string]any{
		"index":          plate.Index,
		"metadata":       plate.Metadata,
		"slice_info":     plate.SliceInfo,
		"filaments":      plate.Filaments,
		"triangle_count": plate.TriangleCount(),
		"instance_count": plate.InstanceCount(),
		"object_ids":     plate.ObjectIDs,
		"dimensions_mm":  plate.Dimensions,
	}
}

// ModelMetadata filters model-level metadata down to the whitelisted keys,
// dropping over-long values and capping the result at maxItems entries
func ModelMetadata(metadata map[string]string, maxItems int) map[string]string {
	out := make(map[string]string)
	for _, key := range metadataKeys {
		if len(out) >= maxItems {
			break
		}
		value, ok := metadata[key]
		if !ok || value == "" || len(value) > maxValueLen {
			continue
		}
		out[key] = value
	}
	return out
}

// Settings filters project settings to at most maxItems relevant entries:
// preferred keys first, then any remaining key matching the relevance
// pattern. Keys matching the noisy-key blocklist and values longer than 120
// characters never appear.
func Settings(settings map[string]string, maxItems int) map[string]string {
	out := make(map[string]string)

	for _, key := range preferredSettingKeys {
		if len(out) >= maxItems {
			return out
		}
		if value, ok := usableSetting(settings, key); ok {
			out[key] = value
		}
	}

	// Deterministic fallback order
	rest := make([]string, 0, len(settings))
	for key := range settings {
		if _, taken := out[key]; taken {
			continue
		}
		if relevantKeyPattern.MatchString(key) {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	for _, key := range rest {
		if len(out) >= maxItems {
			break
		}
		if value, ok := usableSetting(settings, key); ok {
			out[key] = value
		}
	}

	return out
}

func usableSetting(settings map[string]string, key string) (string, bool) {
	if noisyKeyPattern.MatchString(key) {
		return "", false
	}
	value, ok := settings[key]
	if !ok || value == "" || len(value) > maxValueLen {
		return "", false
	}
	return value, true
}
