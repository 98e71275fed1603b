package threemf

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DecodeSettings turns a project settings payload into a flat string map.
// Current slicers ship a JSON object (Metadata/project_settings.config),
// legacy ones a `;key = value` ini-like text (Metadata/Slic3r_PE.config);
// both are accepted and empty or unusable input yields an empty map, never
// an error.
func DecodeSettings(text string) map[string]string {
	settings := make(map[string]string)
	if strings.TrimSpace(text) == "" {
		return settings
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(text), &decoded); err == nil {
		for key, value := range decoded {
			if s, ok := settingValue(value); ok {
				settings[key] = s
			}
		}
		return settings
	}

	decodeSettingsLines(text, settings)
	return settings
}

// settingValue renders a decoded JSON value as a flat string: scalars pass
// through, lists take their first element, nested objects are re-serialized
// compactly
func settingValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case []any:
		if len(v) == 0 {
			return "", false
		}
		return settingValue(v[0])
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(data), true
	default:
		return "", false
	}
}

// decodeSettingsLines parses the legacy line-based format: a leading `;`
// (slicer comment prefix) is stripped, `#` comment and `[section]` lines
// are ignored, remaining lines split on the first `=`
func decodeSettingsLines(text string, settings map[string]string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, ";")
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		settings[key] = strings.TrimSpace(value)
	}
}
