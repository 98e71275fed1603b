package threemf

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeProject creates a 3MF-shaped ZIP file with the given entries and
// returns its path
func writeProject(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "project.3mf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating project file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing project file: %v", err)
	}

	return path
}

// modelDoc wraps resources and build XML in a minimal model document
func modelDoc(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<model unit="millimeter" xml:lang="en-US" xmlns="http://schemas.microsoft.com/3dmanufacturing/core/2015/02">
` + inner + `
</model>`
}

// triangleObject renders an object holding a single right triangle with the
// given edge length in the XY plane
func triangleObject(id int, edge float64) string {
	return fmt.Sprintf(`<object id="%d" type="model">
  <mesh>
    <vertices>
      <vertex x="0" y="0" z="0"/>
      <vertex x="%g" y="0" z="0"/>
      <vertex x="0" y="%g" z="0"/>
    </vertices>
    <triangles>
      <triangle v1="0" v2="1" v3="2"/>
    </triangles>
  </mesh>
</object>`, id, edge, edge)
}

// buildItem renders a build item element
func buildItem(objectID int, transform string) string {
	if transform == "" {
		return fmt.Sprintf(`<item objectid="%d"/>`, objectID)
	}
	return fmt.Sprintf(`<item objectid="%d" transform="%s"/>`, objectID, transform)
}

// plateConfig renders a Metadata/model_settings.config document
func plateConfig(plates ...string) string {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<config>`
	for _, p := range plates {
		doc += "\n" + p
	}
	return doc + "\n</config>"
}

// plateDef renders one plate definition with object/instance references
func plateDef(index int, refs ...[2]int) string {
	p := fmt.Sprintf(`<plate>
  <metadata key="plater_id" value="%d"/>
  <metadata key="plater_name" value="plate %d"/>`, index, index)
	for _, ref := range refs {
		p += fmt.Sprintf(`
  <model_instance>
    <metadata key="object_id" value="%d"/>
    <metadata key="instance_id" value="%d"/>
  </model_instance>`, ref[0], ref[1])
	}
	return p + "\n</plate>"
}
