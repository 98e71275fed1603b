package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// writeZip creates a ZIP file in a temp dir with the given entries
func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.3mf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating zip file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}

	return path
}

func TestOpen_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.3mf")
	if err := os.WriteFile(path, []byte("this is not a zip"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Error("Open() succeeded on a non-ZIP file")
	}
}

func TestRead_ExactName(t *testing.T) {
	path := writeZip(t, map[string]string{
		"3D/3dmodel.model": "<model/>",
	})

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer a.Close()

	text, ok := a.Read("3D/3dmodel.model")
	if !ok {
		t.Fatal("Read() did not find existing entry")
	}
	if text != "<model/>" {
		t.Errorf("Read() = %q, want %q", text, "<model/>")
	}
}

func TestRead_NormalizedLookup(t *testing.T) {
	path := writeZip(t, map[string]string{
		"Metadata/model_settings.config": "<config/>",
	})

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer a.Close()

	tests := []string{
		"metadata/model_settings.config",
		"METADATA/MODEL_SETTINGS.CONFIG",
		"/Metadata/model_settings.config",
		"Metadata\\model_settings.config",
	}

	for _, name := range tests {
		if _, ok := a.Read(name); !ok {
			t.Errorf("Read(%q) did not find entry", name)
		}
	}
}

func TestReadFirst_CandidateOrder(t *testing.T) {
	path := writeZip(t, map[string]string{
		"Metadata/Slic3r_PE.config": "legacy",
	})

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer a.Close()

	text, ok := a.ReadFirst("Metadata/project_settings.config", "Metadata/Slic3r_PE.config")
	if !ok {
		t.Fatal("ReadFirst() found no candidate")
	}
	if text != "legacy" {
		t.Errorf("ReadFirst() = %q, want %q", text, "legacy")
	}
}

func TestReadFirst_Missing(t *testing.T) {
	path := writeZip(t, map[string]string{
		"3D/3dmodel.model": "<model/>",
	})

	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer a.Close()

	if _, ok := a.ReadFirst("Metadata/slice_info.config"); ok {
		t.Error("ReadFirst() reported a missing entry as found")
	}
}
