// Package threemf parses multi-plate 3MF project archives into an in-memory
// model: an object store, resolved build plates with slicer metadata, and
// flattened world-space triangles per plate. It is strictly read-only.
package threemf

import (
	"errors"
	"fmt"
	"sort"

	"github.com/philipparndt/plate3mf/internal/archive"
	"github.com/philipparndt/plate3mf/internal/geometry"
	"github.com/philipparndt/plate3mf/internal/stl"
)

// rootModelPath is the mandatory model document; a project without it is
// unreadable
const rootModelPath = "3D/3dmodel.model"

// Candidate entry names for the optional slicer documents. Order matters:
// current vendor names first, legacy names second.
var (
	plateConfigCandidates = []string{
		"Metadata/model_settings.config",
		"Metadata/Slic3r_PE_model.config",
	}
	sliceInfoCandidates = []string{
		"Metadata/slice_info.config",
	}
	projectSettingsCandidates = []string{
		"Metadata/project_settings.config",
		"Metadata/Slic3r_PE.config",
	}
)

// ErrModelMissing indicates the archive contains no root model document
var ErrModelMissing = errors.New("3D/3dmodel.model not found in archive")

// ArchiveError wraps the fatal error class: the file is not a readable 3MF
// project at all. Missing optional documents never produce this.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("unreadable 3MF archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// ObjectKey addresses an object definition across all parsed documents
type ObjectKey struct {
	Path string
	ID   int
}

// ComponentRef is a reference from one object to another, with the
// transform that places the child inside the parent
type ComponentRef struct {
	Key       ObjectKey
	Transform geometry.Transform
}

// ObjectDef holds the payload of one <object> element. Mesh data and
// component references may both be present; the object's geometry is the
// union of the two.
type ObjectDef struct {
	Key        ObjectKey
	Name       string
	Vertices   []geometry.Vector3
	Triangles  [][3]int
	Components []ComponentRef
}

// BuildItem is one <build><item> entry: an instantiation of an object at a
// transform. Seq preserves document order and is the stable identity used
// for deduplication and instance numbering.
type BuildItem struct {
	Seq       int
	ObjectID  int
	Key       ObjectKey
	Transform geometry.Transform
	Printable bool
}

// InstanceRef is a plate definition's reference to a build item
type InstanceRef struct {
	ObjectID   int
	InstanceID int
}

// PlateDef is a parsed plate definition from the slicer plate document
type PlateDef struct {
	Index     int
	Metadata  map[string]string
	Instances []InstanceRef
}

// SliceInfo is the per-plate filament and timing metadata from the slicer's
// slice info document
type SliceInfo struct {
	Index     int
	Metadata  map[string]string
	Filaments []map[string]string
}

// Plate is a fully resolved build plate: its build items, flattened
// world-space triangles and attached slicer metadata
type Plate struct {
	Index      int
	Metadata   map[string]string
	SliceInfo  map[string]string
	Filaments  []map[string]string
	Items      []BuildItem
	Triangles  []geometry.Triangle
	ObjectIDs  []int
	Dimensions map[string]float64
}

// TriangleCount returns the number of flattened triangles on the plate
func (p *Plate) TriangleCount() int {
	return len(p.Triangles)
}

// InstanceCount returns the number of build items on the plate
func (p *Plate) InstanceCount() int {
	return len(p.Items)
}

// Project is the immutable result of parsing one 3MF archive
type Project struct {
	Path     string
	Metadata map[string]string
	Settings map[string]string
	Plates   []Plate
}

// Plate returns the plate with the given index, or false if absent
func (p *Project) Plate(index int) (*Plate, bool) {
	for i := range p.Plates {
		if p.Plates[i].Index == index {
			return &p.Plates[i], true
		}
	}
	return nil, false
}

// PlateTriangles returns the flattened triangles of the plate with the
// given index. A nonexistent plate index yields an empty list, not an
// error.
func (p *Project) PlateTriangles(index int) []geometry.Triangle {
	plate, ok := p.Plate(index)
	if !ok {
		return nil
	}
	return plate.Triangles
}

// PlateSTL encodes the plate's triangles as binary STL with the given
// header text. A plate without triangles (or an unknown index) still
// yields a valid 84-byte STL with a zero triangle count.
func (p *Project) PlateSTL(index int, header string) []byte {
	return stl.EncodeBinary(stl.FromGeometry(header, p.PlateTriangles(index)))
}

// LoadProject opens and fully parses a 3MF project file. It fails with an
// *ArchiveError when the file is not a valid ZIP or the root model document
// is missing or unparsable; all optional slicer documents degrade to empty
// structures.
func LoadProject(filename string) (*Project, error) {
	arc, err := archive.Open(filename)
	if err != nil {
		return nil, &ArchiveError{Path: filename, Err: err}
	}
	defer arc.Close()

	parser := newDocParser(arc)
	items, metadata, err := parser.parseDocument(rootModelPath)
	if err != nil {
		return nil, &ArchiveError{Path: filename, Err: err}
	}

	settings := map[string]string{}
	if text, ok := arc.ReadFirst(projectSettingsCandidates...); ok {
		settings = DecodeSettings(text)
	}

	var defs []PlateDef
	if text, ok := arc.ReadFirst(plateConfigCandidates...); ok {
		defs = parsePlateDefs(text)
	}

	var infos []SliceInfo
	if text, ok := arc.ReadFirst(sliceInfoCandidates...); ok {
		infos = parseSliceInfo(text)
	}

	plates := resolvePlates(items, defs)
	mergeSliceInfo(plates, infos)

	fl := newFlattener(parser.store)
	for i := range plates {
		plates[i].finalize(fl)
	}

	return &Project{
		Path:     filename,
		Metadata: metadata,
		Settings: settings,
		Plates:   plates,
	}, nil
}

// finalize computes the derived fields of a plate: triangles, object id
// set and bounding box dimensions
func (p *Plate) finalize(fl *flattener) {
	idSet := make(map[int]bool)
	for _, item := range p.Items {
		idSet[item.ObjectID] = true
		if !item.Printable {
			continue
		}
		p.Triangles = append(p.Triangles, fl.itemTriangles(item)...)
	}

	p.ObjectIDs = make([]int, 0, len(idSet))
	for id := range idSet {
		p.ObjectIDs = append(p.ObjectIDs, id)
	}
	sort.Ints(p.ObjectIDs)

	p.Dimensions = map[string]float64{}
	if bbox, ok := geometry.BoundsOf(p.Triangles); ok {
		p.Dimensions = bbox.Dimensions()
	}
}
