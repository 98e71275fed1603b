package threemf

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/plate3mf/internal/archive"
	"github.com/philipparndt/plate3mf/internal/geometry"
	"github.com/philipparndt/plate3mf/internal/models"
)

// docParser walks a model document and every sub-model document it
// references, filling a shared object store. Each document is parsed at
// most once; the visited set guards against reference cycles between
// documents.
type docParser struct {
	arc     *archive.Archive
	store   map[ObjectKey]*ObjectDef
	visited map[string]bool
}

func newDocParser(arc *archive.Archive) *docParser {
	return &docParser{
		arc:     arc,
		store:   make(map[ObjectKey]*ObjectDef),
		visited: make(map[string]bool),
	}
}

// parseDocument parses one model document into the store and returns its
// build items and model-level metadata. Only the root document's build
// section matters; sub-model documents contribute objects only.
func (p *docParser) parseDocument(path string) ([]BuildItem, map[string]string, error) {
	docPath := normalizeDocPath(path)
	if p.visited[docPath] {
		return nil, nil, nil
	}
	p.visited[docPath] = true

	text, ok := p.arc.Read(path)
	if !ok {
		return nil, nil, ErrModelMissing
	}

	var model models.Model
	if err := xml.Unmarshal([]byte(text), &model); err != nil {
		return nil, nil, fmt.Errorf("error parsing model XML: %w", err)
	}

	metadata := make(map[string]string)
	for _, meta := range model.Metadata {
		if meta.Name != "" {
			metadata[meta.Name] = strings.TrimSpace(meta.Value)
		}
	}

	for _, obj := range model.Resources.Objects {
		p.parseObject(docPath, obj)
	}

	items := make([]BuildItem, 0, len(model.Build.Items))
	for seq, item := range model.Build.Items {
		id, err := strconv.Atoi(item.ObjectID)
		if err != nil {
			continue
		}
		items = append(items, BuildItem{
			Seq:       seq,
			ObjectID:  id,
			Key:       ObjectKey{Path: docPath, ID: id},
			Transform: geometry.ParseTransform(item.Transform),
			Printable: parsePrintable(item.Printable),
		})
	}

	return items, metadata, nil
}

// parseObject records a single object definition. Malformed vertices and
// component ids are dropped record by record; the object itself is only
// skipped when its own id is unusable.
func (p *docParser) parseObject(docPath string, obj models.Object) {
	id, err := strconv.Atoi(obj.ID)
	if err != nil {
		return
	}

	key := ObjectKey{Path: docPath, ID: id}
	if _, exists := p.store[key]; exists {
		// First definition wins; the store is never rewritten
		return
	}

	def := &ObjectDef{Key: key, Name: obj.Name}

	if obj.Mesh != nil {
		for _, v := range obj.Mesh.Vertices.Vertex {
			x, errX := strconv.ParseFloat(v.X, 64)
			y, errY := strconv.ParseFloat(v.Y, 64)
			z, errZ := strconv.ParseFloat(v.Z, 64)
			if errX != nil || errY != nil || errZ != nil {
				continue
			}
			def.Vertices = append(def.Vertices, geometry.Vector3{X: x, Y: y, Z: z})
		}

		for _, t := range obj.Mesh.Triangles.Triangle {
			v1, err1 := strconv.Atoi(t.V1)
			v2, err2 := strconv.Atoi(t.V2)
			v3, err3 := strconv.Atoi(t.V3)
			if err1 != nil || err2 != nil || err3 != nil {
				continue
			}
			def.Triangles = append(def.Triangles, [3]int{v1, v2, v3})
		}
	}

	if obj.Components != nil {
		for _, comp := range obj.Components.Component {
			childID, err := strconv.Atoi(comp.ObjectID)
			if err != nil {
				continue
			}

			childPath := docPath
			if comp.Path != "" {
				childPath = normalizeDocPath(comp.Path)
				// Sub-model documents referenced by path are parsed on
				// first sight; a broken reference degrades to a missing
				// object at flatten time
				if !p.visited[childPath] {
					p.parseDocument(comp.Path)
				}
			}

			def.Components = append(def.Components, ComponentRef{
				Key:       ObjectKey{Path: childPath, ID: childID},
				Transform: geometry.ParseTransform(comp.Transform),
			})
		}
	}

	p.store[key] = def
}

// parsePrintable interprets the build item printable attribute; items are
// printable unless explicitly disabled
func parsePrintable(s string) bool {
	return s != "0" && !strings.EqualFold(s, "false")
}

// normalizeDocPath maps a document reference to its canonical store key
func normalizeDocPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimPrefix(path, "/")
	return strings.ToLower(path)
}
