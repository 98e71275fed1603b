package threemf

import "github.com/philipparndt/plate3mf/internal/geometry"

// flattener resolves object definitions into lists of triangles in object
// space. Results are memoized per object key, which is only sound because
// component transforms are applied to the child's triangles after the
// recursive call rather than being pre-multiplied into it. The active set
// detects object-level reference cycles, independent of the document-level
// guard in docParser.
type flattener struct {
	store  map[ObjectKey]*ObjectDef
	memo   map[ObjectKey][]geometry.Triangle
	active map[ObjectKey]bool
}

func newFlattener(store map[ObjectKey]*ObjectDef) *flattener {
	return &flattener{
		store:  store,
		memo:   make(map[ObjectKey][]geometry.Triangle),
		active: make(map[ObjectKey]bool),
	}
}

// flatten returns the triangles of an object including all of its
// components, in the object's own coordinate space. A cyclic reference
// contributes nothing instead of recursing forever; an unknown key yields
// an empty list.
func (f *flattener) flatten(key ObjectKey) []geometry.Triangle {
	if cached, ok := f.memo[key]; ok {
		return cached
	}
	if f.active[key] {
		return nil
	}

	def, ok := f.store[key]
	if !ok {
		return nil
	}

	f.active[key] = true
	defer delete(f.active, key)

	var triangles []geometry.Triangle

	for _, tri := range def.Triangles {
		if !validIndices(tri, len(def.Vertices)) {
			continue
		}
		triangles = append(triangles, geometry.Triangle{
			V1: def.Vertices[tri[0]],
			V2: def.Vertices[tri[1]],
			V3: def.Vertices[tri[2]],
		})
	}

	for _, comp := range def.Components {
		for _, tri := range f.flatten(comp.Key) {
			triangles = append(triangles, comp.Transform.ApplyTriangle(tri))
		}
	}

	f.memo[key] = triangles
	return triangles
}

// itemTriangles flattens a build item's object and places the result in
// world space with the item's own transform
func (f *flattener) itemTriangles(item BuildItem) []geometry.Triangle {
	flat := f.flatten(item.Key)
	if item.Transform.IsIdentity() {
		return flat
	}

	placed := make([]geometry.Triangle, 0, len(flat))
	for _, tri := range flat {
		placed = append(placed, item.Transform.ApplyTriangle(tri))
	}
	return placed
}

func validIndices(tri [3]int, vertexCount int) bool {
	for _, idx := range tri {
		if idx < 0 || idx >= vertexCount {
			return false
		}
	}
	return true
}
