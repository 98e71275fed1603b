package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/philipparndt/plate3mf/internal/geometry"
)

// Vector3 represents a 3D vector in STL single precision
type Vector3 struct {
	X, Y, Z float32
}

// Triangle represents an STL facet
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// Mesh represents an STL mesh
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// headerSize and recordSize define the binary STL layout: an 80-byte header,
// a little-endian uint32 triangle count, then 50 bytes per facet.
const (
	headerSize = 80
	recordSize = 50
)

// FromGeometry converts world-space triangles to STL facets, computing a
// unit normal for each from the cross product of its edge vectors.
// Degenerate triangles get a zero normal.
func FromGeometry(name string, triangles []geometry.Triangle) *Mesh {
	mesh := &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0, len(triangles)),
	}

	for _, tri := range triangles {
		mesh.Triangles = append(mesh.Triangles, Triangle{
			Normal: faceNormal(tri),
			V1:     toVector3(tri.V1),
			V2:     toVector3(tri.V2),
			V3:     toVector3(tri.V3),
		})
	}

	return mesh
}

// faceNormal computes the normalized cross product of the triangle's two
// edge vectors
func faceNormal(tri geometry.Triangle) Vector3 {
	e1 := geometry.Vector3{
		X: tri.V2.X - tri.V1.X,
		Y: tri.V2.Y - tri.V1.Y,
		Z: tri.V2.Z - tri.V1.Z,
	}
	e2 := geometry.Vector3{
		X: tri.V3.X - tri.V1.X,
		Y: tri.V3.Y - tri.V1.Y,
		Z: tri.V3.Z - tri.V1.Z,
	}

	n := geometry.Vector3{
		X: e1.Y*e2.Z - e1.Z*e2.Y,
		Y: e1.Z*e2.X - e1.X*e2.Z,
		Z: e1.X*e2.Y - e1.Y*e2.X,
	}

	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if length == 0 {
		return Vector3{}
	}

	return Vector3{
		X: float32(n.X / length),
		Y: float32(n.Y / length),
		Z: float32(n.Z / length),
	}
}

func toVector3(v geometry.Vector3) Vector3 {
	return Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// EncodeBinary serializes a mesh into the binary STL wire format. The mesh
// name becomes the 80-byte header, truncated or null-padded as needed. The
// output is always 84 + 50*len(triangles) bytes.
func EncodeBinary(mesh *Mesh) []byte {
	var buf bytes.Buffer
	buf.Grow(headerSize + 4 + recordSize*len(mesh.Triangles))

	header := make([]byte, headerSize)
	copy(header, mesh.Name)
	buf.Write(header)

	binary.Write(&buf, binary.LittleEndian, uint32(len(mesh.Triangles)))

	for _, tri := range mesh.Triangles {
		binary.Write(&buf, binary.LittleEndian, tri.Normal)
		binary.Write(&buf, binary.LittleEndian, tri.V1)
		binary.Write(&buf, binary.LittleEndian, tri.V2)
		binary.Write(&buf, binary.LittleEndian, tri.V3)
		binary.Write(&buf, binary.LittleEndian, uint16(0)) // attribute byte count
	}

	return buf.Bytes()
}

// Writer writes STL files
type Writer struct{}

// NewWriter creates a new STL writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteBinary writes a mesh to a binary STL file
func (w *Writer) WriteBinary(mesh *Mesh, filename string) error {
	if err := os.WriteFile(filename, EncodeBinary(mesh), 0644); err != nil {
		return fmt.Errorf("error writing STL file: %w", err)
	}
	return nil
}
