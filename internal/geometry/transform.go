package geometry

import (
	"strconv"
	"strings"
)

// Transform is a 4x4 affine transformation matrix. The bottom row is always
// (0, 0, 0, 1); translation lives in the final column.
type Transform struct {
	M [4][4]float64
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// ParseTransform parses a 3MF transform attribute into a Transform.
// The attribute format is 12 whitespace-separated floats:
// "m00 m01 m02 m10 m11 m12 m20 m21 m22 tx ty tz" (row-vector convention).
// Anything that is not exactly 12 parseable floats yields the identity
// transform. Malformed transforms are a known slicer quirk and must not
// fail the parse.
func ParseTransform(s string) Transform {
	fields := strings.Fields(s)
	if len(fields) != 12 {
		return Identity()
	}

	var v [12]float64
	for i, f := range fields {
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Identity()
		}
		v[i] = parsed
	}

	// The 3MF string is row-major for row vectors; transposed here so the
	// matrix left-multiplies column vectors.
	return Transform{M: [4][4]float64{
		{v[0], v[3], v[6], v[9]},
		{v[1], v[4], v[7], v[10]},
		{v[2], v[5], v[8], v[11]},
		{0, 0, 0, 1},
	}}
}

// Apply transforms a point by the matrix
func (t Transform) Apply(p Vector3) Vector3 {
	return Vector3{
		X: t.M[0][0]*p.X + t.M[0][1]*p.Y + t.M[0][2]*p.Z + t.M[0][3],
		Y: t.M[1][0]*p.X + t.M[1][1]*p.Y + t.M[1][2]*p.Z + t.M[1][3],
		Z: t.M[2][0]*p.X + t.M[2][1]*p.Y + t.M[2][2]*p.Z + t.M[2][3],
	}
}

// ApplyTriangle transforms all three corners of a triangle
func (t Transform) ApplyTriangle(tri Triangle) Triangle {
	return Triangle{
		V1: t.Apply(tri.V1),
		V2: t.Apply(tri.V2),
		V3: t.Apply(tri.V3),
	}
}

// IsIdentity reports whether the transform is exactly the identity matrix
func (t Transform) IsIdentity() bool {
	return t == Identity()
}
