package geometry

import "math"

// BoundingBox represents an axis-aligned 3D bounding box
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// NewBoundingBox returns an empty bounding box that extends to nothing
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		MinX: math.Inf(1), MinY: math.Inf(1), MinZ: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1), MaxZ: math.Inf(-1),
	}
}

// Extend grows the bounding box to include the given point
func (b *BoundingBox) Extend(v Vector3) {
	b.MinX = math.Min(b.MinX, v.X)
	b.MinY = math.Min(b.MinY, v.Y)
	b.MinZ = math.Min(b.MinZ, v.Z)
	b.MaxX = math.Max(b.MaxX, v.X)
	b.MaxY = math.Max(b.MaxY, v.Y)
	b.MaxZ = math.Max(b.MaxZ, v.Z)
}

// Width returns the X extent of the bounding box
func (b *BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the Y extent of the bounding box
func (b *BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Depth returns the Z extent of the bounding box
func (b *BoundingBox) Depth() float64 {
	return b.MaxZ - b.MinZ
}

// BoundsOf calculates the bounding box over a list of triangles. The second
// return value is false when the list is empty and the box is meaningless.
func BoundsOf(triangles []Triangle) (BoundingBox, bool) {
	if len(triangles) == 0 {
		return BoundingBox{}, false
	}

	bbox := NewBoundingBox()
	for _, tri := range triangles {
		bbox.Extend(tri.V1)
		bbox.Extend(tri.V2)
		bbox.Extend(tri.V3)
	}
	return bbox, true
}

// Dimensions returns the box extents per axis in millimeters, rounded to
// two decimal places
func (b *BoundingBox) Dimensions() map[string]float64 {
	return map[string]float64{
		"x": round2(b.Width()),
		"y": round2(b.Height()),
		"z": round2(b.Depth()),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
