package geometry

// Vector3 represents a point or direction in 3D space
type Vector3 struct {
	X, Y, Z float64
}

// Triangle represents a triangle in world space by its three corners
type Triangle struct {
	V1, V2, V3 Vector3
}
