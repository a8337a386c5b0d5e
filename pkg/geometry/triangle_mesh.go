package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sixarne/raytracer/pkg/core"
)

// TriangleMesh is an indexed triangle list with its own translation, rotation and
// scale. Hit tests run against the transformed caches, which are only valid after
// UpdateTransforms; a ray that misses the world-space bounds skips every triangle.
type TriangleMesh struct {
	Positions     []core.Vec3 // Object-space vertex positions
	Normals       []core.Vec3 // Object-space face normals, one per triangle
	Indices       []int       // Vertex indices, each group of 3 forms a triangle
	Cull          CullMode
	MaterialIndex uint8

	translation mgl64.Mat4
	rotation    mgl64.Mat4
	scale       mgl64.Mat4
	dirty       bool

	TransformedPositions []core.Vec3
	TransformedNormals   []core.Vec3

	objectBounds core.AABB // Object-space bounds of Positions
	bounds       core.AABB // World-space bounds of TransformedPositions
}

// NewTriangleMesh creates an empty mesh with identity transforms
func NewTriangleMesh(cull CullMode, materialIndex uint8) *TriangleMesh {
	return &TriangleMesh{
		Cull:          cull,
		MaterialIndex: materialIndex,
		translation:   mgl64.Ident4(),
		rotation:      mgl64.Ident4(),
		scale:         mgl64.Ident4(),
		dirty:         true,
	}
}

// NewTriangleMeshFromData creates a mesh from existing vertex, index and normal data.
// If normals is nil, face normals are computed from the winding order.
func NewTriangleMeshFromData(positions []core.Vec3, indices []int, normals []core.Vec3, cull CullMode, materialIndex uint8) *TriangleMesh {
	mesh := NewTriangleMesh(cull, materialIndex)
	mesh.Positions = positions
	mesh.Indices = indices
	mesh.Normals = normals
	if normals == nil {
		mesh.CalculateNormals()
	}
	mesh.UpdateTransforms()
	return mesh
}

// AppendVertex adds a vertex and returns its index
func (tm *TriangleMesh) AppendVertex(position core.Vec3) int {
	tm.Positions = append(tm.Positions, position)
	tm.dirty = true
	return len(tm.Positions) - 1
}

// AppendIndices adds one triangle made of existing vertices and records its face normal
func (tm *TriangleMesh) AppendIndices(i0, i1, i2 int) {
	tm.Indices = append(tm.Indices, i0, i1, i2)
	tm.Normals = append(tm.Normals, FaceNormal(tm.Positions[i0], tm.Positions[i1], tm.Positions[i2]))
	tm.dirty = true
}

// AppendTriangle copies a triangle into the mesh as three new vertices. Pass
// ignoreTransformUpdate when appending in bulk and call UpdateTransforms once at the end.
func (tm *TriangleMesh) AppendTriangle(triangle Triangle, ignoreTransformUpdate bool) {
	start := len(tm.Positions)
	tm.Positions = append(tm.Positions, triangle.V0, triangle.V1, triangle.V2)
	tm.Indices = append(tm.Indices, start, start+1, start+2)
	tm.Normals = append(tm.Normals, triangle.Normal)
	tm.dirty = true

	if !ignoreTransformUpdate {
		tm.UpdateTransforms()
	}
}

// CalculateNormals recomputes every face normal from the current positions
func (tm *TriangleMesh) CalculateNormals() {
	tm.Normals = make([]core.Vec3, 0, len(tm.Indices)/3)
	for i := 0; i+2 < len(tm.Indices); i += 3 {
		v0 := tm.Positions[tm.Indices[i]]
		v1 := tm.Positions[tm.Indices[i+1]]
		v2 := tm.Positions[tm.Indices[i+2]]
		tm.Normals = append(tm.Normals, FaceNormal(v0, v1, v2))
	}
	tm.dirty = true
}

// Translate sets the mesh translation
func (tm *TriangleMesh) Translate(offset core.Vec3) {
	tm.translation = mgl64.Translate3D(offset.X, offset.Y, offset.Z)
	tm.dirty = true
}

// RotateY sets the mesh rotation about the Y axis, in radians
func (tm *TriangleMesh) RotateY(yaw float64) {
	tm.rotation = mgl64.HomogRotate3DY(yaw)
	tm.dirty = true
}

// Scale sets the mesh scale per axis
func (tm *TriangleMesh) Scale(factors core.Vec3) {
	tm.scale = mgl64.Scale3D(factors.X, factors.Y, factors.Z)
	tm.dirty = true
}

// Transform returns the object-to-world matrix: scale, then rotate, then translate
func (tm *TriangleMesh) Transform() mgl64.Mat4 {
	return tm.translation.Mul4(tm.rotation).Mul4(tm.scale)
}

// Dirty reports whether the transform or data changed since the last UpdateTransforms
func (tm *TriangleMesh) Dirty() bool {
	return tm.dirty
}

// Validate reports a malformed index list
func (tm *TriangleMesh) Validate() error {
	if len(tm.Indices)%3 != 0 {
		return fmt.Errorf("triangle mesh has %d indices, not a multiple of 3", len(tm.Indices))
	}
	if len(tm.Normals) != len(tm.Indices)/3 {
		return fmt.Errorf("triangle mesh has %d normals for %d triangles", len(tm.Normals), len(tm.Indices)/3)
	}
	for i, index := range tm.Indices {
		if index < 0 || index >= len(tm.Positions) {
			return fmt.Errorf("triangle mesh index %d at position %d out of bounds (%d vertices)", index, i, len(tm.Positions))
		}
	}
	return nil
}

// mustBeValid panics on a malformed mesh; rendering cannot continue without valid triangles
func (tm *TriangleMesh) mustBeValid() {
	if err := tm.Validate(); err != nil {
		panic(err.Error())
	}
}

// UpdateTransforms applies the current transform to positions and normals and
// refreshes the object-space and world-space bounds
func (tm *TriangleMesh) UpdateTransforms() {
	tm.mustBeValid()

	transform := tm.Transform()

	tm.TransformedPositions = tm.TransformedPositions[:0]
	for _, position := range tm.Positions {
		tm.TransformedPositions = append(tm.TransformedPositions, core.TransformPoint(transform, position))
	}

	tm.TransformedNormals = tm.TransformedNormals[:0]
	for _, normal := range tm.Normals {
		tm.TransformedNormals = append(tm.TransformedNormals, core.TransformNormal(transform, normal))
	}

	tm.updateBounds(transform)
	tm.dirty = false
}

// updateBounds transforms the eight corners of the object-space box, which keeps
// the world box conservative under rotation
func (tm *TriangleMesh) updateBounds(transform mgl64.Mat4) {
	if len(tm.Positions) == 0 {
		tm.objectBounds = core.AABB{}
		tm.bounds = core.AABB{}
		return
	}

	tm.objectBounds = core.NewAABBFromPoints(tm.Positions...)

	corners := tm.objectBounds.Corners()
	for i := range corners {
		corners[i] = core.TransformPoint(transform, corners[i])
	}
	tm.bounds = core.NewAABBFromPoints(corners[:]...)
}

// ObjectBounds returns the object-space bounding box
func (tm *TriangleMesh) ObjectBounds() core.AABB {
	return tm.objectBounds
}

// BoundingBox returns the world-space bounding box
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bounds
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.Indices) / 3
}

// triangle builds the world-space triangle at the given face index
func (tm *TriangleMesh) triangle(face int) Triangle {
	return Triangle{
		V0:            tm.TransformedPositions[tm.Indices[face*3]],
		V1:            tm.TransformedPositions[tm.Indices[face*3+1]],
		V2:            tm.TransformedPositions[tm.Indices[face*3+2]],
		Normal:        tm.TransformedNormals[face],
		Cull:          tm.Cull,
		MaterialIndex: tm.MaterialIndex,
	}
}

// HitClosest returns the nearest triangle hit. Ties keep the first triangle found.
func (tm *TriangleMesh) HitClosest(ray core.Ray) HitRecord {
	if len(tm.Indices)%3 != 0 {
		tm.mustBeValid()
	}
	closest := NoHit()
	if len(tm.TransformedPositions) == 0 || !tm.bounds.Hit(ray) {
		return closest
	}

	for face := 0; face < tm.TriangleCount(); face++ {
		triangle := tm.triangle(face)
		if hit := triangle.HitClosest(ray); hit.Closer(closest) {
			closest = hit
		}
	}
	return closest
}

// HitAny reports whether any triangle in the mesh is hit
func (tm *TriangleMesh) HitAny(ray core.Ray) bool {
	if len(tm.Indices)%3 != 0 {
		tm.mustBeValid()
	}
	if len(tm.TransformedPositions) == 0 || !tm.bounds.Hit(ray) {
		return false
	}

	for face := 0; face < tm.TriangleCount(); face++ {
		triangle := tm.triangle(face)
		if triangle.HitAny(ray) {
			return true
		}
	}
	return false
}
