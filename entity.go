package sprite

import (
	"encoding/binary"
	"math"
)

// GPU data layout constants.
const (
	// VertexStride is the byte size of one Vertex as uploaded to the GPU.
	VertexStride = 16

	// TransformStride is the byte size of one Transform as uploaded to
	// the GPU, including trailing padding for 16-byte alignment.
	TransformStride = 32

	// VerticesPerEntity is the number of vertices in an entity's quad.
	VerticesPerEntity = 4

	// IndicesPerEntity is the number of indices used to draw one quad as
	// two triangles.
	IndicesPerEntity = 6
)

// Vertex is one corner of an entity's textured quad: a 2D position in local
// space and a texture coordinate into the layer's atlas.
//
// The GPU layout is four consecutive float32 values (x, y, u, v),
// little-endian, 16 bytes total.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Transform is a 2D affine transform in row-major order:
//
//	| A B C |
//	| D E F |
//
// The two padding fields round the GPU layout up to 32 bytes so an array of
// transforms satisfies uniform/storage alignment rules. They are uploaded
// as-is and should be left zero.
type Transform struct {
	A, B, C  float32
	D, E, F  float32
	Padding1 float32
	Padding2 float32
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{A: 1, E: 1}
}

// Entity is anything drawable in a layer: a quad with per-instance
// placement. Implementations are provided by the host application.
//
// Both methods must be cheap; the layer system calls them once per entity
// per upload.
type Entity interface {
	// Transform returns the entity's current placement.
	Transform() Transform

	// Vertices returns the four corners of the entity's quad with atlas
	// texture coordinates, in the order expected by QuadIndices:
	// top-left, top-right, bottom-right, bottom-left.
	Vertices() [VerticesPerEntity]Vertex
}

// putFloat32 appends v to dst in GPU byte order.
func putFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

// transformBytes packs the transforms of entities into a contiguous
// little-endian byte slice, TransformStride bytes per entity.
func transformBytes(entities []Entity) []byte {
	data := make([]byte, len(entities)*TransformStride)
	for i, e := range entities {
		t := e.Transform()
		off := i * TransformStride
		putFloat32(data[off+0:], t.A)
		putFloat32(data[off+4:], t.B)
		putFloat32(data[off+8:], t.C)
		putFloat32(data[off+12:], t.D)
		putFloat32(data[off+16:], t.E)
		putFloat32(data[off+20:], t.F)
		putFloat32(data[off+24:], t.Padding1)
		putFloat32(data[off+28:], t.Padding2)
	}
	return data
}

// vertexBytes packs the quad vertices of entities into a contiguous
// little-endian byte slice, VerticesPerEntity*VertexStride bytes per entity.
func vertexBytes(entities []Entity) []byte {
	data := make([]byte, len(entities)*VerticesPerEntity*VertexStride)
	off := 0
	for _, e := range entities {
		for _, v := range e.Vertices() {
			putFloat32(data[off+0:], v.X)
			putFloat32(data[off+4:], v.Y)
			putFloat32(data[off+8:], v.U)
			putFloat32(data[off+12:], v.V)
			off += VertexStride
		}
	}
	return data
}

// QuadIndices generates the index list for quads consecutive quads: two
// triangles per quad, (0,1,2) and (0,2,3), offset by 4 per quad. Useful for
// renderers that draw layers without instancing.
func QuadIndices(quads int) []uint16 {
	indices := make([]uint16, 0, quads*IndicesPerEntity)
	for q := 0; q < quads; q++ {
		base := uint16(q * VerticesPerEntity)
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return indices
}

// quadIndexPattern is the shared index buffer contents for instanced
// drawing: one quad, reused for every instance.
var quadIndexPattern = [IndicesPerEntity]uint16{0, 1, 2, 0, 2, 3}

// quadIndexBytes returns the little-endian bytes of quadIndexPattern.
func quadIndexBytes() []byte {
	data := make([]byte, IndicesPerEntity*2)
	for i, idx := range quadIndexPattern {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}
