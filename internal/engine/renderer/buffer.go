package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/deskscene/internal/engine/guides"
)

// colorBuffer streams position+color vertices.
type colorBuffer struct {
	vao, vbo uint32
	capacity int // bytes allocated on the GPU
	count    int32
	scratch  []float32
}

func newColorBuffer() *colorBuffer {
	b := &colorBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(guides.VertexFloats * 4)
	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	// Color attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return b
}

// upload replaces the buffer contents, growing the GPU store when needed.
func (b *colorBuffer) upload(verts []guides.Vertex) {
	b.count = int32(len(verts))
	if len(verts) == 0 {
		return
	}
	b.scratch = guides.Flatten(b.scratch[:0], verts)
	size := len(b.scratch) * 4

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if size > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&b.scratch[0]), gl.DYNAMIC_DRAW)
		b.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&b.scratch[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *colorBuffer) draw(mode uint32) {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(mode, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *colorBuffer) delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}

// pointBuffer streams bare xyz positions; color comes from a constant
// attribute.
type pointBuffer struct {
	vao, vbo uint32
	capacity int
	count    int32
}

func newPointBuffer() *pointBuffer {
	b := &pointBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.DisableVertexAttribArray(1)
	gl.BindVertexArray(0)
	return b
}

func (b *pointBuffer) upload(xyz []float32) {
	b.count = int32(len(xyz) / 3)
	if b.count == 0 {
		return
	}
	size := len(xyz) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if size > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&xyz[0]), gl.STREAM_DRAW)
		b.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&xyz[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *pointBuffer) draw(r, g, bl float32) {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.VertexAttrib3f(1, r, g, bl)
	gl.DrawArrays(gl.POINTS, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *pointBuffer) delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}

// liquidBuffer holds the liquid surface: positions and normals are updated
// only when the surface reports a change, indices once.
type liquidBuffer struct {
	vao             uint32
	posVBO, normVBO uint32
	ebo             uint32
	indexCount      int32
	vertexBytes     int
}

func newLiquidBuffer() *liquidBuffer {
	b := &liquidBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.posVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &b.normVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.normVBO)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	gl.BindVertexArray(0)
	return b
}

// upload sends the surface when it changed or the mesh size differs.
func (b *liquidBuffer) upload(positions, normals []float32, indices []uint32, dirty bool) {
	if len(positions) == 0 || len(indices) == 0 {
		b.indexCount = 0
		return
	}
	size := len(positions) * 4
	resized := size != b.vertexBytes || int32(len(indices)) != b.indexCount
	if !dirty && !resized {
		return
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&positions[0]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.normVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(normals)*4, unsafe.Pointer(&normals[0]), gl.DYNAMIC_DRAW)
	if resized {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
		b.indexCount = int32(len(indices))
		b.vertexBytes = size
	}
	gl.BindVertexArray(0)
}

func (b *liquidBuffer) draw() {
	if b.indexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (b *liquidBuffer) delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.posVBO)
	gl.DeleteBuffers(1, &b.normVBO)
	gl.DeleteBuffers(1, &b.ebo)
}

// newSteamQuad creates a unit quad standing on its bottom edge, with uv.
func newSteamQuad() (vao, vbo uint32) {
	verts := []float32{
		// x, y, u, v
		-0.5, 0, 0, 0,
		0.5, 0, 1, 0,
		-0.5, 1, 0, 1,
		0.5, 1, 1, 1,
	}
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
	return vao, vbo
}
