package sprite

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// =============================================================================
// Mock Types for Testing
// =============================================================================

// mockDevice is a test double for the Device interface. Creation failures
// are injected through the *Func hooks; counters track resource churn.
type mockDevice struct {
	createBufferFunc    func(*hal.BufferDescriptor) (hal.Buffer, error)
	createTextureFunc   func(*hal.TextureDescriptor) (hal.Texture, error)
	createViewFunc      func(hal.Texture, *hal.TextureViewDescriptor) (hal.TextureView, error)
	createSamplerFunc   func(*hal.SamplerDescriptor) (hal.Sampler, error)
	createBindGroupFunc func(*hal.BindGroupDescriptor) (hal.BindGroup, error)

	buffersCreated      int
	buffersDestroyed    int
	texturesCreated     int
	texturesDestroyed   int
	viewsCreated        int
	viewsDestroyed      int
	samplersCreated     int
	samplersDestroyed   int
	bindGroupsCreated   int
	bindGroupsDestroyed int

	lastBufferDesc  *hal.BufferDescriptor
	lastTextureDesc *hal.TextureDescriptor
}

func newMockDevice() *mockDevice { return &mockDevice{} }

func (d *mockDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.lastBufferDesc = desc
	if d.createBufferFunc != nil {
		return d.createBufferFunc(desc)
	}
	d.buffersCreated++
	return &mockBuffer{
		label: desc.Label,
		size:  desc.Size,
		data:  make([]byte, desc.Size),
	}, nil
}

func (d *mockDevice) DestroyBuffer(_ hal.Buffer) { d.buffersDestroyed++ }

func (d *mockDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.lastTextureDesc = desc
	if d.createTextureFunc != nil {
		return d.createTextureFunc(desc)
	}
	d.texturesCreated++
	return &mockTexture{width: desc.Size.Width, height: desc.Size.Height}, nil
}

func (d *mockDevice) DestroyTexture(_ hal.Texture) { d.texturesDestroyed++ }

func (d *mockDevice) CreateTextureView(tex hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	if d.createViewFunc != nil {
		return d.createViewFunc(tex, desc)
	}
	d.viewsCreated++
	return &mockTextureView{texture: tex, label: desc.Label}, nil
}

func (d *mockDevice) DestroyTextureView(_ hal.TextureView) { d.viewsDestroyed++ }

func (d *mockDevice) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	if d.createSamplerFunc != nil {
		return d.createSamplerFunc(desc)
	}
	d.samplersCreated++
	return &mockSampler{}, nil
}

func (d *mockDevice) DestroySampler(_ hal.Sampler) { d.samplersDestroyed++ }

func (d *mockDevice) CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	if d.createBindGroupFunc != nil {
		return d.createBindGroupFunc(desc)
	}
	d.bindGroupsCreated++
	return &mockBindGroup{entries: len(desc.Entries)}, nil
}

func (d *mockDevice) DestroyBindGroup(_ hal.BindGroup) { d.bindGroupsDestroyed++ }

// mockQueue is a test double for the Queue interface. Buffer writes are
// applied to the target mockBuffer so tests can verify uploaded bytes;
// texture writes are recorded. Write failures are injected through the
// *Func hooks.
type mockQueue struct {
	writeBufferFunc  func(hal.Buffer, uint64, []byte) error
	writeTextureFunc func(*hal.ImageCopyTexture, []byte, *hal.ImageDataLayout, *hal.Extent3D) error

	bufferWrites  int
	textureWrites int

	lastTextureData   []byte
	lastTextureLayout *hal.ImageDataLayout
	lastTextureSize   *hal.Extent3D
}

func newMockQueue() *mockQueue { return &mockQueue{} }

func (q *mockQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	if q.writeBufferFunc != nil {
		return q.writeBufferFunc(buffer, offset, data)
	}
	q.bufferWrites++
	if mb, ok := buffer.(*mockBuffer); ok {
		copy(mb.data[offset:], data)
	}
	return nil
}

func (q *mockQueue) WriteTexture(_ *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	if q.writeTextureFunc != nil {
		return q.writeTextureFunc(nil, data, layout, size)
	}
	q.textureWrites++
	q.lastTextureData = append([]byte(nil), data...)
	q.lastTextureLayout = layout
	q.lastTextureSize = size
	return nil
}

// mockBuffer is a test double for hal.Buffer that retains written bytes.
type mockBuffer struct {
	label string
	size  uint64
	data  []byte
}

// Destroy implements hal.Resource.
func (b *mockBuffer) Destroy() {}

// NativeHandle implements hal.NativeHandle.
func (b *mockBuffer) NativeHandle() uintptr { return 0 }

// mockTexture is a test double for hal.Texture.
type mockTexture struct {
	width  uint32
	height uint32
}

// Destroy implements hal.Resource.
func (t *mockTexture) Destroy() {}

// NativeHandle implements hal.NativeHandle.
func (t *mockTexture) NativeHandle() uintptr { return 0 }

// CurrentUsage implements hal.Texture's usage tracking.
func (t *mockTexture) CurrentUsage() gputypes.TextureUsage { return 0 }

// AddPendingRef implements hal.Texture's reference tracking.
func (t *mockTexture) AddPendingRef() {}

// DecPendingRef implements hal.Texture's reference tracking.
func (t *mockTexture) DecPendingRef() {}

// mockTextureView is a test double for hal.TextureView.
type mockTextureView struct {
	texture hal.Texture
	label   string
}

// Destroy implements hal.Resource.
func (v *mockTextureView) Destroy() {}

// NativeHandle implements hal.NativeHandle.
func (v *mockTextureView) NativeHandle() uintptr { return 1 }

// mockSampler is a test double for hal.Sampler.
type mockSampler struct{}

// Destroy implements hal.Resource.
func (s *mockSampler) Destroy() {}

// NativeHandle implements hal.NativeHandle.
func (s *mockSampler) NativeHandle() uintptr { return 2 }

// mockBindGroupLayout is a test double for hal.BindGroupLayout.
type mockBindGroupLayout struct{}

// Destroy implements hal.Resource.
func (l *mockBindGroupLayout) Destroy() {}

// mockBindGroup is a test double for hal.BindGroup.
type mockBindGroup struct {
	entries int
}

// Destroy implements hal.Resource.
func (g *mockBindGroup) Destroy() {}

// =============================================================================
// Test Entities
// =============================================================================

// testEntity is a fixed-quad entity for buffer tests.
type testEntity struct {
	transform Transform
	vertices  [VerticesPerEntity]Vertex
}

func (e *testEntity) Transform() Transform { return e.transform }

func (e *testEntity) Vertices() [VerticesPerEntity]Vertex { return e.vertices }

// newTestEntity builds an entity whose quad spans [0,w]x[0,h] at (x, y)
// with full-atlas texture coordinates.
func newTestEntity(x, y, w, h float32) *testEntity {
	return &testEntity{
		transform: Transform{A: 1, C: x, E: 1, F: y},
		vertices: [VerticesPerEntity]Vertex{
			{X: 0, Y: 0, U: 0, V: 0},
			{X: w, Y: 0, U: 1, V: 0},
			{X: w, Y: h, U: 1, V: 1},
			{X: 0, Y: h, U: 0, V: 1},
		},
	}
}

// makeEntities builds n distinct test entities.
func makeEntities(n int) []Entity {
	entities := make([]Entity, n)
	for i := range entities {
		entities[i] = newTestEntity(float32(i), float32(i)*2, 16, 16)
	}
	return entities
}

// solidPixels returns w*h RGBA pixels filled with one color.
func solidPixels(w, h int, r, g, b, a byte) []byte {
	pixels := make([]byte, w*h*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i] = r
		pixels[i+1] = g
		pixels[i+2] = b
		pixels[i+3] = a
	}
	return pixels
}
