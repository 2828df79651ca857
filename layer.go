// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sprite

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Layer errors.
var (
	// ErrTextureConflict is returned by AddTexture when a different texture
	// is already registered under the same ID.
	ErrTextureConflict = errors.New("sprite: texture id already registered")

	// ErrLayerDestroyed is returned when an operation targets a destroyed
	// layer.
	ErrLayerDestroyed = errors.New("sprite: layer already destroyed")

	// ErrNilTexture is returned when AddTexture is called with a nil
	// texture.
	ErrNilTexture = errors.New("sprite: texture is nil")
)

// LayerID identifies a layer. IDs are assigned by the host application.
type LayerID uint32

// Layer holds the GPU-resident data for one draw group: the texture atlas
// shared by its entities and the vertex, index, and instance buffers that
// describe them. Buffers are nil until the first SetEntities call; the
// atlas and bind group are nil until the first AddTexture call.
//
// A Layer is not safe for concurrent mutation; see the package
// documentation.
type Layer struct {
	id       LayerID
	cfg      layerConfig
	textures map[TextureID]*Texture
	atlas    *Atlas

	vertexBuf *Buffer
	indexBuf  *Buffer
	entityBuf *Buffer

	entityCount int
	capacity    int
	destroyed   bool
}

// NewLayer creates an empty layer.
func NewLayer(id LayerID, opts ...LayerOption) *Layer {
	cfg := defaultLayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Layer{
		id:       id,
		cfg:      cfg,
		textures: make(map[TextureID]*Texture),
	}
}

// ID returns the layer's identifier.
func (l *Layer) ID() LayerID { return l.id }

// ContainsTexture reports whether a texture with the given ID is registered.
func (l *Layer) ContainsTexture(id TextureID) bool {
	_, ok := l.textures[id]
	return ok
}

// Texture returns the registered texture with the given ID.
func (l *Layer) Texture(id TextureID) (*Texture, bool) {
	t, ok := l.textures[id]
	return t, ok
}

// TextureCount returns the number of registered textures.
func (l *Layer) TextureCount() int { return len(l.textures) }

// AddTexture registers a texture with the layer and rebuilds the atlas to
// include it. layout is the bind group layout the atlas bind group is
// created against; it must match AtlasBindGroupLayoutEntries.
//
// Registering the same ID twice fails with ErrTextureConflict. On any
// failure the layer keeps its previous atlas and texture set unchanged.
func (l *Layer) AddTexture(tex *Texture, device Device, queue Queue, layout hal.BindGroupLayout) error {
	if l.destroyed {
		return ErrLayerDestroyed
	}
	if tex == nil {
		return ErrNilTexture
	}
	if device == nil {
		return ErrNilDevice
	}
	if queue == nil {
		return ErrNilQueue
	}
	if _, exists := l.textures[tex.id]; exists {
		return fmt.Errorf("%w: %d", ErrTextureConflict, tex.id)
	}

	all := make([]*Texture, 0, len(l.textures)+1)
	for _, t := range l.textures {
		all = append(all, t)
	}
	all = append(all, tex)

	label := fmt.Sprintf("layer %d atlas", l.id)
	atlas, err := buildAtlas(device, queue, layout, all, l.cfg.maxAtlasSize, l.cfg.atlasFormat, label)
	if err != nil {
		return err
	}

	// Commit: the new atlas replaces the old one only once fully built.
	if l.atlas != nil {
		l.atlas.Destroy()
	}
	l.atlas = atlas
	l.textures[tex.id] = tex
	return nil
}

// Atlas returns the layer's texture atlas, or nil before the first
// successful AddTexture.
func (l *Layer) Atlas() *Atlas { return l.atlas }

// BindGroup returns the atlas bind group for draw submission, or nil when
// the layer has no textures.
func (l *Layer) BindGroup() hal.BindGroup {
	if l.atlas == nil {
		return nil
	}
	return l.atlas.BindGroup()
}

// VertexBuffer returns the quad vertex buffer, or nil while the layer is
// empty.
func (l *Layer) VertexBuffer() *Buffer { return l.vertexBuf }

// IndexBuffer returns the quad index buffer, or nil while the layer is
// empty.
func (l *Layer) IndexBuffer() *Buffer { return l.indexBuf }

// EntityBuffer returns the per-entity instance buffer holding transforms,
// or nil while the layer is empty.
func (l *Layer) EntityBuffer() *Buffer { return l.entityBuf }

// EntityCount returns the number of entities written by the last update.
func (l *Layer) EntityCount() int { return l.entityCount }

// IndexCount returns the number of indices to draw: six per entity.
func (l *Layer) IndexCount() int { return l.entityCount * IndicesPerEntity }

// Capacity returns the number of entities the allocated buffers can hold
// without reallocation.
func (l *Layer) Capacity() int { return l.capacity }

// IsDestroyed reports whether Destroy has been called.
func (l *Layer) IsDestroyed() bool { return l.destroyed }

// Destroy releases every GPU resource the layer holds: atlas, bind group,
// and all buffers. The CPU-side texture registry is cleared. Destroy is
// idempotent.
func (l *Layer) Destroy() {
	if l.destroyed {
		return
	}
	l.destroyed = true

	if l.atlas != nil {
		l.atlas.Destroy()
		l.atlas = nil
	}
	l.releaseBuffers()
	l.textures = make(map[TextureID]*Texture)
	l.entityCount = 0
	l.capacity = 0
}

// releaseBuffers destroys whichever entity buffers are currently allocated.
func (l *Layer) releaseBuffers() {
	if l.vertexBuf != nil {
		l.vertexBuf.Destroy()
		l.vertexBuf = nil
	}
	if l.indexBuf != nil {
		l.indexBuf.Destroy()
		l.indexBuf = nil
	}
	if l.entityBuf != nil {
		l.entityBuf.Destroy()
		l.entityBuf = nil
	}
}
