// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sprite

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
)

// Layer system errors.
var (
	// ErrNilLayer is returned when an operation is called with a nil layer.
	ErrNilLayer = errors.New("sprite: layer is nil")

	// ErrUninitialized is returned by the update paths when the layer's
	// buffers have not been allocated yet.
	ErrUninitialized = errors.New("sprite: layer buffers not initialized")

	// ErrCapacityExceeded is returned by the update paths when the entity
	// set no longer fits the allocated buffers.
	ErrCapacityExceeded = errors.New("sprite: entity count exceeds layer capacity")
)

// LayerSystem builds and updates the GPU buffers of layers as their entity
// sets change. One system can serve any number of layers.
type LayerSystem struct {
	cfg systemConfig
}

// NewLayerSystem creates a layer system.
func NewLayerSystem(opts ...SystemOption) *LayerSystem {
	cfg := defaultSystemConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LayerSystem{cfg: cfg}
}

// SetEntities replaces a layer's entity set. Existing buffers are reused
// when the entities fit; otherwise new buffers are allocated with capacity
// rounded up to the next power of two (with the system's minimum capacity
// as a floor) and the old ones are destroyed. Shrinking never reallocates.
//
// An empty entity set leaves any allocated buffers in place and sets the
// layer's entity count to zero.
func (s *LayerSystem) SetEntities(layer *Layer, entities []Entity, device Device, queue Queue) error {
	if layer == nil {
		return ErrNilLayer
	}
	if layer.destroyed {
		return ErrLayerDestroyed
	}
	if device == nil {
		return ErrNilDevice
	}
	if queue == nil {
		return ErrNilQueue
	}

	n := len(entities)
	if n == 0 {
		layer.entityCount = 0
		return nil
	}

	if n > layer.capacity {
		if err := s.reallocate(layer, n, device); err != nil {
			return err
		}
	}
	if layer.indexBuf == nil {
		if err := s.createIndexBuffer(layer, device, queue); err != nil {
			return err
		}
	}

	if err := writeEntityData(layer, entities, queue, true); err != nil {
		return err
	}
	layer.entityCount = n
	return nil
}

// UpdateTransforms rewrites only the per-entity transforms, reusing the
// allocated buffers. The layer must have been populated by SetEntities
// first, and the entities must fit its capacity.
func (s *LayerSystem) UpdateTransforms(layer *Layer, entities []Entity, queue Queue) error {
	if err := s.checkUpdate(layer, len(entities), queue); err != nil {
		return err
	}
	if err := writeEntityData(layer, entities, queue, false); err != nil {
		return err
	}
	layer.entityCount = len(entities)
	return nil
}

// SetEntitiesFast rewrites transforms and vertices into the existing
// buffers without ever reallocating. It is the per-frame path for entity
// sets whose size is bounded by a capacity established up front.
func (s *LayerSystem) SetEntitiesFast(layer *Layer, entities []Entity, queue Queue) error {
	if err := s.checkUpdate(layer, len(entities), queue); err != nil {
		return err
	}
	if err := writeEntityData(layer, entities, queue, true); err != nil {
		return err
	}
	layer.entityCount = len(entities)
	return nil
}

// writeEntityData uploads the packed transforms, and optionally the quad
// vertices, into the layer's buffers. The entity count is left to the
// caller so a failed write never advances it.
func writeEntityData(layer *Layer, entities []Entity, queue Queue, withVertices bool) error {
	if err := queue.WriteBuffer(layer.entityBuf.Raw(), 0, transformBytes(entities)); err != nil {
		return fmt.Errorf("sprite: write entity buffer: %w", err)
	}
	if withVertices {
		if err := queue.WriteBuffer(layer.vertexBuf.Raw(), 0, vertexBytes(entities)); err != nil {
			return fmt.Errorf("sprite: write vertex buffer: %w", err)
		}
	}
	return nil
}

// checkUpdate validates the shared preconditions of the no-alloc update
// paths.
func (s *LayerSystem) checkUpdate(layer *Layer, n int, queue Queue) error {
	if layer == nil {
		return ErrNilLayer
	}
	if layer.destroyed {
		return ErrLayerDestroyed
	}
	if queue == nil {
		return ErrNilQueue
	}
	if layer.entityBuf == nil || layer.vertexBuf == nil || layer.indexBuf == nil {
		return ErrUninitialized
	}
	if n > layer.capacity {
		return fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, n, layer.capacity)
	}
	return nil
}

// reallocate replaces the layer's vertex and entity buffers with larger
// ones. The index buffer is shared across all capacities and is left
// alone.
func (s *LayerSystem) reallocate(layer *Layer, n int, device Device) error {
	capacity := nextCapacity(n, s.cfg.minCapacity)

	vertexBuf, err := NewBuffer(device,
		fmt.Sprintf("layer %d vertices", layer.id),
		uint64(capacity)*VerticesPerEntity*VertexStride,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	entityBuf, err := NewBuffer(device,
		fmt.Sprintf("layer %d entities", layer.id),
		uint64(capacity)*TransformStride,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		vertexBuf.Destroy()
		return err
	}

	// Commit: destroy the old buffers only after both new ones exist.
	if layer.vertexBuf != nil {
		layer.vertexBuf.Destroy()
	}
	if layer.entityBuf != nil {
		layer.entityBuf.Destroy()
	}
	layer.vertexBuf = vertexBuf
	layer.entityBuf = entityBuf

	Logger().Debug("sprite: layer buffers reallocated",
		"layer", layer.id,
		"entities", n,
		"capacity", capacity)

	layer.capacity = capacity
	return nil
}

// createIndexBuffer allocates and fills the shared quad index buffer. One
// quad's worth of indices serves every entity via instanced drawing.
func (s *LayerSystem) createIndexBuffer(layer *Layer, device Device, queue Queue) error {
	data := quadIndexBytes()
	indexBuf, err := NewBuffer(device,
		fmt.Sprintf("layer %d indices", layer.id),
		uint64(len(data)),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	if err := queue.WriteBuffer(indexBuf.Raw(), 0, data); err != nil {
		indexBuf.Destroy()
		return fmt.Errorf("sprite: write index buffer: %w", err)
	}
	layer.indexBuf = indexBuf
	return nil
}

// nextCapacity rounds n up to the next power of two, no smaller than min.
func nextCapacity(n, min int) int {
	if n < min {
		n = min
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}
