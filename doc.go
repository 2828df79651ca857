// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sprite manages the GPU-resident render data for 2D draw layers.
//
// # Overview
//
// A Layer groups the textures and GPU buffers that belong to a single draw
// group: a texture atlas backing every texture registered with the layer, and
// vertex, index, and per-entity instance buffers for all entities currently
// drawn in that group. A LayerSystem (re)builds or updates a layer's buffers
// as its entity set changes.
//
// sprite RECEIVES the GPU device and queue from the host application, it does
// NOT create them. Any gogpu/wgpu hal.Device and hal.Queue satisfy the
// package's Device and Queue interfaces.
//
// # Quick Start
//
//	layer := sprite.NewLayer(0)
//	system := sprite.NewLayerSystem()
//
//	// Full rebuild whenever the entity set grows beyond capacity.
//	if err := system.SetEntities(layer, entities, device, queue); err != nil {
//	    return err
//	}
//
//	// Per-frame transform updates reuse the allocated buffers.
//	if err := system.UpdateTransforms(layer, entities, queue); err != nil {
//	    return err
//	}
//
//	// The renderer collaborator reads the handles for draw submission.
//	vb := layer.VertexBuffer()
//	ib := layer.IndexBuffer()
//	eb := layer.EntityBuffer()
//	bg := layer.BindGroup()
//	n := layer.IndexCount()
//
// # Ownership
//
// Buffer and bind-group handles are exclusively owned by the Layer. Replaced
// buffers are released immediately; Destroy releases everything the layer
// still holds. The device and queue are externally owned, shared, thread-safe
// handles.
//
// # Concurrency
//
// A Layer assumes a single owner: all mutation (SetEntities,
// UpdateTransforms, SetEntitiesFast, AddTexture) requires exclusive access
// for the duration of the call. The package performs no internal locking.
package sprite

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
