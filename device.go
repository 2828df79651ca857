// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sprite

import (
	"errors"

	"github.com/gogpu/wgpu/hal"
)

// Device/queue errors.
var (
	// ErrNilDevice is returned when an operation requires a device and none
	// was provided.
	ErrNilDevice = errors.New("sprite: device is nil")

	// ErrNilQueue is returned when an operation requires a queue and none
	// was provided.
	ErrNilQueue = errors.New("sprite: queue is nil")
)

// Device provides GPU resource creation from the host application.
//
// This interface is the primary integration point between sprite and GPU
// frameworks built on gogpu/wgpu. The host application owns the device and
// passes it to sprite operations; sprite never creates a device of its own.
//
// Device is a subset of hal.Device, so any hal.Device satisfies it. Declaring
// only the methods sprite calls keeps the package testable without a GPU.
type Device interface {
	// CreateBuffer creates a GPU buffer.
	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)

	// DestroyBuffer releases a GPU buffer.
	DestroyBuffer(buffer hal.Buffer)

	// CreateTexture creates a GPU texture.
	CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error)

	// DestroyTexture releases a GPU texture.
	DestroyTexture(texture hal.Texture)

	// CreateTextureView creates a view for a texture.
	CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error)

	// DestroyTextureView releases a texture view.
	DestroyTextureView(view hal.TextureView)

	// CreateSampler creates a texture sampler.
	CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error)

	// DestroySampler releases a sampler.
	DestroySampler(sampler hal.Sampler)

	// CreateBindGroup creates a bind group.
	CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error)

	// DestroyBindGroup releases a bind group.
	DestroyBindGroup(group hal.BindGroup)
}

// Any hal.Device satisfies Device.
var _ Device = (hal.Device)(nil)

// Queue provides ordered submission of buffer and texture writes.
//
// Writes enqueue work and return immediately; they are ordered relative to
// other operations submitted through the same queue handle. Queue is a subset
// of hal.Queue, so any hal.Queue satisfies it.
type Queue interface {
	// WriteBuffer writes data to a buffer at the given byte offset.
	WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error

	// WriteTexture writes pixel data to a texture.
	WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error
}

// Any hal.Queue satisfies Queue.
var _ Queue = (hal.Queue)(nil)
