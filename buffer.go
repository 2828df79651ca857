package sprite

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Buffer errors.
var (
	// ErrBufferDestroyed is returned when an operation targets a buffer that
	// has already been destroyed.
	ErrBufferDestroyed = errors.New("sprite: buffer already destroyed")

	// ErrInvalidBufferSize is returned when a buffer is created with size 0.
	ErrInvalidBufferSize = errors.New("sprite: buffer size must be > 0")
)

// Buffer wraps a hal.Buffer with its creation parameters and lifecycle
// state. A Buffer is owned by exactly one Layer slot at a time; replacing
// the slot destroys the old buffer.
type Buffer struct {
	device    Device
	halBuffer hal.Buffer
	label     string
	size      uint64
	usage     gputypes.BufferUsage
	destroyed bool
}

// NewBuffer creates a GPU buffer of at least size bytes. The size is rounded
// up to a multiple of 4 to satisfy WebGPU alignment requirements.
func NewBuffer(device Device, label string, size uint64, usage gputypes.BufferUsage) (*Buffer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if size == 0 {
		return nil, ErrInvalidBufferSize
	}

	aligned := (size + 3) &^ 3

	halBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  aligned,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("sprite: create buffer %q: %w", label, err)
	}

	return &Buffer{
		device:    device,
		halBuffer: halBuf,
		label:     label,
		size:      aligned,
		usage:     usage,
	}, nil
}

// Label returns the debug label the buffer was created with.
func (b *Buffer) Label() string { return b.label }

// Size returns the allocated size in bytes (after alignment).
func (b *Buffer) Size() uint64 { return b.size }

// Usage returns the buffer's usage flags.
func (b *Buffer) Usage() gputypes.BufferUsage { return b.usage }

// Raw returns the underlying hal.Buffer for queue writes and draw binding.
// Returns nil after Destroy.
func (b *Buffer) Raw() hal.Buffer {
	if b.destroyed {
		Logger().Warn("sprite: raw handle requested from destroyed buffer", "label", b.label)
		return nil
	}
	return b.halBuffer
}

// IsDestroyed reports whether Destroy has been called.
func (b *Buffer) IsDestroyed() bool { return b.destroyed }

// Destroy releases the GPU buffer. Destroy is idempotent.
func (b *Buffer) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	if b.halBuffer != nil {
		b.device.DestroyBuffer(b.halBuffer)
		b.halBuffer = nil
	}
}
