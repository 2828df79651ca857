// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sprite

import "github.com/gogpu/gputypes"

// Default configuration values.
const (
	// DefaultMaxAtlasSize is the default per-side limit for a layer's
	// texture atlas, in pixels.
	DefaultMaxAtlasSize = 4096

	// DefaultMinCapacity is the default entity capacity floor used when a
	// layer's buffers are first allocated.
	DefaultMinCapacity = 16
)

// layerConfig holds construction-time settings for a Layer.
type layerConfig struct {
	maxAtlasSize int
	atlasFormat  gputypes.TextureFormat
}

func defaultLayerConfig() layerConfig {
	return layerConfig{
		maxAtlasSize: DefaultMaxAtlasSize,
		atlasFormat:  gputypes.TextureFormatRGBA8Unorm,
	}
}

// LayerOption configures a Layer at construction.
type LayerOption func(*layerConfig)

// WithMaxAtlasSize limits the layer's texture atlas to size x size pixels.
// AddTexture fails with ErrAtlasFull once the registered textures no longer
// pack within this limit. Values < 1 are ignored.
func WithMaxAtlasSize(size int) LayerOption {
	return func(c *layerConfig) {
		if size > 0 {
			c.maxAtlasSize = size
		}
	}
}

// WithAtlasFormat sets the pixel format of the layer's atlas texture.
// The default is gputypes.TextureFormatRGBA8Unorm.
func WithAtlasFormat(format gputypes.TextureFormat) LayerOption {
	return func(c *layerConfig) {
		if format != gputypes.TextureFormatUndefined {
			c.atlasFormat = format
		}
	}
}

// systemConfig holds construction-time settings for a LayerSystem.
type systemConfig struct {
	minCapacity int
}

func defaultSystemConfig() systemConfig {
	return systemConfig{minCapacity: DefaultMinCapacity}
}

// SystemOption configures a LayerSystem at construction.
type SystemOption func(*systemConfig)

// WithMinCapacity sets the entity capacity floor used when buffers are
// allocated. Capacities grow in powers of two starting from this floor, so
// small entity sets do not trigger a reallocation on every growth step.
// Values < 1 are ignored.
func WithMinCapacity(n int) SystemOption {
	return func(c *systemConfig) {
		if n > 0 {
			c.minCapacity = n
		}
	}
}
