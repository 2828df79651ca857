// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sprite

import (
	"errors"
	"fmt"
	"image"
	"sort"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Atlas errors.
var (
	// ErrAtlasFull is returned when the registered textures no longer pack
	// within the layer's maximum atlas size.
	ErrAtlasFull = errors.New("sprite: texture atlas is full")

	// ErrAtlasDestroyed is returned when an operation targets a destroyed
	// atlas.
	ErrAtlasDestroyed = errors.New("sprite: atlas already destroyed")
)

// atlasMinSize is the smallest atlas side length tried during packing.
const atlasMinSize = 64

// atlasPadding is the pixel gap kept between packed textures so linear
// sampling does not bleed across regions.
const atlasPadding = 1

// UVRect is a texture region in normalized atlas coordinates.
type UVRect struct {
	U0, V0 float32 // top-left
	U1, V1 float32 // bottom-right
}

// Atlas is a layer's combined texture: every texture registered with the
// layer packed into a single GPU texture, plus the view, sampler, and bind
// group a renderer binds for the whole layer.
type Atlas struct {
	device    Device
	size      int
	format    gputypes.TextureFormat
	img       *image.RGBA
	regions   map[TextureID]image.Rectangle
	texture   hal.Texture
	view      hal.TextureView
	sampler   hal.Sampler
	bindGroup hal.BindGroup
	destroyed bool
}

// buildAtlas packs textures into a square power-of-two atlas, uploads the
// pixels, and creates the view, sampler, and bind group. The bind group is
// created against layout, which must match AtlasBindGroupLayoutEntries.
func buildAtlas(device Device, queue Queue, layout hal.BindGroupLayout, textures []*Texture, maxSize int, format gputypes.TextureFormat, label string) (*Atlas, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}

	// Tall textures first gives shelf packing its best fill rate; ties
	// break by ID so rebuilds are deterministic.
	sorted := make([]*Texture, len(textures))
	copy(sorted, textures)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].height != sorted[j].height {
			return sorted[i].height > sorted[j].height
		}
		return sorted[i].id < sorted[j].id
	})

	size := atlasMinSize
	var regions map[TextureID]image.Rectangle
	for {
		if size > maxSize {
			return nil, fmt.Errorf("%w: %d textures exceed %dx%d", ErrAtlasFull, len(textures), maxSize, maxSize)
		}
		var ok bool
		regions, ok = packShelves(sorted, size)
		if ok {
			break
		}
		size *= 2
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for _, tex := range sorted {
		r := regions[tex.id]
		xdraw.Copy(img, r.Min, tex.img, tex.img.Bounds(), xdraw.Src, nil)
	}

	a := &Atlas{
		device:  device,
		size:    size,
		format:  format,
		img:     img,
		regions: regions,
	}
	if err := a.upload(queue, label); err != nil {
		a.Destroy()
		return nil, err
	}
	if err := a.createBindGroup(layout, label); err != nil {
		a.Destroy()
		return nil, err
	}

	Logger().Debug("sprite: atlas built",
		"label", label,
		"size", size,
		"textures", len(textures))

	return a, nil
}

// packShelves places textures on horizontal shelves inside a size x size
// square. Textures must already be sorted by descending height.
func packShelves(sorted []*Texture, size int) (map[TextureID]image.Rectangle, bool) {
	regions := make(map[TextureID]image.Rectangle, len(sorted))
	x, y, shelfH := 0, 0, 0
	for _, tex := range sorted {
		w, h := tex.width, tex.height
		if w > size || h > size {
			return nil, false
		}
		if x+w > size {
			// Next shelf.
			y += shelfH + atlasPadding
			x = 0
			shelfH = 0
		}
		if y+h > size {
			return nil, false
		}
		regions[tex.id] = image.Rect(x, y, x+w, y+h)
		x += w + atlasPadding
		if h > shelfH {
			shelfH = h
		}
	}
	return regions, true
}

// upload creates the GPU texture and writes the composed pixels.
func (a *Atlas) upload(queue Queue, label string) error {
	tex, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(a.size),
			Height:             uint32(a.size),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        a.format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("sprite: create atlas texture: %w", err)
	}
	a.texture = tex

	err = queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		a.img.Pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(a.size * 4),
			RowsPerImage: uint32(a.size),
		},
		&hal.Extent3D{
			Width:              uint32(a.size),
			Height:             uint32(a.size),
			DepthOrArrayLayers: 1,
		},
	)
	if err != nil {
		return fmt.Errorf("sprite: write atlas texture: %w", err)
	}
	return nil
}

// createBindGroup creates the view, sampler, and bind group for rendering.
func (a *Atlas) createBindGroup(layout hal.BindGroupLayout, label string) error {
	view, err := a.device.CreateTextureView(a.texture, &hal.TextureViewDescriptor{
		Label:           label + " view",
		Format:          a.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
	})
	if err != nil {
		return fmt.Errorf("sprite: create atlas view: %w", err)
	}
	a.view = view

	sampler, err := a.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label + " sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("sprite: create atlas sampler: %w", err)
	}
	a.sampler = sampler

	group, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label,
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.TextureViewBinding{
					TextureView: nativeHandle(view),
				},
			},
			{
				Binding: 1,
				Resource: gputypes.SamplerBinding{
					Sampler: nativeHandle(sampler),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sprite: create atlas bind group: %w", err)
	}
	a.bindGroup = group
	return nil
}

// Size returns the atlas side length in pixels.
func (a *Atlas) Size() int { return a.size }

// BindGroup returns the atlas bind group, or nil after Destroy.
func (a *Atlas) BindGroup() hal.BindGroup {
	if a.destroyed {
		return nil
	}
	return a.bindGroup
}

// Region returns the pixel rectangle of a texture inside the atlas.
func (a *Atlas) Region(id TextureID) (image.Rectangle, bool) {
	r, ok := a.regions[id]
	return r, ok
}

// UV returns a texture's atlas region in normalized coordinates, for
// building entity vertices.
func (a *Atlas) UV(id TextureID) (UVRect, bool) {
	r, ok := a.regions[id]
	if !ok {
		return UVRect{}, false
	}
	s := float32(a.size)
	return UVRect{
		U0: float32(r.Min.X) / s,
		V0: float32(r.Min.Y) / s,
		U1: float32(r.Max.X) / s,
		V1: float32(r.Max.Y) / s,
	}, true
}

// Destroy releases every GPU resource the atlas holds. Destroy is
// idempotent.
func (a *Atlas) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	if a.bindGroup != nil {
		a.device.DestroyBindGroup(a.bindGroup)
		a.bindGroup = nil
	}
	if a.sampler != nil {
		a.device.DestroySampler(a.sampler)
		a.sampler = nil
	}
	if a.view != nil {
		a.device.DestroyTextureView(a.view)
		a.view = nil
	}
	if a.texture != nil {
		a.device.DestroyTexture(a.texture)
		a.texture = nil
	}
}

// AtlasBindGroupLayoutEntries returns the layout entries an atlas bind
// group is created against: a filtering 2D texture at binding 0 and its
// sampler at binding 1, both visible to the fragment stage. Pipeline owners
// use this to create the hal.BindGroupLayout passed to AddTexture.
func AtlasBindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageFragment,
			Sampler: &gputypes.SamplerBindingLayout{
				Type: gputypes.SamplerBindingTypeFiltering,
			},
		},
	}
}

// nativeHandle extracts the backend handle from a HAL resource, when the
// backend exposes one. Mock backends used in tests typically do not.
func nativeHandle(v any) uintptr {
	if h, ok := v.(hal.NativeHandle); ok {
		return h.NativeHandle()
	}
	return 0
}
