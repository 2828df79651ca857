// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sprite

import "github.com/gogpu/gputypes"

// VertexLayouts returns the vertex buffer layouts a render pipeline binds
// to draw a layer: slot 0 is the quad vertex buffer (position and texture
// coordinate, stepped per vertex), slot 1 is the entity buffer (the two
// rows of each transform, stepped per instance).
//
// Shader locations: 0 position, 1 texcoord, 2 and 3 transform rows.
func VertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		},
		{
			ArrayStride: TransformStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
			},
		},
	}
}
