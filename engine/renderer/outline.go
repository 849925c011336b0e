package renderer

import (
	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/engine/marker"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	outlineVertexCount = 5
	outlineVertexSize  = 3 * 4
	outlineUniformSize = (16 + 4) * 4
)

const outlineShaderSource = `
struct Outline {
    viewProj: mat4x4<f32>,
    color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> outline: Outline;

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return outline.viewProj * vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return outline.color;
}
`

// createOutlinePipeline builds the line-strip pipeline and the buffers it reads.
func (r *rendererImpl) createOutlinePipeline() error {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Chunk Outline Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: outlineShaderSource,
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	bindGroupLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Chunk Outline Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: outlineUniformSize,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	defer bindGroupLayout.Release()

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Chunk Outline",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bindGroupLayout},
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Chunk Outline Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: outlineVertexSize,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineStrip,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}

	r.uniformBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Chunk Outline Uniform Buffer",
		Size:  outlineUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	r.vertexBuffer, err = r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Chunk Outline Vertex Buffer",
		Size:  outlineVertexCount * outlineVertexSize,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	r.bindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Chunk Outline Bind Group",
		Layout: bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  r.uniformBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	return err
}

// outlineVertices appends the marker's world-space outline as packed float32x3 vertices.
// ok is false until the marker has been positioned.
func outlineVertices(dst []byte, m marker.ChunkMarker) ([]byte, bool) {
	if _, ok := m.Chunk(); !ok {
		return dst, false
	}
	for _, c := range marker.WorldOutline(m.Coordinates(), m.ShapeY()) {
		dst = common.Float32Bytes(dst, float32(c.X), float32(c.Y), float32(c.Z))
	}
	return dst, true
}

// outlineUniforms appends the view-projection matrix followed by the RGBA color.
func outlineUniforms(dst []byte, viewProj [16]float32, color [4]float32) []byte {
	dst = common.Float32Bytes(dst, viewProj[:]...)
	return common.Float32Bytes(dst, color[:]...)
}
