package compositor

import "github.com/axiom-wm/axiom/gpupipe"

// shaderSources returns the WGSL source text for every ShaderKind
// gpupipe.Manager must compile eagerly at startup. Each stage's entry
// point is always "main" (gpupipe's fixed convention); these are the
// minimal real WGSL programs that satisfy each kind's documented role in
// the shadow -> blur -> window render-pass ordering.
func shaderSources() map[gpupipe.ShaderKind]gpupipe.Source {
	return map[gpupipe.ShaderKind]gpupipe.Source{
		gpupipe.WindowVertex: {
			Stage: gpupipe.StageVertex,
			Code:  windowVertexWGSL,
		},
		gpupipe.WindowFragment: {
			Stage: gpupipe.StageFragment,
			Code:  windowFragmentWGSL,
		},
		gpupipe.BlurHorizontal: {
			Stage: gpupipe.StageFragment,
			Code:  blurHorizontalWGSL,
		},
		gpupipe.BlurVertical: {
			Stage: gpupipe.StageFragment,
			Code:  blurVerticalWGSL,
		},
		gpupipe.DropShadow: {
			Stage: gpupipe.StageFragment,
			Code:  dropShadowWGSL,
		},
		gpupipe.RoundedCorners: {
			Stage: gpupipe.StageFragment,
			Code:  roundedCornersWGSL,
		},
		gpupipe.AnimationTransform: {
			Stage: gpupipe.StageVertex,
			Code:  animationTransformWGSL,
		},
	}
}

const windowVertexWGSL = `
struct VertexOut {
  @builtin(position) position: vec4<f32>,
  @location(0) uv: vec2<f32>,
}

struct Transform {
  rect: vec4<f32>,
  viewport: vec2<f32>,
}

@group(0) @binding(0) var<uniform> transform: Transform;

@vertex
fn main(@builtin(vertex_index) idx: u32) -> VertexOut {
  var corners = array<vec2<f32>, 4>(
    vec2<f32>(0.0, 0.0),
    vec2<f32>(1.0, 0.0),
    vec2<f32>(0.0, 1.0),
    vec2<f32>(1.0, 1.0),
  );
  let corner = corners[idx];
  let px = transform.rect.xy + corner * transform.rect.zw;
  let ndc = (px / transform.viewport) * 2.0 - vec2<f32>(1.0, 1.0);

  var out: VertexOut;
  out.position = vec4<f32>(ndc.x, -ndc.y, 0.0, 1.0);
  out.uv = corner;
  return out;
}
`

const windowFragmentWGSL = `
@group(0) @binding(1) var windowTexture: texture_2d<f32>;
@group(0) @binding(2) var windowSampler: sampler;

@fragment
fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
  return textureSample(windowTexture, windowSampler, uv);
}
`

const blurHorizontalWGSL = `
@group(0) @binding(0) var sourceTexture: texture_2d<f32>;
@group(0) @binding(1) var sourceSampler: sampler;
@group(0) @binding(2) var<uniform> radius: f32;

@fragment
fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
  let texel = 1.0 / vec2<f32>(textureDimensions(sourceTexture));
  var acc = vec4<f32>(0.0);
  var total = 0.0;
  let taps = i32(radius);
  for (var i = -taps; i <= taps; i = i + 1) {
    let weight = 1.0 - abs(f32(i)) / (radius + 1.0);
    acc = acc + textureSample(sourceTexture, sourceSampler, uv + vec2<f32>(f32(i) * texel.x, 0.0)) * weight;
    total = total + weight;
  }
  return acc / total;
}
`

const blurVerticalWGSL = `
@group(0) @binding(0) var sourceTexture: texture_2d<f32>;
@group(0) @binding(1) var sourceSampler: sampler;
@group(0) @binding(2) var<uniform> radius: f32;

@fragment
fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
  let texel = 1.0 / vec2<f32>(textureDimensions(sourceTexture));
  var acc = vec4<f32>(0.0);
  var total = 0.0;
  let taps = i32(radius);
  for (var i = -taps; i <= taps; i = i + 1) {
    let weight = 1.0 - abs(f32(i)) / (radius + 1.0);
    acc = acc + textureSample(sourceTexture, sourceSampler, uv + vec2<f32>(0.0, f32(i) * texel.y)) * weight;
    total = total + weight;
  }
  return acc / total;
}
`

const dropShadowWGSL = `
struct ShadowParams {
  size: f32,
  blurRadius: f32,
  offset: vec2<f32>,
  opacity: f32,
  color: vec4<f32>,
}

@group(0) @binding(0) var<uniform> shadow: ShadowParams;

@fragment
fn main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
  let centered = uv - vec2<f32>(0.5, 0.5);
  let dist = length(centered) * 2.0;
  let falloff = clamp(1.0 - dist, 0.0, 1.0);
  return vec4<f32>(shadow.color.rgb, shadow.color.a * shadow.opacity * falloff);
}
`

const roundedCornersWGSL = `
struct CornerParams {
  size: vec2<f32>,
  radius: f32,
}

@group(0) @binding(3) var<uniform> corner: CornerParams;

fn roundedAlpha(uv: vec2<f32>) -> f32 {
  let halfSize = corner.size * 0.5;
  let p = uv * corner.size - halfSize;
  let q = abs(p) - (halfSize - vec2<f32>(corner.radius, corner.radius));
  let d = length(max(q, vec2<f32>(0.0, 0.0))) + min(max(q.x, q.y), 0.0) - corner.radius;
  return 1.0 - smoothstep(-1.0, 1.0, d);
}

@fragment
fn main(@location(0) uv: vec2<f32>, @location(1) baseColor: vec4<f32>) -> @location(0) vec4<f32> {
  return vec4<f32>(baseColor.rgb, baseColor.a * roundedAlpha(uv));
}
`

const animationTransformWGSL = `
struct AnimatedTransform {
  rect: vec4<f32>,
  viewport: vec2<f32>,
  scale: vec2<f32>,
  opacity: f32,
  rotation: f32,
}

@group(0) @binding(0) var<uniform> transform: AnimatedTransform;

struct VertexOut {
  @builtin(position) position: vec4<f32>,
  @location(0) uv: vec2<f32>,
  @location(2) opacity: f32,
}

@vertex
fn main(@builtin(vertex_index) idx: u32) -> VertexOut {
  var corners = array<vec2<f32>, 4>(
    vec2<f32>(0.0, 0.0),
    vec2<f32>(1.0, 0.0),
    vec2<f32>(0.0, 1.0),
    vec2<f32>(1.0, 1.0),
  );
  let corner = corners[idx];
  let centered = (corner - vec2<f32>(0.5, 0.5)) * transform.scale;
  let c = cos(transform.rotation);
  let s = sin(transform.rotation);
  let rotated = vec2<f32>(centered.x * c - centered.y * s, centered.x * s + centered.y * c);
  let px = transform.rect.xy + (rotated + vec2<f32>(0.5, 0.5)) * transform.rect.zw;
  let ndc = (px / transform.viewport) * 2.0 - vec2<f32>(1.0, 1.0);

  var out: VertexOut;
  out.position = vec4<f32>(ndc.x, -ndc.y, 0.0, 1.0);
  out.uv = corner;
  out.opacity = transform.opacity;
  return out;
}
`
