package renderer

// flat draws pre-lit colored geometry: solids, guide lines and particles.
const flatVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uMVP;
uniform float uPointSize;

out vec3 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	gl_PointSize = uPointSize;
	vColor = aColor;
}
`

const flatFragmentSrc = `
#version 410 core

in vec3 vColor;
uniform float uAlpha;

out vec4 FragColor;

void main() {
	FragColor = vec4(vColor, uAlpha);
}
`

// liquid shades the displaced surface with its recomputed normals.
const liquidVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vNormal;
out vec3 vWorld;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorld = world.xyz;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uViewProj * world;
}
`

const liquidFragmentSrc = `
#version 410 core

in vec3 vNormal;
in vec3 vWorld;

uniform vec3 uEye;
uniform vec3 uLightDir;
uniform vec3 uColor;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 l = normalize(uLightDir);
	vec3 v = normalize(uEye - vWorld);
	float diffuse = 0.4 + 0.6 * max(dot(n, l), 0.0);
	float shine = pow(max(dot(reflect(-l, n), v), 0.0), 48.0);
	FragColor = vec4(uColor * diffuse + vec3(shine * 0.6), 1.0);
}
`

// steam evaluates the same opacity mask as steam.Mask: a soft disc carved by
// rising fractal value noise, discarded below the alpha threshold.
const steamVertexSrc = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;

uniform mat4 uMVP;

out vec2 vUV;

void main() {
	vUV = aUV;
	gl_Position = uMVP * vec4(aPos, 0.0, 1.0);
}
`

const steamFragmentSrc = `
#version 410 core

in vec2 vUV;

uniform float uTime;
uniform float uNoiseScale;
uniform float uNoiseStrength;
uniform float uRiseSpeed;
uniform float uThreshold;

out vec4 FragColor;

float hash2(int ix, int iy) {
	uint h = uint(ix) * 0x8da6b343u ^ uint(iy) * 0xd8163841u;
	h ^= h >> 15u;
	h *= 0x2c1b3c6du;
	h ^= h >> 12u;
	h *= 0x297a2d39u;
	h ^= h >> 15u;
	return float(h >> 8u) / 16777216.0;
}

float valueNoise(vec2 p) {
	vec2 f = floor(p);
	ivec2 i = ivec2(f);
	vec2 t = p - f;
	t = t * t * (3.0 - 2.0 * t);
	float a = hash2(i.x, i.y);
	float b = hash2(i.x + 1, i.y);
	float c = hash2(i.x, i.y + 1);
	float d = hash2(i.x + 1, i.y + 1);
	return mix(mix(a, b, t.x), mix(c, d, t.x), t.y);
}

float fbm(vec2 p) {
	float sum = 0.0;
	float norm = 0.0;
	float amp = 0.5;
	for (int i = 0; i < 4; i++) {
		sum += amp * valueNoise(p);
		norm += amp;
		p *= 2.0;
		amp *= 0.5;
	}
	return sum / norm;
}

void main() {
	vec2 d = (vUV - 0.5) * 2.0;
	float disc = 1.0 - smoothstep(0.2, 1.0, length(d));
	float n = fbm(vec2(vUV.x * uNoiseScale, vUV.y * uNoiseScale - uTime * uRiseSpeed));
	float alpha = disc * mix(1.0, n, uNoiseStrength);
	if (alpha < uThreshold) {
		discard;
	}
	FragColor = vec4(vec3(0.92), alpha * 0.6);
}
`
