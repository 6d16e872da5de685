package gldevice

// MaxLights is how many dynamic lights one batch is lit by.
const MaxLights = 8

const vertexSrc = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aST;
layout(location = 2) in vec4 aColor;

uniform mat4 uModelView;
uniform mat4 uProjection;
uniform vec4 uClipPlane;

out vec2 vST;
out vec4 vColor;
out vec3 vLocal;
out float vDepth;

void main() {
	vec4 eye = uModelView * vec4(aPos, 1.0);
	gl_ClipDistance[0] = dot(eye, uClipPlane);
	gl_Position = uProjection * eye;
	vST = aST;
	vColor = aColor;
	vLocal = aPos;
	vDepth = -eye.z;
}
`

const fragmentSrc = `#version 410 core
in vec2 vST;
in vec4 vColor;
in vec3 vLocal;
in float vDepth;

uniform sampler2D uTexture;
uniform vec4 uColor;
uniform float uAlphaRef;

// 0 off, 1 linear, 2 exponential
uniform int uFogMode;
uniform vec3 uFogColor;
uniform float uFogStart;
uniform float uFogEnd;
uniform float uFogDensity;

uniform int uNumLights;
uniform vec3 uLightPos[MAX_LIGHTS];
uniform vec3 uLightColor[MAX_LIGHTS];
// negative for directed lights, which light everything
uniform float uLightRadius[MAX_LIGHTS];

out vec4 fragColor;

void main() {
	vec4 c = texture(uTexture, vST) * vColor * uColor;
	if (c.a < uAlphaRef) {
		discard;
	}

	vec3 light = vec3(0.0);
	for (int i = 0; i < uNumLights; i++) {
		float f = 1.0;
		if (uLightRadius[i] > 0.0) {
			f = clamp(1.0 - distance(vLocal, uLightPos[i]) / uLightRadius[i], 0.0, 1.0);
		}
		light += uLightColor[i] * f;
	}
	c.rgb += c.rgb * light;

	if (uFogMode == 1) {
		float f = clamp((uFogEnd - vDepth) / max(uFogEnd - uFogStart, 0.001), 0.0, 1.0);
		c.rgb = mix(uFogColor, c.rgb, f);
	} else if (uFogMode == 2) {
		float f = clamp(exp(-uFogDensity * vDepth), 0.0, 1.0);
		c.rgb = mix(uFogColor, c.rgb, f);
	}
	fragColor = c;
}
`
