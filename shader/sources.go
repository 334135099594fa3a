package shader

// ──────────────────────────────── Raw triangle ─────────────────────────────────

// TriangleVertex passes the position through and forwards the vertex color.
const TriangleVertex = `#version 300 es
    in vec3 aPosition;
    in vec3 aColor;
    out vec3 vColor;

    void main() {
        gl_Position = vec4(aPosition, 1.0);
        vColor = aColor;
    }
`

// TriangleOrthoVertex applies a projection so the triangle keeps its shape
// in a full-window viewport.
const TriangleOrthoVertex = `#version 300 es
    uniform mat4 uProjection;
    in vec3 aPosition;
    in vec3 aColor;
    out vec3 vColor;

    void main() {
        gl_Position = uProjection * vec4(aPosition, 1.0);
        vColor = aColor;
    }
`

// TriangleFragment outputs the interpolated vertex color.
const TriangleFragment = `#version 300 es
    precision mediump float;
    in vec3 vColor;
    out vec4 fragColor;

    void main() {
        fragColor = vec4(vColor, 1.0);
    }
`

// ───────────────────────────── Scene-graph meshes ──────────────────────────────

// BasicVertex is the vertex stage of the unlit mesh material. uVertexColors
// is 1 when the geometry carries colors and 0 otherwise.
const BasicVertex = `#version 300 es
    uniform mat4 uProjection;
    uniform mat4 uModelView;
    uniform float uVertexColors;
    in vec3 aPosition;
    in vec3 aColor;
    out vec3 vColor;

    void main() {
        vColor = mix(vec3(1.0), aColor, uVertexColors);
        gl_Position = uProjection * uModelView * vec4(aPosition, 1.0);
    }
`

// BasicFragment tints the interpolated vertex color with the material color.
const BasicFragment = `#version 300 es
    precision mediump float;
    uniform vec3 uDiffuse;
    in vec3 vColor;
    out vec4 fragColor;

    void main() {
        fragColor = vec4(uDiffuse * vColor, 1.0);
    }
`
