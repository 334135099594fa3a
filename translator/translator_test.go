package translator

import (
	"strings"
	"testing"

	"github.com/richinsley/gotriangle/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fragment = `#version 300 es
    precision mediump float;
    in vec3 vColor;
    out vec4 fragColor;

    void main() {
        fragColor = vec4(vColor, 1.0);
    }
`

func TestDirectiveDesktop(t *testing.T) {
	res, err := Directive{Target: gpu.TargetGLSL410}.Translate(fragment, gpu.FragmentStage)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Code, "#version 410 core\n"))
	assert.Contains(t, res.Code, "fragColor = vec4(vColor, 1.0);")
	assert.Equal(t, "vColor", res.Names.Name("vColor"))
}

func TestDirectiveES(t *testing.T) {
	res, err := Directive{Target: gpu.TargetESSL300}.Translate(fragment, gpu.FragmentStage)
	require.NoError(t, err)
	assert.Equal(t, fragment, res.Code)
}

func TestDirectiveMissingVersion(t *testing.T) {
	_, err := Directive{}.Translate("void main() {}", gpu.VertexStage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vertex shader")
}

func TestNameMap(t *testing.T) {
	names := NameMap{"aPosition": "_uaPosition", "aColor": ""}
	assert.Equal(t, "_uaPosition", names.Name("aPosition"))
	assert.Equal(t, "aColor", names.Name("aColor"))
	assert.Equal(t, "other", names.Name("other"))
	assert.Equal(t, "other", NameMap(nil).Name("other"))
}

func TestANGLE(t *testing.T) {
	if testing.Short() {
		t.Skip("starts the translator runtime")
	}
	tr := ANGLE{Target: gpu.TargetGLSL410}

	res, err := tr.Translate(fragment, gpu.FragmentStage)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Code)

	broken := strings.Replace(fragment, "fragColor = vec4(vColor, 1.0);", "fragColor = vec4(vColor, 1.0)", 1)
	_, err = tr.Translate(broken, gpu.FragmentStage)
	assert.Error(t, err)
}

func TestForDevice(t *testing.T) {
	caps := gpu.Capability{Major: 4, Minor: 1, Target: gpu.TargetGLSL410}
	assert.Equal(t, ANGLE{Target: gpu.TargetGLSL410}, ForDevice(caps, true))
	assert.Equal(t, Directive{Target: gpu.TargetGLSL410}, ForDevice(caps, false))

	caps.Target = gpu.TargetESSL300
	assert.Equal(t, Directive{Target: gpu.TargetESSL300}, ForDevice(caps, false))
}
