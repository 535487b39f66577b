package shaders

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fosdem/glbootstrap/lib/geometry"
	"github.com/fosdem/glbootstrap/lib/metrics"
	"github.com/fosdem/glbootstrap/lib/rendering/glapi"
	"github.com/fosdem/glbootstrap/lib/rendering/glapi/glfake"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testData = &ShaderData{GLSLVersion: "330 core", Layout: geometry.Interleaved}

func newTestCompiler(gl glapi.API) (*Compiler, *bytes.Buffer) {
	var diag bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCompiler(gl, &diag, logger), &diag
}

func renderDefaults(t *testing.T) (string, string) {
	s, err := NewShaderer()
	require.NoError(t, err)
	vert, err := s.GetShaderSource(VertexTemplate, testData)
	require.NoError(t, err)
	frag, err := s.GetShaderSource(FragmentTemplate, testData)
	require.NoError(t, err)
	return vert, frag
}

func TestTemplatesFollowLayout(t *testing.T) {
	vert, frag := renderDefaults(t)

	assert.True(t, strings.HasPrefix(vert, "#version 330 core\n"))
	assert.Contains(t, vert, "layout (location = 0) in vec3 aPos;")
	assert.Contains(t, vert, "layout (location = 1) in vec3 aColor;")
	assert.Contains(t, vert, "ourColor = aColor;")
	assert.Contains(t, frag, "in vec3 ourColor;")

	layout := geometry.Interleaved
	layout.Colour.Location = 4
	s, err := NewShaderer()
	require.NoError(t, err)
	vert, err = s.GetShaderSource(VertexTemplate, &ShaderData{GLSLVersion: "410 core", Layout: layout})
	require.NoError(t, err)
	assert.Contains(t, vert, "layout (location = 4) in vec3 aColor;")
	assert.True(t, strings.HasPrefix(vert, "#version 410 core\n"))
}

func TestTemplateNames(t *testing.T) {
	s, err := NewShaderer()
	require.NoError(t, err)
	assert.Equal(t, []string{FragmentTemplate, VertexTemplate}, s.TemplateNames())
}

func TestOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flat.frag")
	require.NoError(t, os.WriteFile(path, []byte("#version {{.GLSLVersion}}\nout vec4 FragColor;\nvoid main() { FragColor = vec4(1.0); }\n"), 0o644))

	s, err := NewShaderer()
	require.NoError(t, err)
	require.NoError(t, s.Override(FragmentTemplate, path))

	frag, err := s.GetShaderSource(FragmentTemplate, testData)
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\nout vec4 FragColor;\nvoid main() { FragColor = vec4(1.0); }\n", frag)

	assert.Error(t, s.Override("nope.geom", path))
	assert.Error(t, s.Override(VertexTemplate, filepath.Join(dir, "missing.vert")))
}

func TestBuildProgramLinks(t *testing.T) {
	gl := glfake.New()
	c, diag := newTestCompiler(gl)
	s, err := NewShaderer()
	require.NoError(t, err)

	p, err := BuildProgram(c, s, testData)
	require.NoError(t, err)

	assert.Equal(t, Linked, p.Status)
	assert.True(t, p.Usable())
	assert.NoError(t, p.Err())
	assert.Empty(t, diag.String())

	require.Len(t, gl.Programs[p.Handle].Attached, 2)
	for _, id := range gl.Programs[p.Handle].Attached {
		assert.True(t, gl.Shaders[id].Deleted)
	}
}

func TestVertexCompileFailureIsReported(t *testing.T) {
	gl := glfake.New()
	c, diag := newTestCompiler(gl)
	_, frag := renderDefaults(t)

	vs := c.CompileStage(Vertex, "#version 330 core\nvoid mian() {}\n")
	assert.Equal(t, CompileFailed, vs.Status)
	assert.NotEmpty(t, vs.Log)
	assert.True(t, strings.HasPrefix(diag.String(), "ERROR::SHADER::VERTEX::COMPILATION_FAILED\n"))
	assert.Contains(t, diag.String(), vs.Log)

	var compileErr *CompileError
	require.ErrorAs(t, vs.Err(), &compileErr)
	assert.Equal(t, Vertex, compileErr.Kind)

	// the sequence keeps going after a failed stage
	fs := c.CompileStage(Fragment, frag)
	assert.Equal(t, Compiled, fs.Status)
	p := c.LinkProgram(vs, fs)
	assert.Equal(t, LinkFailed, p.Status)
	assert.False(t, p.Usable())
	assert.Contains(t, diag.String(), "ERROR::SHADER::PROGRAM::LINKING_FAILED\n")
}

func TestFragmentCompileFailureIsReported(t *testing.T) {
	gl := glfake.New()
	c, diag := newTestCompiler(gl)

	fs := c.CompileStage(Fragment, "out vec4 FragColor;")
	assert.Equal(t, CompileFailed, fs.Status)
	assert.Equal(t, "ERROR::SHADER::FRAGMENT::COMPILATION_FAILED\n"+fs.Log+"\n", diag.String())
	assert.False(t, fs.Released)
}

func TestFailuresAreCounted(t *testing.T) {
	vertexFailures := metrics.ShaderFailures.WithLabelValues("VERTEX")
	linkFailures := metrics.ShaderFailures.WithLabelValues("PROGRAM")
	beforeVertex := testutil.ToFloat64(vertexFailures)
	beforeLink := testutil.ToFloat64(linkFailures)

	gl := glfake.New()
	c, _ := newTestCompiler(gl)
	_, frag := renderDefaults(t)
	c.LinkProgram(c.CompileStage(Vertex, "void main() {}"), c.CompileStage(Fragment, frag))

	assert.Equal(t, beforeVertex+1, testutil.ToFloat64(vertexFailures))
	assert.Equal(t, beforeLink+1, testutil.ToFloat64(linkFailures))
}

func TestCompileLogIsBounded(t *testing.T) {
	gl := glfake.New()
	gl.CompileCheck = func(uint32, string) (string, bool) {
		return strings.Repeat("x", 4000), false
	}
	c, diag := newTestCompiler(gl)

	s := c.CompileStage(Vertex, "anything")
	assert.LessOrEqual(t, len(s.Log), InfoLogSize)
	lines := strings.SplitN(diag.String(), "\n", 2)
	require.Len(t, lines, 2)
	assert.LessOrEqual(t, len(strings.TrimSuffix(lines[1], "\n")), InfoLogSize)
}

func TestLinkFailureReleasesStages(t *testing.T) {
	gl := glfake.New()
	c, diag := newTestCompiler(gl)
	vert, _ := renderDefaults(t)

	// compiles on its own, but reads an input the vertex stage never writes
	frag := "#version 330 core\nout vec4 FragColor;\nin vec3 vertexColour;\nvoid main()\n{\n    FragColor = vec4(vertexColour, 1.0);\n}\n"

	vs := c.CompileStage(Vertex, vert)
	fs := c.CompileStage(Fragment, frag)
	require.Equal(t, Compiled, vs.Status)
	require.Equal(t, Compiled, fs.Status)

	p := c.LinkProgram(vs, fs)
	assert.Equal(t, LinkFailed, p.Status)
	assert.Contains(t, p.Log, "vertexColour")
	assert.Equal(t, "ERROR::SHADER::PROGRAM::LINKING_FAILED\n"+p.Log+"\n", diag.String())

	var linkErr *LinkError
	require.ErrorAs(t, p.Err(), &linkErr)

	assert.True(t, vs.Released)
	assert.True(t, fs.Released)
	assert.True(t, gl.Shaders[vs.Handle].Deleted)
	assert.True(t, gl.Shaders[fs.Handle].Deleted)
	assert.Equal(t, 1, countCalls(gl, fmt.Sprintf("DeleteShader(%d)", vs.Handle)))
	assert.Equal(t, 1, countCalls(gl, fmt.Sprintf("DeleteShader(%d)", fs.Handle)))
}

func TestProgramRelease(t *testing.T) {
	gl := glfake.New()
	c, _ := newTestCompiler(gl)
	s, err := NewShaderer()
	require.NoError(t, err)
	p, err := BuildProgram(c, s, testData)
	require.NoError(t, err)

	p.Release(gl)
	p.Release(gl)

	assert.True(t, gl.Programs[p.Handle].Deleted)
	assert.Equal(t, 1, gl.CallCount("DeleteProgram"))
	assert.False(t, p.Usable())

	var nilProgram *Program
	nilProgram.Release(gl)
	assert.False(t, nilProgram.Usable())
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "VERTEX", Vertex.String())
	assert.Equal(t, "FRAGMENT", Fragment.String())
	assert.Equal(t, "LINK_FAILED", LinkFailed.String())
	assert.Equal(t, "UNCOMPILED", Uncompiled.String())
}

func countCalls(gl *glfake.GL, call string) int {
	n := 0
	for _, c := range gl.Calls {
		if c == call {
			n++
		}
	}
	return n
}
