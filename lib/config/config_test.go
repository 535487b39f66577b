package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fosdem/glbootstrap/lib/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "LearnOpenGL", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "330 core", cfg.GLSLVersion())
	assert.Equal(t, utils.Colour{R: 0.2, G: 0.3, B: 0.3, A: 1}, cfg.Background())
	assert.Nil(t, cfg.Api)

	v, err := cfg.Vertices()
	require.NoError(t, err)
	assert.Len(t, v, 27)
}

func TestParseResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "my.frag", "#version 330 core\nvoid main() {}\n")
	writeFile(t, dir, "tri.yaml", `vertices:
  - position: [-0.5, -0.5, 0.0]
    colour: [1.0, 0.0, 0.0]
  - position: [0.5, -0.5, 0.0]
    colour: [0.0, 1.0, 0.0]
  - position: [0.0, 0.5, 0.0]
    colour: [0.0, 0.0, 1.0]
`)
	path := writeFile(t, dir, "glbootstrap.yaml", `window:
  title: Triangles
  width: 1280
  height: 720
  gl_major: 4
  gl_minor: 1
background_colour: "#000000ff"
shaders:
  fragment: my.frag
geometry: tri.yaml
render:
  wireframe: true
api:
  bind: "127.0.0.1:8080"
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "Triangles", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "410 core", cfg.GLSLVersion())
	assert.Equal(t, CfgPath(filepath.Join(dir, "my.frag")), cfg.Shaders.Fragment)
	assert.Equal(t, CfgPath(""), cfg.Shaders.Vertex)
	assert.Equal(t, utils.Colour{R: 0, G: 0, B: 0, A: 1}, cfg.Background())
	assert.True(t, cfg.Render.Wireframe)
	require.NotNil(t, cfg.Api)
	assert.Equal(t, "127.0.0.1:8080", cfg.Api.Bind)

	v, err := cfg.Vertices()
	require.NoError(t, err)
	assert.Len(t, v, 3)
}

func TestParseFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "min.yaml", "render:\n  point_size: 20.0\n")

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Window, cfg.Window)
	assert.Equal(t, float32(20), cfg.Render.PointSize)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"zero size":        func(c *Config) { c.Window.Width = 0 },
		"no core profile":  func(c *Config) { c.Window.GLMajor, c.Window.GLMinor = 3, 1 },
		"bad colour":       func(c *Config) { c.BackgroundColour = "teal" },
		"missing shader":   func(c *Config) { c.Shaders.Vertex = "/does/not/exist.vert" },
		"missing geometry": func(c *Config) { c.Geometry = "/does/not/exist.yaml" },
		"negative width":   func(c *Config) { c.Render.LineWidth = -1 },
		"api without bind": func(c *Config) { c.Api = &ApiCfg{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Parse(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, dir, "bad.yaml", "window:\n  width: [1, 2]\n")
	_, err = Parse(path)
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, `"LearnOpenGL" 800x600, OpenGL 3.3 core`)
	assert.Contains(t, s, "vertex: (built-in)")
	assert.Contains(t, s, "Background: #334d4dff")
}

func TestGLSLVersionFollowsContext(t *testing.T) {
	cases := []struct {
		major, minor int
		want         string
	}{
		{3, 2, "150 core"},
		{3, 3, "330 core"},
		{4, 1, "410 core"},
		{4, 6, "460 core"},
	}
	for _, c := range cases {
		dir := t.TempDir()
		path := writeFile(t, dir, "gl.yaml", fmt.Sprintf("window:\n  gl_major: %d\n  gl_minor: %d\n", c.major, c.minor))
		cfg, err := Parse(path)
		require.NoError(t, err)
		assert.Equal(t, c.want, cfg.GLSLVersion())
	}

	cfg := Default()
	cfg.Shaders.GLSLVersion = "300 es"
	assert.Equal(t, "300 es", cfg.GLSLVersion())
}

func TestLoneGLMinorIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "minor.yaml", "window:\n  gl_minor: 5\n")

	_, err := Parse(path)
	assert.Error(t, err)
}

func TestGeometryIsReadOnce(t *testing.T) {
	dir := t.TempDir()
	tri := `vertices:
  - position: [-0.5, -0.5, 0.0]
    colour: [1.0, 0.0, 0.0]
  - position: [0.5, -0.5, 0.0]
    colour: [0.0, 1.0, 0.0]
  - position: [0.0, 0.5, 0.0]
    colour: [0.0, 0.0, 1.0]
`
	geom := writeFile(t, dir, "tri.yaml", tri)
	path := writeFile(t, dir, "glbootstrap.yaml", "geometry: tri.yaml\n")

	cfg, err := Parse(path)
	require.NoError(t, err)

	// the file was validated during Parse and is not read again
	require.NoError(t, os.Remove(geom))
	v, err := cfg.Vertices()
	require.NoError(t, err)
	assert.Len(t, v, 3)

	v[0].Colour[0] = 0.5
	again, err := cfg.Vertices()
	require.NoError(t, err)
	assert.Equal(t, float32(1), again[0].Colour[0])

	cfg.Geometry = CfgPath(filepath.Join(dir, "other.yaml"))
	_, err = cfg.Vertices()
	assert.Error(t, err)
}
