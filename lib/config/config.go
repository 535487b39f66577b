package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fosdem/glbootstrap/lib/geometry"
	"github.com/fosdem/glbootstrap/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Window           WindowCfg
	BackgroundColour string `yaml:"background_colour"`
	Shaders          ShadersCfg
	Geometry         CfgPath
	Render           RenderCfg
	Api              *ApiCfg

	vertices     []geometry.Vertex
	verticesFrom CfgPath
}

type WindowCfg struct {
	Title     string
	Width     int
	Height    int
	GLMajor   int  `yaml:"gl_major"`
	GLMinor   int  `yaml:"gl_minor"`
	FixedSize bool `yaml:"fixed_size"`
}

type ShadersCfg struct {
	Vertex      CfgPath
	Fragment    CfgPath
	GLSLVersion string `yaml:"glsl_version"`
}

type RenderCfg struct {
	Wireframe bool
	LineWidth float32 `yaml:"line_width"`
	PointSize float32 `yaml:"point_size"`
}

type ApiCfg struct {
	Bind string
}

// Default is what runs when no config file is given.
func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Title:   "LearnOpenGL",
			Width:   800,
			Height:  600,
			GLMajor: 3,
			GLMinor: 3,
		},
	}
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}

	m := yaml.NewDecoder(f)
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	cfg.applyDefaults()
	cfg.resolvePaths(filepath.Dir(absFilename))

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in whatever the file left out.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Width == 0 && c.Window.Height == 0 {
		c.Window.Width = d.Window.Width
		c.Window.Height = d.Window.Height
	}
	// a lone gl_minor is left for Validate to reject
	if c.Window.GLMajor == 0 && c.Window.GLMinor == 0 {
		c.Window.GLMajor = d.Window.GLMajor
		c.Window.GLMinor = d.Window.GLMinor
	}
}

func (c *Config) resolvePaths(base string) {
	c.Shaders.Vertex = c.Shaders.Vertex.resolve(base)
	c.Shaders.Fragment = c.Shaders.Fragment.resolve(base)
	c.Geometry = c.Geometry.resolve(base)
}

func (c *Config) Validate() error {
	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}

	if c.BackgroundColour != "" && !utils.ColourValidate(c.BackgroundColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.BackgroundColour)
	}

	for _, p := range []CfgPath{c.Shaders.Vertex, c.Shaders.Fragment} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(string(p)); err != nil {
			return fmt.Errorf("shader %s is not readable: %w", p, err)
		}
	}

	if c.Geometry != "" {
		if _, err := c.Vertices(); err != nil {
			return fmt.Errorf("geometry %s is invalid: %w", c.Geometry, err)
		}
	}

	if c.Render.LineWidth < 0 || c.Render.PointSize < 0 {
		return fmt.Errorf("line_width and point_size must be nonnegative")
	}

	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api needs a bind address")
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("size %dx%d must be positive", w.Width, w.Height)
	}
	// core profiles only exist from 3.2 on
	if w.GLMajor < 3 || (w.GLMajor == 3 && w.GLMinor < 2) {
		return fmt.Errorf("OpenGL %d.%d has no core profile, need at least 3.2", w.GLMajor, w.GLMinor)
	}
	if w.GLMinor < 0 {
		return fmt.Errorf("gl_minor must be nonnegative")
	}
	return nil
}

// Background is the clear colour, 0.2/0.3/0.3 unless configured.
func (c *Config) Background() utils.Colour {
	if c.BackgroundColour == "" {
		return utils.Colour{R: 0.2, G: 0.3, B: 0.3, A: 1}
	}
	return utils.ColourParse(c.BackgroundColour)
}

// GLSLVersion is the #version line body, derived from the context version
// unless set explicitly.
func (c *Config) GLSLVersion() string {
	if c.Shaders.GLSLVersion != "" {
		return c.Shaders.GLSLVersion
	}
	// 3.2 is the last version whose GLSL number does not follow the GL one
	if c.Window.GLMajor == 3 && c.Window.GLMinor == 2 {
		return "150 core"
	}
	return fmt.Sprintf("%d%d0 core", c.Window.GLMajor, c.Window.GLMinor)
}

// Vertices returns the configured geometry, or the built-in shape. A
// geometry file is read once per path.
func (c *Config) Vertices() ([]geometry.Vertex, error) {
	if c.Geometry == "" {
		return geometry.DefaultVertices(), nil
	}
	if c.vertices == nil || c.verticesFrom != c.Geometry {
		vertices, err := geometry.Load(string(c.Geometry))
		if err != nil {
			return nil, err
		}
		c.vertices = vertices
		c.verticesFrom = c.Geometry
	}
	return slices.Clone(c.vertices), nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %q %dx%d, OpenGL %d.%d core\n", c.Window.Title, c.Window.Width, c.Window.Height, c.Window.GLMajor, c.Window.GLMinor))

	b.WriteString("\nShaders:\n")
	b.WriteString(fmt.Sprintf("  version: %s\n", c.GLSLVersion()))
	b.WriteString(fmt.Sprintf("  vertex: %s\n", orBuiltin(c.Shaders.Vertex)))
	b.WriteString(fmt.Sprintf("  fragment: %s\n", orBuiltin(c.Shaders.Fragment)))

	b.WriteString("\nGeometry:\n")
	b.WriteString(fmt.Sprintf("  %s\n", orBuiltin(c.Geometry)))

	b.WriteString(fmt.Sprintf("\nBackground: %s\n", c.Background()))

	if c.Api != nil {
		b.WriteString(fmt.Sprintf("\nApi: %s\n", c.Api.Bind))
	}

	return b.String()
}

func orBuiltin(p CfgPath) string {
	if p == "" {
		return "(built-in)"
	}
	return string(p)
}
