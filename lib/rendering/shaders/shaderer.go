package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"slices"
	"text/template"

	"github.com/fosdem/glbootstrap/lib/geometry"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	VertexTemplate   = "basic.vert"
	FragmentTemplate = "basic.frag"
)

type Shaderer struct {
	templates *template.Template
	overrides map[string]*template.Template
}

func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{overrides: make(map[string]*template.Template)}

	var err error

	s.templates, err = template.ParseFS(templateDir, "*.frag", "*.vert")

	return s, err
}

// ShaderData contains stuff that gets passed to the shader
type ShaderData struct {
	GLSLVersion string
	Layout      geometry.Layout
}

// Override replaces the embedded template called name with the contents
// of filename. The file is a template too and sees the same ShaderData.
func (s *Shaderer) Override(name string, filename string) error {
	if s.templates.Lookup(name) == nil {
		return fmt.Errorf("no shader template called %s", name)
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("could not read shader %s: %w", filename, err)
	}
	t, err := template.New(name).Parse(string(b))
	if err != nil {
		return fmt.Errorf("could not parse shader %s: %w", filename, err)
	}
	s.overrides[name] = t
	return nil
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	var err error
	if t, ok := s.overrides[name]; ok {
		err = t.Execute(&b, data)
	} else {
		err = s.templates.ExecuteTemplate(&b, name, data)
	}
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %w", err)
	}

	return b.String(), nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	slices.Sort(names)
	return names
}
