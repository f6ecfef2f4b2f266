package marginbox

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"

	"marginbox/editor"
)

//go:embed markup.html.tmpl
var defaultMarkup string

// boxData is a descriptor with its presentation flags.
type boxData struct {
	Descriptor
	Hidden   bool
	Active   bool
	Selected bool
}

// markupData is what box template is executed with.
type markupData struct {
	Boxes          []boxData
	User           editor.User
	DocInfo        editor.DocInfo
	ActiveID       string
	ActiveAnswerID string
}

// Renderer turns descriptors into box container markup.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses template from file, or the built in one when path is
// empty.
func NewRenderer(path string) (*Renderer, error) {
	name, text := "marginboxes", defaultMarkup
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read box template: %w", err)
		}
		name, text = path, string(data)
	}

	funcMap := sprig.FuncMap()
	funcMap["slug"] = slug.Make

	tmpl, err := template.New(name).Funcs(funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse box template %s: %w", name, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) render(data *markupData) (string, error) {
	buf := new(bytes.Buffer)
	if err := r.tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("unable to render boxes: %w", err)
	}
	return buf.String(), nil
}
