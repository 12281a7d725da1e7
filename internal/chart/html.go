package chart

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("chart.html.tmpl").Funcs(template.FuncMap{
	// Colors were validated by ParseColor, so they are safe CSS values.
	"css": func(s string) template.CSS { return template.CSS(s) },
}).ParseFS(templatesFS, "templates/chart.html.tmpl"))

// WriteHTML writes a self-contained interactive chart page.
func WriteHTML(w io.Writer, spec *Spec) error {
	if err := pageTmpl.Execute(w, spec); err != nil {
		return fmt.Errorf("error executing chart template: %w", err)
	}
	return nil
}

// HTMLRenderer writes the interactive chart page to a file.
type HTMLRenderer struct {
	Path string
}

func NewHTMLRenderer(path string) *HTMLRenderer {
	return &HTMLRenderer{Path: path}
}

func (r *HTMLRenderer) Render(ctx context.Context, spec *Spec) error {
	return writeFile(r.Path, func(w io.Writer) error {
		return WriteHTML(w, spec)
	})
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("error closing %s: %w", path, cerr)
		}
	}()
	return write(f)
}
