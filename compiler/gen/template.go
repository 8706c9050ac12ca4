package gen

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strconv"
	"sync"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/syssam/pogen/orm"
)

//go:embed template/*.tmpl
var templateDir embed.FS

// Funcs are the template functions available to TemplateRenderer templates.
var Funcs = template.FuncMap{
	"quote": strconv.Quote,
	"tag": func(f *Field) string {
		return "`" + orm.TagKey + ":" + strconv.Quote(f.Tag) + "`"
	},
}

var (
	templatesOnce sync.Once
	templates     *template.Template
)

func initTemplates() {
	templatesOnce.Do(func() {
		templates = template.Must(template.New("templates").
			Funcs(Funcs).
			ParseFS(templateDir, "template/*.tmpl"))
	})
}

// TemplateRenderer renders types with text/template and formats the output
// with goimports. Template defaults to the embedded "po" template.
type TemplateRenderer struct {
	Template *template.Template
}

// Render implements the Renderer interface.
func (r *TemplateRenderer) Render(w io.Writer, t *Type) error {
	tmpl := r.Template
	if tmpl == nil {
		initTemplates()
		tmpl = templates.Lookup("po")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, t); err != nil {
		return fmt.Errorf("execute template for %s: %w", t.FileName(), err)
	}
	src, err := imports.Process(t.FileName(), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return fmt.Errorf("format %s: %w", t.FileName(), err)
	}
	_, err = w.Write(src)
	return err
}
