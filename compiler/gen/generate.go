package gen

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/pogen/orm"
)

// Renderer renders the source file of one type.
type Renderer interface {
	Render(w io.Writer, t *Type) error
}

// Renderer names accepted by NewRenderer.
const (
	RendererJennifer = "jennifer"
	RendererTemplate = "template"
)

// NewRenderer returns the renderer registered under name. An empty name
// selects the default JenniferRenderer.
func NewRenderer(name string) (Renderer, error) {
	switch name {
	case "", RendererJennifer:
		return JenniferRenderer{}, nil
	case RendererTemplate:
		return &TemplateRenderer{}, nil
	default:
		return nil, NewConfigError("Renderer", name, "unknown renderer")
	}
}

// JenniferRenderer renders types with jennifer. Imports are tracked by
// jennifer, so no formatting pass over the output is needed.
type JenniferRenderer struct{}

// Render implements the Renderer interface.
func (JenniferRenderer) Render(w io.Writer, t *Type) error {
	if err := JenniferFile(t).Render(w); err != nil {
		return fmt.Errorf("render %s: %w", t.FileName(), err)
	}
	return nil
}

// JenniferFile builds the jennifer file of the given type.
func JenniferFile(t *Type) *jen.File {
	f := jen.NewFilePathName(t.Path, t.Package)
	f.CanonicalPath = t.Path
	for _, line := range t.HeaderLines() {
		f.HeaderComment(line)
	}
	for _, fd := range t.Fields {
		if fd.Type.Pkg != "" {
			f.ImportName(fd.Type.Pkg, fd.Type.PkgName())
		}
	}

	f.Comment(fmt.Sprintf("%s is the persistent object of table %s.", t.Name, t.Table.Name))
	f.Comment("//")
	f.Comment("//" + t.TableDirective())
	f.Type().Id(t.Name).StructFunc(func(group *jen.Group) {
		for _, fd := range t.Fields {
			group.Id(fd.Name).Add(goType(fd)).Tag(map[string]string{orm.TagKey: fd.Tag})
		}
	})

	f.Line()
	f.Commentf("%s returns an empty %s.", t.Constructor(), t.Name)
	f.Func().Id(t.Constructor()).Params().Op("*").Id(t.Name).Block(
		jen.Return(jen.Op("&").Id(t.Name).Values()),
	)

	recv := jen.Id(t.Receiver()).Op("*").Id(t.Name)
	f.Line()
	f.Comment("TableName returns the physical table name.")
	f.Func().Params(recv.Clone()).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(t.Table.Name)),
	)

	for _, fd := range t.Fields {
		f.Line()
		f.Commentf("%s returns the value of column %s.", fd.Getter(), fd.Column.Name)
		f.Func().Params(recv.Clone()).Id(fd.Getter()).Params().Add(goType(fd)).Block(
			jen.Return(jen.Id(t.Receiver()).Dot(fd.Name)),
		)
		f.Line()
		f.Commentf("%s sets the value of column %s.", fd.Setter(), fd.Column.Name)
		f.Func().Params(recv.Clone()).Id(fd.Setter()).Params(jen.Id("v").Add(goType(fd))).Block(
			jen.Id(t.Receiver()).Dot(fd.Name).Op("=").Id("v"),
		)
	}
	return f
}

func goType(fd *Field) jen.Code {
	if fd.Type.Pkg == "" {
		return jen.Id(fd.Type.Name)
	}
	return jen.Qual(fd.Type.Pkg, fd.Type.Name)
}
