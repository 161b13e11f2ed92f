package form

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownOnce     sync.Once
	markdownInstance goldmark.Markdown
)

// Raw HTML in the source is omitted and dangerous link URLs are dropped
// because html.WithUnsafe is not set.
func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		)
	})
	return markdownInstance
}

// RenderMarkdown renders src to HTML safe to embed in a page.
func RenderMarkdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Form.Title}}</title></head>
<body>
<h1>{{.Form.Title}}</h1>
{{- range .Form.Messages}}
<div class="messages messages--status" role="status">{{.}}</div>
{{- end}}
{{- range .Form.Errors}}
<div class="messages messages--error" role="alert">{{.}}</div>
{{- end}}
<form id="{{.Form.ID}}" method="post" action="{{.Form.Action}}" accept-charset="UTF-8">
{{- with .Form.Table}}
<table>
<caption>{{.Caption}}</caption>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .Cells}}<td><span>{{if .Link}}<a href="{{.Link.Href}}">{{.Link.Label}}</a>{{else}}{{.Text}}{{end}}</span></td>{{end}}</tr>
{{- end}}
</tbody>
</table>
{{- end}}
{{- range $i, $f := .Form.Fields}}
<div class="form-item">
<label for="edit-{{$f.Name}}">{{$f.Label}}</label>
{{- if $f.Multiline}}
<textarea id="edit-{{$f.Name}}" name="{{$f.Name}}">{{$f.Value}}</textarea>
{{- else}}
<input type="text" id="edit-{{$f.Name}}" name="{{$f.Name}}" value="{{$f.Value}}">
{{- end}}
{{- if $f.Description}}
<div class="description">{{$f.Description}}</div>
{{- end}}
{{- if $f.Error}}
<div class="form-item--error-message">{{$f.Error}}</div>
{{- end}}
{{- with index $.Previews $i}}
<div class="preview">{{.}}</div>
{{- end}}
</div>
{{- end}}
<input type="hidden" name="form_id" value="{{.Form.ID}}">
<input type="hidden" name="form_build_id" value="{{.Form.BuildID}}">
<input type="hidden" name="form_token" value="{{.Form.Token}}">
<input type="submit" value="{{.Form.Submit}}">
</form>
</body>
</html>
`

// Renderer renders forms to HTML with contextual escaping.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("form").Parse(pageTemplate))}
}

type pageData struct {
	Form     *Form
	Previews []template.HTML
}

func (r *Renderer) Render(w io.Writer, f *Form) error {
	previews := make([]template.HTML, len(f.Fields))
	for i, field := range f.Fields {
		if !field.Markdown {
			continue
		}
		html, err := RenderMarkdown(field.Value)
		if err != nil {
			return err
		}
		previews[i] = html
	}
	return r.tmpl.Execute(w, pageData{Form: f, Previews: previews})
}
