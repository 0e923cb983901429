// Package common provides shared utilities for UI features.
package common

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// Template returns a component that executes the named template of t with data.
func Template(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}

// Join renders components one after another.
func Join(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if p == nil {
				continue
			}
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}
