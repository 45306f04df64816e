package template

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/paymentsbr/pagador/pkg/wire"
)

// Renderer renders request documents for a single merchant.
type Renderer struct {
	merchantID string
	source     Source
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSource overrides the compiled-in template set.
func WithSource(s Source) Option {
	return func(r *Renderer) {
		r.source = s
	}
}

// NewRenderer creates a renderer that injects merchantID into every
// rendered document.
func NewRenderer(merchantID string, opts ...Option) *Renderer {
	r := &Renderer{
		merchantID: merchantID,
		source:     Builtin(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the single-line request document for the named
// template. The merchant id is always injected; a request id is
// generated when data carries none. Free-text values are escaped inside
// the templates via the xml function.
func (r *Renderer) Render(name string, data map[string]any) (string, error) {
	text, err := r.source.Load(name)
	if err != nil {
		return "", err
	}

	if r.merchantID != "" {
		data["MerchantId"] = r.merchantID
	}
	if id, _ := data["RequestId"].(string); id == "" {
		data["RequestId"] = uuid.NewString()
	}

	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"xml": wire.Escape,
	}).Parse(text)
	if err != nil {
		return "", fmt.Errorf("template: parse %q: %w", name, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("template: render %q: %w", name, err)
	}
	return wire.Spaceless(b.String()), nil
}
