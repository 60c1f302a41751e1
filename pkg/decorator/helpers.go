package decorator

import (
	"fmt"

	"github.com/goliatone/go-presenter/internal/naming"
)

// Template names rendered by the markup helpers.
const (
	ShowWithAttrsTemplate = "shared/show_with_attrs"
	LinkToTemplate        = "shared/link_to"
)

// Attr selects one entry for WithAttrs.
type Attr struct {
	Name  string
	Label string
	Value func(p *Presenter) (any, error)
}

// Field selects a presenter attribute by name.
func Field(name string) Attr {
	return Attr{Name: name}
}

// Computed selects a value derived from the presenter, labelled after name.
func Computed(name string, fn func(p *Presenter) (any, error)) Attr {
	return Attr{Name: name, Value: fn}
}

// WithAttrs renders the ShowWithAttrsTemplate partial listing the selected
// attributes with titleized labels.
func (p *Presenter) WithAttrs(attrs ...Attr) (string, error) {
	if p.ctx == nil {
		return "", ErrNoContext
	}

	entries := make([]map[string]any, 0, len(attrs))
	for _, attr := range attrs {
		var (
			value any
			err   error
		)
		if attr.Value != nil {
			value, err = attr.Value(p)
		} else {
			value, err = p.Call(attr.Name)
		}
		if err != nil {
			return "", err
		}

		label := attr.Label
		if label == "" {
			label = naming.Titleize(attr.Name)
		}
		entries = append(entries, map[string]any{
			"name":  attr.Name,
			"label": label,
			"value": displayString(value),
		})
	}

	return p.ctx.Render(ShowWithAttrsTemplate, map[string]any{"attrs": entries})
}

// LinkOption customises LinkToSelf.
type LinkOption func(*linkConfig)

type linkConfig struct {
	text string
	path string
}

// LinkText overrides the link text.
func LinkText(text string) LinkOption {
	return func(cfg *linkConfig) {
		cfg.text = text
	}
}

// LinkPath overrides the link target.
func LinkPath(path string) LinkOption {
	return func(cfg *linkConfig) {
		cfg.path = path
	}
}

// LinkToSelf renders the LinkToTemplate partial pointing at SelfLocation and
// labelled with String.
func (p *Presenter) LinkToSelf(options ...LinkOption) (string, error) {
	if p.ctx == nil {
		return "", ErrNoContext
	}

	cfg := linkConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.text == "" {
		cfg.text = p.String()
	}
	if cfg.path == "" {
		path, err := p.SelfLocation()
		if err != nil {
			return "", err
		}
		cfg.path = path
	}

	return p.ctx.Render(LinkToTemplate, map[string]any{
		"text": cfg.text,
		"path": cfg.path,
	})
}

func displayString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
