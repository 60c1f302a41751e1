package decorator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-presenter/internal/naming"
)

const (
	referenceMarker = "@"
	newAction       = "new"
	editAction      = "edit"
)

// Location declares the path template for the presenter. Segments starting
// with "@" reference a related value resolved through Get at call time; any
// other segment is a literal path component.
func (d *Definition) Location(segments ...string) *Definition {
	d.location = append([]string(nil), segments...)
	return d
}

// LocationSegments returns the declared location template.
func (d *Definition) LocationSegments() []string {
	return append([]string(nil), d.location...)
}

// SelfLocation returns the path of the wrapped value. Without a declared
// location the wrapped value itself is handed to the context.
func (p *Presenter) SelfLocation() (string, error) {
	if len(p.def.location) == 0 {
		return p.buildPath(p.target)
	}
	parts, err := p.resolveSegments(p.def.location)
	if err != nil {
		return "", err
	}
	return p.buildPath(parts...)
}

// EditLocation returns the self location followed by "edit".
func (p *Presenter) EditLocation() (string, error) {
	var parts []any
	if len(p.def.location) == 0 {
		parts = []any{p.target}
	} else {
		resolved, err := p.resolveSegments(p.def.location)
		if err != nil {
			return "", err
		}
		parts = resolved
	}
	return p.buildPath(append(parts, editAction)...)
}

// NewLocation returns the collection location followed by "new".
func (p *Presenter) NewLocation() (string, error) {
	parts, err := p.collectionParts()
	if err != nil {
		return "", err
	}
	return p.buildPath(append(parts, newAction)...)
}

// CollectionLocation returns the location of the collection the wrapped value
// belongs to: the template prefix followed by the pluralized final segment.
func (p *Presenter) CollectionLocation() (string, error) {
	parts, err := p.collectionParts()
	if err != nil {
		return "", err
	}
	return p.buildPath(parts...)
}

func (p *Presenter) collectionParts() ([]any, error) {
	segments := p.def.location
	if len(segments) == 0 {
		return []any{naming.Pluralize(naming.Underscore(TypeNameOf(p.target)))}, nil
	}

	last := len(segments) - 1
	parts, err := p.resolveSegments(segments[:last])
	if err != nil {
		return nil, err
	}
	final := strings.TrimPrefix(segments[last], referenceMarker)
	return append(parts, naming.Pluralize(final)), nil
}

func (p *Presenter) resolveSegments(segments []string) ([]any, error) {
	parts := make([]any, 0, len(segments))
	for _, segment := range segments {
		name, isRef := strings.CutPrefix(segment, referenceMarker)
		if !isRef {
			parts = append(parts, segment)
			continue
		}
		value, err := p.Get(name)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedSegment, segment)
		}
		parts = append(parts, value)
	}
	return parts, nil
}

func (p *Presenter) buildPath(parts ...any) (string, error) {
	if p.ctx == nil {
		return "", ErrNoContext
	}
	return p.ctx.BuildPath(parts...)
}
