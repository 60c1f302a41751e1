package decorator

import "errors"

var (
	// ErrUnknownAttribute is returned when a call falls through to a wrapped
	// value that does not implement Object. Object implementations can return
	// it (wrapped) for names they do not know.
	ErrUnknownAttribute = errors.New("decorator: unknown attribute")

	// ErrUnresolvedSegment is returned when a location reference resolves to nil.
	ErrUnresolvedSegment = errors.New("decorator: location segment resolved to nil")

	// ErrNoContext is returned by operations that need a rendering context when
	// the presenter was built without one.
	ErrNoContext = errors.New("decorator: rendering context is nil")
)
