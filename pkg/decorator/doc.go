// Package decorator wraps domain values in presenters for a single render
// pass without touching the values themselves.
//
// A Registry maps a domain type name ("Project") to a Definition
// ("ProjectPresenter"). Definitions are declarative tables built once at
// startup: associations to decorate lazily, attribute formatters supplied by
// the rendering Context, blank-attribute placeholders driven by schema and
// validation metadata, and a symbolic location template. Every declaration
// becomes an ordinary Method stored on a named Module so the resulting layers
// stay introspectable.
//
// Presenter.Call is the single dispatch point. Declared methods run first,
// each receiving a Super that yields the next layer; names prefixed with
// "get_" and "h_" are answered from the wrapped value or the Context; anything
// else is forwarded to the wrapped value's Object implementation and its
// errors are returned untouched.
//
//	reg := decorator.NewRegistry()
//	reg.Define("Project").
//		Associate("company", "contracts").
//		Format("number_to_currency", "budget").
//		Location("@company", "@project")
//
//	p, err := reg.Present(project, ctx)
package decorator
