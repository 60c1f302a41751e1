package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-presenter/pkg/decorator"
)

type rootOptions struct {
	configPath     string
	fixturesPath   string
	presentersPath string
	databaseURL    string
	recordKey      string
	interactive    bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "presenter-preview",
		Short:        "Preview presenters for YAML record fixtures",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			key, err := chooseRecord(opts, a)
			if err != nil {
				return err
			}
			return a.preview(cmd.OutOrStdout(), key)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&opts.fixturesPath, "fixtures", "f", "fixtures.yaml", "YAML record fixtures")
	flags.StringVarP(&opts.presentersPath, "presenters", "p", "presenters.yaml", "YAML presenter declarations")
	flags.StringVar(&opts.databaseURL, "database-url", "", "Postgres URL for presenters declaring a table")
	cmd.Flags().StringVarP(&opts.recordKey, "record", "r", "", "fixture key of the record to preview")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose the record from a list")

	cmd.AddCommand(newServeCommand(opts))
	return cmd
}

func chooseRecord(opts *rootOptions, a *app) (string, error) {
	if opts.recordKey != "" {
		return opts.recordKey, nil
	}
	keys := a.fixtures.Keys()
	if len(keys) == 0 {
		return "", errors.New("fixtures contain no records")
	}
	if !opts.interactive {
		return keys[0], nil
	}

	var key string
	prompt := &survey.Select{
		Message: "Record to preview:",
		Options: keys,
	}
	if err := survey.AskOne(prompt, &key); err != nil {
		return "", err
	}
	return key, nil
}

// preview writes the styled preview of one record.
func (a *app) preview(w io.Writer, key string) error {
	ctx, err := a.newContext()
	if err != nil {
		return err
	}
	p, err := a.present(key, ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s · %s", p.Definition().Name(), key)))
	b.WriteString("\n")
	writeLine(&b, "string", p.String(), nil)

	locations := []struct {
		label string
		fn    func() (string, error)
	}{
		{label: "self", fn: p.SelfLocation},
		{label: "edit", fn: p.EditLocation},
		{label: "new", fn: p.NewLocation},
		{label: "collection", fn: p.CollectionLocation},
	}
	for _, loc := range locations {
		path, err := loc.fn()
		writeLine(&b, loc.label, path, err)
	}

	for _, mod := range p.Definition().Modules() {
		writeLine(&b, "module", mod.Name(), nil)
		b.WriteString(styleMuted.Render("  " + strings.Join(mod.Methods(), ", ")))
		b.WriteString("\n")
	}

	markup, err := p.WithAttrs(a.attrsFor(p)...)
	if err != nil {
		return fmt.Errorf("render attributes: %w", err)
	}
	b.WriteString(styleBlock.Render(markup))
	b.WriteString("\n")

	_, err = io.WriteString(w, b.String())
	return err
}

func writeLine(b *strings.Builder, label, value string, err error) {
	b.WriteString(styleLabel.Render(label))
	switch {
	case errors.Is(err, decorator.ErrUnresolvedSegment):
		b.WriteString(styleMuted.Render("unresolved"))
	case err != nil:
		b.WriteString(styleError.Render(err.Error()))
	default:
		b.WriteString(value)
	}
	b.WriteString("\n")
}
