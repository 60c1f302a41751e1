package record_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/record"
	"github.com/goliatone/go-presenter/pkg/testsupport"
)

func TestLoadYAMLFile(t *testing.T) {
	fixtures := testsupport.MustLoadFixtures(t, "testdata/projects.yaml")

	if diff := cmp.Diff([]string{"acme", "apollo", "c5", "c6"}, fixtures.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Contract", "Project"}, fixtures.Types()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}

	apollo, ok := fixtures.Get("apollo")
	if !ok {
		t.Fatalf("expected apollo fixture")
	}
	if _, isModel := apollo.(*record.Model); !isModel {
		t.Fatalf("expected Project with columns to load as a model, got %T", apollo)
	}

	company, err := apollo.Attribute("company")
	if err != nil {
		t.Fatalf("company: %v", err)
	}
	if acme, _ := fixtures.Get("acme"); company != acme {
		t.Fatalf("expected company association to reference acme fixture")
	}

	contracts, err := apollo.Attribute("contracts")
	if err != nil {
		t.Fatalf("contracts: %v", err)
	}
	items, err := contracts.(decorator.Collection).Elements()
	if err != nil {
		t.Fatalf("elements: %v", err)
	}
	if len(items) != 2 || decorator.TypeNameOf(items[0]) != "Contract" {
		t.Fatalf("unexpected contracts %v", items)
	}

	c5, _ := fixtures.Get("c5")
	if diff := cmp.Diff([]string{"Contract", "Document"}, c5.TypeNames()); diff != "" {
		t.Fatalf("lineage mismatch (-want +got):\n%s", diff)
	}

	table, ok := fixtures.Table("Project")
	if !ok {
		t.Fatalf("expected Project table")
	}
	if diff := cmp.Diff([]string{"budget", "manager"}, decorator.BlankCandidates(table)); diff != "" {
		t.Fatalf("blank candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"missing key":       "records:\n  - type: Company\n",
		"missing type":      "records:\n  - key: acme\n",
		"duplicate key":     "records:\n  - {key: a, type: T}\n  - {key: a, type: T}\n",
		"unknown reference": "records:\n  - key: a\n    type: T\n    associations:\n      owner: ghost\n",
		"unknown field":     "records:\n  - key: a\n    type: T\n    colour: red\n",
		"mapping reference": "records:\n  - key: a\n    type: T\n    associations:\n      owner: {key: a}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := record.LoadYAML(strings.NewReader(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseYAML_Empty(t *testing.T) {
	fixtures, err := record.ParseYAML(nil)
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if len(fixtures.Keys()) != 0 {
		t.Fatalf("expected no fixtures")
	}
}
