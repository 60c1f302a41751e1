package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-presenter/pkg/decorator"
	"github.com/goliatone/go-presenter/pkg/schema"
)

func TestTable_BlankCandidates(t *testing.T) {
	table := schema.NewTable("dummy_records",
		"foo", "bar", "baz", "qux", "id", "created_at", "updated_at", "something_id",
	).
		Validate("foo", schema.Presence()).
		Validate("bar", schema.Numericality(schema.AllowNil)).
		Validate("baz", schema.Numericality(schema.AllowBlank))

	got := decorator.BlankCandidates(table)
	want := []string{"bar", "baz", "qux"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blank candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_RulesAreCopied(t *testing.T) {
	table := schema.NewTable("things", "name").Validate("name", schema.Presence())

	rules := table.ValidationRules("name")
	rules[0].AllowNil = true

	if table.ValidationRules("name")[0].AllowNil {
		t.Fatalf("expected table rules to be isolated from callers")
	}
	if !table.HasColumn("name") || table.HasColumn("missing") {
		t.Fatalf("unexpected HasColumn result")
	}
}

func TestRuleOptions(t *testing.T) {
	if rule := schema.Presence(); !rule.ForbidsBlank() {
		t.Fatalf("presence should forbid blank values: %+v", rule)
	}
	if rule := schema.Numericality(schema.AllowNil); rule.ForbidsBlank() || rule.AllowBlank {
		t.Fatalf("allow nil should only relax nil: %+v", rule)
	}
	if rule := schema.Numericality(schema.AllowBlank); !rule.AllowNil || !rule.AllowBlank {
		t.Fatalf("allow blank should relax nil and blank: %+v", rule)
	}
}
