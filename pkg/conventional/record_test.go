package conventional

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "header only",
			record: Record{Type: TypeFix, Description: "handle null pointer"},
			want:   "fix: handle null pointer",
		},
		{
			name:   "scope",
			record: Record{Type: TypeFix, Scope: "api", Description: "handle null pointer"},
			want:   "fix(api): handle null pointer",
		},
		{
			name:   "breaking restates description",
			record: Record{Type: TypeFeat, Breaking: true, Description: "drop legacy API"},
			want:   "feat!: drop legacy API\n\nBREAKING CHANGE: drop legacy API",
		},
		{
			name:   "body is trimmed",
			record: Record{Type: TypeDocs, Description: "explain setup", Body: "\n  Longer text.\nSecond line.  \n\n"},
			want:   "docs: explain setup\n\nLonger text.\nSecond line.",
		},
		{
			name:   "blank body is absent",
			record: Record{Type: TypeDocs, Description: "explain setup", Body: " \n\t "},
			want:   "docs: explain setup",
		},
		{
			name:   "issues keep order and duplicates",
			record: Record{Type: TypeFix, Description: "x", Issues: []string{"12", "7", "12"}},
			want:   "fix: x\n\nCloses #12\nCloses #7\nCloses #12\n",
		},
		{
			name: "all sections",
			record: Record{
				Type:        TypeRefactor,
				Scope:       "core",
				Description: "split parser",
				Body:        "Parser now lives in its own package.",
				Breaking:    true,
				Issues:      []string{"3"},
			},
			want: "refactor(core)!: split parser\n\n" +
				"Parser now lives in its own package.\n\n" +
				"BREAKING CHANGE: split parser\n\n" +
				"Closes #3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Serialize(tt.record))
			assert.Equal(t, tt.want, tt.record.Message())
		})
	}
}

func TestSerialize_IssueOrdering(t *testing.T) {
	t.Parallel()
	msg := Serialize(Record{Type: TypeFeat, Description: "x", Issues: []string{"12", "7"}})
	first := strings.Index(msg, "Closes #12")
	second := strings.Index(msg, "Closes #7")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
}

func TestSerialize_ValidateAgreement(t *testing.T) {
	t.Parallel()
	for _, info := range Types() {
		for _, r := range []Record{
			{Type: info.Type, Description: "minimal"},
			{Type: info.Type, Scope: "ui-2", Description: "scoped"},
			{Type: info.Type, Description: "breaking", Breaking: true},
			{Type: info.Type, Scope: "db", Description: "all", Body: "body", Breaking: true, Issues: []string{"1"}},
		} {
			assert.NoError(t, Validate(Serialize(r)), "record %+v", r)
		}
	}
}

func TestSerialize_ScopeCharacters(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Validate(Serialize(Record{Type: TypeFeat, Scope: "abc-123", Description: "ok"})))
	for _, scope := range []string{"Abc", "a_b", "a b", "a.b", "ä"} {
		assert.Error(t, Validate(Serialize(Record{Type: TypeFeat, Scope: scope, Description: "ok"})), "scope %q", scope)
	}
}

// FuzzSerializeValidateRoundTrip checks that any record a composer can build
// from well-formed answers serializes to an accepted message.
func FuzzSerializeValidateRoundTrip(f *testing.F) {
	f.Add(0, "api", "add thing", "body text", true, "12")
	f.Add(10, "", "x", "", false, "")
	f.Add(5, "a-1", "drop legacy API", "\n\n", true, "#7")

	names := TypeNames()
	f.Fuzz(func(t *testing.T, typeIdx int, scope, desc, body string, breaking bool, issue string) {
		if typeIdx < 0 {
			typeIdx = -typeIdx
		}
		typeIdx %= len(names)
		if !scopeOK(scope) {
			scope = ""
		}
		desc = strings.TrimSpace(FirstLine(desc))
		if desc == "" || len([]rune(desc)) > MaxDescriptionLength {
			t.Skip()
		}
		r := Record{
			Type:        CommitType(names[typeIdx]),
			Scope:       scope,
			Description: desc,
			Body:        body,
			Breaking:    breaking,
		}
		if issue != "" {
			r.Issues = []string{strings.TrimLeft(issue, "#")}
		}
		if err := Validate(Serialize(r)); err != nil {
			t.Fatalf("serialized record rejected: %v\n%q", err, Serialize(r))
		}
	})
}
