// pkg/conventional/types.go

// Package conventional holds the Conventional Commits grammar used by glimpse:
// the commit type table, the header validator and the message serializer.
// The composer, the validator and the rendered commit-msg gate all derive
// their view of the grammar from this package.
package conventional

import (
	"fmt"
	"strings"
)

// CommitType is the leading token of a Conventional Commits header.
type CommitType string

const (
	TypeFeat     CommitType = "feat"
	TypeFix      CommitType = "fix"
	TypeDocs     CommitType = "docs"
	TypeStyle    CommitType = "style"
	TypeRefactor CommitType = "refactor"
	TypePerf     CommitType = "perf"
	TypeTest     CommitType = "test"
	TypeBuild    CommitType = "build"
	TypeCI       CommitType = "ci"
	TypeChore    CommitType = "chore"
	TypeRevert   CommitType = "revert"
)

// TypeInfo is one row of the commit type table.
type TypeInfo struct {
	Type  CommitType
	Emoji string
	Label string
}

// Display is the text offered to the user when picking a type.
func (t TypeInfo) Display() string {
	return fmt.Sprintf("%s %s", t.Emoji, t.Label)
}

// typeTable is the single ordered source for every consumer of the type set.
// The first entry is the composer's default selection.
var typeTable = []TypeInfo{
	{Type: TypeFeat, Emoji: "✨", Label: "New feature"},
	{Type: TypeFix, Emoji: "🐛", Label: "Bug fix"},
	{Type: TypeDocs, Emoji: "📚", Label: "Documentation"},
	{Type: TypeStyle, Emoji: "💄", Label: "Code style (formatting)"},
	{Type: TypeRefactor, Emoji: "♻️ ", Label: "Code refactoring"},
	{Type: TypePerf, Emoji: "⚡", Label: "Performance improvement"},
	{Type: TypeTest, Emoji: "✅", Label: "Add or update tests"},
	{Type: TypeBuild, Emoji: "🔧", Label: "Build system or dependencies"},
	{Type: TypeCI, Emoji: "👷", Label: "CI/CD changes"},
	{Type: TypeChore, Emoji: "🔨", Label: "Maintenance tasks"},
	{Type: TypeRevert, Emoji: "⏪", Label: "Revert a commit"},
}

// Types returns a copy of the ordered commit type table.
func Types() []TypeInfo {
	out := make([]TypeInfo, len(typeTable))
	copy(out, typeTable)
	return out
}

// TypeNames returns the accepted type tokens in table order.
func TypeNames() []string {
	names := make([]string, 0, len(typeTable))
	for _, t := range typeTable {
		names = append(names, string(t.Type))
	}
	return names
}

// LookupType reports whether name is an accepted type token.
func LookupType(name string) (TypeInfo, bool) {
	for _, t := range typeTable {
		if string(t.Type) == name {
			return t, true
		}
	}
	return TypeInfo{}, false
}

// Valid reports whether the type belongs to the closed set.
func (c CommitType) Valid() bool {
	_, ok := LookupType(string(c))
	return ok
}

func (c CommitType) String() string {
	return string(c)
}

// typeAlternation renders the table as a regular expression alternation.
func typeAlternation() string {
	return strings.Join(TypeNames(), "|")
}
