// pkg/conventional/validate.go

package conventional

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxDescriptionLength bounds the header description, counted in characters.
	MaxDescriptionLength = 100

	// MergePrefix exempts merge commits from the grammar.
	MergePrefix = "Merge"

	// FormatLine is the one-line summary of the header grammar.
	FormatLine = "<type>[optional scope]: <description>"
)

// Examples are the illustrative headers shown with every rejection.
var Examples = []string{
	"feat: add user authentication",
	"fix(api): handle null pointer",
}

var (
	headerPattern = fmt.Sprintf(`^(%s)(\([a-z0-9-]+\))?!?: .{1,%d}$`, typeAlternation(), MaxDescriptionLength)
	headerRe      = regexp.MustCompile(headerPattern)

	// loose split used only to diagnose a rejection
	typeTokenRe = regexp.MustCompile(`^([^(!:\s]*)`)
)

// HeaderPattern returns the header rule as an anchored expression that both
// Go's regexp package and POSIX `grep -E` accept with the same meaning.
func HeaderPattern() string {
	return headerPattern
}

// Problem names the first defect found in a rejected header.
type Problem string

const (
	ProblemUnknownType      Problem = "unknown commit type"
	ProblemMalformedScope   Problem = "scope must be lowercase letters, digits or hyphens inside parentheses"
	ProblemMissingSeparator Problem = `missing ": " between header and description`
	ProblemEmptyDescription Problem = "description is empty"
	ProblemTooLong          Problem = "description is longer than 100 characters"
	ProblemMalformedHeader  Problem = "header does not match the expected format"
)

// ValidationError is returned for a rejected commit message.
type ValidationError struct {
	Header  string
	Problem Problem
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid commit message format: %s", e.Problem)
}

// Reason is the display text for the user: format, accepted types and examples.
func (e *ValidationError) Reason() string {
	return RejectionText()
}

// RejectionText is the fixed explanation printed by every gate on rejection.
func RejectionText() string {
	var sb strings.Builder
	sb.WriteString("Invalid commit message format!\n\n")
	sb.WriteString("Format: " + FormatLine + "\n\n")
	sb.WriteString("Types: " + strings.Join(TypeNames(), ", ") + "\n\n")
	sb.WriteString("Examples:\n")
	for _, ex := range Examples {
		sb.WriteString("  " + ex + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FirstLine returns the text before the first newline.
func FirstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}

// IsMerge reports whether the message is exempt as a merge commit.
func IsMerge(message string) bool {
	return strings.HasPrefix(FirstLine(message), MergePrefix)
}

// Validate accepts or rejects a candidate commit message. Only the first line
// is checked. A nil return means the message is accepted.
func Validate(candidate string) error {
	if IsMerge(candidate) {
		return nil
	}
	header := FirstLine(candidate)
	if headerRe.MatchString(header) {
		return nil
	}
	return &ValidationError{Header: header, Problem: diagnose(header)}
}

// diagnose explains a header the pattern already rejected. It never decides
// acceptance.
func diagnose(header string) Problem {
	token := typeTokenRe.FindString(header)
	if _, ok := LookupType(token); !ok {
		return ProblemUnknownType
	}
	rest := header[len(token):]

	if strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 || !scopeOK(rest[1:end]) {
			return ProblemMalformedScope
		}
		rest = rest[end+1:]
	}
	rest = strings.TrimPrefix(rest, "!")

	if !strings.HasPrefix(rest, ": ") {
		return ProblemMissingSeparator
	}
	desc := rest[len(": "):]
	switch n := utf8.RuneCountInString(desc); {
	case n == 0:
		return ProblemEmptyDescription
	case n > MaxDescriptionLength:
		return ProblemTooLong
	}
	return ProblemMalformedHeader
}

func scopeOK(scope string) bool {
	if scope == "" {
		return false
	}
	for _, r := range scope {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
			return false
		}
	}
	return true
}
