// pkg/conventional/record.go

package conventional

import (
	"strings"
)

// Record is the structured commit message collected by the composer.
// Empty Scope and blank Body mean absent.
type Record struct {
	Type        CommitType
	Scope       string
	Description string
	Body        string
	Breaking    bool
	Issues      []string
}

// Header renders the first line of the message.
func (r Record) Header() string {
	var sb strings.Builder
	sb.WriteString(string(r.Type))
	if r.Scope != "" {
		sb.WriteString("(" + r.Scope + ")")
	}
	if r.Breaking {
		sb.WriteByte('!')
	}
	sb.WriteString(": ")
	sb.WriteString(r.Description)
	return sb.String()
}

// Message is shorthand for Serialize(r).
func (r Record) Message() string {
	return Serialize(r)
}

// Serialize renders the canonical commit message. It never fails and does not
// validate; a malformed record yields a message the validator rejects.
//
// The breaking change notice restates the description.
func Serialize(r Record) string {
	var sb strings.Builder
	sb.WriteString(r.Header())

	if body := strings.TrimSpace(r.Body); body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(body)
	}

	if r.Breaking {
		sb.WriteString("\n\nBREAKING CHANGE: ")
		sb.WriteString(r.Description)
	}

	if len(r.Issues) > 0 {
		sb.WriteString("\n\n")
		for _, issue := range r.Issues {
			sb.WriteString("Closes #" + issue + "\n")
		}
	}

	return sb.String()
}
