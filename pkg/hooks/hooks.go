// pkg/hooks/hooks.go

// Package hooks renders and installs the pre-commit and commit-msg gates.
// Both scripts are generated from embedded templates fed by the conventional
// package so the shell gate and the Go validator share one rule.
package hooks

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/config"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/conventional"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	cerr "github.com/cockroachdb/errors"
	"mvdan.cc/sh/v3/syntax"
)

//go:embed templates/*
var templates embed.FS

// Marker identifies a script written by glimpse. It sits on the second line.
const Marker = "# glimpse-managed hook"

// Name is a git hook file name.
type Name string

const (
	PreCommit Name = "pre-commit"
	CommitMsg Name = "commit-msg"
)

// Names lists the managed hooks in install order.
func Names() []Name {
	return []Name{PreCommit, CommitMsg}
}

// ParseName accepts a hook file name.
func ParseName(s string) (Name, error) {
	for _, n := range Names() {
		if string(n) == s {
			return n, nil
		}
	}
	return "", glimpse_err.NewValidationError(
		fmt.Sprintf("unknown hook %q", s),
		"Use one of: pre-commit, commit-msg",
	)
}

// Summary is the one-line description printed after installation.
func (n Name) Summary() string {
	switch n {
	case PreCommit:
		return "checks format & lint"
	case CommitMsg:
		return "validates semantic commit format"
	}
	return ""
}

func (n Name) templatePath() string {
	return "templates/" + string(n) + ".sh.tmpl"
}

// data is what the templates see.
type data struct {
	Marker        string
	Version       string
	Hooks         config.HooksConfig
	HeaderPattern string
	MergePrefix   string
	RejectionText string
}

// Renderer turns the templates into shell scripts.
type Renderer struct {
	data data
}

// NewRenderer prepares a renderer for the given gate settings. version is
// stamped into the script header.
func NewRenderer(cfg config.HooksConfig, version string) *Renderer {
	if version == "" {
		version = "dev"
	}
	return &Renderer{data: data{
		Marker:        Marker,
		Version:       version,
		Hooks:         cfg,
		HeaderPattern: conventional.HeaderPattern(),
		MergePrefix:   conventional.MergePrefix,
		RejectionText: conventional.RejectionText(),
	}}
}

// Render produces the script for one hook. The result has already been
// parsed as bash; a script that does not parse is never returned.
func (r *Renderer) Render(name Name) ([]byte, error) {
	path := name.templatePath()
	raw, err := templates.ReadFile(path)
	if err != nil {
		return nil, glimpse_err.NewInternalError("hook template missing: "+path, err)
	}

	tmpl, err := template.New(filepath.Base(path)).
		Option("missingkey=error").
		Funcs(template.FuncMap{"quote": quote}).
		Parse(string(raw))
	if err != nil {
		return nil, glimpse_err.NewInternalError("hook template does not parse: "+path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return nil, glimpse_err.NewValidationErrorWithCause(
			fmt.Sprintf("cannot render %s hook", name), err,
			"Check the hooks section of your glimpse configuration",
		)
	}

	if err := checkScript(buf.Bytes(), string(name)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderAll renders every managed hook, failing on the first error.
func (r *Renderer) RenderAll() (map[Name][]byte, error) {
	out := make(map[Name][]byte, len(Names()))
	for _, n := range Names() {
		script, err := r.Render(n)
		if err != nil {
			return nil, err
		}
		out[n] = script
	}
	return out, nil
}

// quote renders s as a single bash word.
func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", cerr.Wrapf(err, "cannot quote %q for bash", s)
	}
	return q, nil
}

// checkScript parses script as bash.
func checkScript(script []byte, name string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(bytes.NewReader(script), name); err != nil {
		return glimpse_err.NewValidationErrorWithCause(
			fmt.Sprintf("rendered %s hook is not valid bash", name), err,
			"Check hooks.format_check and hooks.lint_check in your glimpse configuration",
		)
	}
	return nil
}

// IsManaged reports whether script was written by glimpse.
func IsManaged(script []byte) bool {
	lines := strings.SplitN(string(script), "\n", 3)
	return len(lines) >= 2 && strings.HasPrefix(lines[1], Marker)
}
