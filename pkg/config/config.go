// pkg/config/config.go

// Package config loads glimpse settings. Sources, lowest priority first:
// built-in defaults, the user config file, the repository's .glimpse.yaml,
// GLIMPSE_* environment variables, and bound command-line flags.
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/glimpse_err"
	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	EnvPrefix      = "GLIMPSE"
	RepoConfigName = ".glimpse.yaml"
	appName        = "glimpse"
)

// Defaults for a Go project.
const (
	DefaultSourcePattern = `\.go$`
	DefaultFormatCheck   = `test -z "$(gofmt -l $SOURCE_FILES)"`
	DefaultFormatHint    = "gofmt -w ."
	DefaultLintCheck     = "go vet ./..."
	DefaultLanguage      = "Go"
)

// HooksConfig feeds the pre-commit gate.
type HooksConfig struct {
	// SourcePattern is an extended regular expression matched against staged paths.
	SourcePattern string `mapstructure:"source_pattern" yaml:"source_pattern" validate:"required,regexp"`
	// FormatCheck sees the matching staged files in $SOURCE_FILES.
	FormatCheck string `mapstructure:"format_check" yaml:"format_check" validate:"required,singleline"`
	FormatHint  string `mapstructure:"format_hint" yaml:"format_hint" validate:"singleline"`
	LintCheck   string `mapstructure:"lint_check" yaml:"lint_check" validate:"required,singleline"`
	Language    string `mapstructure:"language" yaml:"language" validate:"required,singleline,max=40"`
}

// Config is the effective glimpse configuration.
type Config struct {
	Hooks  HooksConfig `mapstructure:"hooks" yaml:"hooks"`
	Editor string      `mapstructure:"editor" yaml:"editor,omitempty"`
	Color  bool        `mapstructure:"color" yaml:"color"`
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// RepoRoot is the working tree root; empty skips the repository file.
	RepoRoot string
	// UserConfigPath overrides the XDG location.
	UserConfigPath string
	// Flags are bound to keys of the same name when present.
	Flags *pflag.FlagSet
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Hooks: HooksConfig{
			SourcePattern: DefaultSourcePattern,
			FormatCheck:   DefaultFormatCheck,
			FormatHint:    DefaultFormatHint,
			LintCheck:     DefaultLintCheck,
			Language:      DefaultLanguage,
		},
		Color: true,
	}
}

// UserConfigPath is $XDG_CONFIG_HOME/glimpse/config.yaml.
func UserConfigPath() string {
	return xdg.XDGConfigPath(appName, "config.yaml")
}

// Load merges every source and validates the result.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	logger := otelzap.Ctx(ctx)

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	sources := []string{userPath}
	if opts.RepoRoot != "" {
		sources = append(sources, filepath.Join(opts.RepoRoot, RepoConfigName))
	}
	for _, path := range sources {
		loaded, err := mergeFile(v, path)
		if err != nil {
			return nil, err
		}
		if loaded {
			logger.Debug("Merged config file", zap.String("path", path))
		}
	}

	cli.SetViperEnvPrefix(v, EnvPrefix)

	if opts.Flags != nil {
		if err := cli.BindFlagsToViper(opts.Flags, v, flagKey); err != nil {
			return nil, glimpse_err.NewInternalError("failed to bind flags", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, glimpse_err.NewValidationErrorWithCause("invalid configuration", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded",
		zap.String("source_pattern", cfg.Hooks.SourcePattern),
		zap.String("language", cfg.Hooks.Language),
		zap.Bool("color", cfg.Color))
	return cfg, nil
}

// ResolveEditor picks the configured editor, then $VISUAL, $EDITOR and vi.
func (c *Config) ResolveEditor() string {
	if c != nil && c.Editor != "" {
		return c.Editor
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	return "vi"
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("hooks.source_pattern", d.Hooks.SourcePattern)
	v.SetDefault("hooks.format_check", d.Hooks.FormatCheck)
	v.SetDefault("hooks.format_hint", d.Hooks.FormatHint)
	v.SetDefault("hooks.lint_check", d.Hooks.LintCheck)
	v.SetDefault("hooks.language", d.Hooks.Language)
	v.SetDefault("editor", d.Editor)
	v.SetDefault("color", d.Color)
}

// mergeFile merges path into v when it exists.
func mergeFile(v *viper.Viper, path string) (bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, glimpse_err.NewFilesystemError("cannot read config file "+path, err)
	}
	defer f.Close()

	if err := v.MergeConfig(f); err != nil {
		return false, glimpse_err.NewValidationErrorWithCause(
			"config file "+path+" is not valid YAML",
			cerr.WithStack(err),
			"Fix or remove "+path,
		)
	}
	return true, nil
}

// flagKey maps command-line flags onto config keys.
func flagKey(flag string) string {
	switch flag {
	case "editor":
		return "editor"
	case "color":
		return "color"
	default:
		return ""
	}
}
