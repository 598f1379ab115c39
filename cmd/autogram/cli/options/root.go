// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package options defines the command-line options and flags for the
// autogram CLI.
package options

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pomali/autogram/pkg/config"
	"github.com/pomali/autogram/pkg/logging"
)

// EnvPrefix is the prefix used for environment variables that configure the CLI.
const EnvPrefix = "AUTOGRAM"

// ConfigFileEnv names the variable that points at the configuration file.
const ConfigFileEnv = EnvPrefix + "_CONFIG"

// ValidLogLevels lists the valid log level strings.
var ValidLogLevels = []string{"debug", "info", "warn", "error", "silent"}

// ValidLogFormats lists the valid log format strings.
var ValidLogFormats = []string{"text", "json"}

// RootOptions defines flags and options for the root CLI command.
// These options are available globally across all subcommands.
type RootOptions struct {
	// ConfigFile is a YAML configuration file. When empty, $AUTOGRAM_CONFIG
	// or the user config directory is consulted.
	ConfigFile string
	// LogLevel sets the minimum log level (debug, info, warn, error, silent).
	LogLevel string
	// LogFormat sets the log output format (text, json).
	LogFormat string
	// Timeout sets the maximum duration for command execution.
	Timeout time.Duration
	// CacheDir overrides the native-fallback cache directory.
	CacheDir string

	cfg    *config.Config
	logger logging.Logger
}

var _ Interface = (*RootOptions)(nil)

// AddFlags implements the Interface by adding root-level flags to the cobra command.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.ConfigFile, "config", "",
		"path to a YAML configuration file (env "+ConfigFileEnv+")")
	_ = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")

	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info",
		"set the minimum log level (debug, info, warn, error, silent)")

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "text",
		"set the log output format (text, json)")

	_ = cmd.RegisterFlagCompletionFunc("log-level", cobra.FixedCompletions(ValidLogLevels, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("log-format", cobra.FixedCompletions(ValidLogFormats, cobra.ShellCompDirectiveNoFileComp))

	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", config.DefaultTimeout,
		"timeout for commands")

	cmd.PersistentFlags().StringVar(&o.CacheDir, "cache-dir", "",
		"directory for copies opened in external applications")
	_ = cmd.MarkPersistentFlagDirname("cache-dir")
}

// DefaultConfigFile returns <user config dir>/autogram/config.yaml, or ""
// when the platform has no user config directory.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, config.DefaultAppShortName, "config.yaml")
}

// Load builds the effective configuration: defaults, then the config file,
// then AUTOGRAM_* variables, then flags the user set explicitly.
func (o *RootOptions) Load(cmd *cobra.Command) error {
	cfg := config.New()

	path, optional := o.ConfigFile, false
	if path == "" {
		if v, ok := os.LookupEnv(ConfigFileEnv); ok && v != "" {
			path = v
		} else {
			path, optional = DefaultConfigFile(), true
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path, optional); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	flags := cmd.Flags()
	level, format := cfg.LogLevel(), cfg.LogFormat()
	if flags.Changed("log-level") {
		level = o.LogLevel
	}
	if flags.Changed("log-format") {
		format = o.LogFormat
	}
	cfg.SetLogging(level, format)
	if flags.Changed("timeout") {
		cfg.SetTimeout(o.Timeout)
	}
	if flags.Changed("cache-dir") {
		cfg.SetCacheDir(o.CacheDir)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel(), cfg.LogFormat(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logger
	return nil
}

// Config returns the configuration built by Load, or defaults before Load.
func (o *RootOptions) Config() *config.Config {
	if o.cfg == nil {
		return config.New()
	}
	return o.cfg
}

// Context derives the per-command context, bounded by the configured
// timeout.
func (o *RootOptions) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if d := o.Config().Timeout(); d > 0 {
		return context.WithTimeout(parent, d)
	}
	return context.WithCancel(parent)
}
