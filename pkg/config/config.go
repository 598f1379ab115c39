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

// Package config holds the settings shared by the CLI and the HTTP server.
//
// Values are layered: defaults, then an optional YAML file, then AUTOGRAM_*
// environment variables, then command-line flags applied through the
// setters.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pomali/autogram/pkg/cache"
	"github.com/pomali/autogram/pkg/hashing"
	hashengines "github.com/pomali/autogram/pkg/hashing/engines"
	"github.com/pomali/autogram/pkg/logging"
)

// Defaults.
const (
	DefaultDPI           = 100
	DefaultAppShortName  = "autogram"
	DefaultListenAddress = "127.0.0.1:37200"
	DefaultHashAlgorithm = hashing.DefaultAlgorithm
	DefaultTimeout       = 2 * time.Minute
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "AUTOGRAM_"

// Config holds autogram settings.
type Config struct {
	pdfDPI        float64
	appShortName  string
	cacheDir      string
	listenAddress string
	hashAlgorithm string
	logLevel      string
	logFormat     string
	timeout       time.Duration
}

// fileConfig is the YAML layout. Absent keys keep their current value.
type fileConfig struct {
	PDFDPI        *float64 `yaml:"pdfDpi"`
	AppShortName  *string  `yaml:"appShortName"`
	CacheDir      *string  `yaml:"cacheDir"`
	ListenAddress *string  `yaml:"listen"`
	HashAlgorithm *string  `yaml:"hashAlgorithm"`
	LogLevel      *string  `yaml:"logLevel"`
	LogFormat     *string  `yaml:"logFormat"`
	Timeout       *string  `yaml:"timeout"`
}

// New returns a Config with defaults. The cache directory defaults to
// <tmp>/<app>/documents and follows the app short name until set
// explicitly.
func New() *Config {
	return &Config{
		pdfDPI:        DefaultDPI,
		appShortName:  DefaultAppShortName,
		listenAddress: DefaultListenAddress,
		hashAlgorithm: DefaultHashAlgorithm,
		logLevel:      logging.LevelInfo.String(),
		logFormat:     logging.FormatText.String(),
		timeout:       DefaultTimeout,
	}
}

// PDFDPI returns the rasterization resolution.
func (c *Config) PDFDPI() float64 { return c.pdfDPI }

// AppShortName returns the name used for the cache directory.
func (c *Config) AppShortName() string { return c.appShortName }

// ListenAddress returns the HTTP listen address.
func (c *Config) ListenAddress() string { return c.listenAddress }

// HashAlgorithm returns the document fingerprint algorithm.
func (c *Config) HashAlgorithm() string { return c.hashAlgorithm }

// LogLevel returns the log level name.
func (c *Config) LogLevel() string { return c.logLevel }

// LogFormat returns the log format name.
func (c *Config) LogFormat() string { return c.logFormat }

// Timeout bounds a single CLI operation or HTTP request.
func (c *Config) Timeout() time.Duration { return c.timeout }

// CacheDir returns the native-fallback cache directory.
func (c *Config) CacheDir() string {
	if c.cacheDir != "" {
		return c.cacheDir
	}
	return cache.DefaultDir(c.appShortName)
}

// SetPDFDPI sets the rasterization resolution.
//
// Returns the Config for method chaining.
func (c *Config) SetPDFDPI(dpi float64) *Config {
	c.pdfDPI = dpi
	return c
}

// SetAppShortName sets the application short name.
//
// Returns the Config for method chaining.
func (c *Config) SetAppShortName(name string) *Config {
	c.appShortName = name
	return c
}

// SetCacheDir sets the cache directory. An empty dir restores the default.
//
// Returns the Config for method chaining.
func (c *Config) SetCacheDir(dir string) *Config {
	c.cacheDir = dir
	return c
}

// SetListenAddress sets the HTTP listen address.
//
// Returns the Config for method chaining.
func (c *Config) SetListenAddress(addr string) *Config {
	c.listenAddress = addr
	return c
}

// SetHashAlgorithm sets the fingerprint algorithm.
//
// Returns the Config for method chaining.
func (c *Config) SetHashAlgorithm(alg string) *Config {
	c.hashAlgorithm = strings.ToLower(alg)
	return c
}

// SetLogging sets the log level and format names.
//
// Returns the Config for method chaining.
func (c *Config) SetLogging(level, format string) *Config {
	c.logLevel = level
	c.logFormat = format
	return c
}

// SetTimeout sets the operation timeout. Zero disables it.
//
// Returns the Config for method chaining.
func (c *Config) SetTimeout(d time.Duration) *Config {
	c.timeout = d
	return c
}

// LoadFile merges the YAML file at path. A missing file is not an error
// when optional is set.
func (c *Config) LoadFile(path string, optional bool) error {
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := c.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Load merges YAML read from r. Unknown keys are rejected.
func (c *Config) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if fc.PDFDPI != nil {
		c.pdfDPI = *fc.PDFDPI
	}
	if fc.AppShortName != nil {
		c.appShortName = *fc.AppShortName
	}
	if fc.CacheDir != nil {
		c.cacheDir = *fc.CacheDir
	}
	if fc.ListenAddress != nil {
		c.listenAddress = *fc.ListenAddress
	}
	if fc.HashAlgorithm != nil {
		c.SetHashAlgorithm(*fc.HashAlgorithm)
	}
	if fc.LogLevel != nil {
		c.logLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		c.logFormat = *fc.LogFormat
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		c.timeout = d
	}
	return nil
}

// ApplyEnv merges AUTOGRAM_* variables obtained through lookup, which is
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "PDF_DPI"); ok {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sPDF_DPI: %w", EnvPrefix, err)
		}
		c.pdfDPI = dpi
	}
	if v, ok := lookup(EnvPrefix + "APP_SHORT_NAME"); ok {
		c.appShortName = v
	}
	if v, ok := lookup(EnvPrefix + "CACHE_DIR"); ok {
		c.cacheDir = v
	}
	if v, ok := lookup(EnvPrefix + "LISTEN"); ok {
		c.listenAddress = v
	}
	if v, ok := lookup(EnvPrefix + "HASH_ALGORITHM"); ok {
		c.SetHashAlgorithm(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.logLevel = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		c.logFormat = v
	}
	if v, ok := lookup(EnvPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		c.timeout = d
	}
	return nil
}

// Validate checks the combined settings.
func (c *Config) Validate() error {
	var errs []error
	if c.pdfDPI <= 0 {
		errs = append(errs, fmt.Errorf("pdf dpi must be positive, got %v", c.pdfDPI))
	}
	if strings.TrimSpace(c.appShortName) == "" {
		errs = append(errs, errors.New("app short name must not be empty"))
	}
	if strings.ContainsAny(c.appShortName, `/\`) {
		errs = append(errs, fmt.Errorf("app short name %q must not contain path separators", c.appShortName))
	}
	if !hashengines.IsSupported(c.hashAlgorithm) {
		errs = append(errs, fmt.Errorf("unsupported hash algorithm %q (supported: %s)",
			c.hashAlgorithm, strings.Join(hashengines.SupportedAlgorithms(), ", ")))
	}
	if _, err := logging.ParseLogLevelStrict(c.logLevel); err != nil {
		errs = append(errs, err)
	}
	if c.timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.timeout))
	}
	return errors.Join(errs...)
}
