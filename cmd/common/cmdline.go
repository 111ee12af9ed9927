// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/blinklabs-io/votesecure/lockscript"
	"github.com/blinklabs-io/votesecure/signature"
)

const envPrefix = "VOTESECURE_"

var (
	LogFormatFlag = cli.StringFlag{
		Name:   "log-format",
		Usage:  "log output format (text|json)",
		Value:  "text",
		EnvVar: envPrefix + "LOG_FORMAT",
	}
	LogLevelFlag = cli.StringFlag{
		Name:   "log-level",
		Usage:  "minimum log level (debug|info|warn|error)",
		Value:  "info",
		EnvVar: envPrefix + "LOG_LEVEL",
	}
	LegacyCryptoFlag = cli.BoolFlag{
		Name:   "legacy-crypto",
		Usage:  "use the placeholder hash and signature check of the first deployed lock script (compatibility testing only)",
		EnvVar: envPrefix + "LEGACY_CRYPTO",
	}
	DatabaseFlag = cli.StringFlag{
		Name:   "db",
		Usage:  "path of the fixture database",
		Value:  "votesecure-fixtures.db",
		EnvVar: envPrefix + "DB",
	}
)

// GlobalFlags returns the flags shared by every command
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		LogFormatFlag,
		LogLevelFlag,
		LegacyCryptoFlag,
		DatabaseFlag,
	}
}

// Config is the resolved global configuration
type Config struct {
	Logger       *slog.Logger
	Provider     signature.Provider
	DatabasePath string
}

const configKey = "config"

// Setup resolves the global flags of the root context and stores the result
// in the app metadata. It is meant to run as the app Before hook
func Setup(c *cli.Context, logOutput io.Writer) error {
	logger, err := NewLogger(
		logOutput,
		c.String(LogFormatFlag.Name),
		c.String(LogLevelFlag.Name),
	)
	if err != nil {
		return err
	}
	cfg := &Config{
		Logger:       logger,
		Provider:     signature.NewSecp256k1Provider(),
		DatabasePath: c.String(DatabaseFlag.Name),
	}
	if c.Bool(LegacyCryptoFlag.Name) {
		logger.Warn("using legacy placeholder cryptography, verdicts are not trustworthy")
		cfg.Provider = signature.LegacyProvider{}
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

// GetConfig returns the configuration stored by Setup
func GetConfig(c *cli.Context) (*Config, error) {
	cfg, ok := c.App.Metadata[configKey].(*Config)
	if !ok {
		return nil, errors.New("configuration not initialized")
	}
	return cfg, nil
}

// NewEngine builds a lock script engine from the configuration
func (cfg *Config) NewEngine() *lockscript.Engine {
	return lockscript.New(
		lockscript.WithProvider(cfg.Provider),
		lockscript.WithLogger(cfg.Logger),
	)
}

func NewLogger(w io.Writer, format string, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
