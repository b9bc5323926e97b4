// Package cli wires the d3l components together for the command-line layer:
// configuration, logging, terminal output, the filesystem helpers, the path
// creator and the charset transcoder.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/zoro11031/d3l/internal/charset"
	"github.com/zoro11031/d3l/internal/common"
	"github.com/zoro11031/d3l/internal/config"
	"github.com/zoro11031/d3l/internal/logging"
	"github.com/zoro11031/d3l/internal/system"
	"github.com/zoro11031/d3l/internal/ui"
)

// Options carries command-line overrides of the configuration file
type Options struct {
	ConfigPath     string
	LogFile        string // overrides [log] file
	LogConsole     bool      // forces logging to Console
	Console        io.Writer // console log stream, os.Stderr when nil
	NonInteractive bool
}

// Context holds all dependencies needed by the commands
type Context struct {
	Config     *config.Config
	UI         *ui.UI
	Log        *logging.Logger
	FS         *system.FileSystem
	Transcoder *charset.Transcoder
}

// NewContext loads the configuration and builds every component from it
func NewContext(opts Options) (*Context, error) {
	cfg := config.New(opts.ConfigPath)
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := newLogger(cfg, opts)
	if err != nil {
		return nil, err
	}

	tr, err := newTranscoder(cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	uiInstance := ui.New()
	uiInstance.SetNonInteractive(opts.NonInteractive)

	return &Context{
		Config:     cfg,
		UI:         uiInstance,
		Log:        log,
		FS:         system.NewFileSystem(log),
		Transcoder: tr,
	}, nil
}

func newLogger(cfg *config.Config, opts Options) (*logging.Logger, error) {
	console, err := cfg.GetBool(config.KeyLogConsole)
	if err != nil {
		return nil, err
	}
	debug, err := cfg.GetBool(config.KeyLogDebug)
	if err != nil {
		return nil, err
	}

	file := opts.LogFile
	if file == "" {
		file = cfg.GetOrDefault(config.KeyLogFile, logging.DefaultFile)
	}

	logOpts := logging.Options{File: file, Debug: debug}
	if console || opts.LogConsole {
		logOpts.Console = opts.Console
		if logOpts.Console == nil {
			logOpts.Console = os.Stderr
		}
	}
	return logging.New(logOpts)
}

func newTranscoder(cfg *config.Config, log *logging.Logger) (*charset.Transcoder, error) {
	legacy := cfg.GetOrDefault(config.KeyLegacyCharset, charset.DefaultLegacy)
	if err := common.ValidateCharsetName(legacy); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.KeyLegacyCharset, err)
	}

	toLegacy, err := cfg.GetInt(config.KeyToLegacyRatio)
	if err != nil {
		return nil, err
	}
	toUniversal, err := cfg.GetInt(config.KeyToUniversalRatio)
	if err != nil {
		return nil, err
	}

	return charset.New(log,
		charset.WithLegacy(legacy),
		charset.WithRatios(toLegacy, toUniversal),
	), nil
}

// PathCreator returns a creator over the real filesystem. An empty mode uses
// [dir] mode from the configuration.
func (c *Context) PathCreator(mode string) (*system.PathCreator, error) {
	if mode == "" {
		mode = c.Config.GetOrDefault(config.KeyDirMode, "0755")
	}
	perms, err := common.ParseFileMode(mode)
	if err != nil {
		return nil, fmt.Errorf("invalid directory mode: %w", err)
	}
	return system.NewPathCreator(c.FS, c.Log, system.WithMode(perms)), nil
}

// Close releases the log destination
func (c *Context) Close() error {
	return c.Log.Close()
}
